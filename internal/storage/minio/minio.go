// minio предоставляет реализацию storage.DumpsStorage на базе MinIO/S3.
// minio.go — конструктор клиента: нормализует endpoint, настраивает Secure/creds
// и проверяет наличие целевого бакета.
// dumps.go — загрузка JSON-дампов в бакет.
package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pribylovaa/reverb-scraper/internal/config"
	"github.com/pribylovaa/reverb-scraper/internal/storage"
)

// DumpsStorage — адаптер MinIO для дампов.
type DumpsStorage struct {
	bucket string
	prefix string
	client *mclient.Client
}

// New создаёт клиент MinIO и выполняет fail-fast-проверку бакета.
func New(ctx context.Context, cfg config.S3Config) (*DumpsStorage, error) {
	const op = "storage.minio.New"

	endpoint := cfg.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.RootUser, cfg.RootPassword, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, cfg.Bucket)
	}

	return &DumpsStorage{bucket: cfg.Bucket, prefix: cfg.Prefix, client: client}, nil
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.DumpsStorage = (*DumpsStorage)(nil)
