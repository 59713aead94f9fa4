package minio

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"time"

	mclient "github.com/minio/minio-go/v7"
)

// UploadDump загружает локальный файл дампа под ключом
// "<prefix>/<YYYY-MM-DD>/<имя файла>" и возвращает ключ.
// Повторная загрузка в тот же день перезаписывает объект.
func (s *DumpsStorage) UploadDump(ctx context.Context, localPath string) (string, error) {
	const op = "storage.minio.dumps.UploadDump"

	key := dumpKey(s.prefix, time.Now().UTC(), filepath.Base(localPath))

	_, err := s.client.FPutObject(ctx, s.bucket, key, localPath, mclient.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return key, nil
}

func dumpKey(prefix string, day time.Time, name string) string {
	return path.Join(prefix, day.Format(time.DateOnly), name)
}
