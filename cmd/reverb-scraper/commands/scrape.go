package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/reverb-scraper/internal/metrics"
	"github.com/pribylovaa/reverb-scraper/internal/pkg/redact"
	"github.com/pribylovaa/reverb-scraper/internal/reverb"
	"github.com/pribylovaa/reverb-scraper/internal/service"
	"github.com/pribylovaa/reverb-scraper/internal/storage"
	"github.com/pribylovaa/reverb-scraper/internal/storage/minio"
	"github.com/spf13/cobra"
)

var (
	scrapeCategory string
	scrapePages    int
)

func init() {
	scrapeCmd.Flags().StringVar(&scrapeCategory, "category", "", "scrape only this category key")
	scrapeCmd.Flags().IntVar(&scrapePages, "pages", 0, "fetch pages 1..N instead of total_pages/50 (overrides reverb.page_limit)")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--category <key>] [--pages <n>]",
	Short: "Scrapes configured Reverb categories and writes one JSON dump per category.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		pageLimit := cfg.Reverb.PageLimit
		if cmd.Flags().Changed("pages") {
			pageLimit = scrapePages
		}
		if pageLimit < 0 {
			return fmt.Errorf("--pages must be >= 0")
		}

		client := reverb.New(reverb.Options{
			BaseURL:   cfg.Reverb.BaseURL,
			Timeout:   cfg.Reverb.Timeout,
			UserAgent: cfg.Reverb.UserAgent,
		})

		uploader, err := openUploader(ctx)
		if err != nil {
			return err
		}

		m := metrics.New()
		scraper := service.NewScraper(client, uploader, m, *cfg)

		results, runErr := scraper.Run(ctx, scrapeCategory, pageLimit)
		if len(results) > 0 {
			renderResults(cmd.OutOrStdout(), results)
		}

		pushMetrics(ctx, m)

		if runErr != nil {
			var se *service.ScrapeError
			if errors.As(runErr, &se) {
				logger.Error("scrape_failed",
					slog.String("kind", string(se.Kind)),
					slog.String("category", se.Category),
					slog.Int("page", se.Page),
					slog.String("err", se.Error()),
				)
			}
			return runErr
		}

		return nil
	},
}

// openUploader подключает MinIO, если задан s3.endpoint; иначе дампы остаются только на диске.
func openUploader(ctx context.Context) (storage.DumpsStorage, error) {
	if !cfg.S3.Enabled() {
		return nil, nil
	}

	s3Ctx, cancel := context.WithTimeout(ctx, cfg.Timeouts.S3)
	defer cancel()

	dumps, err := minio.New(s3Ctx, cfg.S3)
	if err != nil {
		logger.Error("minio_connect_failed",
			slog.String("endpoint", redact.URL(cfg.S3.Endpoint)),
			slog.String("err", err.Error()),
		)
		return nil, err
	}
	logger.Info("minio_connected", slog.String("bucket", cfg.S3.Bucket))

	return dumps, nil
}

// pushMetrics отправляет метрики прогона; ошибка отправки не меняет результат команды.
func pushMetrics(ctx context.Context, m *metrics.Metrics) {
	if cfg.Metrics.PushURL == "" {
		return
	}

	pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Timeouts.Push)
	defer cancel()

	if err := m.Push(pushCtx, cfg.Metrics.PushURL, cfg.Metrics.Job); err != nil {
		logger.Warn("metrics_push_failed",
			slog.String("url", redact.URL(cfg.Metrics.PushURL)),
			slog.String("err", err.Error()),
		)
		return
	}
	logger.Info("metrics_pushed", slog.String("job", cfg.Metrics.Job))
}
