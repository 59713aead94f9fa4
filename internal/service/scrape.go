package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pribylovaa/reverb-scraper/internal/config"
	"github.com/pribylovaa/reverb-scraper/internal/metrics"
	"github.com/pribylovaa/reverb-scraper/internal/models"
	"github.com/pribylovaa/reverb-scraper/internal/pkg/log"
	"github.com/pribylovaa/reverb-scraper/internal/storage"
	"github.com/pribylovaa/reverb-scraper/internal/storage/file"
)

// listingsPerPage — делитель total_pages при обходе без лимита страниц.
const listingsPerPage = 50

// Scraper обходит категории маркетплейса последовательно, одна страница за раз.
type Scraper struct {
	fetcher    Fetcher
	categories map[string]string
	uploader   storage.DumpsStorage
	metrics    *metrics.Metrics
	source     string
	dumpDir    string
}

// NewScraper создаёт Scraper. uploader и m могут быть nil.
func NewScraper(fetcher Fetcher, uploader storage.DumpsStorage, m *metrics.Metrics, cfg config.Config) *Scraper {
	categories := cfg.Reverb.Categories
	if len(categories) == 0 {
		categories = config.DefaultCategories()
	}

	return &Scraper{
		fetcher:    fetcher,
		categories: categories,
		uploader:   uploader,
		metrics:    m,
		source:     cfg.Reverb.Source,
		dumpDir:    cfg.Dump.Dir,
	}
}

// Categories возвращает ключи категорий в алфавитном порядке.
func (s *Scraper) Categories() []string {
	keys := make([]string, 0, len(s.categories))
	for k := range s.categories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PageCount — верхняя (исключительная) граница номеров страниц:
// обходятся страницы 1..PageCount-1.
func PageCount(totalPages, pageLimit int) int {
	if pageLimit > 0 {
		return pageLimit + 1
	}
	return totalPages / listingsPerPage
}

// Scrape загружает объявления категории categoryKey.
//
// Особенности:
//   - неизвестный ключ — ошибка до любого сетевого запроса;
//   - первичный запрос без page определяет total_pages;
//   - pageLimit > 0 — страницы 1..pageLimit, иначе 1..total_pages/50-1;
//   - первая же ошибка прерывает обход, частичный результат не возвращается;
//   - результат отсортирован по published_at от новых к старым (стабильно).
func (s *Scraper) Scrape(ctx context.Context, categoryKey string, pageLimit int) ([]models.Listing, error) {
	const op = "service.scrape.Scrape"

	categoryID, ok := s.categories[categoryKey]
	if !ok {
		return nil, &ScrapeError{
			Kind:     KindUnknownCategory,
			Category: categoryKey,
			Message:  fmt.Sprintf("unknown category %q", categoryKey),
		}
	}

	ctx = log.With(ctx, slog.String("category", categoryKey))
	lg := log.From(ctx)

	first, err := s.fetcher.FetchPage(ctx, categoryID, 0)
	if err != nil {
		return nil, s.abort(ctx, op, categoryKey, 0, err)
	}
	s.metrics.PageFetched(categoryKey)

	pageCount := PageCount(first.TotalPages.Int(), pageLimit)
	lg.Info("scrape_start",
		slog.String("op", op),
		slog.Int("total_pages", first.TotalPages.Int()),
		slog.Int("page_limit", pageLimit),
		slog.Int("pages", max(pageCount-1, 0)),
	)

	listings := make([]models.Listing, 0)
	for page := 1; page < pageCount; page++ {
		result, err := s.fetcher.FetchPage(ctx, categoryID, page)
		if err != nil {
			return nil, s.abort(ctx, op, categoryKey, page, err)
		}
		s.metrics.PageFetched(categoryKey)

		listings = append(listings, result.Listings...)
		lg.Debug("page_fetched",
			slog.String("op", op),
			slog.Int("page", page),
			slog.Int("listings", len(result.Listings)),
		)
	}

	SortByPublishedAt(listings)

	repaired := 0
	for i := range listings {
		if listings[i].PublishedAtRecovered {
			repaired++
		}
	}
	if repaired > 0 {
		lg.Warn("published_at_recovered",
			slog.String("op", op),
			slog.Int("listings", repaired),
		)
	}

	s.metrics.ListingsScraped(categoryKey, len(listings))
	s.metrics.TimestampsRepaired(categoryKey, repaired)

	lg.Info("scrape_done",
		slog.String("op", op),
		slog.Int("listings", len(listings)),
	)

	return listings, nil
}

// SortByPublishedAt сортирует объявления от новых к старым.
// Порядок равных по времени объявлений сохраняется.
// Неразбираемые даты считаются нулевым временем и уходят в конец.
func SortByPublishedAt(listings []models.Listing) {
	type keyed struct {
		at time.Time
		l  models.Listing
	}

	items := make([]keyed, len(listings))
	for i, l := range listings {
		at, _ := models.ParsePublishedAt(l.PublishedAt)
		items[i] = keyed{at: at, l: l}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		return b.at.Compare(a.at)
	})

	for i := range items {
		listings[i] = items[i].l
	}
}

// RunResult — итог по одной категории.
type RunResult struct {
	Category string
	Listings int
	Path     string
	// ObjectKey — ключ в объектном хранилище, пусто без загрузки.
	ObjectKey string
}

// Run обходит категории (все или только only), пишет дамп каждой
// в {dumpDir}/{source}_{category}.json и при наличии uploader загружает его.
// Первая ошибка прерывает прогон; результаты уже обработанных категорий возвращаются.
func (s *Scraper) Run(ctx context.Context, only string, pageLimit int) ([]RunResult, error) {
	const op = "service.scrape.Run"

	ctx = log.With(ctx, slog.String("run_id", uuid.NewString()))
	lg := log.From(ctx)

	keys := s.Categories()
	if only != "" {
		keys = []string{only}
	}

	if err := os.MkdirAll(s.dumpDir, 0o755); err != nil {
		return nil, &ScrapeError{
			Kind:    KindIO,
			Message: fmt.Sprintf("dump directory could not be created: %v", err),
			Err:     err,
		}
	}

	lg.Info("run_start",
		slog.String("op", op),
		slog.Any("categories", keys),
		slog.String("dump_dir", s.dumpDir),
	)

	results := make([]RunResult, 0, len(keys))
	for _, key := range keys {
		listings, err := s.Scrape(ctx, key, pageLimit)
		if err != nil {
			return results, err
		}

		path := filepath.Join(s.dumpDir, fmt.Sprintf("%s_%s.json", s.source, key))
		if err := file.Dump(listings, path); err != nil {
			return results, s.abort(ctx, op, key, 0, err)
		}
		s.metrics.DumpWritten(key)
		lg.Info("dump_written",
			slog.String("op", op),
			slog.String("category", key),
			slog.String("path", path),
			slog.Int("listings", len(listings)),
		)

		res := RunResult{Category: key, Listings: len(listings), Path: path}

		if s.uploader != nil {
			objectKey, err := s.uploader.UploadDump(ctx, path)
			if err != nil {
				s.metrics.Failure(key, string(KindUpload))
				return results, &ScrapeError{
					Kind:     KindUpload,
					Category: key,
					Message:  fmt.Sprintf("dump upload failed: %v", err),
					Err:      err,
				}
			}
			res.ObjectKey = objectKey
			lg.Info("dump_uploaded",
				slog.String("op", op),
				slog.String("category", key),
				slog.String("key", objectKey),
			)
		}

		s.metrics.Succeeded(key)
		results = append(results, res)
	}

	return results, nil
}

// abort классифицирует ошибку, пишет лог и метрику.
func (s *Scraper) abort(ctx context.Context, op, category string, page int, err error) *ScrapeError {
	se := classify(err)
	se.Category = category
	se.Page = page

	log.From(ctx).Error("scrape_aborted",
		slog.String("op", op),
		slog.String("kind", string(se.Kind)),
		slog.Int("page", page),
		slog.String("err", err.Error()),
	)
	s.metrics.Failure(category, string(se.Kind))

	return se
}
