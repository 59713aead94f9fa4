// file — запись и чтение JSON-дампов объявлений на локальном диске.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/pribylovaa/reverb-scraper/internal/models"
	"github.com/pribylovaa/reverb-scraper/internal/reverb"
)

// ErrIO — файл дампа не удалось открыть, записать или прочитать.
var ErrIO = errors.New("dump io failed")

// Dump пишет объявления в path как JSON-массив с отступом в 2 пробела.
// Существующий файл перезаписывается, пустой срез даёт "[]".
// Родительский каталог должен существовать.
func Dump(listings []models.Listing, path string) (err error) {
	const op = "storage.file.Dump"

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%s: %w: %w", op, ErrIO, cerr)
		}
	}()

	if listings == nil {
		listings = []models.Listing{}
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(listings); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrIO, err)
	}

	return nil
}

// Load читает дамп и разбирает его по схеме объявлений.
func Load(ctx context.Context, path string) ([]models.Listing, error) {
	const op = "storage.file.Load"

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrIO, err)
	}

	listings, err := reverb.DecodeListings(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return listings, nil
}
