package reverb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Jeffail/gabs/v2"
	"github.com/pribylovaa/reverb-scraper/internal/models"
	"github.com/pribylovaa/reverb-scraper/internal/pkg/log"
)

// Обязательные поля (присутствуют и не null). finish, sku, shipping.us_rate
// и photos[]._links необязательны.
var (
	pageRequired = []string{"name", "description", "total", "listings"}
	// Счётчики страниц должны присутствовать, значение может быть любым.
	pageCounters = []string{"current_page", "total_pages"}

	listingRequired = []string{
		"id", "make", "model", "year", "title", "created_at", "shop_name",
		"description", "condition", "condition_uuid", "condition_slug",
		"price", "inventory", "has_inventory", "offers_enabled", "auction",
		"category_uuids", "listing_currency", "published_at", "buyer_price",
		"state", "shipping", "slug", "photos",
	}

	priceRequired      = []string{"amount", "amount_cents", "currency", "symbol", "display"}
	buyerPriceRequired = append(append([]string(nil), priceRequired...), "tax_included_hint", "tax_included", "tax_included_rate")
	stateRequired      = []string{"slug", "description"}
	shippingRequired   = []string{"local", "us"}
	photoLinksRequired = []string{"large_crop", "small_crop", "full", "thumbnail"}
)

// DecodePage разбирает тело ответа категории в models.ResultsPage.
// Невалидный JSON — ErrDecode, нарушение структуры — *SchemaError.
// Нераспознанный published_at заменяется текущим временем UTC,
// счётчики страниц приводятся к положительным значениям.
func DecodePage(ctx context.Context, raw []byte) (*models.ResultsPage, error) {
	const op = "reverb.schema.DecodePage"

	if !json.Valid(raw) {
		return nil, fmt.Errorf("%s: %w", op, ErrDecode)
	}

	doc, err := gabs.ParseJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrDecode)
	}

	if err := validatePage(doc); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var page models.ResultsPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, fmt.Errorf("%s: %w", op, typeError(err))
	}

	now := time.Now()
	for i := range page.Listings {
		NormalizeListing(ctx, &page.Listings[i], now)
	}

	return &page, nil
}

// DecodeListings разбирает JSON-массив объявлений (формат дампа)
// по тем же правилам, что и DecodePage.
func DecodeListings(ctx context.Context, raw []byte) ([]models.Listing, error) {
	const op = "reverb.schema.DecodeListings"

	if !json.Valid(raw) {
		return nil, fmt.Errorf("%s: %w", op, ErrDecode)
	}

	doc, err := gabs.ParseJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrDecode)
	}

	items, ok := doc.Data().([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, &SchemaError{Path: "$", Reason: "expected array"})
	}

	for i := range items {
		if err := validateListing(doc.Index(i), fmt.Sprintf("[%d]", i)); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	listings := make([]models.Listing, 0, len(items))
	if err := json.Unmarshal(raw, &listings); err != nil {
		return nil, fmt.Errorf("%s: %w", op, typeError(err))
	}

	now := time.Now()
	for i := range listings {
		NormalizeListing(ctx, &listings[i], now)
	}

	return listings, nil
}

// NormalizeListing чинит published_at: если значение не разбирается,
// подставляет now в UTC и помечает объявление PublishedAtRecovered.
func NormalizeListing(ctx context.Context, l *models.Listing, now time.Time) {
	if _, err := models.ParsePublishedAt(l.PublishedAt); err == nil {
		return
	}

	log.From(ctx).Warn("published_at_repaired",
		slog.Int64("listing_id", l.ID),
		slog.String("value", l.PublishedAt),
	)

	l.PublishedAt = models.FormatPublishedAt(now)
	l.PublishedAtRecovered = true
}

func validatePage(doc *gabs.Container) error {
	if _, ok := doc.Data().(map[string]interface{}); !ok {
		return &SchemaError{Path: "$", Reason: "expected object"}
	}

	if err := requireFields(doc, "", pageRequired); err != nil {
		return err
	}

	for _, f := range pageCounters {
		if !doc.Exists(f) {
			return &SchemaError{Path: f, Reason: "missing"}
		}
	}

	listings, ok := doc.S("listings").Data().([]interface{})
	if !ok {
		return &SchemaError{Path: "listings", Reason: "expected array"}
	}

	for i := range listings {
		if err := validateListing(doc.S("listings").Index(i), fmt.Sprintf("listings[%d]", i)); err != nil {
			return err
		}
	}

	return nil
}

func validateListing(l *gabs.Container, path string) error {
	if _, ok := l.Data().(map[string]interface{}); !ok {
		return &SchemaError{Path: path, Reason: "expected object"}
	}

	if err := requireFields(l, path, listingRequired); err != nil {
		return err
	}

	nested := []struct {
		key    string
		fields []string
	}{
		{"price", priceRequired},
		{"buyer_price", buyerPriceRequired},
		{"state", stateRequired},
		{"shipping", shippingRequired},
	}
	for _, n := range nested {
		if err := requireObject(l.S(n.key), join(path, n.key), n.fields); err != nil {
			return err
		}
	}

	if rate := l.S("shipping", "us_rate"); rate != nil && rate.Data() != nil {
		if err := requireObject(rate, join(path, "shipping.us_rate"), priceRequired); err != nil {
			return err
		}
	}

	if _, ok := l.S("category_uuids").Data().([]interface{}); !ok {
		return &SchemaError{Path: join(path, "category_uuids"), Reason: "expected array"}
	}

	photos, ok := l.S("photos").Data().([]interface{})
	if !ok {
		return &SchemaError{Path: join(path, "photos"), Reason: "expected array"}
	}
	for i := range photos {
		if err := validatePhoto(l.S("photos").Index(i), fmt.Sprintf("%s[%d]", join(path, "photos"), i)); err != nil {
			return err
		}
	}

	return nil
}

func validatePhoto(p *gabs.Container, path string) error {
	if _, ok := p.Data().(map[string]interface{}); !ok {
		return &SchemaError{Path: path, Reason: "expected object"}
	}

	links := p.S("_links")
	if links == nil || links.Data() == nil {
		return nil
	}

	linksPath := join(path, "_links")
	if err := requireObject(links, linksPath, photoLinksRequired); err != nil {
		return err
	}

	for _, key := range photoLinksRequired {
		if err := requireObject(links.S(key), join(linksPath, key), []string{"href"}); err != nil {
			return err
		}
	}

	return nil
}

// requireObject проверяет, что контейнер — объект с обязательными полями.
func requireObject(c *gabs.Container, path string, fields []string) error {
	if c == nil {
		return &SchemaError{Path: path, Reason: "missing"}
	}
	if _, ok := c.Data().(map[string]interface{}); !ok {
		return &SchemaError{Path: path, Reason: "expected object"}
	}

	return requireFields(c, path, fields)
}

// requireFields проверяет наличие непустых (не null) полей.
func requireFields(c *gabs.Container, path string, fields []string) error {
	for _, f := range fields {
		if !c.Exists(f) {
			return &SchemaError{Path: join(path, f), Reason: "missing"}
		}
		if c.S(f).Data() == nil {
			return &SchemaError{Path: join(path, f), Reason: "null"}
		}
	}

	return nil
}

// typeError превращает ошибку типов encoding/json в *SchemaError.
func typeError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		path := typeErr.Field
		if path == "" {
			path = "$"
		}
		return &SchemaError{Path: path, Reason: fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value)}
	}

	return &SchemaError{Path: "$", Reason: err.Error()}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return strings.Join([]string{path, key}, ".")
}
