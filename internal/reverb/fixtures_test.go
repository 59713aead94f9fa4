package reverb

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// listingFixture — полное валидное объявление в виде JSON-объекта.
func listingFixture(id int64, publishedAt string) map[string]any {
	price := map[string]any{
		"amount":       "1299.00",
		"amount_cents": 129900,
		"currency":     "USD",
		"symbol":       "$",
		"display":      "$1,299",
	}
	link := func(href string) map[string]any { return map[string]any{"href": href} }

	return map[string]any{
		"id":               id,
		"make":             "Fender",
		"model":            "Stratocaster",
		"finish":           "Sunburst",
		"year":             "1998",
		"title":            "Fender Stratocaster 1998",
		"created_at":       "2023-04-01T10:00:00-06:00",
		"shop_name":        "Guitar Shop",
		"description":      "Plays great",
		"condition":        "Very Good",
		"condition_uuid":   "ae4d9114-1bd7-4ec5-a4ba-6653af5ac84d",
		"condition_slug":   "very-good",
		"price":            price,
		"inventory":        1,
		"has_inventory":    true,
		"offers_enabled":   true,
		"auction":          false,
		"category_uuids":   []string{"dfd39027-d134-4353-b9e4-57dc6be791b9"},
		"listing_currency": "USD",
		"published_at":     publishedAt,
		"buyer_price":      map[string]any{
			"amount":            "1299.00",
			"amount_cents":      129900,
			"currency":          "USD",
			"symbol":            "$",
			"display":           "$1,299",
			"tax_included_hint": "Tax not included",
			"tax_included":      false,
			"tax_included_rate": 0,
		},
		"sku":      nil,
		"state":    map[string]any{"slug": "live", "description": "Live"},
		"shipping": map[string]any{
			"local":   true,
			"us":      true,
			"us_rate": price,
		},
		"slug":   "fender-stratocaster-1998",
		"photos": []any{
			map[string]any{"_links": map[string]any{
				"large_crop": link("https://img.example/l.jpg"),
				"small_crop": link("https://img.example/s.jpg"),
				"full":       link("https://img.example/f.jpg"),
				"thumbnail":  link("https://img.example/t.jpg"),
			}},
			map[string]any{},
		},
	}
}

// pageFixture — страница выдачи с указанными объявлениями.
func pageFixture(totalPages any, listings ...map[string]any) map[string]any {
	items := make([]any, 0, len(listings))
	for _, l := range listings {
		items = append(items, l)
	}

	return map[string]any{
		"name":         "Electric Guitars",
		"description":  "Electric guitars for sale",
		"total":        len(listings),
		"current_page": 1,
		"total_pages":  totalPages,
		"listings":     items,
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
