// models содержит доменные структуры reverb-scraper: объявления маркетплейса,
// страницы выдачи и сущности хранилища инструментов.
package models

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// PublishedAtLayout — формат published_at в выдаче Reverb и в дампах.
const PublishedAtLayout = "2006-01-02T15:04:05-0700"

// publishedAtRe — "%Y-%m-%dT%H:%M:%S%z" с правилами strptime: месяц, день, часы,
// минуты и секунды могут быть однозначными (день — и с ведущим пробелом),
// смещение — Z, ±hhmm, ±hh:mm, с необязательными секундами. Пробелы по краям не допускаются.
var publishedAtRe = regexp.MustCompile(
	`^(\d{4})-(1[0-2]|0[1-9]|[1-9])-(3[01]|[12]\d|0[1-9]|[1-9]| [1-9])[Tt]` +
		`(2[0-3]|[01]\d|\d):([0-5]\d|\d):(6[01]|[0-5]\d|\d)` +
		`(Z|[+-]\d\d:?[0-5]\d(?::?[0-5]\d)?)$`,
)

// Listing — одно объявление о продаже инструмента.
// Finish и SKU могут отсутствовать и сериализуются как null.
type Listing struct {
	ID              int64      `json:"id"`
	Make            string     `json:"make"`
	Model           string     `json:"model"`
	Finish          *string    `json:"finish"`
	Year            string     `json:"year"`
	Title           string     `json:"title"`
	CreatedAt       string     `json:"created_at"`
	ShopName        string     `json:"shop_name"`
	Description     string     `json:"description"`
	Condition       string     `json:"condition"`
	ConditionUUID   string     `json:"condition_uuid"`
	ConditionSlug   string     `json:"condition_slug"`
	Price           Price      `json:"price"`
	Inventory       int64      `json:"inventory"`
	HasInventory    bool       `json:"has_inventory"`
	OffersEnabled   bool       `json:"offers_enabled"`
	Auction         bool       `json:"auction"`
	CategoryUUIDs   []string   `json:"category_uuids"`
	ListingCurrency string     `json:"listing_currency"`
	PublishedAt     string     `json:"published_at"`
	BuyerPrice      BuyerPrice `json:"buyer_price"`
	SKU             *string    `json:"sku"`
	State           State      `json:"state"`
	Shipping        Shipping   `json:"shipping"`
	Slug            string     `json:"slug"`
	Photos          []Photo    `json:"photos"`

	// PublishedAtRecovered выставляется, если исходное значение published_at
	// не разобралось и было заменено текущим временем. В дамп не попадает.
	PublishedAtRecovered bool `json:"-"`
}

// Price — цена в валюте объявления.
type Price struct {
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Symbol      string `json:"symbol"`
	Display     string `json:"display"`
}

// BuyerPrice — цена для покупателя с признаками налога.
type BuyerPrice struct {
	Amount          string  `json:"amount"`
	AmountCents     int64   `json:"amount_cents"`
	Currency        string  `json:"currency"`
	Symbol          string  `json:"symbol"`
	Display         string  `json:"display"`
	TaxIncludedHint string  `json:"tax_included_hint"`
	TaxIncluded     bool    `json:"tax_included"`
	TaxIncludedRate float64 `json:"tax_included_rate"`
}

// State — состояние объявления (live, sold, ...).
type State struct {
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Shipping — параметры доставки.
type Shipping struct {
	Local  bool   `json:"local"`
	US     bool   `json:"us"`
	USRate *Price `json:"us_rate,omitempty"`
}

// Photo — фотография объявления.
type Photo struct {
	Links *PhotoLinks `json:"_links,omitempty"`
}

// PhotoLinks — ссылки на варианты фотографии.
type PhotoLinks struct {
	LargeCrop Link `json:"large_crop"`
	SmallCrop Link `json:"small_crop"`
	Full      Link `json:"full"`
	Thumbnail Link `json:"thumbnail"`
}

// Link — гиперссылка.
type Link struct {
	Href string `json:"href"`
}

// ResultsPage — страница выдачи категории.
type ResultsPage struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Total       int64      `json:"total"`
	CurrentPage PageNumber `json:"current_page"`
	TotalPages  PageNumber `json:"total_pages"`
	Listings    []Listing  `json:"listings"`
}

// PageNumber — номер/количество страниц. Всегда > 0: любое значение,
// не являющееся положительным целым, при декодировании заменяется на 1.
// Значения больше math.MaxInt ограничиваются math.MaxInt.
type PageNumber int

// UnmarshalJSON не возвращает ошибок: некорректные значения приводятся к 1.
func (p *PageNumber) UnmarshalJSON(data []byte) error {
	*p = 1

	v, err := strconv.ParseInt(string(bytes.TrimSpace(data)), 10, 64)
	switch {
	case errors.Is(err, strconv.ErrRange) && v > 0:
		*p = PageNumber(math.MaxInt)
	case err != nil || v <= 0:
		// остаётся 1
	case uint64(v) > uint64(math.MaxInt):
		*p = PageNumber(math.MaxInt)
	default:
		*p = PageNumber(v)
	}

	return nil
}

// Int возвращает значение как int.
func (p PageNumber) Int() int {
	return int(p)
}

// ParsePublishedAt разбирает published_at в формате "%Y-%m-%dT%H:%M:%S%z"
// так же, как strptime: однозначные поля допустимы, дробные секунды и
// пробелы вокруг значения — нет, дата должна существовать в календаре.
func ParsePublishedAt(value string) (time.Time, error) {
	m := publishedAtRe.FindStringSubmatch(value)
	if m == nil {
		return time.Time{}, fmt.Errorf("parse published_at %q: does not match %%Y-%%m-%%dT%%H:%%M:%%S%%z", value)
	}

	fields := make([]int, 6)
	for i := range fields {
		fields[i], _ = strconv.Atoi(strings.TrimSpace(m[i+1]))
	}
	year, month, day, hour, minute, second := fields[0], time.Month(fields[1]), fields[2], fields[3], fields[4], fields[5]

	offset, err := parseOffset(m[7])
	if err != nil {
		return time.Time{}, fmt.Errorf("parse published_at %q: %w", value, err)
	}

	t := time.Date(year, month, day, hour, minute, second, 0, time.FixedZone("", offset))
	if year < 1 || t.Year() != year || t.Month() != month || t.Day() != day || t.Second() != second {
		return time.Time{}, fmt.Errorf("parse published_at %q: date or time out of range", value)
	}

	return t, nil
}

// parseOffset переводит смещение %z в секунды.
// Двоеточия используются либо везде, либо нигде; |смещение| < 24h.
func parseOffset(z string) (int, error) {
	if z == "Z" {
		return 0, nil
	}

	sign := 1
	if z[0] == '-' {
		sign = -1
	}

	digits := z[1:]
	if digits[2] == ':' {
		digits = strings.Replace(digits, ":", "", 2)
		if len(z) > 6 && z[6] != ':' {
			return 0, errors.New("inconsistent use of ':' in offset")
		}
	} else if strings.Contains(digits, ":") {
		return 0, errors.New("inconsistent use of ':' in offset")
	}

	hours, _ := strconv.Atoi(digits[0:2])
	minutes, _ := strconv.Atoi(digits[2:4])
	seconds := 0
	if len(digits) == 6 {
		seconds, _ = strconv.Atoi(digits[4:6])
	}

	offset := hours*3600 + minutes*60 + seconds
	if offset >= 24*3600 {
		return 0, errors.New("offset must be strictly between -24h and 24h")
	}

	return sign * offset, nil
}

// FormatPublishedAt форматирует момент времени в UTC в формате published_at.
func FormatPublishedAt(t time.Time) string {
	return t.UTC().Format(PublishedAtLayout)
}
