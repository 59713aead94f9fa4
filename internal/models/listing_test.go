package models

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestPageNumber_UnmarshalJSON_Table — любое значение, кроме положительного целого, приводится к 1.
func TestPageNumber_UnmarshalJSON_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "positive", raw: `7`, want: 7},
		{name: "one", raw: `1`, want: 1},
		{name: "zero", raw: `0`, want: 1},
		{name: "negative", raw: `-3`, want: 1},
		{name: "float", raw: `2.5`, want: 1},
		{name: "string_number", raw: `"5"`, want: 1},
		{name: "string", raw: `"abc"`, want: 1},
		{name: "null", raw: `null`, want: 1},
		{name: "bool", raw: `true`, want: 1},
		{name: "above_int32", raw: `3000000000`, want: 3000000000},
		{name: "above_int64", raw: `99999999999999999999`, want: math.MaxInt},
		{name: "below_int64", raw: `-99999999999999999999`, want: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var p PageNumber
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &p))
			require.Equal(t, tt.want, p.Int())
			require.Positive(t, p.Int())
		})
	}
}

// TestResultsPage_CoercesCounters — счётчики страниц в составе ResultsPage.
func TestResultsPage_CoercesCounters(t *testing.T) {
	t.Parallel()

	var page ResultsPage
	err := json.Unmarshal([]byte(`{"name":"n","description":"d","total":3,"current_page":"x","total_pages":-1,"listings":[]}`), &page)
	require.NoError(t, err)
	require.Equal(t, 1, page.CurrentPage.Int())
	require.Equal(t, 1, page.TotalPages.Int())
	require.EqualValues(t, 3, page.Total)
}

// TestParsePublishedAt_Table — поддерживаемые и отклоняемые форматы.
func TestParsePublishedAt_Table(t *testing.T) {
	t.Parallel()

	want := time.Date(2023, 5, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "hhmm_offset", value: "2023-05-01T06:30:00-0600"},
		{name: "colon_offset", value: "2023-05-01T06:30:00-06:00"},
		{name: "zulu", value: "2023-05-01T12:30:00Z"},
		{name: "zero_offset", value: "2023-05-01T12:30:00+0000"},
		{name: "offset_seconds", value: "2023-05-01T06:29:30-06:00:30"},
		{name: "lowercase_t", value: "2023-05-01t12:30:00Z"},
		{name: "one_digit_fields", value: "2023-5-1T6:30:0-0600"},
		{name: "space_padded_day", value: "2023-05- 1T12:30:00+0000"},
		{name: "fractional_seconds", value: "2023-05-01T12:30:00.123+0000", wantErr: true},
		{name: "leading_space", value: " 2023-05-01T12:30:00+0000", wantErr: true},
		{name: "trailing_space", value: "2023-05-01T12:30:00+0000 ", wantErr: true},
		{name: "trailing_newline", value: "2023-05-01T12:30:00+0000\n", wantErr: true},
		{name: "lowercase_zulu", value: "2023-05-01T12:30:00z", wantErr: true},
		{name: "inconsistent_colons", value: "2023-05-01T12:30:00+06:0000", wantErr: true},
		{name: "offset_24h", value: "2023-05-01T12:30:00+2400", wantErr: true},
		{name: "february_30", value: "2023-02-30T12:30:00+0000", wantErr: true},
		{name: "leap_second", value: "2023-05-01T12:30:60+0000", wantErr: true},
		{name: "year_zero", value: "0000-05-01T12:30:00+0000", wantErr: true},
		{name: "three_digit_day", value: "2023-05-001T12:30:00+0000", wantErr: true},
		{name: "no_offset", value: "2023-05-01T12:30:00", wantErr: true},
		{name: "date_only", value: "2023-05-01", wantErr: true},
		{name: "garbage", value: "yesterday", wantErr: true},
		{name: "empty", value: "", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParsePublishedAt(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.True(t, want.Equal(got), "got %s", got)
		})
	}
}

// TestFormatPublishedAt_RoundTrip — форматирование в UTC разбирается обратно.
func TestFormatPublishedAt_RoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Now().Truncate(time.Second)
	s := FormatPublishedAt(now)
	require.Contains(t, s, "+0000")

	got, err := ParsePublishedAt(s)
	require.NoError(t, err)
	require.True(t, now.Equal(got))
}

// TestListing_OptionalFieldsSerializeAsNull — finish и sku без значения пишутся как null.
func TestListing_OptionalFieldsSerializeAsNull(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(Listing{ID: 1, PublishedAtRecovered: true})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))

	require.Contains(t, m, "finish")
	require.Nil(t, m["finish"])
	require.Contains(t, m, "sku")
	require.Nil(t, m["sku"])
	require.NotContains(t, m, "PublishedAtRecovered")
}
