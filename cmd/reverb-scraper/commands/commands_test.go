package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pribylovaa/reverb-scraper/internal/models"
	"github.com/pribylovaa/reverb-scraper/internal/service"
	"github.com/stretchr/testify/require"
)

// TestNewLogger — формат и уровень логов зависят от окружения.
func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newLogger(&buf, envProd).Debug("hidden")
	newLogger(&buf, envProd).Info("scrape_start", "category", "electric_guitars")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "scrape_start", rec["msg"])
	require.Equal(t, "electric_guitars", rec["category"])

	buf.Reset()
	newLogger(&buf, envLocal).Debug("page_fetched", "page", 1)
	require.Contains(t, buf.String(), "msg=page_fetched")
	require.Contains(t, buf.String(), "page=1")

	buf.Reset()
	newLogger(&buf, envDev).Debug("page_fetched")
	require.True(t, json.Valid(buf.Bytes()))
}

// TestRenderInstruments — таблица содержит строки инструментов и итог.
func TestRenderInstruments(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderInstruments(&buf, []models.Instrument{
		{ID: 1, Type: "guitar", Make: "Fender", Model: "Telecaster", DateCreated: time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)},
		{ID: 2, Type: "bass", Make: "Fender", Model: "Precision", DateCreated: time.Date(2023, 5, 2, 8, 30, 0, 0, time.UTC)},
	})

	out := buf.String()
	require.Contains(t, out, "Telecaster")
	require.Contains(t, out, "Precision")
	require.Contains(t, out, "2023-05-02 08:30")
	require.Contains(t, strings.ToUpper(out), "TOTAL")
}

func TestRenderResults(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderResults(&buf, []service.RunResult{
		{Category: "electric_guitars", Listings: 80, Path: "dumps/reverb_electric_guitars.json"},
	})

	require.Contains(t, buf.String(), "electric_guitars")
	require.Contains(t, buf.String(), "dumps/reverb_electric_guitars.json")
}
