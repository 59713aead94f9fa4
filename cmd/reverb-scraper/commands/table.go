package commands

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pribylovaa/reverb-scraper/internal/models"
	"github.com/pribylovaa/reverb-scraper/internal/service"
)

const dateLayout = "2006-01-02 15:04"

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func renderInstruments(w io.Writer, list []models.Instrument) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Type", "Make", "Model", "Added"})
	for _, inst := range list {
		t.AppendRow(table.Row{inst.ID, inst.Type, inst.Make, inst.Model, inst.DateCreated.UTC().Format(dateLayout)})
	}
	t.AppendFooter(table.Row{"", "", "", "Total", strconv.Itoa(len(list))})
	t.Render()
}

func renderResults(w io.Writer, results []service.RunResult) {
	t := newTable(w)
	t.AppendHeader(table.Row{"Category", "Listings", "Dump", "Object"})
	for _, r := range results {
		t.AppendRow(table.Row{r.Category, r.Listings, r.Path, r.ObjectKey})
	}
	t.Render()
}
