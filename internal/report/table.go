// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderTable writes the year and category counts as console tables.
func RenderTable(s Summary, w io.Writer) {
	years := table.NewWriter()
	years.SetOutputMirror(w)
	years.SetStyle(table.StyleLight)
	years.SetTitle("Papers by year")
	years.AppendHeader(table.Row{"Year", "Papers"})
	for _, y := range s.Years {
		years.AppendRow(table.Row{y.Label, y.N})
	}
	years.AppendFooter(table.Row{"Total", s.Total})
	years.Render()

	if len(s.TopCategories) == 0 {
		return
	}
	cats := table.NewWriter()
	cats.SetOutputMirror(w)
	cats.SetStyle(table.StyleLight)
	cats.SetTitle("Top categories")
	cats.AppendHeader(table.Row{"#", "Category", "Papers"})
	for i, c := range s.TopCategories {
		cats.AppendRow(table.Row{i + 1, c.Label, c.N})
	}
	cats.Render()
}
