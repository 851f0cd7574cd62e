package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"fiji-news/internal/domain/entity"
)

const (
	maxTitleWidth  = 60
	maxSourceWidth = 18
	columnGap      = "  "
)

// writeTable prints rows in left-aligned columns sized by display width, so
// wide characters in titles keep the columns straight.
func writeTable(w io.Writer, headers []string, rows [][]string) error {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if cw := runewidth.StringWidth(row[i]); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	line := func(cells []string) string {
		var sb strings.Builder
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i == len(widths)-1 {
				sb.WriteString(cell)
				break
			}
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
			sb.WriteString(columnGap)
		}
		return strings.TrimRight(sb.String(), " ")
	}

	if _, err := fmt.Fprintln(w, line(headers)); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, line(row)); err != nil {
			return err
		}
	}
	return nil
}

// headlineRows lists every article in canonical category order with long
// titles and source names truncated to fit a terminal.
func headlineRows(b entity.CategorizedBundle) [][]string {
	rows := make([][]string, 0, b.Total())
	for _, a := range b.All() {
		date := ""
		if !a.PublishedDate.IsZero() {
			date = a.PublishedDate.String()
		}
		rows = append(rows, []string{
			string(a.Category),
			date,
			runewidth.Truncate(a.Source, maxSourceWidth, "…"),
			runewidth.Truncate(a.Title, maxTitleWidth, "…"),
		})
	}
	return rows
}
