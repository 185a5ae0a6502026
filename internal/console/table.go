// TableMatch - Knowledge-Based Restaurant Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tablematch

package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/tomtom215/tablematch/internal/recommend"
)

// NoResultsMessage is printed instead of an empty table.
const NoResultsMessage = "No restaurants found with the given preferences. Please try different filters."

// minColumnWidth keeps the separator row valid Markdown ("---").
const minColumnWidth = 3

var header = []string{"#", "Name", "Cuisine", "Cost for two", "Price", "Rating", "Votes", "Country", "City", "Score"}

// RenderTable writes results as an aligned Markdown table, or NoResultsMessage
// when there are none.
func RenderTable(w io.Writer, results []recommend.Recommendation) error {
	if len(results) == 0 {
		_, err := fmt.Fprintln(w, NoResultsMessage)
		return err
	}

	rows := make([][]string, 0, len(results)+1)
	rows = append(rows, header)
	for i := range results {
		rows = append(rows, row(&results[i]))
	}

	widths := columnWidths(rows)
	var sb strings.Builder
	writeRow(&sb, rows[0], widths)
	writeSeparator(&sb, widths)
	for _, r := range rows[1:] {
		writeRow(&sb, r, widths)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func row(r *recommend.Recommendation) []string {
	return []string{
		strconv.Itoa(r.Rank),
		r.Name,
		r.Cuisine,
		strconv.FormatFloat(r.CostForTwo, 'f', 0, 64),
		string(r.PriceRange),
		strconv.FormatFloat(r.Rating, 'f', 1, 64),
		strconv.Itoa(r.Votes),
		r.CountryName,
		r.Location,
		strconv.FormatFloat(r.Score, 'f', 3, 64),
	}
}

func columnWidths(rows [][]string) []int {
	widths := make([]int, len(header))
	for i := range widths {
		widths[i] = minColumnWidth
	}
	for _, r := range rows {
		for i, cell := range r {
			if w := runewidth.StringWidth(escape(cell)); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func writeRow(sb *strings.Builder, cells []string, widths []int) {
	sb.WriteString("|")
	for i, cell := range cells {
		cell = escape(cell)
		sb.WriteString(" ")
		sb.WriteString(cell)
		if pad := widths[i] - runewidth.StringWidth(cell); pad > 0 {
			sb.WriteString(strings.Repeat(" ", pad))
		}
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
}

func writeSeparator(sb *strings.Builder, widths []int) {
	sb.WriteString("|")
	for _, w := range widths {
		sb.WriteString(" ")
		sb.WriteString(strings.Repeat("-", w))
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
}

// escape keeps a cell on one line and from splitting into extra columns.
func escape(cell string) string {
	cell = strings.ReplaceAll(cell, "|", `\|`)
	return strings.Join(strings.Fields(cell), " ")
}
