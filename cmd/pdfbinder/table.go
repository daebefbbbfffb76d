package main

import (
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

// useRichTable reports whether w is a terminal that can show box drawing.
func useRichTable(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// renderTable lays out rows under headers. Columns numbered in rightAligned
// (1-based) are right-aligned; headers stay left-aligned.
func renderTable(headers []string, rows [][]string, rightAligned []int, rich bool) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleDefault)
	if rich {
		tw.SetStyle(table.StyleRounded)
	}

	tw.AppendHeader(tableRow(headers))
	for _, r := range rows {
		tw.AppendRow(tableRow(r))
	}

	configs := make([]table.ColumnConfig, 0, len(rightAligned))
	for _, n := range rightAligned {
		configs = append(configs, table.ColumnConfig{Number: n, Align: text.AlignRight, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

func tableRow(cells []string) table.Row {
	r := make(table.Row, len(cells))
	for i, c := range cells {
		r[i] = c
	}
	return r
}
