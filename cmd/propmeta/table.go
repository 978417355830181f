package main

import (
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"propmeta/internal/export"
	"propmeta/internal/view"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// renderTable uses the rounded style on terminals and plain ASCII otherwise
// so piped output stays greppable.
func renderTable(w io.Writer, headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	if isTerminal(w) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// flattenRows lists every leaf of doc as a dotted key path and its value.
func flattenRows(doc *view.View) [][]string {
	var rows [][]string
	var walk func(prefix []string, v *view.View)
	walk = func(prefix []string, v *view.View) {
		for i, key := range v.Keys() {
			value, _ := v.ValueAt(i)
			path := append(append([]string(nil), prefix...), key)
			switch value.Kind() {
			case view.KindView:
				sub, _ := value.View()
				walk(path, sub)
			case view.KindBlob:
				r, _ := value.Blob()
				label, _ := export.BlobLabel(path, r)
				rows = append(rows, []string{strings.Join(path, "."), "blob", label})
			default:
				s, _ := value.Text()
				rows = append(rows, []string{strings.Join(path, "."), "string", s})
			}
		}
	}
	walk(nil, doc)
	return rows
}
