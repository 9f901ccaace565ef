package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	prettytable "github.com/jedib0t/go-pretty/v6/table"

	"github.com/tabledb-io/tabledb/pkg/table"
)

func renderResult(w io.Writer, tbl *table.Table, format string) error {
	switch format {
	case "json":
		return renderJSON(w, tbl)
	case "csv":
		return renderCSV(w, tbl)
	case "md", "markdown":
		return renderGrid(w, tbl, prettytable.StyleDefault, true)
	default:
		return renderGrid(w, tbl, prettytable.StyleLight, false)
	}
}

func renderGrid(w io.Writer, tbl *table.Table, style prettytable.Style, markdown bool) error {
	if tbl.Len() == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := prettytable.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(style)

	headerRow := make(prettytable.Row, tbl.Width())
	for i, col := range tbl.Header() {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, row := range tbl.Rows() {
		out := make(prettytable.Row, len(row))
		for i, v := range row {
			out[i] = formatValue(v)
		}
		t.AppendRow(out)
	}

	if markdown {
		t.RenderMarkdown()
	} else {
		t.Render()
		_, _ = fmt.Fprintf(w, "(%d rows)\n", tbl.Len())
	}
	return nil
}

func renderJSON(w io.Writer, tbl *table.Table) error {
	records := make([]map[string]any, 0, tbl.Len())
	for _, row := range tbl.Rows() {
		rec := make(map[string]any, tbl.Width())
		for i, col := range tbl.Header() {
			v := row[i]
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			rec[col] = v
		}
		records = append(records, rec)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func renderCSV(w io.Writer, tbl *table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(tbl.Header()); err != nil {
		return err
	}
	for _, row := range tbl.Rows() {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = formatValue(v)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatValue(v table.Value) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
