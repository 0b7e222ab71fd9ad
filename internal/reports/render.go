//-------------------------------------------------------------------------
//
// sales-etl - Retail Sales Warehouse Pipeline
//
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package reports

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Render writes a result set to w in the requested format: "table"
// (default), "csv", "json", or "md".
func Render(w io.Writer, rs *ResultSet, format string) error {
	switch format {
	case "json":
		return renderJSON(w, rs)
	case "csv":
		return renderCSV(w, rs)
	case "md", "markdown":
		return renderMarkdown(w, rs)
	default:
		return renderTable(w, rs)
	}
}

func renderTable(w io.Writer, rs *ResultSet) error {
	if len(rs.Rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := newWriter(w, rs)
	t.SetStyle(table.StyleLight)
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(rs.Rows))
	return nil
}

func renderMarkdown(w io.Writer, rs *ResultSet) error {
	newWriter(w, rs).RenderMarkdown()
	return nil
}

func newWriter(w io.Writer, rs *ResultSet) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := make(table.Row, len(rs.Columns))
	for i, col := range rs.Columns {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, values := range rs.Rows {
		row := make(table.Row, len(values))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		t.AppendRow(row)
	}
	return t
}

func renderCSV(w io.Writer, rs *ResultSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rs.Columns); err != nil {
		return err
	}
	for _, values := range rs.Rows {
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func renderJSON(w io.Writer, rs *ResultSet) error {
	out := make([]map[string]any, len(rs.Rows))
	for i, values := range rs.Rows {
		row := make(map[string]any, len(rs.Columns))
		for j, col := range rs.Columns {
			row[col] = values[j]
		}
		out[i] = row
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func formatValue(v any) string {
	if v == nil {
		return ""
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}
