package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/whenq/whenq/internal/tui"
)

// Renderer produces human-readable styled output.
type Renderer struct {
	w      io.Writer
	styles *tui.Styles
}

func newRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w, styles: tui.NewStylesWithTheme(tui.ResolveTheme())}
}

func (w *Writer) writeStyled(v any) error {
	r := newRenderer(w.opts.Writer)
	switch resp := v.(type) {
	case *Response:
		return r.renderResponse(resp)
	case *ErrorResponse:
		return r.renderError(resp)
	}
	return w.writeJSON(v)
}

func (r *Renderer) renderResponse(resp *Response) error {
	var b strings.Builder
	r.renderData(&b, resp.Data)
	if resp.Summary != "" {
		b.WriteString(r.styles.Muted.Render(resp.Summary) + "\n")
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *Renderer) renderError(resp *ErrorResponse) error {
	var b strings.Builder
	b.WriteString(r.styles.Error.Render("error: "+resp.Error) + "\n")
	if resp.Hint != "" {
		b.WriteString(r.styles.Muted.Render(resp.Hint) + "\n")
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *Renderer) renderData(b *strings.Builder, data any) {
	if data == nil {
		return
	}

	// Normalize through JSON so any struct renders the same way.
	raw, err := json.Marshal(data)
	if err != nil {
		fmt.Fprintf(b, "%v\n", data)
		return
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		fmt.Fprintf(b, "%v\n", data)
		return
	}

	switch v := generic.(type) {
	case []any:
		rows := toMapSlice(v)
		if rows != nil {
			r.renderTable(b, rows)
			return
		}
		for _, item := range v {
			b.WriteString(formatCell("", item) + "\n")
		}
	case map[string]any:
		r.renderObject(b, v)
	default:
		b.WriteString(formatCell("", v) + "\n")
	}
}

// toMapSlice converts a slice of objects, or nil if any element is not one.
func toMapSlice(slice []any) []map[string]any {
	rows := make([]map[string]any, 0, len(slice))
	for _, item := range slice {
		m, ok := item.(map[string]any)
		if !ok {
			return nil
		}
		rows = append(rows, m)
	}
	return rows
}

// preferredColumns fixes the display order for well-known keys; anything else
// follows alphabetically.
var preferredColumns = []string{"natural", "precise", "date", "phrase", "resolved", "key", "value", "source"}

func detectColumns(rows []map[string]any) []string {
	seen := map[string]bool{}
	for _, row := range rows {
		for k := range row {
			seen[k] = true
		}
	}

	var cols []string
	for _, k := range preferredColumns {
		if seen[k] {
			cols = append(cols, k)
			delete(seen, k)
		}
	}
	rest := make([]string, 0, len(seen))
	for k := range seen {
		rest = append(rest, k)
	}
	sort.Strings(rest)
	return append(cols, rest...)
}

func (r *Renderer) renderTable(b *strings.Builder, rows []map[string]any) {
	cols := detectColumns(rows)
	if len(cols) == 0 {
		return
	}

	widths := make([]int, len(cols))
	cells := make([][]string, len(rows))
	for i, col := range cols {
		widths[i] = len(formatHeader(col))
	}
	for ri, row := range rows {
		cells[ri] = make([]string, len(cols))
		for ci, col := range cols {
			cell := formatCell(col, row[col])
			cells[ri][ci] = cell
			if len(cell) > widths[ci] {
				widths[ci] = len(cell)
			}
		}
	}

	var header strings.Builder
	for ci, col := range cols {
		header.WriteString(pad(formatHeader(col), widths[ci]))
		if ci < len(cols)-1 {
			header.WriteString("  ")
		}
	}
	b.WriteString(r.styles.Bold.Render(header.String()) + "\n")

	for _, row := range cells {
		for ci, cell := range row {
			b.WriteString(pad(cell, widths[ci]))
			if ci < len(row)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}
}

func (r *Renderer) renderObject(b *strings.Builder, obj map[string]any) {
	keys := detectColumns([]map[string]any{obj})
	width := 0
	for _, k := range keys {
		if len(k) > width {
			width = len(k)
		}
	}
	for _, k := range keys {
		label := r.styles.Muted.Render(pad(formatHeader(k), width+1))
		b.WriteString(label + " " + formatCell(k, obj[k]) + "\n")
	}
}

func formatHeader(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, "_", " "))
}

func formatCell(key string, val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t.Format("Mon, Jan 2 2006 3:04 pm")
		}
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(raw)
	}
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
