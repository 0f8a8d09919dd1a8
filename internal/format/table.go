package format

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

var header = color.New(color.Bold, color.Underline)

// WriteTable renders v as aligned columns. A list of objects becomes one row
// per object with the union of keys as columns; an object becomes key/value
// rows; nested values are shown as compact JSON-like text.
func WriteTable(w io.Writer, v any) error {
	x, err := generic(v)
	if err != nil {
		return err
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60

	switch t := x.(type) {
	case []any:
		cols := columns(t)
		if len(cols) == 0 {
			for _, it := range t {
				tbl.AddRow(cell(it))
			}
			break
		}
		row := make([]any, len(cols))
		for i, c := range cols {
			row[i] = header.Sprint(strings.ToUpper(c))
		}
		tbl.AddRow(row...)
		for _, it := range t {
			m, _ := it.(map[string]any)
			row := make([]any, len(cols))
			for i, c := range cols {
				row[i] = cell(m[c])
			}
			tbl.AddRow(row...)
		}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			tbl.AddRow(header.Sprint(k), cell(t[k]))
		}
	default:
		tbl.AddRow(cell(t))
	}
	_, err = fmt.Fprintln(w, tbl)
	return err
}

// columns returns the sorted union of keys over a list of objects.
func columns(xs []any) []string {
	seen := map[string]bool{}
	var out []string
	for _, it := range xs {
		m, ok := it.(map[string]any)
		if !ok {
			return nil
		}
		for k := range m {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	sort.Strings(out)
	return out
}

func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return "-"
	case string:
		if t == "" {
			return "-"
		}
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := make([]string, len(t))
		for i, it := range t {
			parts[i] = cell(it)
		}
		return "[" + strings.Join(parts, " ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + "=" + cell(t[k])
		}
		return "{" + strings.Join(parts, " ") + "}"
	}
	return fmt.Sprint(v)
}
