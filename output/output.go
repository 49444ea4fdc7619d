// Package output renders raw API documents.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Format int

const (
	Auto Format = iota
	JSON
	YAML
	Table
)

func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "auto":
		return Auto, nil
	case "json":
		return JSON, nil
	case "yaml":
		return YAML, nil
	case "table":
		return Table, nil
	default:
		return 0, fmt.Errorf("unknown output format %q, expected auto|json|yaml|table", s)
	}
}

// Render writes doc to w in the requested format. Auto renders JSON; the
// table form is a best-effort flat view of objects and object lists.
func Render(w io.Writer, doc interface{}, f Format) error {
	switch f {
	case YAML:
		content, err := yaml.Marshal(doc)
		if err != nil {
			return errors.Wrap(err, "failed to render yaml")
		}
		_, err = w.Write(content)
		return err
	case Table:
		return renderTable(w, doc)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(doc), "failed to render json")
	}
}

func renderTable(w io.Writer, doc interface{}) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	switch d := doc.(type) {
	case map[string]interface{}:
		for _, key := range sortedKeys(d) {
			fmt.Fprintf(tw, "%s\t%s\n", key, cell(d[key]))
		}
	case []interface{}:
		rows := make([]map[string]interface{}, 0, len(d))
		for _, item := range d {
			if m, ok := item.(map[string]interface{}); ok {
				rows = append(rows, m)
			}
		}
		if len(rows) == 0 {
			fmt.Fprintf(tw, "%s\n", cell(doc))
			break
		}
		cols := columnSet(rows)
		for i, col := range cols {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, col)
		}
		fmt.Fprintln(tw)
		for _, row := range rows {
			for i, col := range cols {
				if i > 0 {
					fmt.Fprint(tw, "\t")
				}
				fmt.Fprint(tw, cell(row[col]))
			}
			fmt.Fprintln(tw)
		}
	default:
		fmt.Fprintf(tw, "%s\n", cell(doc))
	}
	return tw.Flush()
}

// cell renders scalars plainly and compacts anything structured to JSON so
// rows stay on one line.
func cell(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case bool:
		return fmt.Sprintf("%t", c)
	case float64:
		return trimFloat(c)
	default:
		compact, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(compact)
	}
}

func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// columnSet is the sorted union of keys across rows.
func columnSet(rows []map[string]interface{}) []string {
	seen := map[string]bool{}
	for _, row := range rows {
		for k := range row {
			seen[k] = true
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}
