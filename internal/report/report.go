// Package report renders views and listings for the terminal
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	perr "oilwatch/internal/platform/errors"
	"oilwatch/internal/services/api/trends/domain"
)

// Output formats
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
)

// ParseFormat accepts table or yaml; empty means table
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatYAML:
		return FormatYAML, nil
	}
	return "", perr.WithField(perr.InvalidArgf("unknown format %q", s), "format")
}

// View writes a view's display table under its title, plus any notes
func View(w io.Writer, format string, v *domain.View) error {
	if format == FormatYAML {
		return YAML(w, yamlView{Title: v.Title, Notes: v.Notes, Columns: v.Table.Columns, Rows: v.Table.Rows})
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", v.Title); err != nil {
		return err
	}
	if err := Table(w, v.Table); err != nil {
		return err
	}
	for _, n := range v.Notes {
		if _, err := fmt.Fprintf(w, "warning: %s\n", n); err != nil {
			return err
		}
	}
	return nil
}

type yamlView struct {
	Title   string   `yaml:"title"`
	Notes   []string `yaml:"warnings,omitempty"`
	Columns []string `yaml:"columns"`
	Rows    [][]any  `yaml:"rows"`
}

// YAML writes v as a yaml document
func YAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnknown, "encode yaml")
	}
	return enc.Close()
}

// Table writes t as a pipe table padded by display width. Numbers are right aligned
func Table(w io.Writer, t domain.Table) error {
	cells := make([][]string, 0, len(t.Rows)+1)
	cells = append(cells, t.Columns)
	for _, row := range t.Rows {
		line := make([]string, len(t.Columns))
		for i := range line {
			if i < len(row) {
				line[i] = Cell(row[i])
			}
		}
		cells = append(cells, line)
	}

	widths := make([]int, len(t.Columns))
	for _, line := range cells {
		for i, c := range line {
			if n := runewidth.StringWidth(c); n > widths[i] {
				widths[i] = n
			}
		}
	}
	numeric := make([]bool, len(t.Columns))
	if len(t.Rows) > 0 {
		for i := range numeric {
			numeric[i] = isNumber(t.Rows[0], i)
		}
	}

	var sb strings.Builder
	for r, line := range cells {
		sb.WriteString("|")
		for i, c := range line {
			pad := strings.Repeat(" ", widths[i]-runewidth.StringWidth(c))
			sb.WriteString(" ")
			if numeric[i] && r > 0 {
				sb.WriteString(pad + c)
			} else {
				sb.WriteString(c + pad)
			}
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
		if r == 0 {
			sb.WriteString("|")
			for i := range line {
				sb.WriteString(" " + strings.Repeat("-", widths[i]) + " |")
			}
			sb.WriteString("\n")
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Cell renders one table value; proportions keep six decimals
func Cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', 6, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	}
	return fmt.Sprint(v)
}

func isNumber(row []any, i int) bool {
	if i >= len(row) {
		return false
	}
	switch row[i].(type) {
	case int, int64, float64:
		return true
	}
	return false
}

// Dictionaries lists dictionaries, or one dictionary's terms when only one is given
func Dictionaries(w io.Writer, format string, dicts []domain.DictionaryOut) error {
	if format == FormatYAML {
		return YAML(w, dicts)
	}
	if len(dicts) == 1 {
		d := dicts[0]
		t := domain.Table{Columns: []string{"pattern", "color"}}
		for _, term := range d.Terms {
			t.Rows = append(t.Rows, []any{term.Pattern, term.Color})
		}
		if _, err := fmt.Fprintf(w, "%s (%s)\n\n", d.Label, d.Key); err != nil {
			return err
		}
		return Table(w, t)
	}
	t := domain.Table{Columns: []string{"key", "label", "terms", "color"}}
	for _, d := range dicts {
		t.Rows = append(t.Rows, []any{d.Key, d.Label, len(d.Terms), d.Color})
	}
	return Table(w, t)
}
