// Package termfreq counts term-pattern matches in normalized article text.
//
// Counts are non-overlapping, leftmost-first regex matches, the same semantics
// as counting with an alternation over the whole dictionary. For a dictionary
// the combined count is therefore never larger than the sum of its per-term
// counts: "climate change and climate change" scores 2 for {"climate change",
// "change"} combined but 2+2 when the two terms are counted separately
package termfreq

import (
	"regexp"
	"strings"

	"oilwatch/internal/core/corpus"
	"oilwatch/internal/core/dictionary"
	perr "oilwatch/internal/platform/errors"
	pstrings "oilwatch/internal/platform/strings"
)

// Scores is one count column per term (or dictionary), rows aligned with the dataset
type Scores struct {
	Columns []string          `json:"columns"`
	Colors  map[string]string `json:"colors"`
	Counts  [][]int64         `json:"-"`
}

// Column returns the per-article counts for column j
func (s Scores) Column(j int) []int64 {
	out := make([]int64, len(s.Counts))
	for i, row := range s.Counts {
		out[i] = row[j]
	}
	return out
}

// Totals returns the column sums
func (s Scores) Totals() []int64 {
	out := make([]int64, len(s.Columns))
	for _, row := range s.Counts {
		for j, v := range row {
			out[j] += v
		}
	}
	return out
}

// Engine scores datasets against the registry's dictionaries
type Engine struct {
	reg *dictionary.Registry
}

// New returns an Engine over reg
func New(reg *dictionary.Registry) *Engine { return &Engine{reg: reg} }

// Registry returns the registry the engine was built with
func (e *Engine) Registry() *dictionary.Registry { return e.reg }

// Count returns the number of non-overlapping matches of re in clean
func Count(re *regexp.Regexp, clean string) int {
	if re == nil || clean == "" {
		return 0
	}
	return len(re.FindAllStringIndex(clean, -1))
}

type column struct {
	name  string
	color string
	re    *regexp.Regexp
}

// SplitTerms expands comma separated term patterns into independent terms,
// trimmed, empties and repeats dropped, order kept
func SplitTerms(patterns []string) []string {
	var parts []string
	for _, p := range patterns {
		for _, part := range strings.Split(p, ",") {
			parts = append(parts, strings.ToLower(part))
		}
	}
	return pstrings.Unique(parts)
}

// TermScores scores every term of dict as its own column, named by the term.
// A term holding commas contributes one column per comma separated part
func (e *Engine) TermScores(ds corpus.Dataset, dict dictionary.Dictionary) (Scores, error) {
	colors := make(map[string]string, len(dict.Terms))
	for _, t := range dict.Terms {
		colors[t.Pattern] = t.Color
	}

	var cols []column
	for _, t := range dict.Terms {
		parts := SplitTerms([]string{t.Pattern})
		if len(parts) == 1 && parts[0] == t.Pattern && t.Regexp() != nil {
			cols = append(cols, column{name: t.Pattern, color: t.Color, re: t.Regexp()})
			continue
		}
		for _, p := range parts {
			re, err := regexp.Compile(p)
			if err != nil {
				return Scores{}, perr.Wrapf(err, perr.ErrorCodeConfig, "dictionary %q: invalid term %q", dict.Key, p)
			}
			color := t.Color
			if c, ok := colors[p]; ok {
				color = c
			}
			cols = append(cols, column{name: p, color: color, re: re})
		}
	}
	return score(ds, dedupe(cols)), nil
}

// PatternScores scores ad hoc term patterns (comma split applies) with no colors
func (e *Engine) PatternScores(ds corpus.Dataset, patterns []string) (Scores, error) {
	var cols []column
	for _, p := range SplitTerms(patterns) {
		re, err := regexp.Compile(p)
		if err != nil {
			return Scores{}, perr.WithField(perr.InvalidArgf("invalid term pattern %q: %v", p, err), "terms")
		}
		cols = append(cols, column{name: p, re: re})
	}
	return score(ds, cols), nil
}

// DictionaryScores scores each dictionary as one column named by its label,
// counting matches of the dictionary's combined alternation
func (e *Engine) DictionaryScores(ds corpus.Dataset, dicts []dictionary.Dictionary) Scores {
	cols := make([]column, 0, len(dicts))
	for _, d := range dicts {
		cols = append(cols, column{name: d.Label, color: d.Color, re: d.Combined()})
	}
	return score(ds, dedupe(cols))
}

func dedupe(cols []column) []column {
	seen := make(map[string]struct{}, len(cols))
	out := cols[:0:0]
	for _, c := range cols {
		if _, dup := seen[c.name]; dup {
			continue
		}
		seen[c.name] = struct{}{}
		out = append(out, c)
	}
	return out
}

func score(ds corpus.Dataset, cols []column) Scores {
	s := Scores{
		Columns: make([]string, len(cols)),
		Colors:  make(map[string]string, len(cols)),
		Counts:  make([][]int64, ds.Len()),
	}
	for j, c := range cols {
		s.Columns[j] = c.name
		if c.color != "" {
			s.Colors[c.name] = c.color
		}
	}
	ds.Each(func(i int, a *corpus.Article) {
		row := make([]int64, len(cols))
		for j, c := range cols {
			row[j] = int64(Count(c.re, a.CleanText))
		}
		s.Counts[i] = row
	})
	return s
}
