// Package normalize turns raw article text into clean_text and a word count
// Pipeline order
// 1 Unicode lowercase
// 2 optional mark folding (NFD, strip combining marks, NFC) so "café" becomes "cafe"
// 3 every rune outside [a-z0-9] becomes a space
// 4 collapse space runs to one and trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer is safe for concurrent use; transformer chains are pooled
type Normalizer struct {
	foldMarks bool
	pool      sync.Pool
}

// Option configures a Normalizer
type Option func(*Normalizer)

// WithFoldMarks strips diacritics before the ASCII filter instead of
// turning accented letters into word breaks
func WithFoldMarks() Option { return func(n *Normalizer) { n.foldMarks = true } }

// New constructs a Normalizer
func New(opts ...Option) *Normalizer {
	n := &Normalizer{}
	for _, o := range opts {
		o(n)
	}
	fold := n.foldMarks
	n.pool.New = func() any {
		if fold {
			return transform.Chain(
				cases.Lower(language.Und),
				norm.NFD,
				runes.Remove(runes.In(unicode.Mn)),
				norm.NFC,
			)
		}
		return cases.Lower(language.Und)
	}
	return n
}

// Normalize returns clean_text for s
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	tr := n.pool.Get().(transform.Transformer)
	ls, _, err := transform.String(tr, s)
	tr.Reset()
	n.pool.Put(tr)
	if err != nil {
		// lowercasing never fails on valid input; keep going with a plain fold
		ls = strings.ToLower(s)
	}

	return asciiWords(ls)
}

// Analyze returns clean_text and its word count. Empty clean_text counts as
// zero words
func (n *Normalizer) Analyze(s string) (string, int) {
	clean := n.Normalize(s)
	return clean, WordCount(clean)
}

// WordCount counts single-space separated tokens in clean text
func WordCount(clean string) int {
	if clean == "" {
		return 0
	}
	return strings.Count(clean, " ") + 1
}

// Tokens splits clean text into its words; empty text has no tokens
func Tokens(clean string) []string {
	if clean == "" {
		return nil
	}
	return strings.Split(clean, " ")
}

// asciiWords keeps [a-z0-9] and turns every other run into a single space, trimmed
func asciiWords(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}
