// Package corpus holds the prepared article table. Rows arrive from a source
// adapter as RawArticle, rows with a missing required field are dropped, and
// the survivors get their normalized text and calendar columns derived once
package corpus

import (
	"time"

	"oilwatch/internal/core/normalize"
)

// YearMonthLayout formats the year_month grouping key
const YearMonthLayout = "2006-01"

// RawArticle is one source row. Nil pointers are missing values
type RawArticle struct {
	Company   *string    `json:"company_name"`
	Date      *time.Time `json:"date"`
	SourceURL *string    `json:"source_url"`
	Text      *string    `json:"text"`
}

// Article is a prepared row with derived columns
type Article struct {
	Company   string
	Date      time.Time
	SourceURL string
	Text      string

	CleanText   string
	WordCount   int
	Year        int
	Month       int
	YearMonth   string
	YearDT      time.Time
	YearMonthDT time.Time
}

// Stats reports what Prepare did with the raw rows
type Stats struct {
	Loaded  int `json:"loaded"`
	Dropped int `json:"dropped"`
	Kept    int `json:"kept"`
}

// Prepare drops incomplete rows and derives every column. Row order is kept
func Prepare(rows []RawArticle, n *normalize.Normalizer) (Dataset, Stats) {
	if n == nil {
		n = normalize.New()
	}
	out := make([]Article, 0, len(rows))
	for _, r := range rows {
		if r.Company == nil || r.Date == nil || r.SourceURL == nil || r.Text == nil {
			continue
		}
		out = append(out, NewArticle(*r.Company, *r.Date, *r.SourceURL, *r.Text, n))
	}
	st := Stats{Loaded: len(rows), Kept: len(out), Dropped: len(rows) - len(out)}
	return Dataset{articles: out}, st
}

// NewArticle derives an Article from complete values
func NewArticle(company string, date time.Time, sourceURL, text string, n *normalize.Normalizer) Article {
	d := date.UTC()
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	clean, words := n.Analyze(text)
	return Article{
		Company:     company,
		Date:        d,
		SourceURL:   sourceURL,
		Text:        text,
		CleanText:   clean,
		WordCount:   words,
		Year:        d.Year(),
		Month:       int(d.Month()),
		YearMonth:   d.Format(YearMonthLayout),
		YearDT:      time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
		YearMonthDT: time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC),
	}
}

// Dataset is a read-only ordered set of articles
type Dataset struct {
	articles []Article
}

// FromArticles builds a Dataset from already prepared articles. The slice is copied
func FromArticles(a []Article) Dataset {
	out := make([]Article, len(a))
	copy(out, a)
	return Dataset{articles: out}
}

// Len returns the number of articles
func (d Dataset) Len() int { return len(d.articles) }

// At returns the i-th article
func (d Dataset) At(i int) Article { return d.articles[i] }

// Articles returns a copy of the rows
func (d Dataset) Articles() []Article {
	out := make([]Article, len(d.articles))
	copy(out, d.articles)
	return out
}

// Each calls fn for every article in order
func (d Dataset) Each(fn func(i int, a *Article)) {
	for i := range d.articles {
		a := d.articles[i]
		fn(i, &a)
	}
}

// Filter returns the articles for which keep is true, order preserved
func (d Dataset) Filter(keep func(a *Article) bool) Dataset {
	out := make([]Article, 0, len(d.articles))
	for i := range d.articles {
		a := d.articles[i]
		if keep(&a) {
			out = append(out, d.articles[i])
		}
	}
	return Dataset{articles: out}
}

// Words is the sum of word counts
func (d Dataset) Words() int64 {
	var n int64
	for i := range d.articles {
		n += int64(d.articles[i].WordCount)
	}
	return n
}
