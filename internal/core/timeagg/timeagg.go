// Package timeagg buckets articles by year or year-month and sums posts, words
// and term counts per bucket, optionally per company.
//
// Proportions are always bucket sums divided by bucket sums. Averaging
// per-article or per-company ratios biases small buckets and is not offered
package timeagg

import (
	"sort"
	"strings"
	"time"

	"oilwatch/internal/core/corpus"
	"oilwatch/internal/core/termfreq"
	perr "oilwatch/internal/platform/errors"
)

// Granularity is the bucket width
type Granularity string

const (
	// Year buckets on Jan 1
	Year Granularity = "year"
	// Month buckets on the first of the month
	Month Granularity = "month"
)

// ParseGranularity accepts "year" and "month" (plus the dataframe column
// spellings); empty means Year
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "year", "year_dt":
		return Year, nil
	case "month", "year_month", "year_month_dt":
		return Month, nil
	}
	return "", perr.WithField(perr.InvalidArgf("unknown granularity %q", s), "granularity")
}

// Axis is the x-axis column name used in chart tables
func (g Granularity) Axis() string {
	if g == Month {
		return "year_month_dt"
	}
	return "year_dt"
}

// Format renders a bucket as "2021" or "2021-03"
func (g Granularity) Format(bucket time.Time) string {
	if g == Month {
		return bucket.Format(corpus.YearMonthLayout)
	}
	return bucket.Format("2006")
}

// BucketOf returns the bucket start for a
func BucketOf(a corpus.Article, g Granularity) time.Time {
	if g == Month {
		return a.YearMonthDT
	}
	return a.YearDT
}

// Row is one bucket, or one bucket for one company
type Row struct {
	Bucket      time.Time
	Company     string
	Posts       int64
	Words       int64
	Counts      []int64
	Proportions []float64
}

// Result is an aggregation table. Rows are chronological, then by company
type Result struct {
	Granularity Granularity
	ByCompany   bool
	Columns     []string
	Rows        []Row
}

type key struct {
	bucket  int64
	company string
}

// Posts counts articles and words per bucket
func Posts(ds corpus.Dataset, g Granularity, byCompany bool) Result {
	return aggregate(ds, nil, g, byCompany)
}

// Sum adds the score columns per bucket next to posts and words.
// scores must be row-aligned with ds
func Sum(ds corpus.Dataset, scores termfreq.Scores, g Granularity, byCompany bool) Result {
	if len(scores.Counts) != ds.Len() {
		panic("timeagg: scores are not aligned with the dataset")
	}
	return aggregate(ds, &scores, g, byCompany)
}

func aggregate(ds corpus.Dataset, scores *termfreq.Scores, g Granularity, byCompany bool) Result {
	res := Result{Granularity: g, ByCompany: byCompany, Columns: []string{}, Rows: []Row{}}
	width := 0
	if scores != nil {
		res.Columns = append(res.Columns, scores.Columns...)
		width = len(scores.Columns)
	}

	idx := make(map[key]int)
	ds.Each(func(i int, a *corpus.Article) {
		b := BucketOf(*a, g)
		k := key{bucket: b.Unix()}
		if byCompany {
			k.company = a.Company
		}
		j, ok := idx[k]
		if !ok {
			j = len(res.Rows)
			idx[k] = j
			res.Rows = append(res.Rows, Row{Bucket: b, Company: k.company, Counts: make([]int64, width)})
		}
		r := &res.Rows[j]
		r.Posts++
		r.Words += int64(a.WordCount)
		if scores != nil {
			for c, v := range scores.Counts[i] {
				r.Counts[c] += v
			}
		}
	})

	sort.SliceStable(res.Rows, func(i, j int) bool {
		a, b := res.Rows[i], res.Rows[j]
		if !a.Bucket.Equal(b.Bucket) {
			return a.Bucket.Before(b.Bucket)
		}
		return a.Company < b.Company
	})
	return res
}

// Proportion divides a bucket sum by the bucket word sum; zero words gives 0
func Proportion(count, words int64) float64 {
	if words == 0 {
		return 0
	}
	return float64(count) / float64(words)
}

// WithProportions returns a copy with Proportions filled from the row sums
func (r Result) WithProportions() Result {
	out := r.clone()
	for i := range out.Rows {
		row := &out.Rows[i]
		row.Proportions = make([]float64, len(row.Counts))
		for j, c := range row.Counts {
			row.Proportions[j] = Proportion(c, row.Words)
		}
	}
	return out
}

// SortedForDisplay returns a copy ordered by company, then bucket
func (r Result) SortedForDisplay() Result {
	out := r.clone()
	sort.SliceStable(out.Rows, func(i, j int) bool {
		a, b := out.Rows[i], out.Rows[j]
		if a.Company != b.Company {
			return a.Company < b.Company
		}
		return a.Bucket.Before(b.Bucket)
	})
	return out
}

// Column returns the index of name in Columns or -1
func (r Result) Column(name string) int {
	for i, c := range r.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Buckets returns the distinct bucket starts, ascending
func (r Result) Buckets() []time.Time {
	out := []time.Time{}
	for _, row := range r.Rows {
		if n := len(out); n == 0 || !out[n-1].Equal(row.Bucket) {
			out = append(out, row.Bucket)
		}
	}
	return out
}

func (r Result) clone() Result {
	out := r
	out.Columns = append([]string{}, r.Columns...)
	out.Rows = make([]Row, len(r.Rows))
	for i, row := range r.Rows {
		row.Counts = append([]int64(nil), row.Counts...)
		if row.Proportions != nil {
			row.Proportions = append([]float64(nil), row.Proportions...)
		}
		out.Rows[i] = row
	}
	return out
}

// Context is an article with its (bucket, company) totals attached
type Context struct {
	Article     corpus.Article
	Bucket      time.Time
	BucketWords int64
	BucketPosts int64
}

// JoinContext left-joins per-bucket-per-company totals back onto every
// article, in dataset order
func JoinContext(ds corpus.Dataset, g Granularity) []Context {
	totals := Posts(ds, g, true)
	byKey := make(map[key]Row, len(totals.Rows))
	for _, row := range totals.Rows {
		byKey[key{bucket: row.Bucket.Unix(), company: row.Company}] = row
	}

	out := make([]Context, 0, ds.Len())
	ds.Each(func(_ int, a *corpus.Article) {
		b := BucketOf(*a, g)
		row := byKey[key{bucket: b.Unix(), company: a.Company}]
		out = append(out, Context{
			Article:     *a,
			Bucket:      b,
			BucketWords: row.Words,
			BucketPosts: row.Posts,
		})
	})
	return out
}

// CompanyStat is one line of the per-company descriptive table
type CompanyStat struct {
	Company   string `json:"company_name" yaml:"company_name"`
	StartYear int    `json:"start_year" yaml:"start_year"`
	Articles  int64  `json:"articles" yaml:"articles"`
	Words     int64  `json:"word_count" yaml:"word_count"`
}

// CompanySummary returns the first year, article count and word total per
// company, sorted by company
func CompanySummary(ds corpus.Dataset) []CompanyStat {
	idx := map[string]int{}
	out := []CompanyStat{}
	ds.Each(func(_ int, a *corpus.Article) {
		j, ok := idx[a.Company]
		if !ok {
			j = len(out)
			idx[a.Company] = j
			out = append(out, CompanyStat{Company: a.Company, StartYear: a.Year})
		}
		s := &out[j]
		if a.Year < s.StartYear {
			s.StartYear = a.Year
		}
		s.Articles++
		s.Words += int64(a.WordCount)
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Company < out[j].Company })
	return out
}
