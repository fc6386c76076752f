// Package selection filters a prepared dataset before aggregation
package selection

import (
	"sort"

	"oilwatch/internal/core/corpus"
	"oilwatch/internal/core/dictionary"
	perr "oilwatch/internal/platform/errors"
)

// ErrInvertedYearRange is returned with the unfiltered dataset when start > end.
// Callers surface it as a warning, not a failure
var ErrInvertedYearRange = perr.WithField(
	perr.New(perr.ErrorCodeInvalidArgument, "start year must be less than or equal to end year"),
	"years",
)

// Years returns the smallest and largest article year. ok is false for an empty dataset
func Years(ds corpus.Dataset) (lo, hi int, ok bool) {
	ds.Each(func(i int, a *corpus.Article) {
		if i == 0 || a.Year < lo {
			lo = a.Year
		}
		if i == 0 || a.Year > hi {
			hi = a.Year
		}
	})
	return lo, hi, ds.Len() > 0
}

// ByYearRange keeps articles with start <= year <= end. An inverted range
// returns ds unchanged together with ErrInvertedYearRange
func ByYearRange(ds corpus.Dataset, start, end int) (corpus.Dataset, error) {
	if start > end {
		return ds, ErrInvertedYearRange
	}
	return ds.Filter(func(a *corpus.Article) bool {
		return a.Year >= start && a.Year <= end
	}), nil
}

// ByCompanies keeps articles whose company is in names. An empty selection
// selects nothing
func ByCompanies(ds corpus.Dataset, names []string) corpus.Dataset {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return ds.Filter(func(a *corpus.Article) bool {
		_, ok := set[a.Company]
		return ok
	})
}

// Companies returns the distinct company names in ds, sorted
func Companies(ds corpus.Dataset) []string {
	seen := map[string]struct{}{}
	out := []string{}
	ds.Each(func(_ int, a *corpus.Article) {
		if _, ok := seen[a.Company]; ok {
			return
		}
		seen[a.Company] = struct{}{}
		out = append(out, a.Company)
	})
	sort.Strings(out)
	return out
}

// Dictionaries resolves keys against reg in the order given. An empty
// selection yields no dictionaries; an unknown key is a NotFound error
func Dictionaries(reg *dictionary.Registry, keys []string) ([]dictionary.Dictionary, error) {
	out := make([]dictionary.Dictionary, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		d, err := reg.Lookup(k)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
