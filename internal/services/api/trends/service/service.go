// Package service builds the trend views from the current corpus snapshot
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"oilwatch/internal/core/corpus"
	"oilwatch/internal/core/dictionary"
	"oilwatch/internal/core/selection"
	"oilwatch/internal/core/termfreq"
	"oilwatch/internal/core/timeagg"
	perr "oilwatch/internal/platform/errors"
	"oilwatch/internal/platform/store"
	"oilwatch/internal/services/api/trends/domain"
	corpusdom "oilwatch/internal/services/corpus/domain"
)

// Service defines the trends service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the trends service
type Svc struct {
	snaps corpusdom.ProviderPort
	reg   *dictionary.Registry
	cache store.KV
	ttl   time.Duration
}

// Options are the optional collaborators
type Options struct {
	Cache store.KV
	// CacheTTL bounds cached views; zero keeps them until the key is evicted.
	// Keys carry the snapshot id, so a reload never serves stale views
	CacheTTL time.Duration
}

// New constructs a trends service
func New(snaps corpusdom.ProviderPort, reg *dictionary.Registry, opts Options) *Svc {
	if snaps == nil {
		panic("trends.Service requires a non nil snapshot provider")
	}
	if reg == nil {
		panic("trends.Service requires a non nil Registry")
	}
	return &Svc{snaps: snaps, reg: reg, cache: opts.Cache, ttl: opts.CacheTTL}
}

// Posts counts articles per bucket, overall or per company
func (s *Svc) Posts(ctx context.Context, in domain.PostsInput) (*domain.View, error) {
	return s.cached(ctx, "posts", in, func(snap *corpusdom.Snapshot) (*domain.View, error) {
		g, err := timeagg.ParseGranularity(in.Granularity)
		if err != nil {
			return nil, err
		}
		ds, notes := s.filter(snap.Dataset, in.Filter)
		res := timeagg.Posts(ds, g, in.ByCompany)

		v := &domain.View{Title: "Posts by Date", X: g.Axis(), Y: []string{postsCol}, Notes: notes}
		if in.ByCompany {
			v.Title = "Posts by Company by Date"
			v.Color = companyCol
			v.Colors = s.reg.CompanyColors()
		}
		fill(v, res, false)
		return v, nil
	})
}

// Terms scores one dictionary's terms, whole dictionaries, or ad hoc patterns per bucket
func (s *Svc) Terms(ctx context.Context, in domain.TermsInput) (*domain.View, error) {
	return s.cached(ctx, "terms", in, func(snap *corpusdom.Snapshot) (*domain.View, error) {
		g, err := timeagg.ParseGranularity(in.Granularity)
		if err != nil {
			return nil, err
		}
		ds, notes := s.filter(snap.Dataset, in.Filter)

		scores, err := s.score(ds, in)
		if err != nil {
			return nil, err
		}
		prop := isProportion(in.Measure)
		res := timeagg.Sum(ds, scores, g, false)
		if prop {
			res = res.WithProportions()
		}

		v := &domain.View{
			Title:  fmt.Sprintf("Terms by Date %s (%s)", measureTitle(prop), scope(in.Companies)),
			X:      g.Axis(),
			Y:      append([]string{}, scores.Columns...),
			Colors: scores.Colors,
			Notes:  notes,
		}
		fill(v, res, prop)
		return v, nil
	})
}

func (s *Svc) score(ds corpus.Dataset, in domain.TermsInput) (termfreq.Scores, error) {
	eng := termfreq.New(s.reg)
	switch mode(in) {
	case domain.ModeTerms:
		if in.Dictionary == "" {
			return termfreq.Scores{}, perr.WithField(perr.InvalidArgf("mode terms needs a dictionary"), "dictionary")
		}
		d, err := s.reg.Lookup(in.Dictionary)
		if err != nil {
			return termfreq.Scores{}, perr.WithField(err, "dictionary")
		}
		return eng.TermScores(ds, d)
	case domain.ModePatterns:
		if len(termfreq.SplitTerms(in.Terms)) == 0 {
			return termfreq.Scores{}, perr.WithField(perr.InvalidArgf("mode patterns needs at least one term"), "terms")
		}
		return eng.PatternScores(ds, in.Terms)
	default:
		dicts := s.reg.All()
		if in.Dictionaries != nil {
			sel, err := selection.Dictionaries(s.reg, in.Dictionaries)
			if err != nil {
				return termfreq.Scores{}, perr.WithField(err, "dictionaries")
			}
			dicts = sel
		}
		return eng.DictionaryScores(ds, dicts), nil
	}
}

// mode defaults to terms when a dictionary is named, patterns when terms are given
func mode(in domain.TermsInput) string {
	switch {
	case in.Mode != "":
		return strings.ToLower(in.Mode)
	case in.Dictionary != "":
		return domain.ModeTerms
	case len(in.Terms) > 0:
		return domain.ModePatterns
	}
	return domain.ModeDictionaries
}

// DictionaryCompanies compares one dictionary across the selected companies
func (s *Svc) DictionaryCompanies(ctx context.Context, in domain.DictionaryCompaniesInput) (*domain.View, error) {
	return s.cached(ctx, "dictionary_companies", in, func(snap *corpusdom.Snapshot) (*domain.View, error) {
		g, err := timeagg.ParseGranularity(in.Granularity)
		if err != nil {
			return nil, err
		}
		d, err := s.reg.Lookup(in.Dictionary)
		if err != nil {
			return nil, perr.WithField(err, "dictionary")
		}
		ds, notes := s.filter(snap.Dataset, in.Filter)

		scores := termfreq.New(s.reg).DictionaryScores(ds, []dictionary.Dictionary{d})
		prop := isProportion(in.Measure)
		res := timeagg.Sum(ds, scores, g, true)
		if prop {
			res = res.WithProportions()
		}

		v := &domain.View{
			Title:  fmt.Sprintf("Terms by Date %s in %s (%s)", measureTitle(prop), d.Label, scope(in.Companies)),
			X:      g.Axis(),
			Y:      []string{d.Label},
			Color:  companyCol,
			Colors: s.reg.CompanyColors(),
			XTitle: "Date by " + strings.ToUpper(string(g)[:1]) + string(g)[1:],
			YTitle: "Words Matching Dictionary",
			Notes:  notes,
		}
		if prop {
			v.YTitle = "Proportion of Words in Dictionary"
		}
		fill(v, res, prop)
		return v, nil
	})
}

// Summary reports first year, article count and word total per company
func (s *Svc) Summary(ctx context.Context, in domain.SummaryInput) (*domain.View, error) {
	return s.cached(ctx, "summary", in, func(snap *corpusdom.Snapshot) (*domain.View, error) {
		ds, notes := s.filter(snap.Dataset, in.Filter)
		stats := timeagg.CompanySummary(ds)
		t := domain.Table{
			Columns: []string{companyCol, "start_year", "articles", wordsCol},
			Rows:    make([][]any, 0, len(stats)),
		}
		for _, st := range stats {
			t.Rows = append(t.Rows, []any{st.Company, st.StartYear, st.Articles, st.Words})
		}
		return &domain.View{Title: "Company Summary", Data: t, Table: t, Notes: notes}, nil
	})
}

// Companies lists the companies present in the data with their roster colors
func (s *Svc) Companies(ctx context.Context) (*domain.CompaniesOut, error) {
	snap, err := corpusdom.Resolve(ctx, s.snaps)
	if err != nil {
		return nil, err
	}
	out := &domain.CompaniesOut{Companies: []domain.CompanyOption{}}
	for _, name := range selection.Companies(snap.Dataset) {
		c, _ := s.reg.CompanyColor(name)
		out.Companies = append(out.Companies, domain.CompanyOption{Name: name, Color: c})
	}
	if lo, hi, ok := selection.Years(snap.Dataset); ok {
		out.FirstYear, out.LastYear = lo, hi
	}
	return out, nil
}

// Dictionaries lists every dictionary in registry order
func (s *Svc) Dictionaries(_ context.Context) ([]domain.DictionaryOut, error) {
	all := s.reg.All()
	out := make([]domain.DictionaryOut, 0, len(all))
	for _, d := range all {
		out = append(out, dictionaryOut(d))
	}
	return out, nil
}

// Dictionary returns one dictionary or NotFound
func (s *Svc) Dictionary(_ context.Context, key string) (*domain.DictionaryOut, error) {
	d, err := s.reg.Lookup(key)
	if err != nil {
		return nil, err
	}
	out := dictionaryOut(d)
	return &out, nil
}

func dictionaryOut(d dictionary.Dictionary) domain.DictionaryOut {
	out := domain.DictionaryOut{
		Key:      d.Key,
		Label:    d.Label,
		Color:    d.Color,
		Combined: strings.Join(d.Patterns(), "|"),
		Terms:    make([]domain.TermOut, 0, len(d.Terms)),
	}
	for _, t := range d.Terms {
		out.Terms = append(out.Terms, domain.TermOut{Pattern: t.Pattern, Color: t.Color})
	}
	return out
}

// filter applies the year range then the company selection. Problems that
// leave a usable selection come back as notes
func (s *Svc) filter(ds corpus.Dataset, f domain.Filter) (corpus.Dataset, []string) {
	var notes []string
	if f.Years != nil {
		lo, hi, _ := selection.Years(ds)
		start, end := f.Years.Start, f.Years.End
		if start == 0 {
			start = lo
		}
		if end == 0 {
			end = hi
		}
		out, err := selection.ByYearRange(ds, start, end)
		if errors.Is(err, selection.ErrInvertedYearRange) {
			notes = append(notes, fmt.Sprintf("year range %d-%d is inverted, showing every year", start, end))
		}
		ds = out
	}
	if f.Companies != nil {
		known := map[string]struct{}{}
		for _, c := range selection.Companies(ds) {
			known[c] = struct{}{}
		}
		for _, c := range *f.Companies {
			if _, ok := known[c]; !ok {
				notes = append(notes, fmt.Sprintf("company %q has no articles in the selection", c))
			}
		}
		ds = selection.ByCompanies(ds, *f.Companies)
	}
	return ds, notes
}

// isProportion reads a term view measure; proportions unless counts are asked for
func isProportion(measure string) bool {
	return !strings.EqualFold(strings.TrimSpace(measure), "count")
}

func measureTitle(prop bool) string {
	if prop {
		return "Proportion of Words"
	}
	return "Raw Count"
}

func scope(companies *[]string) string {
	switch {
	case companies == nil:
		return "All Companies"
	case len(*companies) == 0:
		return "No Companies"
	}
	return strings.Join(*companies, ", ")
}
