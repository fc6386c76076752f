package main

import (
	"context"
	"io"

	"github.com/urfave/cli/v2"

	"oilwatch/internal/core/version"
	"oilwatch/internal/modkit"
	"oilwatch/internal/modkit/module"
	"oilwatch/internal/platform/config"
	"oilwatch/internal/platform/logger"
	"oilwatch/internal/platform/net/http/bind"
	"oilwatch/internal/platform/store"
	pstrings "oilwatch/internal/platform/strings"
	"oilwatch/internal/report"
	"oilwatch/internal/services/api/trends/domain"
	trendsmod "oilwatch/internal/services/api/trends/module"
	corpusmod "oilwatch/internal/services/corpus/module"
)

// opener builds the views service; load is false for commands that need no corpus
type opener func(ctx context.Context, c *cli.Context, load bool) (domain.ServicePort, func(), error)

func newApp(open opener, out io.Writer) *cli.App {
	return &cli.App{
		Name:      "oilwatch-report",
		Version:   version.Info().Version + " (" + version.Revision() + ")",
		Usage:     "term frequency trends over oil company news coverage",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: report.FormatTable, Usage: "table or yaml"},
			&cli.StringFlag{Name: "source", EnvVars: []string{"CORPUS_SOURCE"}, Usage: "parquet, s3, pg or ch"},
			&cli.StringFlag{Name: "path", EnvVars: []string{"CORPUS_PATH"}, Usage: "parquet file"},
			&cli.BoolFlag{Name: "fold-marks", Usage: "fold accented letters instead of breaking words"},
		},
		Commands: []*cli.Command{
			{
				Name:  "dictionaries",
				Usage: "list dictionaries, or the terms of one",
				Flags: []cli.Flag{&cli.StringFlag{Name: "key", Usage: "dictionary key"}},
				Action: func(c *cli.Context) error {
					return run(c, open, false, func(svc domain.ServicePort, format string) error {
						if key := c.String("key"); key != "" {
							d, err := svc.Dictionary(c.Context, key)
							if err != nil {
								return err
							}
							return report.Dictionaries(c.App.Writer, format, []domain.DictionaryOut{*d})
						}
						all, err := svc.Dictionaries(c.Context)
						if err != nil {
							return err
						}
						return report.Dictionaries(c.App.Writer, format, all)
					})
				},
			},
			{
				Name:  "posts",
				Usage: "posts by date",
				Flags: append(filterFlags(), &cli.BoolFlag{Name: "by-company", Usage: "one series per company"}),
				Action: func(c *cli.Context) error {
					in := domain.PostsInput{Filter: filter(c), ByCompany: c.Bool("by-company")}
					return viewCmd(c, open, in, func(svc domain.ServicePort) (*domain.View, error) {
						return svc.Posts(c.Context, in)
					})
				},
			},
			{
				Name:  "terms",
				Usage: "term or dictionary counts by date",
				Flags: append(filterFlags(),
					&cli.StringFlag{Name: "mode", Usage: "terms, dictionaries or patterns"},
					&cli.StringFlag{Name: "dictionary", Aliases: []string{"d"}, Usage: "dictionary key for mode terms"},
					&cli.StringSliceFlag{Name: "dictionaries", Usage: "dictionary keys for mode dictionaries"},
					&cli.StringSliceFlag{Name: "term", Usage: "ad hoc pattern, repeatable"},
					&cli.StringFlag{Name: "measure", Usage: "count or proportion (default)"},
				),
				Action: func(c *cli.Context) error {
					in := domain.TermsInput{
						Filter:     filter(c),
						Mode:       c.String("mode"),
						Dictionary: c.String("dictionary"),
						Terms:      c.StringSlice("term"),
						Measure:    c.String("measure"),
					}
					if c.IsSet("dictionaries") {
						in.Dictionaries = c.StringSlice("dictionaries")
					}
					return viewCmd(c, open, in, func(svc domain.ServicePort) (*domain.View, error) {
						return svc.Terms(c.Context, in)
					})
				},
			},
			{
				Name:  "companies",
				Usage: "start year, articles and words per company",
				Flags: filterFlags(),
				Action: func(c *cli.Context) error {
					in := domain.SummaryInput{Filter: filter(c)}
					return viewCmd(c, open, in, func(svc domain.ServicePort) (*domain.View, error) {
						return svc.Summary(c.Context, in)
					})
				},
			},
		},
	}
}

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "start", Usage: "first year, inclusive"},
		&cli.IntFlag{Name: "end", Usage: "last year, inclusive"},
		&cli.StringFlag{Name: "granularity", Aliases: []string{"g"}, Usage: "year or month"},
		&cli.StringSliceFlag{Name: "company", Aliases: []string{"c"}, Usage: "company name, repeatable"},
	}
}

func filter(c *cli.Context) domain.Filter {
	f := domain.Filter{Granularity: c.String("granularity")}
	if c.IsSet("start") || c.IsSet("end") {
		f.Years = &domain.YearRange{Start: c.Int("start"), End: c.Int("end")}
	}
	if c.IsSet("company") {
		names := pstrings.Unique(c.StringSlice("company"))
		f.Companies = &names
	}
	return f
}

func viewCmd(c *cli.Context, open opener, in any, build func(domain.ServicePort) (*domain.View, error)) error {
	if err := bind.Validate(in); err != nil {
		return err
	}
	return run(c, open, true, func(svc domain.ServicePort, format string) error {
		v, err := build(svc)
		if err != nil {
			return err
		}
		return report.View(c.App.Writer, format, v)
	})
}

func run(c *cli.Context, open opener, load bool, fn func(domain.ServicePort, string) error) error {
	format, err := report.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}
	svc, closeFn, err := open(c.Context, c, load)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(svc, format)
}

// openViews opens the configured stores, builds the corpus and trends modules
// and loads the corpus when asked
func openViews(ctx context.Context, c *cli.Context, load bool) (domain.ServicePort, func(), error) {
	root := config.New()
	l := logger.Get()

	st, err := store.Open(ctx, store.FromConf(root, "oilwatch", "report"), store.WithLogger(*l))
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := st.Close(context.Background()); err != nil {
			l.Warn().Err(err).Msg("failed to close store")
		}
	}

	deps := modkit.Deps{Cfg: root, PG: st.PG, CH: st.CH}
	corpus, err := corpusmod.New(ctx, deps, corpusmod.Options{
		Source:    c.String("source"),
		Path:      c.String("path"),
		FoldMarks: c.Bool("fold-marks"),
	})
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	cp := module.MustPortsOf[corpusmod.Ports](corpus)
	if load {
		if _, err := cp.Loader.Load(ctx); err != nil {
			closeFn()
			return nil, nil, err
		}
	}

	trends := trendsmod.New(deps, modkit.WithPorts(trendsmod.Needs{Snapshots: cp.Snapshots, Registry: cp.Registry}))
	return module.MustPortsOf[trendsmod.Ports](trends).Service, closeFn, nil
}
