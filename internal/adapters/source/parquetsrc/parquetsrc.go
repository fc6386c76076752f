// Package parquetsrc reads the article table from a parquet file or object
package parquetsrc

import (
	"context"
	"io"
	"time"

	"oilwatch/internal/adapters/source"
	"oilwatch/internal/core/corpus"
	perr "oilwatch/internal/platform/errors"

	"github.com/parquet-go/parquet-go"
)

// row mirrors the parquet schema; every column is nullable
type row struct {
	Company   *string    `parquet:"company_name,optional"`
	Date      *time.Time `parquet:"date,optional"`
	SourceURL *string    `parquet:"source_url,optional"`
	Text      *string    `parquet:"text,optional"`
}

// Source loads articles from a parquet file on disk
type Source struct {
	path string
}

// New returns a Source for path; empty means the default file name in the working directory
func New(path string) *Source {
	if path == "" {
		path = source.DefaultFile
	}
	return &Source{path: path}
}

// Name identifies the source in logs and snapshot info
func (s *Source) Name() string { return "parquet:" + s.path }

// Load reads every row of the file
func (s *Source) Load(ctx context.Context) ([]corpus.RawArticle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := parquet.ReadFile[row](s.path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeSource, "read parquet %s", s.path)
	}
	return toRaw(rows), nil
}

// Read decodes a parquet object of the given size
func Read(r io.ReaderAt, size int64) ([]corpus.RawArticle, error) {
	rows, err := parquet.Read[row](r, size)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeSource, "read parquet object")
	}
	return toRaw(rows), nil
}

// Write encodes articles in the same schema Load reads
func Write(w io.Writer, articles []corpus.RawArticle) error {
	rows := make([]row, len(articles))
	for i, a := range articles {
		rows[i] = row{Company: a.Company, SourceURL: a.SourceURL, Text: a.Text}
		if a.Date != nil {
			d := a.Date.UTC()
			rows[i].Date = &d
		}
	}
	if err := parquet.Write(w, rows); err != nil {
		return perr.Wrap(err, perr.ErrorCodeSource, "write parquet")
	}
	return nil
}

func toRaw(rows []row) []corpus.RawArticle {
	out := make([]corpus.RawArticle, len(rows))
	for i, r := range rows {
		out[i] = corpus.RawArticle{Company: r.Company, Date: r.Date, SourceURL: r.SourceURL, Text: r.Text}
	}
	return out
}
