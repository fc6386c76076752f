package module

import (
	"context"
	"strings"

	"oilwatch/internal/adapters/source/chsrc"
	"oilwatch/internal/adapters/source/parquetsrc"
	"oilwatch/internal/adapters/source/pgsrc"
	"oilwatch/internal/adapters/source/s3src"
	"oilwatch/internal/modkit"
	perr "oilwatch/internal/platform/errors"
	dom "oilwatch/internal/services/corpus/domain"
)

// buildSource picks the adapter named by o.Source
func buildSource(ctx context.Context, deps modkit.Deps, o Options) (dom.Source, error) {
	if o.Src != nil {
		return o.Src, nil
	}
	switch strings.ToLower(o.Source) {
	case "", "parquet":
		return parquetsrc.New(o.Path), nil
	case "s3":
		return s3src.New(ctx, s3src.Config{
			Bucket:       o.S3.Bucket,
			Key:          o.S3.Key,
			Region:       o.S3.Region,
			Profile:      o.S3.Profile,
			Endpoint:     o.S3.Endpoint,
			UsePathStyle: o.S3.UsePathStyle,
		})
	case "pg":
		return pgsrc.New(deps.PG, o.Table)
	case "ch":
		return chsrc.New(deps.CH, o.Table)
	}
	return nil, perr.WithField(perr.Configf("unknown corpus source %q", o.Source), "source")
}
