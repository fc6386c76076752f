// Package s3src downloads the article parquet object from S3 and decodes it
package s3src

import (
	"bytes"
	"context"
	"io"

	"oilwatch/internal/adapters/source"
	"oilwatch/internal/adapters/source/parquetsrc"
	"oilwatch/internal/core/corpus"
	perr "oilwatch/internal/platform/errors"
	"oilwatch/internal/platform/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config selects the object; empty Region and Endpoint fall back to the AWS chain
type Config struct {
	Bucket       string
	Key          string
	Region       string
	Profile      string
	Endpoint     string
	UsePathStyle bool
}

// GetObjectAPI is the slice of the S3 client the source needs
type GetObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Source loads articles from one S3 object
type Source struct {
	api    GetObjectAPI
	bucket string
	key    string
}

// New builds an S3 client from the default AWS config chain
func New(ctx context.Context, cfg Config) (*Source, error) {
	if cfg.Bucket == "" {
		return nil, perr.WithField(perr.Configf("s3 source requires a bucket"), "bucket")
	}
	var loadOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(cfg.Profile))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeConfig, "load aws config")
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewWithClient(client, cfg.Bucket, cfg.Key), nil
}

// NewWithClient wraps an existing client; empty key means the default file name
func NewWithClient(api GetObjectAPI, bucket, key string) *Source {
	if key == "" {
		key = source.DefaultFile
	}
	return &Source{api: api, bucket: bucket, key: key}
}

// Name identifies the source in logs and snapshot info
func (s *Source) Name() string { return "s3://" + s.bucket + "/" + s.key }

// Load downloads the whole object, then decodes it
func (s *Source) Load(ctx context.Context) ([]corpus.RawArticle, error) {
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeSource, "get %s", s.Name())
	}
	defer func() {
		if cerr := out.Body.Close(); cerr != nil {
			logger.C(ctx).Warn().Err(cerr).Str("object", s.Name()).Msg("close s3 body")
		}
	}()

	// parquet needs random access to the footer
	b, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeSource, "download %s", s.Name())
	}
	if len(b) == 0 {
		return nil, perr.Sourcef("%s is empty", s.Name())
	}
	logger.C(ctx).Debug().Str("object", s.Name()).Int("bytes", len(b)).Msg("s3 object downloaded")
	return parquetsrc.Read(bytes.NewReader(b), int64(len(b)))
}
