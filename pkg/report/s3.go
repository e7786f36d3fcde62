package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/google/uuid"
)

// S3Client is the slice of the AWS S3 API the store needs. Tests inject
// in-memory fakes through WithS3Client.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Config configures the object store connection. Endpoint and
// ForcePathStyle exist for S3-compatible services like MinIO.
type S3Config struct {
	Bucket         string `env:"REPORT_S3_BUCKET,required"`
	Region         string `env:"REPORT_S3_REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"REPORT_S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"REPORT_S3_SECRET_KEY"`
	Endpoint       string `env:"REPORT_S3_ENDPOINT"`
	Prefix         string `env:"REPORT_S3_PREFIX" envDefault:"reports/"`
	ForcePathStyle bool   `env:"REPORT_S3_FORCE_PATH_STYLE" envDefault:"false"`
}

// S3Option overrides parts of the store construction.
type S3Option func(*s3Options)

type s3Options struct {
	client S3Client
}

// WithS3Client sets a pre-configured client. Useful for tests.
func WithS3Client(client S3Client) S3Option {
	return func(o *s3Options) {
		o.client = client
	}
}

// S3Store keeps one JSON object per run under a shared key prefix. It is
// safe for concurrent use.
type S3Store struct {
	client S3Client
	bucket string
	prefix string
}

// NewS3Store builds the AWS client from cfg unless one is injected, and
// returns the store. No request is made until the first operation.
func NewS3Store(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("report: s3 bucket is required")
	}

	var options s3Options
	for _, opt := range opts {
		opt(&options)
	}

	client := options.client
	if client == nil {
		awsOpts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOpts = append(awsOpts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			))
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOpts...)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}

		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle
		})
	}

	prefix := cfg.Prefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return &S3Store{client: client, bucket: cfg.Bucket, prefix: prefix}, nil
}

func (s *S3Store) key(runID uuid.UUID) string {
	return s.prefix + runID.String() + extJSON
}

// Save uploads the report snapshot, replacing any previous snapshot of the
// same run.
func (s *S3Store) Save(ctx context.Context, r *Report) error {
	if r == nil {
		return ErrNilReport
	}
	if r.Meta.RunID == uuid.Nil {
		return ErrMissingRunID
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(r.Meta.RunID)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("upload report %s: %w", r.Meta.RunID, err)
	}
	return nil
}

// Load downloads one report.
func (s *S3Store) Load(ctx context.Context, runID uuid.UUID) (*Report, error) {
	if runID == uuid.Nil {
		return nil, ErrMissingRunID
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(runID)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, fmt.Errorf("download report %s: %w", runID, err)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", runID, err)
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", runID, err)
	}
	return &r, nil
}

// List walks the key prefix and returns the metadata of every stored run,
// newest first.
func (s *S3Store) List(ctx context.Context) ([]Meta, error) {
	var metas []Meta

	var token *string
	for {
		out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
			Bucket:            aws.String(s.bucket),
			Prefix:            aws.String(s.prefix),
			ContinuationToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("list reports: %w", err)
		}

		for _, obj := range out.Contents {
			key := aws.ToString(obj.Key)
			name := strings.TrimPrefix(key, s.prefix)
			runID, err := uuid.Parse(strings.TrimSuffix(name, extJSON))
			if err != nil {
				continue
			}
			r, err := s.Load(ctx, runID)
			if err != nil {
				return nil, err
			}
			metas = append(metas, r.Meta)
		}

		if out.IsTruncated == nil || !*out.IsTruncated {
			break
		}
		token = out.NextContinuationToken
	}

	slices.SortFunc(metas, func(a, b Meta) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return metas, nil
}
