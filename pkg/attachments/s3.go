package attachments

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dmitrymomot/blastengine/pkg/mailer"
)

const s3Scheme = "s3://"

// S3Config holds S3-compatible object storage settings for attachment
// references. Embed this in your app config for env parsing with
// caarlos0/env.
type S3Config struct {
	Region    string `env:"ATTACHMENTS_S3_REGION" envDefault:"us-east-1"`
	AccessKey string `env:"ATTACHMENTS_S3_ACCESS_KEY"`
	SecretKey string `env:"ATTACHMENTS_S3_SECRET_KEY"`
	Endpoint  string `env:"ATTACHMENTS_S3_ENDPOINT"`
	PathStyle bool   `env:"ATTACHMENTS_S3_PATH_STYLE" envDefault:"false"`
}

// S3 resolves s3://bucket/key references.
type S3 struct {
	client *s3.Client
}

// NewS3 creates an S3 resolver with the given configuration.
func NewS3(cfg S3Config) *S3 {
	opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Region = cfg.Region
			if cfg.AccessKey != "" {
				o.Credentials = credentials.NewStaticCredentialsProvider(
					cfg.AccessKey,
					cfg.SecretKey,
					"",
				)
			}
		},
	}

	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		})
	}

	return &S3{client: s3.New(s3.Options{}, opts...)}
}

// Resolve downloads the referenced object. Reads are bounded at one byte
// past MaxTotalBytes so an oversized object fails validation instead of
// exhausting memory.
func (r *S3) Resolve(ctx context.Context, ref string) (mailer.Attachment, error) {
	bucket, key, err := parseS3Ref(ref)
	if err != nil {
		return mailer.Attachment{}, err
	}

	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return mailer.Attachment{}, wrapS3Error(err, ErrFetchFailed)
	}
	defer func() { _ = out.Body.Close() }()

	content, err := io.ReadAll(io.LimitReader(out.Body, MaxTotalBytes+1))
	if err != nil {
		return mailer.Attachment{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if len(content) == 0 {
		return mailer.Attachment{}, fmt.Errorf("%w: %s", ErrEmptyFile, ref)
	}

	filename := path.Base(key)
	contentType := aws.ToString(out.ContentType)
	if contentType == "" || contentType == MIMEOctetStream {
		contentType = DetectMIME(filename, content)
	}

	return mailer.Attachment{
		Filename:    filename,
		ContentType: contentType,
		Content:     content,
	}, nil
}

// parseS3Ref splits "s3://bucket/key/parts" into bucket and key.
func parseS3Ref(ref string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(ref, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidRef, ref)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidRef, ref)
	}
	return bucket, key, nil
}

// s3Lazy defers client construction until the first s3:// reference shows
// up, so purely local deployments never touch AWS configuration.
type s3Lazy struct {
	cfg  S3Config
	once sync.Once
	s3   *S3
}

func newS3Lazy(cfg S3Config) *s3Lazy {
	return &s3Lazy{cfg: cfg}
}

func (l *s3Lazy) Resolve(ctx context.Context, ref string) (mailer.Attachment, error) {
	l.once.Do(func() {
		l.s3 = NewS3(l.cfg)
	})
	return l.s3.Resolve(ctx, ref)
}
