package publisher

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds the settings for an S3-compatible bucket (AWS, MinIO, R2).
type S3Config struct {
	// Endpoint overrides the AWS endpoint; empty means standard AWS S3.
	Endpoint string
	Region   string
	Bucket   string
	Key      string
	// AccessKey and SecretKey are optional; when empty the default AWS
	// credential chain is used.
	AccessKey      string
	SecretKey      string
	ForcePathStyle bool
	CacheControl   string
}

// objectPutter is the part of *s3.Client the publisher needs.
type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Publisher uploads the document as a single object.
type S3Publisher struct {
	client objectPutter
	cfg    S3Config
}

// NewS3Publisher builds the AWS client from cfg.
func NewS3Publisher(ctx context.Context, cfg S3Config) (*S3Publisher, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 publisher: bucket name is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("s3 publisher: region is required")
	}
	if cfg.Key == "" {
		cfg.Key = "data.json"
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3 publisher: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, s3Options(cfg)...)
	return &S3Publisher{client: client, cfg: cfg}, nil
}

func s3Options(cfg S3Config) []func(*s3.Options) {
	var opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		endpoint := normaliseEndpoint(cfg.Endpoint)
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}
	if cfg.ForcePathStyle {
		opts = append(opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}
	return opts
}

func (p *S3Publisher) Name() string {
	return fmt.Sprintf("s3://%s/%s", p.cfg.Bucket, p.cfg.Key)
}

// Publish uploads data, replacing any previous object.
func (p *S3Publisher) Publish(ctx context.Context, data []byte) error {
	in := &s3.PutObjectInput{
		Bucket:      aws.String(p.cfg.Bucket),
		Key:         aws.String(p.cfg.Key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	}
	if p.cfg.CacheControl != "" {
		in.CacheControl = aws.String(p.cfg.CacheControl)
	}
	if _, err := p.client.PutObject(ctx, in); err != nil {
		return fmt.Errorf("s3 publisher: put %s: %w", p.Name(), err)
	}
	return nil
}

// normaliseEndpoint prepends https:// when the endpoint has no scheme.
func normaliseEndpoint(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	return "https://" + endpoint
}
