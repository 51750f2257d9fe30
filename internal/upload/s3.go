package upload

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config carries the AWS S3 (or S3-compatible, via BaseEndpoint)
// connection settings.
type S3Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// BaseEndpoint points the client at an S3-compatible service; empty
	// means AWS proper.
	BaseEndpoint string
	// PublicBaseURL overrides the URL assets are served from.
	PublicBaseURL string
}

// S3Provider stores assets in an S3 bucket via aws-sdk-go-v2.
type S3Provider struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewS3(ctx context.Context, cfg S3Config) (*S3Provider, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	base := cfg.PublicBaseURL
	if base == "" {
		if cfg.BaseEndpoint != "" {
			base = joinURL(cfg.BaseEndpoint, cfg.Bucket)
		} else {
			base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}

	return &S3Provider{client: client, bucket: cfg.Bucket, baseURL: base}, nil
}

func (p *S3Provider) Name() string { return "s3" }

func (p *S3Provider) Store(ctx context.Context, data []byte, hints Hints) (*Result, error) {
	width, height, format := probe(data)
	key := objectKey(format)

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentTypeFor(format, hints.ContentType)),
		Metadata:    userMetadata(hints),
	})
	if err != nil {
		return nil, fmt.Errorf("put %s: %w", key, err)
	}

	return &Result{
		URL:        joinURL(p.baseURL, key),
		StorageKey: key,
		Width:      width,
		Height:     height,
		Format:     format,
		SizeKB:     float64(len(data)) / 1024,
	}, nil
}

func (p *S3Provider) Delete(ctx context.Context, storageKey string) error {
	_, err := p.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(storageKey),
	})
	return err
}
