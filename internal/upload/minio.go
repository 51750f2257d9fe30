package upload

import (
	"bytes"
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioConfig carries the object-store connection settings read once at
// process start.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicBaseURL overrides the endpoint in returned asset URLs, for
	// deployments serving the bucket through a CDN hostname.
	PublicBaseURL string
}

// MinioProvider stores assets in a MinIO (or any S3-compatible) bucket.
type MinioProvider struct {
	mc      *minio.Client
	bucket  string
	baseURL string
}

func NewMinio(cfg MinioConfig) (*MinioProvider, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio access_key and secret_key are required")
	}

	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	bucket := cfg.Bucket
	if bucket == "" {
		bucket = "photofolio"
	}
	base := cfg.PublicBaseURL
	if base == "" {
		base = mc.EndpointURL().String()
	}

	return &MinioProvider{mc: mc, bucket: bucket, baseURL: base}, nil
}

// EnsureBucket creates the bucket when missing; called once at startup.
func (p *MinioProvider) EnsureBucket(ctx context.Context) error {
	exists, err := p.mc.BucketExists(ctx, p.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := p.mc.MakeBucket(ctx, p.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
	}
	return nil
}

func (p *MinioProvider) Name() string { return "minio" }

func (p *MinioProvider) Store(ctx context.Context, data []byte, hints Hints) (*Result, error) {
	width, height, format := probe(data)
	key := objectKey(format)

	_, err := p.mc.PutObject(ctx, p.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{
			ContentType:  contentTypeFor(format, hints.ContentType),
			UserMetadata: userMetadata(hints),
		})
	if err != nil {
		return nil, fmt.Errorf("put %s: %w", key, err)
	}

	return &Result{
		URL:        joinURL(p.baseURL, p.bucket, key),
		StorageKey: key,
		Width:      width,
		Height:     height,
		Format:     format,
		SizeKB:     float64(len(data)) / 1024,
	}, nil
}

func (p *MinioProvider) Delete(ctx context.Context, storageKey string) error {
	return p.mc.RemoveObject(ctx, p.bucket, storageKey, minio.RemoveObjectOptions{})
}

func userMetadata(hints Hints) map[string]string {
	md := map[string]string{}
	if hints.Title != "" {
		md["title"] = hints.Title
	}
	if hints.Watermark {
		md["watermark"] = "true"
	}
	return md
}
