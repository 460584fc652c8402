package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/vladimiradmaev/vaidya-health/internal/config"
	"github.com/vladimiradmaev/vaidya-health/internal/logger"
)

// S3Storage keeps report attachments in an S3-compatible bucket
type S3Storage struct {
	client        *s3.Client
	bucket        string
	region        string
	endpoint      string
	publicBaseURL string
	publicACL     bool
}

// NewS3Storage creates a client from the default AWS credential chain.
// A custom endpoint (MinIO, LocalStack) switches to path-style addressing.
func NewS3Storage(ctx context.Context, cfg config.StorageConfig) (*S3Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{
		client:        client,
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		endpoint:      strings.TrimRight(cfg.Endpoint, "/"),
		publicBaseURL: cfg.PublicBaseURL,
		publicACL:     cfg.PublicACL,
	}, nil
}

// Upload writes data under key and returns its public URL
func (s *S3Storage) Upload(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}
	if s.publicACL {
		input.ACL = types.ObjectCannedACLPublicRead
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	logger.Debug("Uploaded object", "bucket", s.bucket, "key", key, "size", len(data))
	return s.PublicURL(key), nil
}

// PublicURL returns the URL under which key is served
func (s *S3Storage) PublicURL(key string) string {
	return PublicURL(s.publicBaseURL, s.endpoint, s.bucket, s.region, key)
}

// PublicURL resolves the public address of key. An explicit base URL wins,
// then a custom endpoint (path-style), then the virtual-hosted AWS form.
func PublicURL(publicBaseURL, endpoint, bucket, region, key string) string {
	escaped := (&url.URL{Path: key}).EscapedPath()
	switch {
	case publicBaseURL != "":
		return publicBaseURL + "/" + escaped
	case endpoint != "":
		return fmt.Sprintf("%s/%s/%s", endpoint, bucket, escaped)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, escaped)
	}
}
