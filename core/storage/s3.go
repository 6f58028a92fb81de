package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	appconfig "github.com/EngStrategy/arenahub-backend-sub000/core/config"
	"github.com/EngStrategy/arenahub-backend-sub000/core/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader stores media on an S3-compatible bucket (court photos).
type Uploader struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

var instance *Uploader

func Init(cfg appconfig.StorageConfig) *Uploader {
	client := s3.New(s3.Options{
		Region:       cfg.Region,
		BaseEndpoint: aws.String(cfg.Endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	})
	instance = &Uploader{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: cfg.PublicURL,
	}
	logger.Info("Storage initialized", "bucket", cfg.Bucket, "endpoint", cfg.Endpoint)
	return instance
}

func Get() *Uploader {
	return instance
}

// Upload puts the object under keyPrefix with a timestamped name and returns
// its public URL.
func (u *Uploader) Upload(ctx context.Context, keyPrefix, filename, contentType string, body io.Reader) (string, error) {
	if u == nil {
		return "", fmt.Errorf("storage not configured")
	}

	key := fmt.Sprintf("%s/%d-%s", keyPrefix, time.Now().UnixNano(), filename)
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logger.Error("Storage:Upload", "key", key, "error", err)
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", u.publicURL, u.bucket, key), nil
}
