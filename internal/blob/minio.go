package blob

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"brewshare/internal/config"
)

type MinioStore struct {
	client         *minio.Client
	bucket         string
	publicEndpoint string
}

func NewMinioStore(cfg config.Config) (*MinioStore, error) {
	endpoint, secure := splitScheme(cfg.BucketEndpoint)

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.BucketAccessKey, cfg.BucketSecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("creating minio client: %w", err)
	}

	// Create the bucket if it doesn't exist.
	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("checking bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("creating bucket: %w", err)
		}
	}

	return &MinioStore{
		client:         client,
		bucket:         cfg.BucketName,
		publicEndpoint: cfg.BucketPublicEndpoint,
	}, nil
}

func (s *MinioStore) Upload(ctx context.Context, fileID string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectKey(fileID), r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("uploading file: %w", err)
	}

	return nil
}

func (s *MinioStore) PreviewURL(fileID string, opts PreviewOptions) (string, error) {
	return previewURL(s.publicEndpoint, s.bucket, fileID, opts)
}

func (s *MinioStore) Delete(ctx context.Context, fileID string) error {
	err := s.client.RemoveObject(ctx, s.bucket, objectKey(fileID), minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}

	return nil
}

// splitScheme strips an http/https scheme off a configured endpoint;
// minio-go wants a bare host and a secure flag.
func splitScheme(endpoint string) (string, bool) {
	if rest, ok := strings.CutPrefix(endpoint, "https://"); ok {
		return rest, true
	}
	if rest, ok := strings.CutPrefix(endpoint, "http://"); ok {
		return rest, false
	}
	return endpoint, false
}
