package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"brewshare/internal/config"
)

type S3Store struct {
	client         *s3.S3
	bucket         string
	publicEndpoint string
}

func NewS3Store(cfg config.Config) (*S3Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(cfg.BucketRegion),
		Endpoint:    aws.String(cfg.BucketEndpoint),
		Credentials: credentials.NewStaticCredentials(cfg.BucketAccessKey, cfg.BucketSecretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("creating aws session: %w", err)
	}

	return &S3Store{
		client:         s3.New(sess),
		bucket:         cfg.BucketName,
		publicEndpoint: cfg.BucketPublicEndpoint,
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, fileID string, r io.Reader, size int64, contentType string) error {
	// PutObject wants a ReadSeeker, so buffer the file contents first.
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(fileID)),
		Body:   bytes.NewReader(buf.Bytes()),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("uploading file: %w", err)
	}

	return nil
}

func (s *S3Store) PreviewURL(fileID string, opts PreviewOptions) (string, error) {
	return previewURL(s.publicEndpoint, s.bucket, fileID, opts)
}

func (s *S3Store) Delete(ctx context.Context, fileID string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey(fileID)),
	})
	if err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}

	return nil
}
