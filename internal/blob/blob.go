// Package blob stores uploaded binary assets in an S3-compatible bucket and
// derives previewable URLs for them. Two drivers are available: the AWS SDK
// client and minio-go, selected by configuration.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"brewshare/internal/config"
)

// keyPrefix namespaces every object written by this service inside the
// bucket.
const keyPrefix = "brewshare"

type PreviewOptions struct {
	Width   int
	Height  int
	Gravity string
	Quality int
}

type Store interface {
	Upload(ctx context.Context, fileID string, r io.Reader, size int64, contentType string) error
	// PreviewURL derives a URL for a rendered version of a stored asset.
	// It is a pure function of its inputs and never performs a network
	// round trip.
	PreviewURL(fileID string, opts PreviewOptions) (string, error)
	Delete(ctx context.Context, fileID string) error
}

// New picks the driver named in the configuration.
func New(cfg config.Config) (Store, error) {
	switch cfg.BlobDriver {
	case config.DriverS3:
		return NewS3Store(cfg)
	case config.DriverMinio:
		return NewMinioStore(cfg)
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.BlobDriver)
	}
}

func objectKey(fileID string) string {
	return keyPrefix + "/" + fileID
}

func previewURL(publicEndpoint, bucket, fileID string, opts PreviewOptions) (string, error) {
	if fileID == "" {
		return "", errors.New("empty file id")
	}
	if publicEndpoint == "" {
		return "", errors.New("no public endpoint configured")
	}

	params := url.Values{}
	params.Set("width", strconv.Itoa(opts.Width))
	params.Set("height", strconv.Itoa(opts.Height))
	params.Set("gravity", opts.Gravity)
	params.Set("quality", strconv.Itoa(opts.Quality))

	base := strings.TrimSuffix(publicEndpoint, "/")

	return strings.Join([]string{
		base,
		bucket,
		objectKey(fileID),
	}, "/") + "?" + params.Encode(), nil
}
