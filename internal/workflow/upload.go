package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"brewshare/internal/blob"
)

// Every stored image is previewed with the same transformation.
var previewOptions = blob.PreviewOptions{
	Width:   2000,
	Height:  2000,
	Gravity: "top",
	Quality: 100,
}

// Asset is a stored binary plus the preview URL derived for it. The two
// always travel together; no post document ever holds one without the
// other.
type Asset struct {
	ID         string
	PreviewURL string
}

// Uploader stores a file and derives its preview URL, deleting the file
// again when derivation fails.
type Uploader struct {
	blob  blob.Store
	newID func() string
}

func NewUploader(store blob.Store) *Uploader {
	return &Uploader{blob: store, newID: uuid.NewString}
}

// Upload writes the file under a fresh id and derives the preview URL.
// An empty file or an upload failure surfaces as ErrUploadFailed with
// nothing to clean up. A derivation failure (or empty URL) deletes the
// just-uploaded file before surfacing ErrPreviewDerivation, so no
// unreachable blob survives the call; if that delete also fails,
// ErrCompensationFailed is joined on.
func (u *Uploader) Upload(ctx context.Context, r io.Reader, size int64, contentType string) (Asset, error) {
	if size <= 0 {
		return Asset{}, fmt.Errorf("%w: empty file", ErrUploadFailed)
	}

	id := u.newID()

	if err := u.blob.Upload(ctx, id, r, size, contentType); err != nil {
		return Asset{}, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	previewURL, err := u.blob.PreviewURL(id, previewOptions)
	if err == nil && previewURL == "" {
		err = errors.New("empty preview URL")
	}
	if err != nil {
		failure := fmt.Errorf("%w: %v", ErrPreviewDerivation, err)
		if derr := u.blob.Delete(ctx, id); derr != nil {
			return Asset{}, errors.Join(failure, fmt.Errorf("%w: %v", ErrCompensationFailed, derr))
		}
		return Asset{}, failure
	}

	return Asset{ID: id, PreviewURL: previewURL}, nil
}

// Delete removes a stored asset.
func (u *Uploader) Delete(ctx context.Context, fileID string) error {
	return u.blob.Delete(ctx, fileID)
}
