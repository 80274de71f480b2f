package workflow

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"brewshare/internal/blob"
)

// fakeBlob records uploads and deletes and fails on demand.
type fakeBlob struct {
	uploadErr  error
	previewErr error
	emptyURL   bool
	deleteErr  error

	uploads []string
	deletes []string
}

func (f *fakeBlob) Upload(_ context.Context, fileID string, _ io.Reader, _ int64, _ string) error {
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.uploads = append(f.uploads, fileID)
	return nil
}

func (f *fakeBlob) PreviewURL(fileID string, _ blob.PreviewOptions) (string, error) {
	if f.previewErr != nil {
		return "", f.previewErr
	}
	if f.emptyURL {
		return "", nil
	}
	return "https://cdn.example/" + fileID, nil
}

func (f *fakeBlob) Delete(_ context.Context, fileID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, fileID)
	return nil
}

func testFile() io.Reader {
	return strings.NewReader("not really a jpeg")
}

func TestUploadSuccess(t *testing.T) {
	t.Parallel()

	fb := &fakeBlob{}
	u := NewUploader(fb)

	asset, err := u.Upload(context.Background(), testFile(), 17, "image/jpeg")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if asset.ID == "" {
		t.Error("expected a non-empty asset id")
	}
	if asset.PreviewURL != "https://cdn.example/"+asset.ID {
		t.Errorf("preview URL %q does not reference the uploaded asset", asset.PreviewURL)
	}
	if len(fb.deletes) != 0 {
		t.Errorf("nothing should be deleted on success, got %v", fb.deletes)
	}
}

func TestEmptyFileIsRejected(t *testing.T) {
	t.Parallel()

	fb := &fakeBlob{}
	u := NewUploader(fb)

	_, err := u.Upload(context.Background(), strings.NewReader(""), 0, "image/jpeg")
	if !errors.Is(err, ErrUploadFailed) {
		t.Errorf("expected ErrUploadFailed, got %v", err)
	}
	if len(fb.uploads) != 0 {
		t.Errorf("an empty file must never reach the blob store, got %v", fb.uploads)
	}
}

func TestUploadFailureNeedsNoCleanup(t *testing.T) {
	t.Parallel()

	fb := &fakeBlob{uploadErr: errors.New("bucket unreachable")}
	u := NewUploader(fb)

	_, err := u.Upload(context.Background(), testFile(), 17, "image/jpeg")
	if !errors.Is(err, ErrUploadFailed) {
		t.Errorf("expected ErrUploadFailed, got %v", err)
	}
	if len(fb.deletes) != 0 {
		t.Errorf("no asset was created, nothing to delete, got %v", fb.deletes)
	}
}

func TestPreviewFailureDeletesAssetOnce(t *testing.T) {
	t.Parallel()

	fb := &fakeBlob{previewErr: errors.New("transform service down")}
	u := NewUploader(fb)

	asset, err := u.Upload(context.Background(), testFile(), 17, "image/jpeg")
	if !errors.Is(err, ErrPreviewDerivation) {
		t.Fatalf("expected ErrPreviewDerivation, got %v", err)
	}
	if asset.ID != "" {
		t.Errorf("no asset id may leak to the caller, got %q", asset.ID)
	}

	if len(fb.uploads) != 1 {
		t.Fatalf("expected one upload, got %v", fb.uploads)
	}
	if len(fb.deletes) != 1 || fb.deletes[0] != fb.uploads[0] {
		t.Errorf("expected the uploaded asset deleted exactly once, uploads=%v deletes=%v", fb.uploads, fb.deletes)
	}
}

func TestEmptyPreviewURLCountsAsFailure(t *testing.T) {
	t.Parallel()

	fb := &fakeBlob{emptyURL: true}
	u := NewUploader(fb)

	_, err := u.Upload(context.Background(), testFile(), 17, "image/jpeg")
	if !errors.Is(err, ErrPreviewDerivation) {
		t.Errorf("expected ErrPreviewDerivation, got %v", err)
	}
	if len(fb.deletes) != 1 {
		t.Errorf("expected the uploaded asset deleted, got deletes=%v", fb.deletes)
	}
}

func TestFailingCompensationIsReported(t *testing.T) {
	t.Parallel()

	fb := &fakeBlob{previewErr: errors.New("transform service down"), deleteErr: errors.New("delete refused")}
	u := NewUploader(fb)

	_, err := u.Upload(context.Background(), testFile(), 17, "image/jpeg")
	if !errors.Is(err, ErrPreviewDerivation) {
		t.Errorf("expected ErrPreviewDerivation, got %v", err)
	}
	if !errors.Is(err, ErrCompensationFailed) {
		t.Errorf("expected ErrCompensationFailed to be joined, got %v", err)
	}
}
