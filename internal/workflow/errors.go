// Package workflow composes the multi-step remote operations of the
// service: uploading an asset and deriving its preview, creating or
// updating a post with its image, and account/profile/session management.
// Neither store offers transactions across steps, so each workflow carries
// explicit compensating deletes for the steps that already committed.
package workflow

import "errors"

// Sentinel failure kinds. Workflows wrap the underlying error with one of
// these so callers can branch on cause with errors.Is.
var (
	ErrUploadFailed       = errors.New("upload failed")
	ErrPreviewDerivation  = errors.New("preview derivation failed")
	ErrDocumentWrite      = errors.New("document write failed")
	ErrCompensationFailed = errors.New("compensation failed")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownReference   = errors.New("unknown reference id")
)
