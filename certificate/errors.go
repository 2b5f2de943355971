package certificate

import "errors"

// Fatal pipeline errors. Controllers map these onto HTTP statuses; anything
// else coming out of the service is a plain database error.
var (
	// ErrTemplateAsset means the background template could not be loaded.
	// This is a deployment defect, not a per-request transient.
	ErrTemplateAsset = errors.New("certificate template asset missing or corrupt")

	// ErrNotFound means no certificate exists for the given ID.
	ErrNotFound = errors.New("certificate not found")

	// ErrNotOwner means the requester is neither the owning student nor an admin.
	ErrNotOwner = errors.New("not authorized to access this certificate")

	// ErrDecrypt means the stored blob failed authenticated decryption.
	// Corrupted bytes are never returned to the caller.
	ErrDecrypt = errors.New("certificate decryption failed")

	// ErrBadFormat means the requested output format is not supported.
	ErrBadFormat = errors.New("unsupported certificate format")
)
