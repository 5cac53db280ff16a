package domain

import "errors"

// Error taxonomy for the attendee lifecycle. Services wrap these sentinels
// with context; the HTTP layer converts them into the uniform result
// envelope, so no store fault ever escapes as an unhandled error.
var (
	// ErrValidation marks input still missing a required field after
	// normalization and defaulting.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a miss on lookup by id or QR payload.
	ErrNotFound = errors.New("not found")

	// ErrStoreRead marks a connectivity or query failure while reading
	// from the external store.
	ErrStoreRead = errors.New("store read failed")

	// ErrStoreWrite marks a connectivity or constraint failure while
	// writing to the external store.
	ErrStoreWrite = errors.New("store write failed")

	// ErrBackupFailed marks a failed tombstone write; only delete flows
	// return it, and the live row is left untouched when they do.
	ErrBackupFailed = errors.New("backup failed")
)
