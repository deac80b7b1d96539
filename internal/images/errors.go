package images

import "errors"

var (
	// ErrNotFound means no record matched the id for this user.
	ErrNotFound = errors.New("image not found")

	// ErrInvalidInput covers malformed or missing request input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType rejects files outside the image allowlist.
	ErrUnsupportedType = errors.New("unsupported image type")

	// ErrRunInFlight rejects a second enhancement while one is processing.
	ErrRunInFlight = errors.New("enhancement already in progress")

	// ErrBackendUnavailable means the health probe failed before any work.
	ErrBackendUnavailable = errors.New("enhancement server is not reachable")
)
