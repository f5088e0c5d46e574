package rates

import "errors"

var (
	// ErrMalformedRecord reports a rate or number record that failed to
	// parse. Loads abort on the first malformed record.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrDuplicatePrefix reports a prefix appearing twice in one carrier's
	// source while the Reject policy is in effect.
	ErrDuplicatePrefix = errors.New("duplicate prefix")

	// ErrBackendUnavailable reports a backend whose underlying file or
	// database could not be opened.
	ErrBackendUnavailable = errors.New("backend unavailable")
)
