package crx

import (
	"errors"

	"github.com/meigma/crx/archive"
	"github.com/meigma/crx/pattern"
)

// Format errors from header parsing and payload extraction. Each one is
// terminal for the operation it came from; none is retried internally.
var (
	// ErrBadMagic is returned when the buffer does not start with the
	// package signature "Cr24".
	ErrBadMagic = errors.New("crx: bad magic")

	// ErrUnsupportedVersion is returned when the header declares a
	// format version other than 2 or 3.
	ErrUnsupportedVersion = errors.New("crx: unsupported version")

	// ErrTruncatedHeader is returned when declared header lengths reach
	// past the end of the buffer.
	ErrTruncatedHeader = errors.New("crx: truncated header")

	// ErrNotArchive is returned when the payload region does not start
	// with the archive signature "PK".
	ErrNotArchive = errors.New("crx: payload is not an archive")
)

// Errors re-exported from archive.
var (
	// ErrCorruptArchive is returned when the archive container or a
	// member's compressed data cannot be decoded.
	ErrCorruptArchive = archive.ErrCorruptArchive

	// ErrNotFound is returned when a requested member path does not
	// exist in the archive.
	ErrNotFound = archive.ErrNotFound

	// ErrSizeOverflow is returned when a member's declared size exceeds
	// the configured limit.
	ErrSizeOverflow = archive.ErrSizeOverflow

	// ErrTooManyFiles is returned when the member count exceeds the
	// configured limit.
	ErrTooManyFiles = archive.ErrTooManyFiles
)

// Errors re-exported from pattern.
var (
	// ErrInvalidPattern is returned when a filter or search string
	// cannot be compiled.
	ErrInvalidPattern = pattern.ErrInvalidPattern
)
