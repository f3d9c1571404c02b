// Package archive enumerates and decodes the members of the compressed
// container embedded in a package payload.
//
// Member metadata comes from the container's central directory; member
// content is never decoded eagerly. [Reader.Content] decodes a single
// member on demand and may be called any number of times per member.
package archive

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/meigma/crx/internal/pathutil"
	"github.com/meigma/crx/internal/sizing"
)

// Errors returned by archive operations.
var (
	// ErrCorruptArchive is returned when the container structure or a
	// member's compressed data cannot be decoded.
	ErrCorruptArchive = errors.New("archive: corrupt archive")

	// ErrNotFound is returned when a requested member path does not
	// exist in the archive. A lookup miss is a normal outcome, not a
	// fault.
	ErrNotFound = errors.New("archive: entry not found")

	// ErrSizeOverflow is returned when a member's declared size exceeds
	// the configured limit.
	ErrSizeOverflow = errors.New("archive: size overflow")

	// ErrTooManyFiles is returned when the member count exceeds the
	// configured limit.
	ErrTooManyFiles = errors.New("archive: too many files")
)

// DefaultMaxFileSize is the default maximum per-member size (256MB).
const DefaultMaxFileSize = 256 << 20

// Entry describes one archive member.
//
// Sizes and the modification time come from the container's own
// directory record; they are not verified until the member is decoded.
type Entry struct {
	Path             string
	IsDir            bool
	UncompressedSize uint64
	CompressedSize   uint64
	Modified         time.Time
}

// Option configures a Reader.
type Option func(*Reader)

// WithMaxFileSize limits the maximum declared size of a decodable
// member. Set limit to 0 to disable the limit.
func WithMaxFileSize(limit uint64) Option {
	return func(r *Reader) {
		r.maxFileSize = limit
	}
}

// WithMaxFiles limits the number of members the archive may contain.
// Set limit to 0 to disable the limit.
func WithMaxFiles(limit int) Option {
	return func(r *Reader) {
		r.maxFiles = limit
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reader) {
		r.logger = logger
	}
}

// Reader provides access to the members of a validated archive payload.
//
// The entry list is built once when the archive is opened and is
// immutable afterward; a Reader is safe for concurrent use.
type Reader struct {
	entries     []Entry
	members     map[string]*zip.File
	maxFileSize uint64
	maxFiles    int
	logger      *slog.Logger
}

// log returns the logger, falling back to a discard logger if nil.
func (r *Reader) log() *slog.Logger {
	if r.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.logger
}

// Read opens the archive container held in payload and enumerates its
// members.
//
// Directory markers are excluded from the entry list; tree construction
// synthesizes directories from member paths instead. Malformed
// container structure fails with ErrCorruptArchive.
func Read(payload []byte, opts ...Option) (*Reader, error) {
	r := &Reader{maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(r)
	}

	zr, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}
	if r.maxFiles > 0 && len(zr.File) > r.maxFiles {
		return nil, fmt.Errorf("%w: %d members exceeds limit %d", ErrTooManyFiles, len(zr.File), r.maxFiles)
	}

	r.entries = make([]Entry, 0, len(zr.File))
	r.members = make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		path := pathutil.Normalize(f.Name)
		if path == "" {
			continue
		}
		r.entries = append(r.entries, Entry{
			Path:             path,
			UncompressedSize: f.UncompressedSize64,
			CompressedSize:   f.CompressedSize64,
			Modified:         f.Modified,
		})
		r.members[path] = f
	}

	r.log().Debug("archive opened", "members", len(zr.File), "files", len(r.entries))
	return r, nil
}

// Entries returns the archive's file members in container order.
// The returned slice is a fresh copy on every call.
func (r *Reader) Entries() []Entry {
	return slices.Clone(r.entries)
}

// Len returns the number of file members.
func (r *Reader) Len() int {
	return len(r.entries)
}

// Content decodes and returns the named member's bytes.
//
// The path is normalized before lookup, so "dir//file" and "/dir/file"
// address the same member. Unknown paths fail with ErrNotFound. The
// decode is bounded by the member's declared size: content past the
// declaration, a failed checksum, or undecodable compressed data all
// fail with ErrCorruptArchive.
func (r *Reader) Content(path string) ([]byte, error) {
	f, ok := r.members[pathutil.Normalize(path)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	if r.maxFileSize > 0 && f.UncompressedSize64 > r.maxFileSize {
		return nil, fmt.Errorf("%w: %s declares %d bytes (limit %d)", ErrSizeOverflow, path, f.UncompressedSize64, r.maxFileSize)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrCorruptArchive, path, err)
	}
	defer rc.Close()

	overflow := fmt.Errorf("%w: %s larger than declared size %d", ErrCorruptArchive, path, f.UncompressedSize64)
	content, err := sizing.ReadAllWithLimit(rc, f.UncompressedSize64, overflow)
	if err != nil {
		if errors.Is(err, ErrCorruptArchive) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrCorruptArchive, path, err)
	}
	return content, nil
}
