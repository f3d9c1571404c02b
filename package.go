package crx

import (
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/meigma/crx/archive"
	"github.com/meigma/crx/tree"
)

// Option configures Parse.
type Option func(*Package)

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Package) {
		p.logger = logger
	}
}

// WithMaxFileSize limits the maximum declared size of a decodable
// member. Set limit to 0 to disable the limit. The default is
// archive.DefaultMaxFileSize.
func WithMaxFileSize(limit uint64) Option {
	return func(p *Package) {
		p.maxFileSize = limit
		p.maxFileSizeSet = true
	}
}

// WithMaxFiles limits the number of members the archive may contain.
// Set limit to 0 to disable the limit.
func WithMaxFiles(limit int) Option {
	return func(p *Package) {
		p.maxFiles = limit
	}
}

// WithCacheSize sets how many decoded member contents ReadFile keeps in
// its LRU cache. Set size to 0 to disable caching. The default is
// DefaultCacheSize.
func WithCacheSize(size int) Option {
	return func(p *Package) {
		p.cacheSize = size
	}
}

// DefaultCacheSize is the default number of decoded members ReadFile
// keeps cached.
const DefaultCacheSize = 64

// Package is a fully decoded package: parsed header, enumerated
// archive, and assembled tree.
//
// The header, entry list, and tree are built once by Parse and
// read-only afterward; a Package is safe for concurrent use.
type Package struct {
	header Header
	reader *archive.Reader
	root   *tree.Node

	maxFileSize    uint64
	maxFileSizeSet bool
	maxFiles       int
	cacheSize      int

	cache     *lru.Cache[string, []byte] // nil = no caching
	readGroup singleflight.Group
	logger    *slog.Logger

	summary summaryState
}

// log returns the logger, falling back to a discard logger if nil.
func (p *Package) log() *slog.Logger {
	if p.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.logger
}

// Parse decodes a complete package: header, payload, archive directory,
// and tree.
//
// The input buffer is never mutated and is not retained past the call;
// the payload is copied before the archive is opened. Failures carry
// one of the package's sentinel errors so callers can tell a bad header
// from a corrupt archive.
func Parse(data []byte, opts ...Option) (*Package, error) {
	p := &Package{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(p)
	}

	start := time.Now()
	header, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	p.header = header

	payload, err := ExtractPayload(data, header)
	if err != nil {
		return nil, err
	}

	archiveOpts := []archive.Option{archive.WithLogger(p.logger)}
	if p.maxFileSizeSet {
		archiveOpts = append(archiveOpts, archive.WithMaxFileSize(p.maxFileSize))
	}
	if p.maxFiles > 0 {
		archiveOpts = append(archiveOpts, archive.WithMaxFiles(p.maxFiles))
	}
	p.reader, err = archive.Read(payload, archiveOpts...)
	if err != nil {
		return nil, err
	}

	p.root = tree.Build(treeEntries(p.reader.Entries()))

	if p.cacheSize > 0 {
		p.cache, err = lru.New[string, []byte](p.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("crx: create cache: %w", err)
		}
	}

	p.log().Debug("package parsed",
		"version", header.Version,
		"payload_offset", header.PayloadOffset,
		"files", p.reader.Len(),
		"elapsed", time.Since(start))
	return p, nil
}

// treeEntries converts archive entries to tree builder input.
func treeEntries(entries []archive.Entry) []tree.Entry {
	out := make([]tree.Entry, len(entries))
	for i, e := range entries {
		out[i] = tree.Entry{
			Path:           e.Path,
			Dir:            e.IsDir,
			Size:           e.UncompressedSize,
			CompressedSize: e.CompressedSize,
			Modified:       e.Modified,
		}
	}
	return out
}

// Header returns the parsed package header.
func (p *Package) Header() Header {
	return p.header
}

// Root returns the root of the assembled tree. The tree is read-only
// and may be shared freely across goroutines.
func (p *Package) Root() *tree.Node {
	return p.root
}

// Entries returns the archive's file members in container order.
// The returned slice is a fresh copy on every call.
func (p *Package) Entries() []archive.Entry {
	return p.reader.Entries()
}

// Files returns all non-directory nodes in tree pre-order.
func (p *Package) Files() []*tree.Node {
	return p.root.Files()
}

// Find returns the tree node at the given path, normalizing it first.
func (p *Package) Find(path string) (*tree.Node, bool) {
	return p.root.Find(path)
}

// Len returns the number of file members in the package.
func (p *Package) Len() int {
	return p.reader.Len()
}

// readFile decodes the named member's content through the LRU cache
// with singleflight deduplication.
func (p *Package) readFile(path string) ([]byte, error) {
	path = tree.NormalizePath(path)

	if p.cache == nil {
		return p.reader.Content(path)
	}

	if content, ok := p.cache.Get(path); ok {
		p.log().Debug("readfile cache hit", "path", path)
		return content, nil
	}
	p.log().Debug("readfile cache miss", "path", path)

	result, err, _ := p.readGroup.Do(path, func() (any, error) {
		// Double-check cache
		if content, ok := p.cache.Get(path); ok {
			return content, nil
		}

		content, err := p.reader.Content(path)
		if err != nil {
			return nil, err
		}
		p.cache.Add(path, content)
		return content, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil //nolint:errcheck // type assertion always succeeds when err is nil
}
