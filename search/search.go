// Package search finds pattern matches across decoded file contents.
//
// The core scan is a synchronous, deterministic pass over an ordered
// file collection. [Session] wraps the same scan in a cancellable
// background task with progress reporting; [Run] exposes it directly
// for callers that want inline execution.
package search

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/meigma/crx/pattern"
)

// File is one searchable input: a caller-assigned identifier, a
// display path, and the decoded content bytes. The scan only reads
// Content; it never mutates shared inputs.
type File struct {
	ID      string
	Path    string
	Content []byte
}

// Match is a single occurrence of the pattern within a file.
// Line and Column are zero-based; Column is a byte offset within the
// line. Before and After hold up to the configured number of context
// lines, clamped at file boundaries.
type Match struct {
	Line     int
	Column   int
	LineText string
	Before   []string
	After    []string
}

// FileResult collects every match found in one file.
type FileResult struct {
	FileID  string
	Path    string
	Matches []Match
}

// Stats aggregates a completed scan.
type Stats struct {
	TotalMatches      int
	MatchedFiles      int
	AvgMatchesPerFile float64
}

// Result is the terminal output of a scan: one FileResult per file
// with at least one match, ordered by descending match count with
// ties broken by ascending path.
type Result struct {
	Files []FileResult
	Stats Stats
}

// Progress reports scan advancement at file-boundary granularity.
type Progress struct {
	FilesProcessed int
	TotalFiles     int
	MatchesFound   int
	CurrentPath    string
}

// Context line limits.
const (
	DefaultContextLines = 2
	MaxContextLines     = 10
)

// Option configures a single scan.
type Option func(*config)

type config struct {
	contextLines int
	include      []string
	exclude      []string
}

func newConfig(opts []Option) config {
	cfg := config{contextLines: DefaultContextLines}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithContextLines sets how many lines of context are captured around
// each match. Values are clamped to 0..MaxContextLines.
func WithContextLines(n int) Option {
	return func(c *config) {
		if n < 0 {
			n = 0
		}
		if n > MaxContextLines {
			n = MaxContextLines
		}
		c.contextLines = n
	}
}

// WithInclude restricts the scan to files whose path matches at least
// one of the given doublestar globs.
func WithInclude(globs ...string) Option {
	return func(c *config) {
		c.include = append(c.include, globs...)
	}
}

// WithExclude skips files whose path matches any of the given
// doublestar globs. Exclusions are applied after inclusions.
func WithExclude(globs ...string) Option {
	return func(c *config) {
		c.exclude = append(c.exclude, globs...)
	}
}

// Run scans files synchronously and returns the sorted results.
//
// Cancellation is honored at file boundaries through ctx. Binary files
// are skipped without error but still count as processed.
func Run(ctx context.Context, pat *pattern.Content, files []File, opts ...Option) (*Result, error) {
	return scan(ctx, pat, files, newConfig(opts), nil)
}

// scan is the single scan implementation shared by Run and Session.
// onProgress, when non-nil, is invoked after each file completes.
func scan(ctx context.Context, pat *pattern.Content, files []File, cfg config, onProgress func(Progress)) (*Result, error) {
	if err := validateGlobs(cfg); err != nil {
		return nil, err
	}

	selected := selectFiles(files, cfg)
	total := len(selected)

	var results []FileResult
	found := 0
	for i, f := range selected {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if matches := scanFile(pat, f, cfg.contextLines); len(matches) > 0 {
			results = append(results, FileResult{FileID: f.ID, Path: f.Path, Matches: matches})
			found += len(matches)
		}

		if onProgress != nil {
			onProgress(Progress{
				FilesProcessed: i + 1,
				TotalFiles:     total,
				MatchesFound:   found,
				CurrentPath:    f.Path,
			})
		}
	}

	sortResults(results)
	return &Result{Files: results, Stats: computeStats(results)}, nil
}

func validateGlobs(cfg config) error {
	for _, g := range slices.Concat(cfg.include, cfg.exclude) {
		if !doublestar.ValidatePattern(g) {
			return fmt.Errorf("%w: bad glob %q", pattern.ErrInvalidPattern, g)
		}
	}
	return nil
}

func selectFiles(files []File, cfg config) []File {
	if len(cfg.include) == 0 && len(cfg.exclude) == 0 {
		return files
	}
	selected := make([]File, 0, len(files))
	for _, f := range files {
		if selectPath(f.Path, cfg) {
			selected = append(selected, f)
		}
	}
	return selected
}

func selectPath(path string, cfg config) bool {
	if len(cfg.include) > 0 && !matchAny(cfg.include, path) {
		return false
	}
	return !matchAny(cfg.exclude, path)
}

func matchAny(globs []string, path string) bool {
	for _, g := range globs {
		if ok, err := doublestar.Match(g, path); err == nil && ok {
			return true
		}
	}
	return false
}

// scanFile finds every non-overlapping match in one file. Binary
// content returns no matches.
func scanFile(pat *pattern.Content, f File, contextLines int) []Match {
	if looksBinary(f.Content) {
		return nil
	}

	lines := strings.Split(string(f.Content), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	var matches []Match
	for i, line := range lines {
		spans := pat.Spans(line)
		if len(spans) == 0 {
			continue
		}
		before := lines[max(0, i-contextLines):i]
		after := lines[i+1 : min(len(lines), i+1+contextLines)]
		for _, span := range spans {
			matches = append(matches, Match{
				Line:     i,
				Column:   span[0],
				LineText: line,
				Before:   before,
				After:    after,
			})
		}
	}
	return matches
}

// Binary detection heuristic: any null byte anywhere, or too few
// printable bytes in the leading sample, marks the file binary.
const (
	binarySampleSize  = 512
	minPrintableRatio = 0.75
)

func looksBinary(content []byte) bool {
	if len(content) == 0 {
		return false
	}
	if bytes.IndexByte(content, 0) >= 0 {
		return true
	}

	sample := content
	if len(sample) > binarySampleSize {
		sample = sample[:binarySampleSize]
	}
	printable := 0
	for _, b := range sample {
		if b >= 0x20 || b == '\t' || b == '\n' || b == '\r' {
			printable++
		}
	}
	return float64(printable) < minPrintableRatio*float64(len(sample))
}

// sortResults orders results by descending match count, ties by
// ascending path. The order is deterministic for any input order.
func sortResults(results []FileResult) {
	slices.SortFunc(results, func(a, b FileResult) int {
		if len(a.Matches) != len(b.Matches) {
			if len(a.Matches) > len(b.Matches) {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Path, b.Path)
	})
}

func computeStats(results []FileResult) Stats {
	stats := Stats{MatchedFiles: len(results)}
	for _, r := range results {
		stats.TotalMatches += len(r.Matches)
	}
	if stats.MatchedFiles > 0 {
		stats.AvgMatchesPerFile = float64(stats.TotalMatches) / float64(stats.MatchedFiles)
	}
	return stats
}
