// Package pattern compiles user-supplied filter and search strings into
// reusable matchers.
//
// Two matcher families are provided: name filters ([Name]) that test
// file paths against glob-like or regular-expression patterns, and
// content patterns ([Content]) that locate match spans inside lines of
// text. Compiled matchers are immutable and safe for concurrent use.
package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidPattern is returned when a filter or search string cannot
// be compiled. The wrapped message describes what was wrong.
var ErrInvalidPattern = errors.New("pattern: invalid pattern")

// NameOptions controls how a name filter string is interpreted.
type NameOptions struct {
	// Regex treats the text as a regular expression instead of a glob.
	Regex bool
	// CaseSensitive disables the default case-insensitive matching.
	CaseSensitive bool
}

// Name matches file paths against a compiled name filter.
//
// The match is a contains test: the pattern may occur anywhere in the
// candidate path.
type Name struct {
	re   *regexp.Regexp
	raw  string
	opts NameOptions
}

// CompileName compiles a glob-like or regular-expression filter.
//
// Glob syntax: '*' matches any run of characters except '/', '**'
// matches any run including '/', and '?' matches exactly one
// character. With opts.Regex the text is used as a regular expression
// body unchanged. Matching is case-insensitive unless
// opts.CaseSensitive is set.
func CompileName(text string, opts NameOptions) (*Name, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: empty filter", ErrInvalidPattern)
	}

	body := text
	if !opts.Regex {
		body = globToRegexp(text)
	}
	if !opts.CaseSensitive {
		body = "(?i)" + body
	}

	re, err := regexp.Compile(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return &Name{re: re, raw: text, opts: opts}, nil
}

// Match reports whether the pattern occurs anywhere in path.
func (p *Name) Match(path string) bool {
	return p.re.MatchString(path)
}

// String returns the original filter text.
func (p *Name) String() string { return p.raw }

// Options returns the options the filter was compiled with.
func (p *Name) Options() NameOptions { return p.opts }

// globToRegexp translates glob syntax into a regular expression body.
// All regexp metacharacters outside the glob tokens are escaped.
func globToRegexp(glob string) string {
	var sb strings.Builder
	for i := 0; i < len(glob); i++ {
		switch glob[i] {
		case '*':
			if i+1 < len(glob) && glob[i+1] == '*' {
				sb.WriteString(".*")
				i++
			} else {
				sb.WriteString(`[^/]*`)
			}
		case '?':
			sb.WriteByte('.')
		default:
			sb.WriteString(regexp.QuoteMeta(glob[i : i+1]))
		}
	}
	return sb.String()
}

// ContentOptions controls how a content search query is interpreted.
type ContentOptions struct {
	// CaseSensitive disables the default case-insensitive matching.
	CaseSensitive bool
	// WholeWord wraps the query in word-boundary assertions.
	WholeWord bool
	// Regex treats the query as a regular expression instead of a
	// literal string. Invalid expressions fail compilation; the query
	// is never silently reinterpreted as a literal.
	Regex bool
}

// Content locates occurrences of a compiled search query within lines
// of text.
type Content struct {
	re    *regexp.Regexp
	query string
	opts  ContentOptions
}

// CompileContent compiles a content search query.
//
// Literal queries have regexp metacharacters escaped before
// compilation. opts.WholeWord surrounds the query with word-boundary
// assertions; opts.Regex uses the raw query as the pattern body.
func CompileContent(query string, opts ContentOptions) (*Content, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", ErrInvalidPattern)
	}

	body := query
	if !opts.Regex {
		body = regexp.QuoteMeta(query)
	}
	if opts.WholeWord {
		body = `\b(?:` + body + `)\b`
	}
	if !opts.CaseSensitive {
		body = "(?i)" + body
	}

	re, err := regexp.Compile(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return &Content{re: re, query: query, opts: opts}, nil
}

// Spans returns the byte offsets of every non-overlapping match in
// line, as [start, end) pairs in left-to-right order. It returns nil
// when there is no match.
func (p *Content) Spans(line string) [][]int {
	return p.re.FindAllStringIndex(line, -1)
}

// MatchString reports whether the query matches anywhere in line.
func (p *Content) MatchString(line string) bool {
	return p.re.MatchString(line)
}

// String returns the original query text.
func (p *Content) String() string { return p.query }

// Options returns the options the query was compiled with.
func (p *Content) Options() ContentOptions { return p.opts }
