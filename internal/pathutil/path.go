// Package pathutil provides path manipulation for slash-separated archive paths.
package pathutil

import "strings"

// Normalize converts a path to its canonical root-relative form:
// backslash separators mapped to '/', leading and trailing slashes
// stripped, consecutive slashes collapsed, and "." segments dropped.
// The root is the empty string.
func Normalize(p string) string {
	segs := Segments(p)
	if len(segs) == 0 {
		return ""
	}
	return strings.Join(segs, "/")
}

// Segments splits p on '/' (treating '\\' as a separator too) and
// drops empty and "." segments. ".." segments are preserved, not
// resolved.
func Segments(p string) []string {
	if strings.ContainsRune(p, '\\') {
		p = strings.ReplaceAll(p, "\\", "/")
	}
	parts := strings.Split(p, "/")
	result := parts[:0] // reuse backing array
	for _, part := range parts {
		if part != "" && part != "." {
			result = append(result, part)
		}
	}
	return result
}
