package tree

import "github.com/meigma/crx/internal/pathutil"

// NormalizePath converts a caller-provided path to the root-relative,
// '/'-joined form used by Node.Path.
//
// It performs the following transformations:
//   - Maps backslash separators: "dir\\file.txt" → "dir/file.txt"
//   - Strips leading slashes: "/assets/icon.png" → "assets/icon.png"
//   - Strips trailing slashes: "assets/" → "assets"
//   - Collapses consecutive slashes: "assets//icon.png" → "assets/icon.png"
//   - Drops "." segments: "./assets" → "assets"
//   - Maps the empty string and "." to the root path
//
// The returned path is suitable for use with Find and matches the Path
// field of the node it addresses.
func NormalizePath(p string) string {
	return pathutil.Normalize(p)
}

// segments splits p on '/' and drops empty segments produced by
// leading, trailing, or doubled separators.
func segments(p string) []string {
	return pathutil.Segments(p)
}
