package pattern

import (
	"fmt"
	"path"
	"slices"
	"strings"
)

// Category classifies a file path into one of a fixed set of content
// groups used for filtering.
type Category uint8

const (
	// CategoryOther is the fallback for unrecognized files.
	CategoryOther Category = iota
	// CategoryImage covers raster and vector image formats.
	CategoryImage
	// CategoryCode covers script, module, and data files.
	CategoryCode
	// CategoryMarkup covers markup and stylesheet formats.
	CategoryMarkup
	// CategoryLocale covers translation files (the _locales layout).
	CategoryLocale
)

// String returns a stable lowercase label for the category.
func (c Category) String() string {
	switch c {
	case CategoryImage:
		return "image"
	case CategoryCode:
		return "code"
	case CategoryMarkup:
		return "markup"
	case CategoryLocale:
		return "locale"
	default:
		return "other"
	}
}

// ParseCategory converts a label produced by [Category.String] back
// into a Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(s) {
	case "other":
		return CategoryOther, nil
	case "image":
		return CategoryImage, nil
	case "code":
		return CategoryCode, nil
	case "markup":
		return CategoryMarkup, nil
	case "locale":
		return CategoryLocale, nil
	}
	return CategoryOther, fmt.Errorf("%w: unknown category %q", ErrInvalidPattern, s)
}

// categoryByExt maps lowercase file extensions to categories.
var categoryByExt = map[string]Category{
	// Images
	".png":  CategoryImage,
	".jpg":  CategoryImage,
	".jpeg": CategoryImage,
	".gif":  CategoryImage,
	".webp": CategoryImage,
	".svg":  CategoryImage,
	".ico":  CategoryImage,
	".bmp":  CategoryImage,
	".avif": CategoryImage,

	// Code
	".js":     CategoryCode,
	".mjs":    CategoryCode,
	".cjs":    CategoryCode,
	".jsx":    CategoryCode,
	".ts":     CategoryCode,
	".tsx":    CategoryCode,
	".json":   CategoryCode,
	".wasm":   CategoryCode,
	".coffee": CategoryCode,

	// Markup and styles
	".html":  CategoryMarkup,
	".htm":   CategoryMarkup,
	".xhtml": CategoryMarkup,
	".xml":   CategoryMarkup,
	".css":   CategoryMarkup,
	".scss":  CategoryMarkup,
	".sass":  CategoryMarkup,
	".less":  CategoryMarkup,
}

// localeDir is the directory that holds per-language translation files.
const localeDir = "_locales"

// localeFile is the translation file name inside each language directory.
const localeFile = "messages.json"

// Classify returns the category for a file path.
//
// Files under a "_locales" directory and files named "messages.json"
// are locale files regardless of extension; everything else is
// classified by its lowercase extension.
func Classify(p string) Category {
	lower := strings.ToLower(p)

	base := path.Base(lower)
	if base == localeFile {
		return CategoryLocale
	}
	for seg := range strings.SplitSeq(lower, "/") {
		if seg == localeDir {
			return CategoryLocale
		}
	}

	if c, ok := categoryByExt[path.Ext(lower)]; ok {
		return c
	}
	return CategoryOther
}

// Filter combines an optional name pattern with optional category
// membership. The zero value matches every path.
type Filter struct {
	// Name, when non-nil, must match the path.
	Name *Name
	// Categories, when non-empty, must contain the path's category.
	Categories []Category
}

// Match reports whether path satisfies both the name pattern and the
// category requirement. Unset constraints always pass.
func (f *Filter) Match(path string) bool {
	if f.Name != nil && !f.Name.Match(path) {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, Classify(path)) {
		return false
	}
	return true
}
