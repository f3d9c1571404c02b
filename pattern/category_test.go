package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want Category
	}{
		{"png", "assets/icon.png", CategoryImage},
		{"svg", "img/logo.svg", CategoryImage},
		{"uppercase extension", "ICON.PNG", CategoryImage},
		{"js", "background.js", CategoryCode},
		{"typescript", "src/popup.ts", CategoryCode},
		{"json", "manifest.json", CategoryCode},
		{"wasm", "lib/core.wasm", CategoryCode},
		{"html", "popup.html", CategoryMarkup},
		{"css", "styles/main.css", CategoryMarkup},
		{"xml", "config.xml", CategoryMarkup},
		{"locales messages", "_locales/en/messages.json", CategoryLocale},
		{"nested locales", "res/_locales/de_DE/messages.json", CategoryLocale},
		{"locales non-json", "_locales/en/notes.txt", CategoryLocale},
		{"messages.json outside locales", "config/messages.json", CategoryLocale},
		{"similar directory is not locales", "my_locales/en/data.txt", CategoryOther},
		{"no extension", "LICENSE", CategoryOther},
		{"unknown extension", "archive.tar.gz", CategoryOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.path))
		})
	}
}

func TestCategoryString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category Category
		want     string
	}{
		{CategoryOther, "other"},
		{CategoryImage, "image"},
		{CategoryCode, "code"},
		{CategoryMarkup, "markup"},
		{CategoryLocale, "locale"},
		{Category(99), "other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.category.String())
	}
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	for _, c := range []Category{CategoryOther, CategoryImage, CategoryCode, CategoryMarkup, CategoryLocale} {
		got, err := ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	got, err := ParseCategory("IMAGE")
	require.NoError(t, err)
	assert.Equal(t, CategoryImage, got)

	_, err = ParseCategory("video")
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestFilterMatch(t *testing.T) {
	t.Parallel()

	js, err := CompileName("*.js", NameOptions{})
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter Filter
		path   string
		want   bool
	}{
		{"zero filter matches all", Filter{}, "anything/at.all", true},
		{"name only hit", Filter{Name: js}, "src/index.js", true},
		{"name only miss", Filter{Name: js}, "src/style.css", false},
		{"category only hit", Filter{Categories: []Category{CategoryImage}}, "icon.png", true},
		{"category only miss", Filter{Categories: []Category{CategoryImage}}, "background.js", false},
		{"multiple categories", Filter{Categories: []Category{CategoryImage, CategoryCode}}, "background.js", true},
		{"name and category both required", Filter{Name: js, Categories: []Category{CategoryCode}}, "src/index.js", true},
		{"name hit category miss", Filter{Name: js, Categories: []Category{CategoryImage}}, "src/index.js", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(tt.path))
		})
	}
}
