package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"leading slash", "/assets/icon.png", "assets/icon.png"},
		{"trailing slash", "assets/", "assets"},
		{"both slashes", "/assets/", "assets"},
		{"empty string", "", ""},
		{"root slash", "/", ""},
		{"simple", "manifest.json", "manifest.json"},
		{"nested path", "/src/lib/util.js", "src/lib/util.js"},
		{"nested with trailing", "src/lib/util.js/", "src/lib/util.js"},
		// Multiple slashes
		{"multiple leading slashes", "///assets/icon.png", "assets/icon.png"},
		{"multiple trailing slashes", "assets/icon.png///", "assets/icon.png"},
		{"only slashes", "///", ""},
		{"internal double slashes", "assets//icon.png", "assets/icon.png"},
		{"internal multiple slashes", "src///lib//util.js", "src/lib/util.js"},
		// Backslash separators are treated as slashes
		{"backslash separators", `dir\file.txt`, "dir/file.txt"},
		{"mixed separators", `src\lib/util.js`, "src/lib/util.js"},
		// Dot segments are dropped; dotdot is preserved, not resolved
		{"leading dot", "./assets", "assets"},
		{"dot segment", "a/./b", "a/b"},
		{"bare dot", ".", ""},
		{"dotdot in middle", "a/../b", "a/../b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePath(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}
