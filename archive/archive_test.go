package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/crx/internal/testutil"
)

func TestRead(t *testing.T) {
	t.Parallel()

	files := map[string][]byte{
		"manifest.json":    []byte(`{"name":"demo","version":"1.0"}`),
		"background.js":    []byte("chrome.runtime.onInstalled.addListener(init);\n"),
		"assets/icon.png":  {0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A},
		"popup/popup.html": []byte("<html><body>hi</body></html>"),
	}
	r, err := Read(testutil.BuildZip(t, files))
	require.NoError(t, err)

	assert.Equal(t, len(files), r.Len())

	entries := r.Entries()
	require.Len(t, entries, len(files))
	for _, e := range entries {
		content, ok := files[e.Path]
		require.True(t, ok, "unexpected entry %q", e.Path)
		assert.False(t, e.IsDir)
		assert.Equal(t, uint64(len(content)), e.UncompressedSize)
		assert.NotZero(t, e.CompressedSize)
	}
}

func TestReadExcludesDirectoryMarkers(t *testing.T) {
	t.Parallel()

	payload := testutil.BuildZipEntries(t, []testutil.ZipEntry{
		{Name: "assets", Dir: true},
		{Name: "assets/icon.png", Data: []byte{1, 2, 3}},
		{Name: "empty", Dir: true},
	})
	r, err := Read(payload)
	require.NoError(t, err)

	require.Equal(t, 1, r.Len())
	assert.Equal(t, "assets/icon.png", r.Entries()[0].Path)

	_, err = r.Content("assets")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadCorruptContainer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload []byte
	}{
		{"not an archive at all", []byte("PK but nothing else of note here")},
		{"truncated container", testutil.BuildZip(t, map[string][]byte{"a.txt": []byte("hello")})[:20]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(tt.payload)
			assert.ErrorIs(t, err, ErrCorruptArchive)
		})
	}
}

func TestReadMaxFiles(t *testing.T) {
	t.Parallel()

	payload := testutil.BuildZip(t, map[string][]byte{
		"a.txt": []byte("a"),
		"b.txt": []byte("b"),
	})

	_, err := Read(payload, WithMaxFiles(1))
	assert.ErrorIs(t, err, ErrTooManyFiles)

	r, err := Read(payload, WithMaxFiles(2))
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
}

func TestContent(t *testing.T) {
	t.Parallel()

	want := []byte("console.log('service worker up');\n")
	r, err := Read(testutil.BuildZip(t, map[string][]byte{
		"background.js": want,
	}))
	require.NoError(t, err)

	got, err := r.Content("background.js")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Decoding is repeatable.
	again, err := r.Content("background.js")
	require.NoError(t, err)
	assert.Equal(t, want, again)
}

func TestContentNormalizesPath(t *testing.T) {
	t.Parallel()

	r, err := Read(testutil.BuildZip(t, map[string][]byte{
		"popup/popup.js": []byte("x"),
	}))
	require.NoError(t, err)

	for _, path := range []string{"popup/popup.js", "/popup/popup.js", "popup//popup.js"} {
		got, err := r.Content(path)
		require.NoError(t, err, "path %q", path)
		assert.Equal(t, []byte("x"), got)
	}
}

func TestReadBackslashMemberNames(t *testing.T) {
	t.Parallel()

	// Archives written by tools that use backslash separators still
	// produce navigable slash-joined entry paths.
	payload := testutil.BuildZipEntries(t, []testutil.ZipEntry{
		{Name: `scripts\content.js`, Data: []byte("x")},
	})
	r, err := Read(payload)
	require.NoError(t, err)

	require.Equal(t, 1, r.Len())
	assert.Equal(t, "scripts/content.js", r.Entries()[0].Path)

	got, err := r.Content("scripts/content.js")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), got)
}

func TestContentNotFound(t *testing.T) {
	t.Parallel()

	r, err := Read(testutil.BuildZip(t, map[string][]byte{"a.txt": []byte("a")}))
	require.NoError(t, err)

	_, err = r.Content("missing.txt")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContentSizeLimit(t *testing.T) {
	t.Parallel()

	r, err := Read(
		testutil.BuildZip(t, map[string][]byte{"big.bin": make([]byte, 1024)}),
		WithMaxFileSize(512),
	)
	require.NoError(t, err)

	_, err = r.Content("big.bin")
	assert.ErrorIs(t, err, ErrSizeOverflow)
}

func TestContentCorruptMember(t *testing.T) {
	t.Parallel()

	name := "background.js"
	payload := testutil.BuildZip(t, map[string][]byte{
		name: []byte("chrome.runtime.onMessage.addListener(handle);\n"),
	})

	// Flip bytes at the start of the member's compressed data. The
	// local file header is 30 bytes followed by the member name.
	start := 30 + len(name)
	payload[start] ^= 0xFF
	payload[start+1] ^= 0xFF

	r, err := Read(payload)
	require.NoError(t, err)

	_, err = r.Content(name)
	assert.ErrorIs(t, err, ErrCorruptArchive)
}

func TestEntriesSnapshot(t *testing.T) {
	t.Parallel()

	r, err := Read(testutil.BuildZip(t, map[string][]byte{"a.txt": []byte("a")}))
	require.NoError(t, err)

	entries := r.Entries()
	entries[0].Path = "mutated"

	assert.Equal(t, "a.txt", r.Entries()[0].Path)
}
