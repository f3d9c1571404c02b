// Package testutil provides fixture builders for package decoding tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"maps"
	"slices"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

// ZipEntry describes one member for BuildZipEntries.
type ZipEntry struct {
	Name string
	Data []byte
	Dir  bool
}

// BuildZipEntries assembles an in-memory ZIP archive with members in
// the given order. Dir entries become directory markers.
func BuildZipEntries(t *testing.T, entries []ZipEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, e := range entries {
		if e.Dir {
			_, err := w.Create(strings.TrimSuffix(e.Name, "/") + "/")
			require.NoError(t, err)
			continue
		}
		fw, err := w.Create(e.Name)
		require.NoError(t, err)
		_, err = fw.Write(e.Data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// BuildZip assembles an in-memory ZIP archive from a path → content
// map. Members are written in sorted path order so fixtures are
// deterministic.
func BuildZip(t *testing.T, files map[string][]byte) []byte {
	t.Helper()

	entries := make([]ZipEntry, 0, len(files))
	for _, name := range slices.Sorted(maps.Keys(files)) {
		entries = append(entries, ZipEntry{Name: name, Data: files[name]})
	}
	return BuildZipEntries(t, entries)
}

// BuildCRX2 wraps payload in a version 2 package header carrying the
// given public key and signature blocks.
func BuildCRX2(t *testing.T, publicKey, signature, payload []byte) []byte {
	t.Helper()

	buf := make([]byte, 0, 16+len(publicKey)+len(signature)+len(payload))
	buf = append(buf, "Cr24"...)
	buf = binary.LittleEndian.AppendUint32(buf, 2)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(publicKey)))  //nolint:gosec // fixture sizes are small
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(signature))) //nolint:gosec // fixture sizes are small
	buf = append(buf, publicKey...)
	buf = append(buf, signature...)
	buf = append(buf, payload...)
	return buf
}

// BuildCRX3 wraps payload in a version 3 package header carrying the
// given opaque header block.
func BuildCRX3(t *testing.T, header, payload []byte) []byte {
	t.Helper()

	buf := make([]byte, 0, 12+len(header)+len(payload))
	buf = append(buf, "Cr24"...)
	buf = binary.LittleEndian.AppendUint32(buf, 3)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(header))) //nolint:gosec // fixture sizes are small
	buf = append(buf, header...)
	buf = append(buf, payload...)
	return buf
}

// BuildPackage builds a complete version 3 package whose archive holds
// the given files.
func BuildPackage(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	return BuildCRX3(t, bytes.Repeat([]byte{0xAB}, 16), BuildZip(t, files))
}
