package crx

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/crx/internal/testutil"
)

func TestParseHeaderVersion2(t *testing.T) {
	t.Parallel()

	key := make([]byte, 4)
	sig := make([]byte, 8)
	buf := testutil.BuildCRX2(t, key, sig, []byte("PK..."))

	h, err := ParseHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), h.Version)
	assert.Equal(t, 28, h.PayloadOffset)
}

func TestParseHeaderVersion3(t *testing.T) {
	t.Parallel()

	buf := testutil.BuildCRX3(t, make([]byte, 10), []byte("PK..."))

	h, err := ParseHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), h.Version)
	assert.Equal(t, 22, h.PayloadOffset)
}

func TestParseHeaderBadMagic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		buf  []byte
	}{
		{"empty", nil},
		{"short", []byte("Cr")},
		{"wrong signature", []byte("Cr42\x02\x00\x00\x00")},
		{"zip bytes", []byte("PK\x03\x04rest of a zip")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseHeader(tt.buf)
			assert.ErrorIs(t, err, ErrBadMagic)
		})
	}
}

func TestParseHeaderUnsupportedVersion(t *testing.T) {
	t.Parallel()

	for _, version := range []uint32{0, 1, 4, 0xFFFFFFFF} {
		buf := append([]byte("Cr24"), binary.LittleEndian.AppendUint32(nil, version)...)
		buf = append(buf, make([]byte, 8)...)

		_, err := ParseHeader(buf)
		assert.ErrorIs(t, err, ErrUnsupportedVersion, "version %d", version)
	}
}

func TestParseHeaderTruncated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		buf  []byte
	}{
		{
			// Magic and version only; the length fields are missing.
			"missing length fields",
			append([]byte("Cr24"), binary.LittleEndian.AppendUint32(nil, 3)...),
		},
		{
			// Version 2 with only one of its two length fields.
			"missing signature length",
			append(append([]byte("Cr24"),
				binary.LittleEndian.AppendUint32(nil, 2)...),
				binary.LittleEndian.AppendUint32(nil, 0)...),
		},
		{
			// Declared header length reaches past the end of the buffer.
			"declared length beyond buffer",
			testutil.BuildCRX3(t, make([]byte, 10), nil)[:15],
		},
		{
			// Declared lengths that overflow naive 32-bit arithmetic.
			"overflowing declared lengths",
			append(append(append([]byte("Cr24"),
				binary.LittleEndian.AppendUint32(nil, 2)...),
				binary.LittleEndian.AppendUint32(nil, 0xFFFFFFFF)...),
				binary.LittleEndian.AppendUint32(nil, 0xFFFFFFFF)...),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseHeader(tt.buf)
			assert.ErrorIs(t, err, ErrTruncatedHeader)
		})
	}
}

func TestParseHeaderDoesNotMutate(t *testing.T) {
	t.Parallel()

	buf := testutil.BuildCRX3(t, []byte{1, 2, 3}, []byte("PKpayload"))
	orig := append([]byte(nil), buf...)

	_, err := ParseHeader(buf)
	require.NoError(t, err)
	assert.Equal(t, orig, buf)
}
