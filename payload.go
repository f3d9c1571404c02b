package crx

import (
	"fmt"
	"slices"
)

// archiveMagic is the two-byte signature at the start of the embedded
// archive container.
var archiveMagic = []byte{0x50, 0x4B} // "PK"

// ExtractPayload returns the archive payload region of buf as located
// by h.
//
// The payload's first two bytes must carry the archive signature "PK";
// anything else fails with ErrNotArchive. The returned slice is a fresh
// copy, so the caller's buffer is never aliased or retained.
func ExtractPayload(buf []byte, h Header) ([]byte, error) {
	if h.PayloadOffset < 0 || h.PayloadOffset > len(buf) {
		return nil, fmt.Errorf("%w: payload offset %d exceeds %d-byte buffer", ErrTruncatedHeader, h.PayloadOffset, len(buf))
	}

	payload := buf[h.PayloadOffset:]
	if len(payload) < len(archiveMagic) || !slices.Equal(payload[:len(archiveMagic)], archiveMagic) {
		return nil, fmt.Errorf("%w: payload does not start with %q", ErrNotArchive, archiveMagic)
	}
	return slices.Clone(payload), nil
}
