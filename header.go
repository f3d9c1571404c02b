package crx

import (
	"encoding/binary"
	"fmt"

	"github.com/meigma/crx/internal/sizing"
)

// Package format versions understood by ParseHeader.
const (
	// Version2 is the legacy header layout: magic, version, public key
	// length, signature length, then the key and signature blocks.
	Version2 = 2

	// Version3 is the current header layout: magic, version, header
	// length, then an opaque structured header block.
	Version3 = 3
)

// magic is the four-byte signature at the start of every package.
const magic = "Cr24"

// Header describes a parsed package header: the format version and the
// byte offset where the embedded archive payload begins.
type Header struct {
	Version       uint32
	PayloadOffset int
}

// ParseHeader decodes the package header at the start of buf.
//
// It is a pure function of the input bytes: no part of buf is retained
// and nothing is mutated. Declared length fields are validated against
// the buffer before they are trusted, so a lying header fails with
// ErrTruncatedHeader instead of reading out of bounds.
func ParseHeader(buf []byte) (Header, error) {
	cur := cursor{buf: buf}

	sig, err := cur.bytes(len(magic))
	if err != nil || string(sig) != magic {
		return Header{}, fmt.Errorf("%w: expected %q", ErrBadMagic, magic)
	}

	version, err := cur.uint32()
	if err != nil {
		return Header{}, err
	}

	var headerLen uint64
	switch version {
	case Version2:
		keyLen, err := cur.uint32()
		if err != nil {
			return Header{}, err
		}
		sigLen, err := cur.uint32()
		if err != nil {
			return Header{}, err
		}
		headerLen = uint64(keyLen) + uint64(sigLen)
	case Version3:
		hdrLen, err := cur.uint32()
		if err != nil {
			return Header{}, err
		}
		headerLen = uint64(hdrLen)
	default:
		return Header{}, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, version)
	}

	overflow := fmt.Errorf("%w: declared header lengths overflow", ErrTruncatedHeader)
	offset, ok := sizing.AddUint64(uint64(cur.off), headerLen)
	if !ok || offset > uint64(len(buf)) {
		return Header{}, fmt.Errorf("%w: payload offset %d exceeds %d-byte buffer", ErrTruncatedHeader, offset, len(buf))
	}
	payloadOffset, err := sizing.ToInt(offset, overflow)
	if err != nil {
		return Header{}, err
	}
	return Header{Version: version, PayloadOffset: payloadOffset}, nil
}

// cursor is a bounds-checked reader over a byte buffer. Every read
// validates the remaining length first; short reads fail with
// ErrTruncatedHeader instead of slicing out of range.
type cursor struct {
	buf []byte
	off int
}

func (c *cursor) bytes(n int) ([]byte, error) {
	if c.off+n > len(c.buf) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncatedHeader, n, c.off, len(c.buf)-c.off)
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

func (c *cursor) uint32() (uint32, error) {
	b, err := c.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}
