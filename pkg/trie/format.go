// Package trie implements the compiled, on-disk trie format: a flat,
// self-describing array of variable-length node records that can be
// iterated with a plain byte cursor, built once from a pkg/patricia tree
// and then queried directly against borrowed bytes (mmap or a plain read)
// without copying the node array. Decoding a record allocates: a Patricia
// label is copied into a string and a Range record's slots into a slice.
package trie

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Magic identifies a compiled dictionary file.
var Magic = [4]byte{'V', 'G', 'S', '1'}

const (
	// FormatVersion is the current on-disk format version.
	FormatVersion uint16 = 1

	// endianMarker is written and checked verbatim so a file produced on a
	// big-endian host is rejected rather than silently misread, since the
	// rest of the format is fixed little-endian.
	endianMarker uint16 = 0x0A0B

	headerSize = 24

	// NoChild marks the absence of a child pointer (or of a root) in a
	// dense uint32 field, avoiding a separate presence flag for what is
	// otherwise always-present addressing data.
	NoChild uint32 = 0xFFFFFFFF

	tagNaive    byte = 1
	tagPatricia byte = 2
	tagRange    byte = 3
)

// ErrFormatMismatch is returned when the file's magic, version, or
// endianness marker does not match what this build expects.
var ErrFormatMismatch = errors.New("trie: dictionary format mismatch")

// ErrFormatTruncated is returned when the byte slice ends before a record
// or the header has been fully read, and when an offset points at a byte
// that is not a known record tag.
var ErrFormatTruncated = errors.New("trie: dictionary file truncated")

// Header is the fixed-size preamble of a compiled dictionary file.
type Header struct {
	NodeCount  uint32
	RootOffset uint32
}

func decodeHeader(b []byte) (Header, error) {
	if len(b) < headerSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, got %d", ErrFormatTruncated, headerSize, len(b))
	}
	if [4]byte(b[0:4]) != Magic {
		return Header{}, fmt.Errorf("%w: bad magic", ErrFormatMismatch)
	}
	version := binary.LittleEndian.Uint16(b[4:6])
	if version != FormatVersion {
		return Header{}, fmt.Errorf("%w: version %d, want %d", ErrFormatMismatch, version, FormatVersion)
	}
	marker := binary.LittleEndian.Uint16(b[6:8])
	if marker != endianMarker {
		return Header{}, fmt.Errorf("%w: endianness marker 0x%04x, want 0x%04x", ErrFormatMismatch, marker, endianMarker)
	}
	return Header{
		NodeCount:  binary.LittleEndian.Uint32(b[8:12]),
		RootOffset: binary.LittleEndian.Uint32(b[12:16]),
	}, nil
}

func encodeHeader(h Header) []byte {
	b := make([]byte, headerSize)
	copy(b[0:4], Magic[:])
	binary.LittleEndian.PutUint16(b[4:6], FormatVersion)
	binary.LittleEndian.PutUint16(b[6:8], endianMarker)
	binary.LittleEndian.PutUint32(b[8:12], h.NodeCount)
	binary.LittleEndian.PutUint32(b[12:16], h.RootOffset)
	// bytes 16:24 are reserved, left zero.
	return b
}
