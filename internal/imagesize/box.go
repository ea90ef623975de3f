package imagesize

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Box is one ISO-BMFF box header found in a buffer. Offset and Size are
// relative to the whole input; the box may extend past the end of the bytes
// read so far.
type Box struct {
	Offset int
	Size   int
	Header int
	Type   string
}

// End is the offset of the first byte after the box.
func (b Box) End() int {
	return b.Offset + b.Size
}

// Body is the offset of the first payload byte.
func (b Box) Body() int {
	return b.Offset + b.Header
}

var errBoxNotFound = errors.New("box not found")

// boxScanner walks sibling boxes between two offsets, in the manner of
// bufio.Scanner. A limit of -1 means the siblings run to the end of the
// (possibly still growing) input.
type boxScanner struct {
	buf   []byte
	off   int
	limit int
	box   Box
	err   error
}

func scanBoxes(buf []byte, start, limit int) *boxScanner {
	return &boxScanner{buf: buf, off: start, limit: limit}
}

func (s *boxScanner) bounded() bool {
	return s.limit >= 0 && s.limit <= len(s.buf)
}

// Scan advances to the next box, reporting false at the end of the range or
// on error.
func (s *boxScanner) Scan() bool {
	if s.err != nil {
		return false
	}
	end := s.limit
	if end < 0 || end > len(s.buf) {
		end = len(s.buf)
	}
	if s.off >= end {
		if !s.bounded() {
			s.err = fmt.Errorf("%w: %w", ErrTruncatedData, errBoxNotFound)
		}
		return false
	}

	v := newView(s.buf)
	size := uint64(v.u32(s.off, binary.BigEndian))
	typ := v.str(s.off+4, s.off+8)
	header := 8
	switch size {
	case 0:
		// Extends to the end of the enclosing range.
		if s.limit >= 0 {
			size = uint64(s.limit - s.off)
		} else {
			size = uint64(len(s.buf) - s.off)
		}
	case 1:
		size = v.u64(s.off+8, binary.BigEndian)
		header = 16
	}
	if v.err != nil {
		s.err = v.err
		return false
	}
	if size < uint64(header) {
		s.err = fmt.Errorf("%w: box %q has impossible size %d", ErrCorruptFormat, typ, size)
		return false
	}
	// A box reaching past what an int can address ends beyond any input;
	// its size is clamped so the next Scan stops at the end of the range.
	if size > uint64(math.MaxInt-s.off) {
		size = uint64(math.MaxInt - s.off)
	}

	s.box = Box{Offset: s.off, Size: int(size), Header: header, Type: typ}
	s.off += int(size)
	return true
}

// Box returns the box found by the last successful Scan.
func (s *boxScanner) Box() Box {
	return s.box
}

// Err returns the error that stopped the scan, or nil at a clean end.
// Running off the end of the bytes read so far is ErrTruncatedData.
func (s *boxScanner) Err() error {
	return s.err
}

// findBox returns the first box of type tag among the siblings starting at
// start and ending at limit (-1 for "until end of input"). When the tag is
// absent the error is ErrTruncatedData if the range is not fully present,
// errBoxNotFound otherwise.
func findBox(buf []byte, tag string, start, limit int) (Box, error) {
	s := scanBoxes(buf, start, limit)
	for s.Scan() {
		if s.Box().Type == tag {
			return s.Box(), nil
		}
	}
	if err := s.Err(); err != nil {
		return Box{}, err
	}
	return Box{}, errBoxNotFound
}
