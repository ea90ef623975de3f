package imagesize

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// view is a bounds-checked window over an input buffer. Reads past the end
// return zero and record a sticky ErrTruncatedData; the first failure wins,
// so a parser can issue several reads and check err once.
type view struct {
	buf []byte
	err error
}

func newView(b []byte) *view {
	return &view{buf: b}
}

func (v *view) need(off, width int) bool {
	if v.err != nil {
		return false
	}
	if off < 0 || width < 0 || off > len(v.buf)-width {
		v.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncatedData, width, off, len(v.buf))
		return false
	}
	return true
}

func (v *view) has(off, width int) bool {
	return off >= 0 && width >= 0 && off <= len(v.buf)-width
}

func (v *view) u8(off int) uint8 {
	if !v.need(off, 1) {
		return 0
	}
	return v.buf[off]
}

func (v *view) u16(off int, order binary.ByteOrder) uint16 {
	if !v.need(off, 2) {
		return 0
	}
	return order.Uint16(v.buf[off:])
}

func (v *view) u24(off int, order binary.ByteOrder) uint32 {
	if !v.need(off, 3) {
		return 0
	}
	b := v.buf[off : off+3]
	if order == binary.LittleEndian {
		return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

func (v *view) u32(off int, order binary.ByteOrder) uint32 {
	if !v.need(off, 4) {
		return 0
	}
	return order.Uint32(v.buf[off:])
}

func (v *view) u64(off int, order binary.ByteOrder) uint64 {
	if !v.need(off, 8) {
		return 0
	}
	return order.Uint64(v.buf[off:])
}

func (v *view) i32le(off int) int32 {
	return int32(v.u32(off, binary.LittleEndian))
}

// str decodes buf[start:end] as text. The end is clamped to the buffer, so
// signature comparisons on short input simply fail to match.
func (v *view) str(start, end int) string {
	if start < 0 || start >= len(v.buf) || end <= start {
		return ""
	}
	if end > len(v.buf) {
		end = len(v.buf)
	}
	return string(v.buf[start:end])
}

// hex renders buf[start:end] as lowercase hex, clamped like str.
func (v *view) hex(start, end int) string {
	if start < 0 || start >= len(v.buf) || end <= start {
		return ""
	}
	if end > len(v.buf) {
		end = len(v.buf)
	}
	return hex.EncodeToString(v.buf[start:end])
}

// orderOf maps a TIFF/EXIF byte-order mark to its binary.ByteOrder.
func orderOf(bigEndian bool) binary.ByteOrder {
	if bigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}
