package imagesize

import "fmt"

// bitCursor reads unsigned integers of arbitrary bit width from a byte slice.
// Bits are taken from the least significant end of each byte and the first
// bit read is the value's lowest bit, the JPEG XL convention.
// A cursor belongs to a single parse call and is never shared.
type bitCursor struct {
	buf       []byte
	pos       int
	bitOffset uint
}

func newBitCursor(buf []byte) *bitCursor {
	return &bitCursor{buf: buf}
}

// read returns the next n bits (n <= 32) and advances the cursor.
func (c *bitCursor) read(n uint) (uint32, error) {
	if n > 32 {
		return 0, fmt.Errorf("bit read of %d bits exceeds 32", n)
	}
	var result uint32
	var done uint
	for done < n {
		if c.pos >= len(c.buf) {
			return 0, fmt.Errorf("%w: bitstream ended after %d bytes", ErrTruncatedData, len(c.buf))
		}
		cur := uint32(c.buf[c.pos])
		left := 8 - c.bitOffset
		take := n - done
		if take > left {
			take = left
		}
		mask := uint32(1)<<take - 1
		result |= ((cur >> c.bitOffset) & mask) << done
		done += take
		c.bitOffset += take
		if c.bitOffset == 8 {
			c.pos++
			c.bitOffset = 0
		}
	}
	return result, nil
}
