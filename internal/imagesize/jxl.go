package imagesize

import (
	"encoding/binary"
	"errors"
	"sort"
)

// JPEG XL codestream header (SizeHeader). Heights are either small
// (multiples of 8 up to 256) or 1 + an integer whose width is chosen by a
// two-bit selector. A non-zero ratio field derives the width from the height.
var (
	jxlSizeBits = [4]uint{9, 13, 18, 30}

	// Ratios for width modes 1..7, as numerator/denominator so that
	// floor(height * ratio) is exact.
	jxlRatios = [7][2]int{{1, 1}, {12, 10}, {4, 3}, {3, 2}, {16, 9}, {5, 4}, {2, 1}}
)

var jxlStreamHandler = Handler{
	Type: "jxl-stream",
	Validate: func(b []byte) Verdict {
		return matchIf(newView(b).hex(0, 2) == "ff0a")
	},
	Calculate: func(b []byte) (*Dimensions, error) {
		d, err := jxlStreamSize(b)
		if err != nil {
			return nil, err
		}
		d.Type = "jxl"
		return d, nil
	},
}

// jxlStreamSize checks the codestream signature and parses what follows.
func jxlStreamSize(stream []byte) (*Dimensions, error) {
	v := newView(stream)
	if !v.has(0, 2) {
		return nil, truncatedf("jxl", "codestream signature incomplete")
	}
	if v.hex(0, 2) != "ff0a" {
		return nil, corruptf("jxl", "codestream starts with %s, want ff0a", v.hex(0, 2))
	}
	return jxlCodestreamSize(stream[2:])
}

func jxlDimension(c *bitCursor, small bool) (int, error) {
	if small {
		n, err := c.read(5)
		return 8 * (int(n) + 1), err
	}
	class, err := c.read(2)
	if err != nil {
		return 0, err
	}
	n, err := c.read(jxlSizeBits[class])
	return int(n) + 1, err
}

// jxlCodestreamSize parses the SizeHeader that follows the 0xFF0A signature.
func jxlCodestreamSize(stream []byte) (*Dimensions, error) {
	c := newBitCursor(stream)
	flag, err := c.read(1)
	if err != nil {
		return nil, err
	}
	small := flag == 1

	height, err := jxlDimension(c, small)
	if err != nil {
		return nil, err
	}
	mode, err := c.read(3)
	if err != nil {
		return nil, err
	}

	var width int
	if mode == 0 {
		if width, err = jxlDimension(c, small); err != nil {
			return nil, err
		}
	} else {
		r := jxlRatios[mode-1]
		width = height * r[0] / r[1]
	}
	return &Dimensions{Width: width, Height: height}, nil
}

var jxlHandler = Handler{
	Type: "jxl",
	Validate: func(b []byte) Verdict {
		v := newView(b)
		if v.str(4, 8) != "JXL " {
			return noMatch()
		}
		ftyp, err := findBox(b, "ftyp", 0, -1)
		if err != nil {
			return noMatch()
		}
		return matchIf(v.str(ftyp.Offset+8, ftyp.Offset+12) == "jxl ")
	},
	Calculate: func(b []byte) (*Dimensions, error) {
		stream, err := jxlExtractCodestream(b)
		if err != nil {
			return nil, err
		}
		return jxlStreamSize(stream)
	},
}

// jxlExtractCodestream returns the codestream of a container: the payload of
// a single jxlc box, or the jxlp partial boxes joined in sequence order. A
// trailing box may be cut short; the header only needs its first bytes.
func jxlExtractCodestream(b []byte) ([]byte, error) {
	type part struct {
		index uint32
		data  []byte
	}
	var parts []part

	v := newView(b)
	s := scanBoxes(b, 0, -1)
	for s.Scan() {
		box := s.Box()
		end := box.End()
		if end > len(b) {
			end = len(b)
		}
		switch box.Type {
		case "jxlc":
			if box.Body() > end {
				return nil, truncatedf("jxl", "jxlc box header incomplete")
			}
			return b[box.Body():end], nil
		case "jxlp":
			if box.Size < box.Header+4 {
				return nil, corruptf("jxl", "jxlp box of %d bytes has no sequence index", box.Size)
			}
			idx := v.u32(box.Body(), binary.BigEndian)
			if v.err != nil {
				return nil, v.err
			}
			parts = append(parts, part{index: idx & 0x7fffffff, data: b[box.Body()+4 : end]})
		}
	}
	if len(parts) == 0 {
		if err := s.Err(); err != nil && !errors.Is(err, errBoxNotFound) {
			return nil, err
		}
		return nil, truncatedf("jxl", "no codestream box in %d bytes", len(b))
	}

	sort.SliceStable(parts, func(i, j int) bool { return parts[i].index < parts[j].index })
	var stream []byte
	for _, p := range parts {
		stream = append(stream, p.data...)
	}
	return stream, nil
}
