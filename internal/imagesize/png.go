package imagesize

import "encoding/binary"

const (
	pngSignature = "PNG\r\n\x1a\n"
	pngIHDR      = "IHDR"
	// Apple's CgBI ("fried") PNGs put an extra 16-byte chunk before IHDR.
	pngFried = "CgBI"
)

var pngHandler = Handler{
	Type: "png",
	Validate: func(b []byte) Verdict {
		v := newView(b)
		if v.str(1, 8) != pngSignature {
			return noMatch()
		}
		// A chunk name that has not arrived yet is not evidence of corruption.
		if !v.has(12, 4) {
			return matched()
		}
		name := v.str(12, 16)
		if name == pngFried {
			if !v.has(28, 4) {
				return matched()
			}
			name = v.str(28, 32)
		}
		if name != pngIHDR {
			return corrupt(corruptf("png", "first chunk is %q, want IHDR", name))
		}
		return matched()
	},
	Calculate: func(b []byte) (*Dimensions, error) {
		v := newView(b)
		off := 16
		if !v.has(12, 4) {
			return nil, truncatedf("png", "chunk header incomplete")
		}
		if v.str(12, 16) == pngFried {
			off = 32
		}
		width := v.u32(off, binary.BigEndian)
		height := v.u32(off+4, binary.BigEndian)
		if v.err != nil {
			return nil, v.err
		}
		return &Dimensions{Width: int(width), Height: int(height)}, nil
	},
}
