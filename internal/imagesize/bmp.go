package imagesize

import "encoding/binary"

var bmpHandler = Handler{
	Type: "bmp",
	Validate: func(b []byte) Verdict {
		return matchIf(newView(b).str(0, 2) == "BM")
	},
	Calculate: func(b []byte) (*Dimensions, error) {
		v := newView(b)
		width := v.u32(18, binary.LittleEndian)
		height := v.i32le(22)
		if v.err != nil {
			return nil, v.err
		}
		// Negative heights mark top-down bitmaps.
		if height < 0 {
			height = -height
		}
		return &Dimensions{Width: int(width), Height: int(height)}, nil
	},
}
