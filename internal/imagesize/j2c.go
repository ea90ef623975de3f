package imagesize

import "encoding/binary"

// Raw JPEG 2000 codestream: SOC marker followed directly by SIZ.
var j2cHandler = Handler{
	Type: "j2c",
	Validate: func(b []byte) Verdict {
		return matchIf(newView(b).hex(0, 4) == "ff4fff51")
	},
	Calculate: func(b []byte) (*Dimensions, error) {
		v := newView(b)
		width := v.u32(8, binary.BigEndian)
		height := v.u32(12, binary.BigEndian)
		if v.err != nil {
			return nil, v.err
		}
		return &Dimensions{Width: int(width), Height: int(height)}, nil
	},
}
