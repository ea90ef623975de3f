package imagesize

import "encoding/binary"

var psdHandler = Handler{
	Type: "psd",
	Validate: func(b []byte) Verdict {
		return matchIf(newView(b).str(0, 4) == "8BPS")
	},
	Calculate: func(b []byte) (*Dimensions, error) {
		v := newView(b)
		height := v.u32(14, binary.BigEndian)
		width := v.u32(18, binary.BigEndian)
		if v.err != nil {
			return nil, v.err
		}
		return &Dimensions{Width: int(width), Height: int(height)}, nil
	},
}
