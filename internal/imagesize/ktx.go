package imagesize

import "encoding/binary"

var ktxHandler = Handler{
	Type: "ktx",
	Validate: func(b []byte) Verdict {
		sig := newView(b).str(1, 7)
		return matchIf(sig == "KTX 11" || sig == "KTX 20")
	},
	Calculate: func(b []byte) (*Dimensions, error) {
		v := newView(b)
		typ, off := "ktx", 36
		if v.u8(5) == '2' {
			typ, off = "ktx2", 20
		}
		width := v.u32(off, binary.LittleEndian)
		height := v.u32(off+4, binary.LittleEndian)
		if v.err != nil {
			return nil, v.err
		}
		return &Dimensions{Width: int(width), Height: int(height), Type: typ}, nil
	},
}
