package imagesize

import "encoding/binary"

// "DDS " read as a little-endian uint32.
const ddsMagic = 0x20534444

var ddsHandler = Handler{
	Type: "dds",
	Validate: func(b []byte) Verdict {
		v := newView(b)
		return matchIf(v.has(0, 4) && v.u32(0, binary.LittleEndian) == ddsMagic)
	},
	Calculate: func(b []byte) (*Dimensions, error) {
		v := newView(b)
		height := v.u32(12, binary.LittleEndian)
		width := v.u32(16, binary.LittleEndian)
		if v.err != nil {
			return nil, v.err
		}
		return &Dimensions{Width: int(width), Height: int(height)}, nil
	},
}
