package imagesize

import "encoding/binary"

// TGA has no magic number. The check only asks for an empty image ID and no
// colour map, which is why it sits late in the registry.
var tgaHandler = Handler{
	Type: "tga",
	Validate: func(b []byte) Verdict {
		v := newView(b)
		if !v.has(0, 6) {
			return noMatch()
		}
		return matchIf(v.u16(0, binary.LittleEndian) == 0 && v.u16(4, binary.LittleEndian) == 0)
	},
	Calculate: func(b []byte) (*Dimensions, error) {
		v := newView(b)
		width := v.u16(12, binary.LittleEndian)
		height := v.u16(14, binary.LittleEndian)
		if v.err != nil {
			return nil, v.err
		}
		return &Dimensions{Width: int(width), Height: int(height)}, nil
	},
}
