package imagesize

import (
	"encoding/binary"
	"regexp"
)

var gifSignature = regexp.MustCompile(`^GIF8[79]a`)

var gifHandler = Handler{
	Type: "gif",
	Validate: func(b []byte) Verdict {
		return matchIf(gifSignature.MatchString(newView(b).str(0, 6)))
	},
	Calculate: func(b []byte) (*Dimensions, error) {
		v := newView(b)
		width := v.u16(6, binary.LittleEndian)
		height := v.u16(8, binary.LittleEndian)
		if v.err != nil {
			return nil, v.err
		}
		return &Dimensions{Width: int(width), Height: int(height)}, nil
	},
}
