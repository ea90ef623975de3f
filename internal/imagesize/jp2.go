package imagesize

import (
	"encoding/binary"
	"errors"
)

var jp2Handler = Handler{
	Type: "jp2",
	Validate: func(b []byte) Verdict {
		v := newView(b)
		if v.str(4, 8) != "jP  " {
			return noMatch()
		}
		ftyp, err := findBox(b, "ftyp", 0, -1)
		if err != nil {
			return noMatch()
		}
		return matchIf(v.str(ftyp.Offset+8, ftyp.Offset+12) == "jp2 ")
	},
	Calculate: func(b []byte) (*Dimensions, error) {
		jp2h, err := findBox(b, "jp2h", 0, -1)
		if err != nil {
			return nil, err
		}
		ihdr, err := findBox(b, "ihdr", jp2h.Body(), jp2h.End())
		if errors.Is(err, errBoxNotFound) && !errors.Is(err, ErrTruncatedData) {
			return nil, unsupportedf("jp2", "jp2h header box has no ihdr")
		}
		if err != nil {
			return nil, err
		}
		v := newView(b)
		height := v.u32(ihdr.Offset+8, binary.BigEndian)
		width := v.u32(ihdr.Offset+12, binary.BigEndian)
		if v.err != nil {
			return nil, v.err
		}
		return &Dimensions{Width: int(width), Height: int(height)}, nil
	},
}
