package imagesize

import "encoding/binary"

var webpHandler = Handler{
	Type: "webp",
	Validate: func(b []byte) Verdict {
		v := newView(b)
		return matchIf(v.str(0, 4) == "RIFF" && v.str(8, 12) == "WEBP" && v.str(12, 15) == "VP8")
	},
	Calculate: func(b []byte) (*Dimensions, error) {
		v := newView(b)
		chunk := v.str(12, 16)
		if !v.has(20, 10) {
			return nil, truncatedf("webp", "%q chunk header incomplete", chunk)
		}
		data := b[20:30]

		switch chunk {
		case "VP8X":
			// Reserved bits of the feature flags must be clear.
			if data[0]&0xc0 != 0 || data[0]&0x01 != 0 {
				return nil, corruptf("webp", "VP8X reserved bits set: 0x%02x", data[0])
			}
			dv := newView(data)
			return &Dimensions{
				Width:  1 + int(dv.u24(4, binary.LittleEndian)),
				Height: 1 + int(dv.u24(7, binary.LittleEndian)),
			}, nil
		case "VP8 ":
			if data[0] != 0x2f {
				dv := newView(data)
				return &Dimensions{
					Width:  int(dv.u16(6, binary.LittleEndian) & 0x3fff),
					Height: int(dv.u16(8, binary.LittleEndian) & 0x3fff),
				}, nil
			}
		case "VP8L":
			if newView(data).hex(3, 6) != "9d012a" {
				return &Dimensions{
					Width:  1 + (int(data[2]&0x3f)<<8 | int(data[1])),
					Height: 1 + (int(data[4]&0x0f)<<10 | int(data[3])<<2 | int(data[2]&0xc0)>>6),
				}, nil
			}
		}
		return nil, corruptf("webp", "unrecognized %q chunk", chunk)
	},
}
