package imagesize

import "encoding/binary"

const (
	icnsHeaderSize      = 8
	icnsEntryHeaderSize = 8
)

// icnsSizes maps icon element types to their pixel size. Elements not listed
// here (table of contents, version, named data) carry no image.
var icnsSizes = map[string]int{
	"ICON": 32,
	"ICN#": 32,
	"icm#": 16,
	"icm4": 16,
	"icm8": 16,
	"ics#": 16,
	"ics4": 16,
	"ics8": 16,
	"is32": 16,
	"s8mk": 16,
	"icp4": 16,
	"icl4": 32,
	"icl8": 32,
	"il32": 32,
	"l8mk": 32,
	"icp5": 32,
	"ic11": 32,
	"ich4": 48,
	"ich8": 48,
	"ih32": 48,
	"h8mk": 48,
	"icp6": 64,
	"ic12": 32,
	"it32": 128,
	"t8mk": 128,
	"ic07": 128,
	"ic08": 256,
	"ic13": 256,
	"ic09": 512,
	"ic14": 512,
	"ic10": 1024,
}

var icnsHandler = Handler{
	Type: "icns",
	Validate: func(b []byte) Verdict {
		return matchIf(newView(b).str(0, 4) == "icns")
	},
	Calculate: func(b []byte) (*Dimensions, error) {
		v := newView(b)
		fileLength := int(v.u32(4, binary.BigEndian))
		if v.err != nil {
			return nil, v.err
		}

		var images []Dimensions
		for off := icnsHeaderSize; off < fileLength; {
			if !v.has(off, icnsEntryHeaderSize) {
				return nil, truncatedf("icns", "entry at offset %d of %d", off, fileLength)
			}
			typ := v.str(off, off+4)
			length := int(v.u32(off+4, binary.BigEndian))
			if length < icnsEntryHeaderSize {
				return nil, corruptf("icns", "entry %q has length %d", typ, length)
			}
			if size, ok := icnsSizes[typ]; ok {
				images = append(images, Dimensions{Width: size, Height: size, Type: typ})
			}
			off += length
		}
		if len(images) == 0 {
			return nil, corruptf("icns", "no icon images in %d bytes", fileLength)
		}

		d := &Dimensions{Width: images[0].Width, Height: images[0].Height}
		if len(images) > 1 {
			d.Images = images
		}
		return d, nil
	},
}
