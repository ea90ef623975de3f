package imagesize

import (
	"bytes"
	"encoding/binary"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
)

const (
	jpgMarkerSOF0 = 0xc0
	jpgMarkerSOF2 = 0xc2
)

var jpgHandler = Handler{
	Type: "jpg",
	Validate: func(b []byte) Verdict {
		return matchIf(newView(b).hex(0, 2) == "ffd8")
	},
	Calculate: calculateJPG,
}

// calculateJPG walks the marker segments after SOI. seg points at a
// segment's two-byte length; seg+length is where the next marker's 0xFF
// should be. Stray bytes before a marker are skipped one at a time, as are
// 0xFF fill bytes.
func calculateJPG(b []byte) (*Dimensions, error) {
	v := newView(b)
	orientation := 0

	for seg := 4; seg < len(b); {
		length := int(v.u16(seg, binary.BigEndian))
		if v.err != nil {
			return nil, truncatedf("jpg", "segment length at offset %d", seg)
		}
		if length < 2 {
			return nil, corruptf("jpg", "segment length %d at offset %d", length, seg)
		}
		next := seg + length
		for next < len(b) && b[next] != 0xff {
			next++
		}
		for next+1 < len(b) && b[next+1] == 0xff {
			next++
		}
		if next+1 >= len(b) {
			return nil, truncatedf("jpg", "segment at offset %d runs past %d bytes", seg, len(b))
		}

		if v.str(seg+2, seg+6) == "Exif" {
			if o := exifOrientation(b[seg+2 : next]); o != 0 {
				orientation = o
			}
		}

		marker := v.u8(next + 1)
		switch {
		case marker >= jpgMarkerSOF0 && marker <= jpgMarkerSOF2:
			height := v.u16(next+5, binary.BigEndian)
			width := v.u16(next+7, binary.BigEndian)
			if v.err != nil {
				return nil, truncatedf("jpg", "frame header at offset %d", next)
			}
			return &Dimensions{Width: int(width), Height: int(height), Orientation: orientation}, nil
		case isOtherSOF(marker):
			return nil, unsupportedf("jpg", "frame type 0x%02x is not baseline, extended or progressive DCT", marker)
		}
		seg = next + 2
	}
	return nil, truncatedf("jpg", "no frame header in %d bytes", len(b))
}

// isOtherSOF matches the lossless, hierarchical and arithmetic-coded frame
// markers. 0xc4 (DHT), 0xc8 (JPG) and 0xcc (DAC) share the range but are not
// frames.
func isOtherSOF(m uint8) bool {
	switch m {
	case 0xc3, 0xc5, 0xc6, 0xc7, 0xc9, 0xca, 0xcb, 0xcd, 0xce, 0xcf:
		return true
	}
	return false
}

// exifOrientation reads the Orientation tag from the first IFD of an APP1
// Exif payload ("Exif\0\0" followed by a TIFF header). It returns 0 when
// the tag is absent, malformed or out of range.
func exifOrientation(block []byte) int {
	if !newView(block).has(0, 8) {
		return 0
	}
	x, err := exif.Decode(bytes.NewReader(block[6:]))
	if x == nil || (err != nil && exif.IsCriticalError(err)) {
		return 0
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil || tag.Type != tiff.DTShort || tag.Count != 1 {
		return 0
	}
	o, err := tag.Int(0)
	if err != nil || o < 1 || o > 8 {
		return 0
	}
	return o
}
