package imagesize

import (
	"encoding/binary"
	"errors"
)

// heifBrands maps ftyp brands to the type tag they imply.
var heifBrands = map[string]string{
	"avif": "avif",
	"avis": "avif",
	"mif1": "heif",
	"msf1": "heif",
	"heic": "heic",
	"heix": "heic",
	"hevc": "heic",
	"hevx": "heic",
}

var heifHandler = Handler{
	Type: "heif",
	Validate: func(b []byte) Verdict {
		v := newView(b)
		if v.str(4, 8) != "ftyp" {
			return noMatch()
		}
		ftyp, err := findBox(b, "ftyp", 0, -1)
		if err != nil {
			return noMatch()
		}
		_, ok := heifBrands[v.str(ftyp.Offset+8, ftyp.Offset+12)]
		return matchIf(ok)
	},
	Calculate: calculateHEIF,
}

// heifType picks the most specific tag among the major and compatible brands:
// avif over heic over heif.
func heifType(b []byte, ftyp Box) string {
	v := newView(b)
	end := ftyp.End()
	if end > len(b) {
		end = len(b)
	}
	seen := map[string]bool{}
	for off := ftyp.Offset + 8; off+4 <= end; off += 4 {
		if t, ok := heifBrands[v.str(off, off+4)]; ok {
			seen[t] = true
		}
	}
	for _, t := range []string{"avif", "heic", "heif"} {
		if seen[t] {
			return t
		}
	}
	return "heif"
}

// heifChild finds a child box and converts "not found in a complete parent"
// into a format error.
func heifChild(b []byte, tag string, parent Box, skip int) (Box, error) {
	box, err := findBox(b, tag, parent.Offset+skip, parent.End())
	if errors.Is(err, errBoxNotFound) && !errors.Is(err, ErrTruncatedData) {
		return box, corruptf("heif", "no %s box inside %s", tag, parent.Type)
	}
	return box, err
}

func calculateHEIF(b []byte) (*Dimensions, error) {
	ftyp, err := findBox(b, "ftyp", 0, -1)
	if err != nil {
		return nil, err
	}
	meta, err := findBox(b, "meta", 0, -1)
	if err != nil {
		return nil, err
	}
	// meta is a full box: 4 bytes of version and flags precede its children.
	iprp, err := heifChild(b, "iprp", meta, 12)
	if err != nil {
		return nil, err
	}
	ipco, err := heifChild(b, "ipco", iprp, 8)
	if err != nil {
		return nil, err
	}
	if ipco.End() > len(b) {
		return nil, truncatedf("heif", "ipco box ends at %d, have %d bytes", ipco.End(), len(b))
	}

	v := newView(b)
	var images []Dimensions
	for off := ipco.Body(); off < ipco.End(); {
		ispe, err := findBox(b, "ispe", off, ipco.End())
		if errors.Is(err, errBoxNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
		width := int(v.u32(ispe.Offset+12, binary.BigEndian))
		height := int(v.u32(ispe.Offset+16, binary.BigEndian))

		// A clean-aperture box after the previous size property crops this one.
		if clap, err := findBox(b, "clap", off, ipco.End()); err == nil {
			width -= int(v.u32(clap.Offset+12, binary.BigEndian))
		}
		if v.err != nil {
			return nil, v.err
		}
		images = append(images, Dimensions{Width: width, Height: height})
		off = ispe.End()
	}
	if len(images) == 0 {
		return nil, corruptf("heif", "no ispe property found")
	}

	d := &Dimensions{Width: images[0].Width, Height: images[0].Height, Type: heifType(b, ftyp)}
	if len(images) > 1 {
		d.Images = images
	}
	return d, nil
}
