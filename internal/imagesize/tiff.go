package imagesize

import (
	"encoding/binary"
	"math"
)

const (
	tiffTagWidth       = 256
	tiffTagHeight      = 257
	tiffTagCompression = 259

	tiffTypeShort = 3
	tiffTypeLong  = 4
	tiffTypeLong8 = 16

	tiffVersionBig = 43
)

var tiffSignatures = map[string]bool{
	"49492a00": true, // II*\0
	"4d4d002a": true, // MM\0*
	"49492b00": true, // II+\0
	"4d4d002b": true, // MM\0+
}

// tiffHeader is what the first bytes of a TIFF file say about the rest.
type tiffHeader struct {
	order   binary.ByteOrder
	bigTIFF bool
}

// ifdEntry is one directory entry. value holds the inline value field
// (4 bytes classic, 8 bytes BigTIFF) still in file byte order.
type ifdEntry struct {
	tag   uint16
	typ   uint16
	count uint64
	value int
}

var tiffHandler = Handler{
	Type: "tiff",
	Validate: func(b []byte) Verdict {
		return matchIf(tiffSignatures[newView(b).hex(0, 4)])
	},
	Calculate: calculateTIFF,
}

func readTIFFHeader(v *view) (tiffHeader, int, error) {
	h := tiffHeader{order: orderOf(v.str(0, 2) == "MM")}
	version := v.u16(2, h.order)
	h.bigTIFF = version == tiffVersionBig

	var ifd uint64
	if h.bigTIFF {
		byteSize, reserved := v.u16(4, h.order), v.u16(6, h.order)
		ifd = v.u64(8, h.order)
		if v.err == nil && (byteSize != 8 || reserved != 0) {
			return h, 0, corruptf("tiff", "invalid BigTIFF header")
		}
	} else {
		ifd = uint64(v.u32(4, h.order))
	}
	if v.err != nil {
		return h, 0, v.err
	}
	if ifd > math.MaxInt32 {
		return h, 0, corruptf("tiff", "IFD offset %d out of range", ifd)
	}
	return h, int(ifd), nil
}

// readIFD walks the first image file directory and returns its entries.
func readIFD(v *view, h tiffHeader, ifd int) ([]ifdEntry, error) {
	countSize, entrySize := 2, 12
	if h.bigTIFF {
		countSize, entrySize = 8, 20
	}

	var count uint64
	if h.bigTIFF {
		count = v.u64(ifd, h.order)
	} else {
		count = uint64(v.u16(ifd, h.order))
	}
	if v.err != nil {
		return nil, v.err
	}
	if count > math.MaxUint16 {
		return nil, corruptf("tiff", "IFD claims %d entries", count)
	}

	entries := make([]ifdEntry, 0, count)
	for i := 0; i < int(count); i++ {
		off := ifd + countSize + i*entrySize
		e := ifdEntry{tag: v.u16(off, h.order), typ: v.u16(off+2, h.order)}
		if h.bigTIFF {
			e.count = v.u64(off+4, h.order)
			e.value = off + 12
		} else {
			e.count = uint64(v.u32(off+4, h.order))
			e.value = off + 8
		}
		if v.err != nil {
			return nil, v.err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// inlineValue resolves a single SHORT, LONG or LONG8 value stored in the
// entry itself. Anything stored behind an offset is not followed.
func inlineValue(v *view, h tiffHeader, e ifdEntry) (int, error) {
	if e.count != 1 {
		return 0, unsupportedf("tiff", "tag %d has %d values", e.tag, e.count)
	}
	switch e.typ {
	case tiffTypeShort:
		return int(v.u16(e.value, h.order)), v.err
	case tiffTypeLong:
		return int(v.u32(e.value, h.order)), v.err
	case tiffTypeLong8:
		if !h.bigTIFF {
			return 0, unsupportedf("tiff", "tag %d uses LONG8 outside BigTIFF", e.tag)
		}
		n := v.u64(e.value, h.order)
		if v.err != nil {
			return 0, v.err
		}
		if n > math.MaxInt32 {
			return 0, corruptf("tiff", "tag %d value %d too large", e.tag, n)
		}
		return int(n), nil
	}
	return 0, unsupportedf("tiff", "tag %d has field type %d", e.tag, e.typ)
}

func calculateTIFF(b []byte) (*Dimensions, error) {
	v := newView(b)
	h, ifd, err := readTIFFHeader(v)
	if err != nil {
		return nil, err
	}
	entries, err := readIFD(v, h, ifd)
	if err != nil {
		return nil, err
	}

	d := &Dimensions{Type: "tiff"}
	if h.bigTIFF {
		d.Type = "bigtiff"
	}
	for _, e := range entries {
		var dst *int
		switch e.tag {
		case tiffTagWidth:
			dst = &d.Width
		case tiffTagHeight:
			dst = &d.Height
		case tiffTagCompression:
			dst = &d.Compression
		default:
			continue
		}
		n, err := inlineValue(v, h, e)
		if err != nil {
			return nil, err
		}
		*dst = n
	}

	if d.Width == 0 || d.Height == 0 {
		return nil, corruptf("tiff", "first IFD has no image width or height")
	}
	return d, nil
}
