package imagesize

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

// encodeImage renders a solid w x h image with a real encoder.
func encodeImage(t *testing.T, w, h int, format imaging.Format) []byte {
	t.Helper()
	img := imaging.New(w, h, color.NRGBA{R: 200, G: 40, B: 40, A: 255})
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		t.Fatalf("failed to encode %v fixture: %v", format, err)
	}
	return buf.Bytes()
}

func cat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func le16(n uint16) []byte { return binary.LittleEndian.AppendUint16(nil, n) }
func le32(n uint32) []byte { return binary.LittleEndian.AppendUint32(nil, n) }
func be16(n uint16) []byte { return binary.BigEndian.AppendUint16(nil, n) }
func be32(n uint32) []byte { return binary.BigEndian.AppendUint32(nil, n) }
func be64(n uint64) []byte { return binary.BigEndian.AppendUint64(nil, n) }

func le24(n uint32) []byte {
	return []byte{byte(n), byte(n >> 8), byte(n >> 16)}
}

func zeros(n int) []byte { return make([]byte, n) }

// box builds an ISO-BMFF box with a 32-bit size.
func box(typ string, payload ...[]byte) []byte {
	body := cat(payload...)
	return cat(be32(uint32(8+len(body))), []byte(typ), body)
}

// fullBox prefixes the payload with a zero version and flags word.
func fullBox(typ string, payload ...[]byte) []byte {
	return box(typ, append([][]byte{zeros(4)}, payload...)...)
}

func pngHeader(width, height uint32) []byte {
	ihdr := cat(be32(width), be32(height), []byte{8, 6, 0, 0, 0})
	return cat([]byte("\x89PNG\r\n\x1a\n"), be32(13), []byte("IHDR"), ihdr, zeros(4))
}

func friedPNGHeader(width, height uint32) []byte {
	cgbi := cat(be32(4), []byte("CgBI"), zeros(4), zeros(4))
	ihdr := cat(be32(13), []byte("IHDR"), be32(width), be32(height), []byte{8, 6, 0, 0, 0}, zeros(4))
	return cat([]byte("\x89PNG\r\n\x1a\n"), cgbi, ihdr)
}

// jpegWithOrientation builds SOI, an optional big- or little-endian Exif
// APP1 segment carrying orientation, and a baseline SOF0.
func jpegWithOrientation(width, height uint16, orientation uint16, bigEndian bool) []byte {
	var order binary.AppendByteOrder = binary.LittleEndian
	mark := "II"
	if bigEndian {
		order, mark = binary.BigEndian, "MM"
	}
	u16 := func(n uint16) []byte { return order.AppendUint16(nil, n) }
	u32 := func(n uint32) []byte { return order.AppendUint32(nil, n) }

	var segments []byte
	if orientation != 0 {
		tiff := cat([]byte(mark), u16(42), u32(8),
			u16(1),
			u16(0x0112), u16(3), u32(1), u16(orientation), zeros(2),
			u32(0))
		payload := cat([]byte("Exif\x00\x00"), tiff)
		segments = cat([]byte{0xff, 0xe1}, be16(uint16(2+len(payload))), payload)
	} else {
		jfif := []byte("JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
		segments = cat([]byte{0xff, 0xe0}, be16(uint16(2+len(jfif))), jfif)
	}
	sof := cat([]byte{0xff, 0xc0}, be16(17), []byte{8}, be16(height), be16(width),
		[]byte{3, 1, 0x22, 0, 2, 0x11, 1, 3, 0x11, 1})
	return cat([]byte{0xff, 0xd8}, segments, sof, []byte{0xff, 0xd9})
}

// bitWriter packs values least-significant bit first, the JPEG XL order.
type bitWriter struct {
	buf  []byte
	nbit uint
}

func (w *bitWriter) write(v uint32, n uint) {
	for i := uint(0); i < n; i++ {
		if w.nbit%8 == 0 {
			w.buf = append(w.buf, 0)
		}
		if v&(1<<i) != 0 {
			w.buf[len(w.buf)-1] |= 1 << (w.nbit % 8)
		}
		w.nbit++
	}
}

// jxlSizeHeader encodes a non-small SizeHeader with explicit or ratio width.
func jxlSizeHeader(height uint32, ratio uint32, width uint32) []byte {
	w := &bitWriter{}
	w.write(0, 1) // not small
	w.write(3, 2) // 30-bit height
	w.write(height-1, 30)
	w.write(ratio, 3)
	if ratio == 0 {
		w.write(3, 2)
		w.write(width-1, 30)
	}
	return w.buf
}

func heifFile(brand string, props ...[]byte) []byte {
	ftyp := box("ftyp", []byte(brand), zeros(4), []byte("mif1"))
	meta := fullBox("meta",
		fullBox("hdlr", zeros(4), []byte("pict"), zeros(13)),
		box("iprp", box("ipco", props...)))
	return cat(ftyp, meta, box("mdat", zeros(16)))
}

func ispe(width, height uint32) []byte {
	return fullBox("ispe", be32(width), be32(height))
}
