package imagesize

import (
	"encoding/binary"
	"fmt"
)

const (
	iconTypeICO = 1
	iconTypeCUR = 2

	iconHeaderSize = 6  // reserved, type, count
	iconEntrySize  = 16 // width, height, colours, reserved, planes, bpp, size, offset
)

func iconValidate(kind uint16) func(b []byte) Verdict {
	return func(b []byte) Verdict {
		v := newView(b)
		if !v.has(0, iconHeaderSize) {
			return noMatch()
		}
		if v.u16(0, binary.LittleEndian) != 0 || v.u16(4, binary.LittleEndian) == 0 {
			return noMatch()
		}
		return matchIf(v.u16(2, binary.LittleEndian) == kind)
	}
}

// iconSide reads a one-byte directory dimension, where 0 stands for 256.
func iconSide(v *view, off int) int {
	n := int(v.u8(off))
	if n == 0 {
		return 256
	}
	return n
}

func iconCalculate(b []byte) (*Dimensions, error) {
	v := newView(b)
	count := int(v.u16(4, binary.LittleEndian))
	if v.err != nil {
		return nil, v.err
	}

	images := make([]Dimensions, 0, count)
	for i := 0; i < count; i++ {
		off := iconHeaderSize + i*iconEntrySize
		d := Dimensions{Width: iconSide(v, off), Height: iconSide(v, off+1)}
		if v.err != nil {
			return nil, fmt.Errorf("icon entry %d of %d: %w", i+1, count, v.err)
		}
		images = append(images, d)
	}

	d := &Dimensions{Width: images[0].Width, Height: images[0].Height}
	if count > 1 {
		d.Images = images
	}
	return d, nil
}

var icoHandler = Handler{
	Type:      "ico",
	Validate:  iconValidate(iconTypeICO),
	Calculate: iconCalculate,
}

// CUR shares the ICO directory layout.
var curHandler = Handler{
	Type:      "cur",
	Validate:  iconValidate(iconTypeCUR),
	Calculate: iconCalculate,
}
