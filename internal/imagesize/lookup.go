package imagesize

import "fmt"

// Lookup identifies the format of b and returns its dimensions.
//
// The error, when non-nil, wraps one of ErrUnrecognizedFormat,
// ErrCorruptFormat, ErrUnsupportedVariant or ErrTruncatedData. A result and
// an error are never returned together.
func Lookup(b []byte) (*Dimensions, error) {
	h, ok, err := Detect(b)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: undefined", ErrUnrecognizedFormat)
	}

	d, err := h.Calculate(b)
	if err != nil {
		return nil, err
	}
	if d == nil || d.Width <= 0 || d.Height <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnrecognizedFormat, h.Type)
	}
	if d.Type == "" {
		d.Type = h.Type
	}
	return d, nil
}
