package imagesize

// Detect runs each registered validator in order and returns a copy of the
// first handler whose signature matches b. ok is false when nothing matches.
// When a signature matched but the payload is structurally invalid the
// validator's error is returned and no further handlers are tried.
func Detect(b []byte) (Handler, bool, error) {
	for _, h := range registry {
		switch v := h.Validate(b); v.Kind {
		case Matched:
			return h, true, nil
		case MatchedCorrupt:
			return Handler{}, false, v.Err
		}
	}
	return Handler{}, false, nil
}
