package imagesize

// Dimensions is the size information recovered from an image header.
type Dimensions struct {
	// Width and Height are in pixels and always positive in a returned result.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Orientation is the EXIF orientation (1-8). Zero means the file carries
	// no orientation tag and is omitted from JSON.
	Orientation int `json:"orientation,omitempty"`

	// Type is the format tag of the handler that produced the result, or a
	// more specific tag the handler chose (e.g. "avif", "ktx2", "bigtiff").
	Type string `json:"type,omitempty"`

	// Compression is the TIFF compression tag value when present.
	Compression int `json:"compression,omitempty"`

	// Images lists every sub-image of a multi-image container. It is only set
	// when there is more than one, and Images[0] mirrors Width/Height.
	Images []Dimensions `json:"images,omitempty"`
}

// MatchKind is the outcome of checking a buffer against one signature.
type MatchKind int

const (
	// NoMatch: the signature is absent; try the next handler.
	NoMatch MatchKind = iota
	// Matched: the signature is present; hand the buffer to Calculate.
	Matched
	// MatchedCorrupt: the signature is present but the payload is invalid.
	// Detection stops and the error is reported.
	MatchedCorrupt
)

// Verdict is what a validator returns. Err is set only for MatchedCorrupt.
type Verdict struct {
	Kind MatchKind
	Err  error
}

func noMatch() Verdict { return Verdict{Kind: NoMatch} }

func matched() Verdict { return Verdict{Kind: Matched} }

func matchIf(ok bool) Verdict {
	if ok {
		return matched()
	}
	return noMatch()
}

func corrupt(err error) Verdict { return Verdict{Kind: MatchedCorrupt, Err: err} }

// Handler is the capability pair for one container format. Handlers are
// stateless values; Calculate may assume Validate returned Matched for the
// same bytes.
type Handler struct {
	Type      string
	Validate  func(b []byte) Verdict
	Calculate func(b []byte) (*Dimensions, error)
}
