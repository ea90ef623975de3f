package probe

import (
	"context"
	"io"
)

// Response is the part of a fetch result the probe needs.
type Response struct {
	StatusCode int
	Status     string

	// ContentType is the advertised media type. It is informational only;
	// detection always looks at the bytes.
	ContentType string

	// Body yields the payload in chunks. Closing it abandons the transfer.
	Body io.ReadCloser
}

// OK reports whether the response carries a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Transport issues a GET for url. The returned body must stop the transfer
// when closed and should honour ctx while reading.
type Transport interface {
	Fetch(ctx context.Context, url string) (*Response, error)
}
