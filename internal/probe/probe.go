package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ironsheep/image-size-mcp/internal/imagesize"
)

// DefaultChunkSize is the read size used when none is configured.
const DefaultChunkSize = 16 * 1024

// State is a probe's position in its lifecycle.
type State int

const (
	Fetching State = iota
	Accumulating
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Fetching:
		return "fetching"
	case Accumulating:
		return "accumulating"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Prober reads image streams just far enough to learn their dimensions.
// A Prober holds no per-probe state and is safe for concurrent use.
type Prober struct {
	transport Transport
	logger    zerolog.Logger
	metrics   *Metrics
	chunkSize int
	maxBytes  int
}

// Option configures a Prober.
type Option func(*Prober)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Prober) { p.logger = l }
}

// WithMetrics records every finished probe in m.
func WithMetrics(m *Metrics) Option {
	return func(p *Prober) { p.metrics = m }
}

// WithChunkSize sets the size of each read. Values below 1 keep the default.
func WithChunkSize(n int) Option {
	return func(p *Prober) {
		if n > 0 {
			p.chunkSize = n
		}
	}
}

// WithMaxBytes caps how much of a stream is read before giving up. Zero
// means no cap.
func WithMaxBytes(n int) Option {
	return func(p *Prober) {
		if n >= 0 {
			p.maxBytes = n
		}
	}
}

// New returns a Prober that fetches through t. t may be nil when only
// ProbeReader is used.
func New(t Transport, opts ...Option) *Prober {
	p := &Prober{
		transport: t,
		logger:    zerolog.Nop(),
		chunkSize: DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe fetches url and returns the image's dimensions as soon as the bytes
// received so far contain a complete header. The transfer is abandoned at
// that point by closing the response body.
//
// The probe imposes no deadline of its own; a stalled transport blocks until
// ctx is done.
func (p *Prober) Probe(ctx context.Context, url string) (*imagesize.Dimensions, error) {
	log := p.logger.With().Str("probe_id", uuid.New().String()).Str("url", url).Logger()
	log.Debug().Stringer("state", Fetching).Msg("probe started")

	if p.transport == nil {
		return nil, p.fail(log, &TransportError{URL: url, Err: errors.New("no transport configured")}, 0, 0)
	}

	resp, err := p.transport.Fetch(ctx, url)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, p.fail(log, ctxErr, 0, 0)
		}
		return nil, p.fail(log, &TransportError{URL: url, Err: err}, 0, 0)
	}
	if resp == nil || resp.Body == nil {
		return nil, p.fail(log, &TransportError{URL: url, Err: errors.New("response has no body")}, 0, 0)
	}
	defer resp.Body.Close()

	if !resp.OK() {
		return nil, p.fail(log, &TransportError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected response %q", resp.Status),
		}, 0, 0)
	}

	d, err := p.accumulate(ctx, resp.Body, log)
	if err != nil {
		var te *TransportError
		if errors.As(err, &te) {
			te.URL = url
		}
		return nil, err
	}
	if advertised := advertisedType(resp.ContentType); advertised != "" && !typeMatches(advertised, d.Type) {
		log.Debug().
			Str("content_type", resp.ContentType).
			Str("detected", d.Type).
			Msg("content type does not match detected format")
	}
	return d, nil
}

// ProbeReader runs the same accumulate-and-retry loop over r. It stops
// reading as soon as a header parses but leaves closing r to the caller.
func (p *Prober) ProbeReader(ctx context.Context, r io.Reader) (*imagesize.Dimensions, error) {
	log := p.logger.With().Str("probe_id", uuid.New().String()).Logger()
	return p.accumulate(ctx, r, log)
}

// accumulate appends each chunk to a growing buffer and re-runs Lookup on the
// whole prefix. Truncated and unrecognized results wait for more bytes; any
// other error is final.
func (p *Prober) accumulate(ctx context.Context, r io.Reader, log zerolog.Logger) (*imagesize.Dimensions, error) {
	log.Debug().Stringer("state", Accumulating).Int("chunk_size", p.chunkSize).Msg("reading stream")

	var buf []byte
	chunk := make([]byte, p.chunkSize)
	chunks := 0
	var last error

	for {
		if err := ctx.Err(); err != nil {
			return nil, p.fail(log, err, len(buf), chunks)
		}

		n, readErr := r.Read(chunk)
		if n > 0 {
			chunks++
			buf = append(buf, chunk[:n]...)

			d, err := imagesize.Lookup(buf)
			switch {
			case err == nil:
				log.Debug().
					Stringer("state", Succeeded).
					Str("type", d.Type).
					Int("width", d.Width).
					Int("height", d.Height).
					Int("chunks", chunks).
					Int("bytes", len(buf)).
					Msg("header parsed")
				p.metrics.record(Succeeded.String(), len(buf), chunks, d.Type)
				return d, nil
			case errors.Is(err, imagesize.ErrTruncatedData), errors.Is(err, imagesize.ErrUnrecognizedFormat):
				last = err
			default:
				return nil, p.fail(log, err, len(buf), chunks)
			}

			if p.maxBytes > 0 && len(buf) >= p.maxBytes {
				return nil, p.fail(log, fmt.Errorf("%w: no header within %d bytes", ErrParseFailed, p.maxBytes), len(buf), chunks)
			}
		}

		if readErr == io.EOF {
			if last != nil {
				log.Debug().Err(last).Msg("stream ended")
			}
			return nil, p.fail(log, ErrParseFailed, len(buf), chunks)
		}
		if readErr != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, p.fail(log, ctxErr, len(buf), chunks)
			}
			return nil, p.fail(log, &TransportError{Err: readErr}, len(buf), chunks)
		}
	}
}

func (p *Prober) fail(log zerolog.Logger, err error, bytes, chunks int) error {
	ev := log.Debug().Stringer("state", Failed).Int("chunks", chunks).Int("bytes", bytes)
	var te *TransportError
	if errors.As(err, &te) {
		ev = ev.Str("cause", te.Detail())
	} else {
		ev = ev.Err(err)
	}
	ev.Msg("probe failed")
	p.metrics.record(Failed.String(), bytes, chunks, "")
	return err
}

// advertisedType extracts the image subtype from a Content-Type header, or ""
// when the header is absent, malformed, or not an image type.
func advertisedType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	sub, ok := strings.CutPrefix(mediaType, "image/")
	if !ok || sub == "*" {
		return ""
	}
	return sub
}

var mediaAliases = map[string]string{
	"jpeg":                "jpg",
	"pjpeg":               "jpg",
	"svg+xml":             "svg",
	"x-icon":              "ico",
	"vnd.microsoft.icon":  "ico",
	"x-ms-bmp":            "bmp",
	"x-tga":               "tga",
	"x-targa":             "tga",
	"vnd.adobe.photoshop": "psd",
	"x-portable-pixmap":   "pnm",
	"x-portable-anymap":   "pnm",
	"x-portable-graymap":  "pnm",
	"x-portable-bitmap":   "pnm",
	"x-icns":              "icns",
	"vnd-ms.dds":          "dds",
}

func typeMatches(advertised, detected string) bool {
	if alias, ok := mediaAliases[advertised]; ok {
		advertised = alias
	}
	if advertised == detected {
		return true
	}
	// heif family and tiff variants share one handler.
	switch detected {
	case "heic", "avif", "heif":
		return advertised == "heic" || advertised == "avif" || advertised == "heif"
	case "bigtiff":
		return advertised == "tiff"
	}
	return false
}
