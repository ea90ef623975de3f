// Package probe learns an image's dimensions from a stream without reading
// all of it.
//
// A probe moves through four states:
//
//	Fetching -> Accumulating -> Succeeded
//	                         \-> Failed
//
// Fetching issues the request through a Transport. A transport error, a
// non-2xx status or a missing body fails the probe with a *TransportError
// before any parsing happens.
//
// Accumulating appends every chunk to one buffer and runs imagesize.Lookup on
// everything received so far. The outcome of each attempt decides the next
// step:
//   - a result: the body is closed, abandoning the transfer, and the probe
//     succeeds
//   - imagesize.ErrTruncatedData: wait for the next chunk
//   - imagesize.ErrUnrecognizedFormat: wait as well, since a longer prefix
//     may satisfy a later signature
//   - any other error: fail at once with that error
//
// A stream that ends without a result fails with ErrParseFailed.
//
// # Deadlines
//
// The probe has no timeout of its own. A stalled transport blocks until the
// caller's context is done; the context is checked between chunks and is
// passed to the transport so a blocked read can be interrupted.
//
// # Local Streams
//
// ProbeReader runs the same loop over any io.Reader, which is how local files
// are sized without reading past their header.
//
// # Observability
//
// Each probe logs its state transitions at debug level with a probe_id field.
// When Metrics are attached, every finished probe is counted by outcome and
// the bytes and chunks it consumed are observed.
package probe
