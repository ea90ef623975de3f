// Package imagesize identifies image container formats from their leading
// bytes and extracts pixel dimensions without decoding any image data.
//
// The package reads only headers. Given a byte slice that holds the start of
// a file (or all of it), Lookup decides which format it is and returns a
// Dimensions value with the width, height and, where the format carries it,
// the EXIF orientation, TIFF compression tag and the list of sub-images.
//
// # Supported Formats
//
// Detection runs the registered handlers in a fixed order and the first
// matching signature wins:
//
//	bmp, cur, dds, gif, heif (avif/heic), icns, ico, j2c, jp2, jpg,
//	jxl (container), jxl-stream (bare codestream), ktx (ktx/ktx2), png
//	(including Apple CgBI), pnm (pbm/pgm/ppm/pam/pfm), psd, svg, tga,
//	tiff (classic and BigTIFF), webp (VP8, VP8L, VP8X)
//
// The order is part of the contract. TGA has no magic number and PNM, BMP and
// JPEG use two-byte signatures; they are only reliable because stronger
// signatures are tried in a known sequence. Formats returns the order.
//
// # Errors
//
// Every failure wraps one of four sentinel errors:
//   - ErrUnrecognizedFormat: no signature matched, or the matching handler
//     produced no usable size
//   - ErrCorruptFormat: a signature matched but the header is invalid, such
//     as a PNG whose first chunk is not IHDR
//   - ErrUnsupportedVariant: a recognized sub-format that is not read, such
//     as lossless JPEG or a TIFF size stored behind an offset
//   - ErrTruncatedData: the bytes end before the header does
//
// Only ErrTruncatedData is worth retrying with more input; IsRetryable
// reports it. A non-nil error is never returned alongside a result.
//
// # Partial Input
//
// Handlers are written to be called repeatedly on a growing prefix of a
// file. Signatures that are not fully present yet do not match, and a header
// cut short reports ErrTruncatedData instead of a wrong size. The probe
// package builds its streaming loop on this.
//
// # Thread Safety
//
// Handlers and the registry are immutable package-level values. Lookup and
// Detect keep all state on the stack and may be called concurrently.
package imagesize
