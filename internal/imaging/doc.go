// Package imaging answers size questions about image files on disk.
//
// It never decodes pixels. Each file is read through a Sizer (normally the
// probe package's Prober) only until its header parses, and the resulting
// dimensions are cached by path.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Two goroutines that miss
// the cache for the same path at the same time both read the file; the
// results are identical and the later store wins.
//
// # Error Handling
//
// Functions return errors for:
//   - File I/O errors while opening or stat'ing the file
//   - Headers the imagesize package cannot parse (wrapped, so errors.Is
//     still matches imagesize.ErrUnrecognizedFormat and friends)
//
// Failures are never cached.
package imaging
