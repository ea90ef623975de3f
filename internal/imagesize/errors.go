package imagesize

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by Detect, Lookup and the format handlers
// wraps exactly one of these, so callers classify failures with errors.Is.
var (
	// ErrUnrecognizedFormat means no handler's signature matched.
	ErrUnrecognizedFormat = errors.New("unsupported file type")

	// ErrCorruptFormat means a signature matched but the payload broke a
	// structural rule of the format.
	ErrCorruptFormat = errors.New("corrupt image data")

	// ErrUnsupportedVariant means the format was recognized but the
	// sub-format is one this package does not read.
	ErrUnsupportedVariant = errors.New("unsupported image variant")

	// ErrTruncatedData means the buffer ends before the header does. It is
	// the only retryable kind: more bytes may turn it into a result.
	ErrTruncatedData = errors.New("truncated image data")
)

func corruptf(format, msg string, args ...interface{}) error {
	return fmt.Errorf("%s: %w: %s", format, ErrCorruptFormat, fmt.Sprintf(msg, args...))
}

func unsupportedf(format, msg string, args ...interface{}) error {
	return fmt.Errorf("%s: %w: %s", format, ErrUnsupportedVariant, fmt.Sprintf(msg, args...))
}

func truncatedf(format, msg string, args ...interface{}) error {
	return fmt.Errorf("%s: %w: %s", format, ErrTruncatedData, fmt.Sprintf(msg, args...))
}

// IsRetryable reports whether err only signals that more input is needed.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTruncatedData)
}
