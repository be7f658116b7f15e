package scrollview

import "errors"

var (
	// ErrInvalidIndex is returned when a page index is outside [0, N-1]
	ErrInvalidIndex = errors.New("page index out of range")

	// ErrClosed is returned by calls made after Close
	ErrClosed = errors.New("scroll view closed")
)
