package graphics

import "errors"

var (
	// ErrFormat is returned for a malformed or truncated archive, or an
	// embedded palette of the wrong size.
	ErrFormat = errors.New("graphics: invalid archive")

	// ErrNoImage is returned when a record or image number is out of range.
	ErrNoImage = errors.New("graphics: no such image")

	// ErrNoPalette is returned when selecting a palette that was never
	// registered.
	ErrNoPalette = errors.New("graphics: no such palette")
)
