/*
Package export encodes rendered levels and extracted images.

Three formats are supported: full colour PNG, indexed PNG and GIF. The
indexed formats use the exact set of colours when there are few enough,
otherwise the image is reduced with a median cut quantizer.
*/
package export

import (
	"errors"
	"strings"
)

// Format is an output encoding.
type Format int

// Supported formats.
const (
	PNG Format = iota
	IndexedPNG
	GIF
)

// Maximum palette size of the indexed formats.
const maxColors = 256

var errUnknownFormat = errors.New("export: unknown format")

var formatNames = [...]string{
	PNG:        "png",
	IndexedPNG: "indexed",
	GIF:        "gif",
}

// ParseFormat returns the format with the given name.
func ParseFormat(s string) (Format, error) {
	for i, n := range formatNames {
		if strings.EqualFold(s, n) {
			return Format(i), nil
		}
	}
	return 0, errUnknownFormat
}

func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return "unknown"
	}
	return formatNames[f]
}

// Ext returns the file extension, including the dot.
func (f Format) Ext() string {
	if f == GIF {
		return ".gif"
	}
	return ".png"
}
