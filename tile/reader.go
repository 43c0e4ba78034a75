package tile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrFormat is returned for a truncated tiles file.
	ErrFormat = errors.New("tile: invalid tiles file")

	// ErrNotFound is returned when a tile code has no entry.
	ErrNotFound = errors.New("tile: unknown tile code")
)

type entryHeader struct {
	Code    uint16
	Index   uint16
	Flags   uint16
	NameLen uint8
}

// Decode reads every entry of a TILES file from r.
func Decode(r io.Reader) (*Table, error) {
	t := &Table{
		index: make(map[uint16]int),
	}
	for {
		var hdr entryHeader
		if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("%w: entry %d: %w", ErrFormat, len(t.Entries), err)
		}
		name := make([]byte, hdr.NameLen)
		if _, err := io.ReadFull(r, name); err != nil {
			return nil, fmt.Errorf("%w: entry %d name: %w", ErrFormat, len(t.Entries), err)
		}
		t.add(Entry{
			Code:  hdr.Code,
			Index: hdr.Index,
			Flags: hdr.Flags,
			Name:  string(name),
		})
	}
	return t, nil
}
