package level

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrFormat is returned for a truncated level file.
	ErrFormat = errors.New("level: invalid level file")

	// ErrNoString is returned when a string reference cannot be resolved.
	ErrNoString = errors.New("level: unknown string reference")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r io.Reader
	m *Map
}

func (d *decoder) readTiles() error {
	return binary.Read(d.r, binary.LittleEndian, d.m.Tiles[:])
}

func (d *decoder) readObjects() error {
	var n uint16
	if err := binary.Read(d.r, binary.LittleEndian, &n); err != nil {
		return err
	}
	objects := make([]Object, n)
	if err := binary.Read(d.r, binary.LittleEndian, objects); err != nil {
		return err
	}
	for i := range objects {
		o := &objects[i]
		d.m.Objects = append(d.m.Objects, o)
		if IsText(o.Type) {
			d.m.Text = append(d.m.Text, o)
		} else {
			d.m.Sprites = append(d.m.Sprites, o)
		}
	}
	return nil
}

func (d *decoder) readAux() error {
	return readFull(d.r, d.m.Aux[:])
}

// readStrings reads the string pool until the end of the file. A missing or
// short length prefix ends the pool; the separator after the final string
// may be absent.
func (d *decoder) readStrings() error {
	for {
		var tmp [2]byte
		if _, err := io.ReadFull(d.r, tmp[:]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return nil
			}
			return err
		}
		s := make([]byte, binary.LittleEndian.Uint16(tmp[:]))
		if err := readFull(d.r, s); err != nil {
			return err
		}
		d.m.Strings = append(d.m.Strings, string(s))
		if _, err := io.ReadFull(d.r, tmp[:1]); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// Decode reads a level file from r. The name is kept for palette and
// fixup selection.
func Decode(r io.Reader, name string) (*Map, error) {
	d := decoder{
		r: r,
		m: &Map{Name: name},
	}

	for _, step := range []struct {
		what string
		fn   func() error
	}{
		{"tiles", d.readTiles},
		{"objects", d.readObjects},
		{"aux", d.readAux},
		{"strings", d.readStrings},
	} {
		if err := step.fn(); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, fmt.Errorf("%w: %s: %w", ErrFormat, step.what, err)
		}
	}

	d.m.indexStrings()

	return d.m, nil
}
