package graphics

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image/color"
	"io"

	"github.com/rs/zerolog"
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r      *bytes.Reader
	logger zerolog.Logger

	offsets [numRecords]uint32
	sizes   [numRecords]uint16
}

func (d *decoder) readTables() error {
	if err := binary.Read(d.r, binary.LittleEndian, &d.offsets); err != nil {
		return err
	}
	return binary.Read(d.r, binary.LittleEndian, &d.sizes)
}

func (d *decoder) readRecord(i int) (*Record, error) {
	r := &Record{
		Offset: d.offsets[i],
		Size:   d.sizes[i],
	}
	if r.Empty() {
		return r, nil
	}
	if _, err := d.r.Seek(int64(r.Offset), io.SeekStart); err != nil {
		return nil, err
	}
	if err := binary.Read(d.r, binary.LittleEndian, &r.Header); err != nil {
		return nil, err
	}
	return r, nil
}

// loadImages decodes every image in r under palette p. The first skip images
// are stepped over without being decoded.
func (d *decoder) loadImages(r *Record, p color.Palette, skip int) error {
	if r.Empty() {
		return nil
	}
	if _, err := d.r.Seek(int64(r.Offset)+recordHeaderSize, io.SeekStart); err != nil {
		return err
	}

	for n := 0; n < r.NumImages(); n++ {
		var hdr [imageHeaderSize]byte
		if err := readFull(d.r, hdr[:]); err != nil {
			return err
		}
		width, height, flags := int(hdr[0]), int(hdr[1]), hdr[2]

		switch {
		case skip > 0:
			if _, err := d.r.Seek(int64(width*height), io.SeekCurrent); err != nil {
				return err
			}
			skip--
		case width > 0 && height > 0:
			pix := make([]byte, width*height)
			if err := readFull(d.r, pix); err != nil {
				return err
			}
			r.add(pix, width, height, flags, p)
		}
	}

	pos, err := d.r.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	r.Leftover = int(int64(r.Offset) + int64(r.Size) - pos)
	switch {
	case r.Leftover > 0:
		d.logger.Warn().Uint32("offset", r.Offset).Uint16("size", r.Size).Int("leftover", r.Leftover).Msg("record has bytes unaccounted for")
	case r.Leftover < 0:
		d.logger.Warn().Uint32("offset", r.Offset).Uint16("size", r.Size).Int("overrun", -r.Leftover).Msg("record read beyond its boundary")
	}

	return nil
}

func formatError(err error) error {
	return fmt.Errorf("%w: %w", ErrFormat, err)
}
