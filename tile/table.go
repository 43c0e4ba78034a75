package tile

import "fmt"

// Entry is one record of the TILES file.
type Entry struct {
	Code  uint16
	Index uint16
	Flags uint16
	Name  string
}

// Record returns the archive record number the entry points at.
func (e Entry) Record() int {
	return int(e.Index)/256 - recordBias
}

// Image returns the image number within Record.
func (e Entry) Image() int {
	return int(e.Index) % 256
}

// Table maps tile codes to archive images.
type Table struct {
	// Entries in file order.
	Entries []Entry

	index map[uint16]int
}

// add records e; a later entry for the same code replaces an earlier one.
func (t *Table) add(e Entry) {
	t.index[e.Code] = len(t.Entries)
	t.Entries = append(t.Entries, e)
}

// Lookup returns the entry for a tile code as found in a level file.
func (t *Table) Lookup(code uint16) (Entry, error) {
	if code >= Bias {
		code -= Bias
	}
	i, ok := t.index[code]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %#04x", ErrNotFound, code)
	}
	return t.Entries[i], nil
}

// Resolve returns the archive record and image numbers for a tile code.
func (t *Table) Resolve(code uint16) (record, image int, err error) {
	e, err := t.Lookup(code)
	if err != nil {
		return 0, 0, err
	}
	return e.Record(), e.Image(), nil
}
