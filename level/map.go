package level

import (
	"fmt"
	"sort"
)

// Map is a decoded level.
type Map struct {
	Name string

	// Tiles is stored height first; use Tile to address it.
	Tiles [gridSize]uint16

	// Objects in file order. Sprites and Text partition the same objects
	// into their draw passes, each in file order.
	Objects []*Object
	Sprites []*Object
	Text    []*Object

	Aux     [auxSize]byte
	Strings []string

	refs []int16
}

// Tile returns the tile code at column x, row y.
func (m *Map) Tile(x, y int) uint16 {
	return m.Tiles[x*Height+y]
}

// ID returns the level's internal number.
func (m *Map) ID() byte {
	return m.Aux[0]
}

func (m *Map) indexStrings() {
	m.refs = m.refs[:0]
	for _, o := range m.Objects {
		if o.StringRef > 0 {
			m.refs = append(m.refs, o.StringRef)
		}
	}
	sort.SliceStable(m.refs, func(i, j int) bool { return m.refs[i] > m.refs[j] })
}

// Refs returns a copy of the reference table: every positive string
// reference, sorted descending. Position i pairs with Strings[i].
func (m *Map) Refs() []int16 {
	return append([]int16(nil), m.refs...)
}

// SetRefs replaces the reference table, for levels whose pool order does
// not follow the sorted references.
func (m *Map) SetRefs(refs []int16) {
	m.refs = append(m.refs[:0], refs...)
}

// Lookup returns the pool string for reference ref. Objects sharing a
// reference resolve to the same, first, sorted position.
func (m *Map) Lookup(ref int16) (string, error) {
	for i, r := range m.refs {
		if r != ref {
			continue
		}
		if i >= len(m.Strings) {
			return "", fmt.Errorf("%w: %d at position %d, pool has %d", ErrNoString, ref, i, len(m.Strings))
		}
		return m.Strings[i], nil
	}
	return "", fmt.Errorf("%w: %d", ErrNoString, ref)
}

// AddObject appends a synthetic object to the level, keeping the draw
// passes and string references consistent.
func (m *Map) AddObject(o Object) *Object {
	p := &o
	m.Objects = append(m.Objects, p)
	if IsText(p.Type) {
		m.Text = append(m.Text, p)
	} else {
		m.Sprites = append(m.Sprites, p)
	}
	if p.StringRef > 0 {
		m.indexStrings()
	}
	return p
}
