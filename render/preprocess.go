package render

import (
	"image"
	"strings"

	"github.com/zerkerX/xargonmapper/level"
)

// Switches sharing a position are moved down by this many pixels.
const switchStep = 8

// Preprocess moves switches that overlap a door or another switch and
// clears switch info values already shown by a door's own label.
func Preprocess(m *level.Map) {
	doors := make(map[int16]struct{})
	taken := make(map[image.Point]struct{})
	for _, o := range m.Objects {
		if o.Type == level.TypeDoor {
			doors[o.Info] = struct{}{}
			taken[image.Pt(int(o.X), int(o.Y))] = struct{}{}
		}
	}

	for _, o := range m.Objects {
		if o.Type != level.TypeSwitch {
			continue
		}
		for {
			if _, ok := taken[image.Pt(int(o.X), int(o.Y))]; !ok {
				break
			}
			o.Y += switchStep
		}
		taken[image.Pt(int(o.X), int(o.Y))] = struct{}{}
		if _, ok := doors[o.Info]; ok {
			o.Info = 0
		}
	}
}

// ApplyFixups corrects levels whose string pool order does not follow the
// sorted reference table, and adds objects missing from specific levels.
// The reference table is reordered; the pool itself is left as stored.
func ApplyFixups(m *level.Map, episode int) {
	name := strings.ToUpper(m.Name)
	switch {
	case episode == 1 && name == "STORY":
		if refs := m.Refs(); len(refs) >= 120 {
			m.SetRefs(reorderStory(refs))
		}
	case episode == 2 && name == "BOARD_32":
		if refs := m.Refs(); len(refs) > 8 {
			m.SetRefs(moveLast(refs, 8))
		}
	case episode == 3 && name == "BOARD_32":
		m.AddObject(level.Object{Type: 1000, X: 48, Y: 240, Width: 160, Height: 160})
	}
}

// reorderStory moves the story's later pages, stored at 116 to 119 and
// 81 to 84, into reading order starting at 81.
func reorderStory[T any](s []T) []T {
	pages := append([]T{}, s[117:120]...)
	pages = append(pages, s[82], s[81], s[84], s[83], s[116])
	out := append([]T{}, s[:81]...)
	out = append(out, pages...)
	out = append(out, s[85:116]...)
	return append(out, s[120:]...)
}

// moveLast moves the final element of s to index i.
func moveLast[T any](s []T, i int) []T {
	last := s[len(s)-1]
	out := append([]T{}, s[:i]...)
	out = append(out, last)
	return append(out, s[i:len(s)-1]...)
}
