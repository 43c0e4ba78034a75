package xargon

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	episode1 = iota + 1
	episode2
	episode3
)

var errEpisode = errors.New("xargon: cannot determine episode")

// Episode returns the episode number encoded as the last character of a
// file's extension, such as GRAPHICS.XR1.
func Episode(file string) (int, error) {
	ext := filepath.Ext(file)
	if ext == "" {
		return 0, fmt.Errorf("%w: %s", errEpisode, file)
	}
	c := ext[len(ext)-1]
	if c < '0' || c > '9' {
		return 0, fmt.Errorf("%w: %s", errEpisode, file)
	}
	return int(c - '0'), nil
}

// LevelName returns the level name of a map file, its base name without
// the extension.
func LevelName(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DefaultPalette is the palette images are decoded with before any level
// selects its own.
func DefaultPalette(episode int) int {
	switch episode {
	case episode2:
		return 6
	case episode3:
		return 7
	default:
		return 0
	}
}

var levelPalettes = map[int]map[string]int{
	episode1: {
		"BOARD_01": 0,
		"BOARD_02": 0,
		"BOARD_04": 0,
		"DEMO3":    2,
		"BOARD_05": 4,
		"BOARD_08": 5,
		"BOARD_33": 5,
	},
	episode2: {
		"BOARD_01": 8,
		"BOARD_08": 8,
		"BOARD_15": 8,
		"BOARD_32": 8,
		"BOARD_03": 9,
		"BOARD_05": 10,
		"BOARD_07": 11,
		"BOARD_10": 13,
		"BOARD_11": 12,
	},
	episode3: {
		"BOARD_01": 14,
		"BOARD_02": 15,
		"BOARD_03": 16,
		"BOARD_07": 17,
		"BOARD_11": 18,
		"BOARD_13": 19,
		"BOARD_12": 20,
	},
}

// LevelPalette returns the palette a level is drawn with.
func LevelPalette(episode int, name string) int {
	if p, ok := levelPalettes[episode][strings.ToUpper(name)]; ok {
		return p
	}
	switch episode {
	case episode2:
		return 6
	case episode3:
		return 7
	default:
		return 1
	}
}
