/*
Package xargon renders maps of the levels of Xargon and extracts the images
in its graphics archive.
*/
package xargon

import (
	"github.com/rs/zerolog"
)

// Mapper owns the sprite catalog database used when rendering levels.
type Mapper struct {
	db     *SpriteDB
	logger zerolog.Logger
}

// New opens the sprite catalog in dbFile.
func New(dbFile string, logger zerolog.Logger) (*Mapper, error) {
	db, err := NewSpriteDB(dbFile)
	if err != nil {
		return nil, err
	}
	return &Mapper{
		db:     db,
		logger: logger,
	}, nil
}

// ImportXML replaces the sprite catalog with the contents of file.
func (m *Mapper) ImportXML(file string) error {
	if err := m.db.ImportXML(file); err != nil {
		return err
	}
	m.logger.Info().Str("file", file).Msg("imported sprite catalog")
	return nil
}

// DB returns the sprite catalog.
func (m *Mapper) DB() *SpriteDB {
	return m.db
}

func (m *Mapper) Close() error {
	return m.db.Close()
}
