package xargon

import (
	"database/sql"
	"encoding/xml"
	"fmt"
	"image"
	"io"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/zerkerX/xargonmapper/graphics"
	"github.com/zerkerX/xargonmapper/level"
	"github.com/zerkerX/xargonmapper/sprite"
)

// SpriteDB stores the sprite catalog for every episode.
type SpriteDB struct {
	db *sql.DB
}

// NewSpriteDB opens or creates the catalog database in file.
func NewSpriteDB(file string) (*SpriteDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS sprite (id INTEGER PRIMARY KEY NOT NULL, episode INTEGER NOT NULL, type INTEGER NOT NULL, subtype INTEGER NOT NULL, kind INTEGER NOT NULL, field INTEGER NOT NULL, label INTEGER NOT NULL, label_x INTEGER NOT NULL, label_y INTEGER NOT NULL, UNIQUE(episode, type, subtype))"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS frame (id INTEGER PRIMARY KEY NOT NULL, sprite_id INTEGER NOT NULL, role INTEGER NOT NULL, key INTEGER NOT NULL, x INTEGER NOT NULL, y INTEGER NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, alpha INTEGER NOT NULL, FOREIGN KEY(sprite_id) REFERENCES sprite(id) ON DELETE CASCADE)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS part (frame_id INTEGER NOT NULL, seq INTEGER NOT NULL, x INTEGER NOT NULL, y INTEGER NOT NULL, record INTEGER NOT NULL, image INTEGER NOT NULL, PRIMARY KEY(frame_id, seq), FOREIGN KEY(frame_id) REFERENCES frame(id) ON DELETE CASCADE)"); err != nil {
		return nil, err
	}

	return &SpriteDB{
		db: db,
	}, nil
}

type xmlCatalog struct {
	XMLName xml.Name    `xml:"Catalog"`
	Sprites []xmlSprite `xml:"Sprite"`
}

type xmlSprite struct {
	XMLName xml.Name   `xml:"Sprite"`
	Episode int        `xml:"Episode,attr"`
	Type    int16      `xml:"Type,attr"`
	SubType int16      `xml:"SubType,attr"`
	Kind    string     `xml:"Kind,attr"`
	Field   string     `xml:"Field,attr"`
	Label   bool       `xml:"Label,attr"`
	LabelX  int        `xml:"LabelX,attr"`
	LabelY  int        `xml:"LabelY,attr"`
	Frames  []xmlFrame `xml:"Frame"`
}

type xmlFrame struct {
	XMLName xml.Name  `xml:"Frame"`
	Role    string    `xml:"Role,attr"`
	Key     int16     `xml:"Key,attr"`
	X       int       `xml:"X,attr"`
	Y       int       `xml:"Y,attr"`
	Width   int       `xml:"Width,attr"`
	Height  int       `xml:"Height,attr"`
	Alpha   uint8     `xml:"Alpha,attr"`
	Parts   []xmlPart `xml:"Part"`
}

type xmlPart struct {
	XMLName xml.Name `xml:"Part"`
	X       int      `xml:"X,attr"`
	Y       int      `xml:"Y,attr"`
	Record  int      `xml:"Record,attr"`
	Image   int      `xml:"Image,attr"`
}

func parseRole(s string) (sprite.Role, error) {
	switch s {
	case "", "primary":
		return sprite.RolePrimary, nil
	case "contents":
		return sprite.RoleContents, nil
	}
	return 0, fmt.Errorf("unknown frame role %q", s)
}

func (s *xmlSprite) definition() (sprite.Definition, error) {
	def := sprite.Definition{
		Type:        s.Type,
		SubType:     s.SubType,
		Label:       s.Label,
		LabelOffset: image.Pt(s.LabelX, s.LabelY),
	}

	var ok bool
	kind := s.Kind
	if kind == "" {
		kind = sprite.KindFixed.String()
	}
	if def.Kind, ok = sprite.ParseKind(kind); !ok {
		return def, fmt.Errorf("sprite %d:%d: unknown kind %q", s.Type, s.SubType, s.Kind)
	}
	if def.Field, ok = level.ParseField(s.Field); !ok {
		return def, fmt.Errorf("sprite %d:%d: unknown field %q", s.Type, s.SubType, s.Field)
	}

	for _, f := range s.Frames {
		role, err := parseRole(f.Role)
		if err != nil {
			return def, fmt.Errorf("sprite %d:%d: %w", s.Type, s.SubType, err)
		}
		frame := sprite.Frame{
			Role:   role,
			Key:    f.Key,
			Offset: image.Pt(f.X, f.Y),
			Size:   image.Pt(f.Width, f.Height),
			Alpha:  f.Alpha,
		}
		for _, p := range f.Parts {
			frame.Parts = append(frame.Parts, graphics.Part{X: p.X, Y: p.Y, Record: p.Record, Image: p.Image})
		}
		def.Frames = append(def.Frames, frame)
	}

	return def, nil
}

// ImportXML replaces the catalog with the contents of an XML file.
func (db *SpriteDB) ImportXML(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return err
	}

	var catalog xmlCatalog
	if err := xml.Unmarshal(b, &catalog); err != nil {
		return err
	}

	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"part", "frame", "sprite"} {
		if _, err = tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	for _, s := range catalog.Sprites {
		def, err := s.definition()
		if err != nil {
			return err
		}
		if err := addSprite(tx, s.Episode, def); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (db *SpriteDB) Close() error {
	return db.db.Close()
}

func addSprite(tx *sql.Tx, episode int, def sprite.Definition) error {
	for _, q := range []string{
		"DELETE FROM part WHERE frame_id IN (SELECT f.id FROM frame AS f JOIN sprite AS s ON f.sprite_id = s.id WHERE s.episode = ? AND s.type = ? AND s.subtype = ?)",
		"DELETE FROM frame WHERE sprite_id IN (SELECT id FROM sprite WHERE episode = ? AND type = ? AND subtype = ?)",
		"DELETE FROM sprite WHERE episode = ? AND type = ? AND subtype = ?",
	} {
		if _, err := tx.Exec(q, episode, def.Type, def.SubType); err != nil {
			return err
		}
	}

	result, err := tx.Exec("INSERT INTO sprite (episode, type, subtype, kind, field, label, label_x, label_y) VALUES (?, ?, ?, ?, ?, ?, ?, ?)", episode, def.Type, def.SubType, def.Kind, def.Field, def.Label, def.LabelOffset.X, def.LabelOffset.Y)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	for _, f := range def.Frames {
		result, err := tx.Exec("INSERT INTO frame (sprite_id, role, key, x, y, width, height, alpha) VALUES (?, ?, ?, ?, ?, ?, ?, ?)", id, f.Role, f.Key, f.Offset.X, f.Offset.Y, f.Size.X, f.Size.Y, f.Alpha)
		if err != nil {
			return err
		}
		frame, err := result.LastInsertId()
		if err != nil {
			return err
		}
		for i, p := range f.Parts {
			if _, err := tx.Exec("INSERT INTO part (frame_id, seq, x, y, record, image) VALUES (?, ?, ?, ?, ?, ?)", frame, i, p.X, p.Y, p.Record, p.Image); err != nil {
				return err
			}
		}
	}

	return nil
}

// AddSprite stores a single definition for episode, replacing any existing
// one with the same type and subtype. Episode 0 applies to every episode.
func (db *SpriteDB) AddSprite(episode int, def sprite.Definition) error {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := addSprite(tx, episode, def); err != nil {
		return err
	}
	return tx.Commit()
}

// Definitions returns the catalog for episode. Definitions specific to the
// episode come after those shared by all episodes so that they take
// precedence when added to a table in order.
func (db *SpriteDB) Definitions(episode int) ([]sprite.Definition, error) {
	rows, err := db.db.Query("SELECT id, type, subtype, kind, field, label, label_x, label_y FROM sprite WHERE episode = 0 OR episode = ? ORDER BY episode, type, subtype", episode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	var defs []sprite.Definition
	for rows.Next() {
		var id int64
		var def sprite.Definition
		if err := rows.Scan(&id, &def.Type, &def.SubType, &def.Kind, &def.Field, &def.Label, &def.LabelOffset.X, &def.LabelOffset.Y); err != nil {
			return nil, err
		}
		ids = append(ids, id)
		defs = append(defs, def)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, id := range ids {
		frames, err := db.frames(id)
		if err != nil {
			return nil, err
		}
		defs[i].Frames = frames
	}

	return defs, nil
}

func (db *SpriteDB) frames(id int64) ([]sprite.Frame, error) {
	rows, err := db.db.Query("SELECT id, role, key, x, y, width, height, alpha FROM frame WHERE sprite_id = ? ORDER BY id", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	var frames []sprite.Frame
	for rows.Next() {
		var id int64
		var f sprite.Frame
		if err := rows.Scan(&id, &f.Role, &f.Key, &f.Offset.X, &f.Offset.Y, &f.Size.X, &f.Size.Y, &f.Alpha); err != nil {
			return nil, err
		}
		ids = append(ids, id)
		frames = append(frames, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, id := range ids {
		parts, err := db.parts(id)
		if err != nil {
			return nil, err
		}
		frames[i].Parts = parts
	}

	return frames, nil
}

func (db *SpriteDB) parts(frame int64) ([]graphics.Part, error) {
	rows, err := db.db.Query("SELECT x, y, record, image FROM part WHERE frame_id = ? ORDER BY seq", frame)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var parts []graphics.Part
	for rows.Next() {
		var p graphics.Part
		if err := rows.Scan(&p.X, &p.Y, &p.Record, &p.Image); err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, rows.Err()
}
