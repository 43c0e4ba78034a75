package level

import "fmt"

// Object types with known meanings.
const (
	TypeLabel        int16 = 6
	TypePopup        int16 = 7
	TypeDoor         int16 = 9
	TypeSwitch       int16 = 12
	TypeDoorLabel    int16 = 61
	TypeDoorLabelAlt int16 = 62
)

// Object is one placed entity in a level.
type Object struct {
	Type       int16
	X          int16
	Y          int16
	Appearance int16
	Variant    int16
	Width      int16
	Height     int16
	SubType    int16
	Reserved1  [2]int16
	Info       int16
	Reserved2  [4]int16
	StringRef  int16
}

// IsText reports whether objects of type t are drawn in the text pass.
func IsText(t int16) bool {
	switch t {
	case TypeLabel, TypePopup, TypeSwitch, TypeDoorLabel, TypeDoorLabelAlt:
		return true
	}
	return false
}

// Field selects one of the object fields used to pick a sprite image.
type Field int

const (
	FieldNone Field = iota
	FieldAppearance
	FieldVariant
	FieldInfo
)

var fieldNames = map[string]Field{
	"":           FieldNone,
	"appearance": FieldAppearance,
	"variant":    FieldVariant,
	"info":       FieldInfo,
}

// ParseField converts a field name as used in sprite catalogs.
func ParseField(s string) (Field, bool) {
	f, ok := fieldNames[s]
	return f, ok
}

func (f Field) String() string {
	switch f {
	case FieldNone:
		return "none"
	case FieldAppearance:
		return "appearance"
	case FieldVariant:
		return "variant"
	case FieldInfo:
		return "info"
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// Value returns the value of field f.
func (o *Object) Value(f Field) int16 {
	switch f {
	case FieldAppearance:
		return o.Appearance
	case FieldVariant:
		return o.Variant
	case FieldInfo:
		return o.Info
	}
	return 0
}
