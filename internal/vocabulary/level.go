package vocabulary

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Level is the difficulty tier of an item, ordered from easiest to hardest.
type Level int

const (
	LevelUnknown Level = iota
	LevelA1
	LevelA2
	LevelB1
	LevelB2
)

var levelNames = map[Level]string{
	LevelA1: "A1",
	LevelA2: "A2",
	LevelB1: "B1",
	LevelB2: "B2",
}

// AllLevels returns every known level in ascending order.
func AllLevels() []Level {
	return []Level{LevelA1, LevelA2, LevelB1, LevelB2}
}

// ParseLevel parses a level tag such as "b1". Surrounding spaces and case are ignored.
func ParseLevel(s string) (Level, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for level, levelName := range levelNames {
		if levelName == name {
			return level, nil
		}
	}
	return LevelUnknown, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "unknown"
}

func (l Level) MarshalText() ([]byte, error) {
	if _, ok := levelNames[l]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, int(l))
	}
	return []byte(l.String()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Scan implements sql.Scanner. Levels are stored as their tag, e.g. "A2".
func (l *Level) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return l.UnmarshalText([]byte(v))
	case []byte:
		return l.UnmarshalText(v)
	case nil:
		*l = LevelUnknown
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidLevel, src)
	}
}

// Value implements driver.Valuer.
func (l Level) Value() (driver.Value, error) {
	text, err := l.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}
