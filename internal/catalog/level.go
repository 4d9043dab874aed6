package catalog

import (
	"fmt"
	"strings"
)

// Level is a CEFR proficiency level. The zero value is A1; ordering follows
// the CEFR scale, so levels compare directly with < and >.
type Level int

// Supported CEFR levels, lowest first.
const (
	A1 Level = iota
	A2
	B1
	B2
	C1
)

// DefaultLevel is used when no level has been selected.
const DefaultLevel = B1

// Levels returns all supported levels in ascending order.
func Levels() []Level {
	return []Level{A1, A2, B1, B2, C1}
}

type levelInfo struct {
	code        string
	label       string
	description string
	color       string
}

var levelInfos = [...]levelInfo{
	A1: {"A1", "Beginner", "Basic phrases and everyday expressions. Simple personal details.", "#4CAF50"},
	A2: {"A2", "Elementary", "Familiar expressions for basic routines. Simple communication about immediate needs.", "#8BC34A"},
	B1: {"B1", "Intermediate", "Main points on familiar matters. Simple connected text on familiar topics.", "#2196F3"},
	B2: {"B2", "Upper Intermediate", "Understanding complex text. Spontaneous interaction with native speakers.", "#3F51B5"},
	C1: {"C1", "Advanced", "Understanding demanding, longer texts. Expressing ideas fluently and spontaneously.", "#9C27B0"},
}

// Valid reports whether l is one of the supported levels.
func (l Level) Valid() bool {
	return l >= A1 && l <= C1
}

// Code returns the short level code, e.g. "B1".
func (l Level) Code() string {
	if !l.Valid() {
		return fmt.Sprintf("Level(%d)", int(l))
	}
	return levelInfos[l].code
}

// Label returns the English label, e.g. "Intermediate".
func (l Level) Label() string {
	if !l.Valid() {
		return ""
	}
	return levelInfos[l].label
}

// Display returns the full display form, e.g. "B1 (Intermediate)".
func (l Level) Display() string {
	if !l.Valid() {
		return l.Code()
	}
	return l.Code() + " (" + l.Label() + ")"
}

// Description returns the one-line CEFR summary for the level.
func (l Level) Description() string {
	if !l.Valid() {
		return ""
	}
	return levelInfos[l].description
}

// Color returns the hex color associated with the level.
func (l Level) Color() string {
	if !l.Valid() {
		return "#0066FF"
	}
	return levelInfos[l].color
}

// Badge returns the HTML level badge rendered into assistant responses.
func (l Level) Badge() string {
	return fmt.Sprintf(`<span class="level-badge %s" style="background-color: %s;">%s</span>`,
		l.Code(), l.Color(), l.Code())
}

func (l Level) String() string { return l.Code() }

// badgePrefix is what every rendered badge starts with, regardless of level.
const badgePrefix = `<span class="level-badge`

// HasBadge reports whether text already begins with a level badge.
func HasBadge(text string) bool {
	return strings.HasPrefix(text, badgePrefix)
}

// ParseLevel parses a level from its code ("B1") or display form
// ("B1 (Intermediate)"). Matching is case-insensitive.
func ParseLevel(s string) (Level, error) {
	code := strings.ToUpper(strings.TrimSpace(s))
	if i := strings.IndexByte(code, ' '); i > 0 {
		code = code[:i]
	}
	for _, l := range Levels() {
		if levelInfos[l].code == code {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown level %q", s)
}
