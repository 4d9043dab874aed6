// Package catalog defines the static tutoring data: supported languages,
// CEFR proficiency levels, time-of-day greetings, and the per-language
// grammar feature notes used for prompt enrichment.
package catalog

import (
	"fmt"
	"time"
)

// DefaultLanguageCode is used when no language has been selected.
const DefaultLanguageCode = "fin"

// Language describes one supported target language.
type Language struct {
	Code       string // ISO 639-3 code, e.g. "fin"
	Name       string // English display name
	NativeName string
	Flag       string // flag emoji
}

// languages holds the supported set in display order.
var languages = []Language{
	{Code: "fin", Name: "Finnish", NativeName: "Suomi", Flag: "🇫🇮"},
	{Code: "spa", Name: "Spanish", NativeName: "Español", Flag: "🇪🇸"},
	{Code: "fra", Name: "French", NativeName: "Français", Flag: "🇫🇷"},
	{Code: "deu", Name: "German", NativeName: "Deutsch", Flag: "🇩🇪"},
	{Code: "ita", Name: "Italian", NativeName: "Italiano", Flag: "🇮🇹"},
	{Code: "rus", Name: "Russian", NativeName: "Русский", Flag: "🇷🇺"},
	{Code: "swe", Name: "Swedish", NativeName: "Svenska", Flag: "🇸🇪"},
}

var languagesByCode = func() map[string]Language {
	m := make(map[string]Language, len(languages))
	for _, l := range languages {
		m[l.Code] = l
	}
	return m
}()

// Lookup returns the language for the given code.
func Lookup(code string) (Language, bool) {
	l, ok := languagesByCode[code]
	return l, ok
}

// MustLookup returns the language for the given code and panics for unknown
// codes. Only for static initialization paths where the code is a constant.
func MustLookup(code string) Language {
	l, ok := languagesByCode[code]
	if !ok {
		panic(fmt.Sprintf("catalog: unknown language code %q", code))
	}
	return l
}

// All returns the supported languages in display order.
func All() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// greetings maps language code to morning/afternoon/evening phrases.
type greetingSet struct {
	morning   string
	afternoon string
	evening   string
}

var greetings = map[string]greetingSet{
	"fin": {"Hyvää huomenta!", "Hyvää päivää!", "Hyvää iltaa!"},
	"spa": {"¡Buenos días!", "¡Buenas tardes!", "¡Buenas noches!"},
	"fra": {"Bonjour!", "Bon après-midi!", "Bonsoir!"},
	"deu": {"Guten Morgen!", "Guten Tag!", "Guten Abend!"},
	"ita": {"Buongiorno!", "Buon pomeriggio!", "Buonasera!"},
	"rus": {"Доброе утро!", "Добрый день!", "Добрый вечер!"},
	"swe": {"God morgon!", "God dag!", "God kväll!"},
}

// Greeting returns the time-of-day greeting for a language with its English
// gloss. Bands: before 12:00 morning, before 18:00 afternoon, otherwise
// evening. Unknown codes fall back to Finnish.
func Greeting(code string, at time.Time) string {
	set, ok := greetings[code]
	if !ok {
		set = greetings[DefaultLanguageCode]
	}
	switch hour := at.Hour(); {
	case hour < 12:
		return set.morning + " (Good morning!) 🌞"
	case hour < 18:
		return set.afternoon + " (Good afternoon!) 🌤️"
	default:
		return set.evening + " (Good evening!) 🌙"
	}
}
