package catalog

// Feature is one named group of grammar items for a language, e.g. the
// Finnish case system or the Spanish tense inventory.
type Feature struct {
	Name  string
	Items []string
}

var grammarFeatures = map[string][]Feature{
	"fin": {
		{Name: "cases", Items: []string{
			"nominative", "genitive", "partitive", "inessive", "elative", "illative",
			"adessive", "ablative", "allative", "essive", "translative", "comitative", "instructive",
		}},
		{Name: "verb types", Items: []string{"Type 1", "Type 2", "Type 3", "Type 4", "Type 5", "Type 6"}},
		{Name: "special features", Items: []string{"consonant gradation", "vowel harmony", "partitive objects"}},
	},
	"spa": {
		{Name: "tenses", Items: []string{"presente", "pretérito", "imperfecto", "futuro", "condicional", "perfecto", "pluscuamperfecto"}},
		{Name: "moods", Items: []string{"indicativo", "subjuntivo", "imperativo", "condicional"}},
		{Name: "special features", Items: []string{"ser vs estar", "por vs para", "reflexive verbs"}},
	},
	"fra": {
		{Name: "tenses", Items: []string{"présent", "passé composé", "imparfait", "futur simple", "conditionnel"}},
		{Name: "moods", Items: []string{"indicatif", "subjonctif", "impératif", "conditionnel"}},
		{Name: "special features", Items: []string{"gender agreement", "partitive articles", "negation"}},
	},
	"deu": {
		{Name: "cases", Items: []string{"nominativ", "akkusativ", "dativ", "genitiv"}},
		{Name: "tenses", Items: []string{"präsens", "präteritum", "perfekt", "futur I", "futur II"}},
		{Name: "special features", Items: []string{"word order", "separable verbs", "modal verbs"}},
	},
	"rus": {
		{Name: "cases", Items: []string{"nominative", "genitive", "dative", "accusative", "instrumental", "prepositional"}},
		{Name: "aspects", Items: []string{"perfective", "imperfective"}},
		{Name: "special features", Items: []string{"verbal aspects", "motion verbs", "hard/soft consonants"}},
	},
}

// GrammarFeatures returns the characteristic grammar features for a language,
// or nil when no notes are recorded for it.
func GrammarFeatures(code string) []Feature {
	return grammarFeatures[code]
}
