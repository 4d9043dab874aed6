// Package guidelines resolves the level- and language-appropriate content
// constraints fed into the tutoring prompt: vocabulary themes, grammar
// structures, and example sentences per CEFR level, plus the longer prose
// guidelines blocks.
package guidelines

import "github.com/polyglot-labs/polyglot/internal/catalog"

// Set holds the content guidelines for one (level, language) combination.
type Set struct {
	Grammar          []string
	Vocabulary       []string
	ExampleSentences []string
}

// baseContent applies to every language unless overridden.
var baseContent = map[catalog.Level]Set{
	catalog.A1: {
		Grammar: []string{
			"Basic present tense",
			"Simple questions",
			"Basic negation",
			"Personal pronouns",
			"Numbers 1-100",
			"Basic prepositions",
		},
		Vocabulary: []string{
			"Basic greetings and introductions",
			"Family members",
			"Numbers and time expressions",
			"Food and drinks",
			"Basic everyday items",
			"Simple adjectives (good, bad, big, small)",
			"Basic verbs (to be, to have, to go, to come)",
		},
		ExampleSentences: []string{
			"My name is...",
			"I have a...",
			"She/he goes to...",
			"What are you doing?",
		},
	},
	catalog.A2: {
		Grammar: []string{
			"Past tense (simple)",
			"More question forms",
			"Possessives",
			"Plural forms",
			"Comparative forms",
			"More prepositions",
		},
		Vocabulary: []string{
			"Weather and seasons",
			"Clothing",
			"Parts of the body",
			"Hobbies and free time",
			"Traveling and transportation",
			"Shopping and services",
			"House and home",
		},
		ExampleSentences: []string{
			"I went to the store yesterday.",
			"When did you arrive?",
			"My house is bigger than yours.",
			"In summer we go to the beach.",
		},
	},
	catalog.B1: {
		Grammar: []string{
			"Perfect tenses",
			"Future tense",
			"Conditional forms",
			"Passive voice (simple)",
			"More complex sentence structures",
			"Relative clauses",
		},
		Vocabulary: []string{
			"Work and professional life",
			"Education and studies",
			"Media and current events",
			"Health and wellbeing",
			"Nature and environment",
			"Emotions and feelings",
			"Abstract concepts",
		},
		ExampleSentences: []string{
			"If I had more time, I would study more.",
			"Have you already visited the new museum?",
			"This book was written by a famous author.",
			"Could you explain this again?",
		},
	},
	catalog.B2: {
		Grammar: []string{
			"All tenses",
			"Complex verbal constructions",
			"Reported speech",
			"Advanced conditional forms",
			"Expressing hypothesis",
			"Complex modifiers",
		},
		Vocabulary: []string{
			"Political and social issues",
			"Science and technology",
			"Economics and business",
			"Arts and culture",
			"Idiomatic expressions",
			"Academic vocabulary",
			"Specialized terminology",
		},
		ExampleSentences: []string{
			"Experts claim that climate change significantly affects our planet.",
			"Without your help, I wouldn't have been able to solve this problem.",
			"If only I had studied harder!",
			"The matter will be announced later.",
		},
	},
	catalog.C1: {
		Grammar: []string{
			"All grammatical structures",
			"Complex constructions",
			"Nuanced tense and mood usage",
			"Literary and formal structures",
			"Sophisticated syntax",
			"Dialectal variations",
		},
		Vocabulary: []string{
			"Specialized professional terminology",
			"Literary and poetic language",
			"Colloquial and dialectal expressions",
			"Cultural references",
			"Humor and wordplay",
			"Philosophical concepts",
			"Very specific domain knowledge",
		},
		ExampleSentences: []string{
			"Had the government approved the bill, we would have had to change our entire operating model.",
			"The questions that emerged in the research will be addressed in more detail in future publications.",
			"His/her works reflect the transition period of society in the post-war era.",
			"Having said that, I realized I had made a mistake.",
		},
	},
}

// languageContent overrides base fields wholesale for specific languages at
// specific levels. A field present here fully replaces the base field.
var languageContent = map[string]map[catalog.Level]Set{
	"fin": {
		catalog.A1: {
			Grammar: []string{
				"Basic present tense verb conjugation",
				"Simple noun cases: nominative, partitive, genitive",
				"Personal pronouns",
				"Simple questions with question words",
				"Basic negative sentences",
				"Numbers 1-100",
				"Simple consonant gradation (kk-k, pp-p, tt-t)",
			},
			Vocabulary: []string{
				"Basic greetings and introductions",
				"Family members",
				"Numbers and time expressions",
				"Food and drinks",
				"Basic everyday items",
				"Simple adjectives (hyvä, paha, iso, pieni)",
				"Basic verbs (olla, olla jollakin, mennä, tulla)",
			},
			ExampleSentences: []string{
				"Minä olen Anna. (I am Anna.)",
				"Minulla on koira. (I have a dog.)",
				"Hän menee kauppaan. (He/she goes to the store.)",
				"Mitä sinä teet? (What are you doing?)",
			},
		},
		catalog.A2: {
			Grammar: []string{
				"All verb types in present tense",
				"Past tense (imperfect)",
				"Consonant gradation (more patterns)",
				"Locative cases (inessive, elative, illative)",
				"More question forms",
				"Possessive suffixes (basic use)",
				"Plural forms of nouns",
			},
			Vocabulary: []string{
				"Weather and seasons",
				"Clothing",
				"Parts of the body",
				"Hobbies and free time",
				"Traveling and transportation",
				"Shopping and services",
				"House and home",
			},
			ExampleSentences: []string{
				"Minä kävin eilen kaupassa. (I went to the store yesterday.)",
				"Milloin sinä tulit Suomeen? (When did you come to Finland?)",
				"Minun autoni on sininen. (My car is blue.)",
				"Kesällä me menemme mökille. (In summer we go to the cottage.)",
			},
		},
	},
	"spa": {
		catalog.A1: {
			Grammar: []string{
				"Present tense of regular -ar, -er, -ir verbs",
				"Present tense of common irregular verbs (ser, estar, ir, tener)",
				"Gender and number agreement",
				"Definite and indefinite articles",
				"Basic prepositions",
				"Subject pronouns",
				"Basic question words",
			},
			Vocabulary: []string{
				"Greetings and farewells",
				"Family and relationships",
				"Numbers and time",
				"Food and restaurants",
				"Daily activities",
				"Basic adjectives",
				"Countries and nationalities",
			},
			ExampleSentences: []string{
				"Me llamo Juan. (My name is Juan.)",
				"¿De dónde eres? (Where are you from?)",
				"Tengo dos hermanos. (I have two siblings.)",
				"Me gusta el café. (I like coffee.)",
			},
		},
		catalog.A2: {
			Grammar: []string{
				"Preterite tense of regular verbs",
				"Preterite of common irregular verbs",
				"Imperfect tense",
				"Reflexive verbs",
				"Direct and indirect object pronouns",
				"Comparatives and superlatives",
				"Simple commands (tú form)",
			},
			Vocabulary: []string{
				"Shopping and clothing",
				"Travel and transportation",
				"House and furniture",
				"Daily routines",
				"Weather and seasons",
				"Health and body parts",
				"City and directions",
			},
			ExampleSentences: []string{
				"Ayer fui al cine. (Yesterday I went to the movies.)",
				"Cuando era niño, jugaba al fútbol. (When I was a child, I used to play soccer.)",
				"Me duele la cabeza. (My head hurts.)",
				"¿Cómo llego al museo? (How do I get to the museum?)",
			},
		},
	},
}

// Resolve returns the content guidelines for a level and language. The base
// table covers every supported level; language-specific entries replace
// whole fields when present. An unsupported level yields an empty Set.
func Resolve(level catalog.Level, language string) Set {
	set, ok := baseContent[level]
	if !ok {
		return Set{}
	}
	if byLevel, ok := languageContent[language]; ok {
		if override, ok := byLevel[level]; ok {
			if override.Grammar != nil {
				set.Grammar = override.Grammar
			}
			if override.Vocabulary != nil {
				set.Vocabulary = override.Vocabulary
			}
			if override.ExampleSentences != nil {
				set.ExampleSentences = override.ExampleSentences
			}
		}
	}
	return set
}
