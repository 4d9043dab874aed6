package guidelines

import "github.com/polyglot-labs/polyglot/internal/catalog"

// cefrBase is the prose guideline block per level, applicable to most
// languages.
var cefrBase = map[catalog.Level]string{
	catalog.A1: `A1 LEVEL GUIDELINES:
- Vocabulary: Only basic words (around 500-800 words) related to immediate needs
- Grammar: Present tense only, basic question formation, simple negation
- Sentence structure: Simple, short sentences with basic connectors (and, but)
- Topics: Personal information, basic everyday activities, simple needs
- Numbers 1-100, basic time expressions
- Avoid any advanced structures, past tenses, conditional forms`,
	catalog.A2: `A2 LEVEL GUIDELINES:
- Vocabulary: Expanded everyday vocabulary (around 1500 words)
- Grammar: Simple past tense, basic verb conjugation patterns
- Sentence structure: Simple sentences with some coordination
- Topics: Daily routines, shopping, local environment, simple past experiences
- Simple descriptive adjectives
- Avoid complex tenses, conditionals, complex clauses`,
	catalog.B1: `B1 LEVEL GUIDELINES:
- Vocabulary: More varied vocabulary (around 3000 words), some abstract terms
- Grammar: Perfect and imperfect tenses, conditional mood, passive forms
- Sentence structure: Compound sentences, simple subordination
- Topics: Work, school, leisure, travel, current events, feelings
- Comparative forms
- Avoid literary language, complex constructions`,
	catalog.B2: `B2 LEVEL GUIDELINES:
- Vocabulary: Broader vocabulary (around 5000 words), some specialized terms
- Grammar: All tense forms, more complex verbal constructions
- Sentence structure: Complex sentences with various clause types
- Topics: Social issues, professional topics, abstract concepts, hypothetical situations
- Imperative forms, indirect speech
- Avoid highly specialized terminology, dialectal expressions`,
	catalog.C1: `C1 LEVEL GUIDELINES:
- Vocabulary: Rich vocabulary (8000+ words), specialized terms, colloquial expressions
- Grammar: All grammatical structures, including rare forms
- Sentence structure: Sophisticated, complex sentences with embedded clauses
- Topics: Any academic, professional or abstract topic, cultural references
- Complex constructions, literary expressions
- Nuanced differences in word meanings and connotations
- Full range of language features`,
}

// cefrLanguage holds language-specific blocks appended after the base block.
var cefrLanguage = map[string]map[catalog.Level]string{
	"fin": {
		catalog.A1: `FINNISH A1 SPECIFIC GUIDELINES:
- Focus on nominative/partitive/genitive cases only
- Simple consonant gradation patterns (kk-k, pp-p, tt-t)
- Basic subject-verb agreement
- Simple question particles and words
- Personal pronouns (minä, sinä, hän, etc.)`,
		catalog.A2: `FINNISH A2 SPECIFIC GUIDELINES:
- Include inessive, elative, illative cases
- All basic verb types
- Standard consonant gradation patterns
- Simple possessive suffixes
- More extensive use of partitive case`,
		catalog.B1: `FINNISH B1 SPECIFIC GUIDELINES:
- All locative cases (also adessive, ablative, allative)
- Object cases and their rules
- Perfect and pluperfect tenses
- Passive voice (present and past)
- More complex uses of pronouns and demonstratives`,
		catalog.B2: `FINNISH B2 SPECIFIC GUIDELINES:
- Potential mood
- Complex object rules
- Multiple infinitive forms
- Participles
- Complex sentence structures`,
		catalog.C1: `FINNISH C1 SPECIFIC GUIDELINES:
- Complex participle constructions
- Literary expressions and rare forms
- Dialectal variations
- Subtle case usage differences
- Advanced idiomatic expressions`,
	},
	"spa": {
		catalog.A1: `SPANISH A1 SPECIFIC GUIDELINES:
- Regular verb conjugations in present tense
- Basic gender and number agreement
- Simple prepositions
- Question formation with intonation
- Basic adjective placement`,
		catalog.A2: `SPANISH A2 SPECIFIC GUIDELINES:
- Preterite vs. imperfect tenses
- Reflexive verbs
- Direct and indirect object pronouns
- Common irregular verbs
- Comparative forms`,
		catalog.B1: `SPANISH B1 SPECIFIC GUIDELINES:
- Present subjunctive
- Future and conditional tenses
- Past subjunctive
- Por vs. para distinctions
- Relative pronouns`,
		catalog.B2: `SPANISH B2 SPECIFIC GUIDELINES:
- All subjunctive uses
- Compound tenses
- Passive structures
- Advanced connecting phrases
- Idiomatic expressions`,
		catalog.C1: `SPANISH C1 SPECIFIC GUIDELINES:
- Regional variations and dialectal features
- Literary language
- Complex hypothetical structures
- Subtle tense distinctions
- Cultural and historical references`,
	},
}

// CEFRGuidelines returns the prose guideline block for a level, with the
// language-specific block appended when one exists. Unknown levels yield an
// empty string.
func CEFRGuidelines(level catalog.Level, language string) string {
	out, ok := cefrBase[level]
	if !ok {
		return ""
	}
	if byLevel, ok := cefrLanguage[language]; ok {
		if block, ok := byLevel[level]; ok {
			out += "\n" + block
		}
	}
	return out
}
