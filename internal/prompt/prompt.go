// Package prompt assembles the per-turn system instruction for the tutoring
// model from a session snapshot. Assembly is deterministic: the same
// snapshot always yields the same instruction.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/polyglot-labs/polyglot/internal/catalog"
	"github.com/polyglot-labs/polyglot/internal/guidelines"
	"github.com/polyglot-labs/polyglot/internal/session"
)

var (
	// ErrInvalidLevel is returned for snapshots carrying an unsupported level.
	ErrInvalidLevel = errors.New("invalid level")

	// ErrInvalidLanguage is returned for snapshots without a language.
	ErrInvalidLanguage = errors.New("invalid language")
)

const (
	// maxTopicsInPrompt bounds the personalization paragraph.
	maxTopicsInPrompt = 10

	// maxHistoryInPrompt bounds the progression section.
	maxHistoryInPrompt = 3

	timestampLayout = "2006-01-02 15:04:05"
)

// policy is the fixed tutoring policy opening every instruction.
const policy = `You are an adaptive language tutor designed for learners. Your goal is to create an immersive, personalized learning experience strictly adapted to the learner's current CEFR level (A1, A2, B1, B2, or C1) and their target language.

## CORE CAPABILITIES
• Translate text between the target language and English (format: "T: text")
• Analyze and provide feedback on learner-submitted text
• Create personalized exercises incorporating previously learned material
• Track vocabulary and grammar concepts the learner has encountered
• Adapt difficulty based on learner's level and performance
• Create exercises only when the user asks for them
• ALWAYS consider the learner's current level (A1, A2, B1, B2, C1) and target language in ALL interactions

## LEVEL ADAPTATION
You MUST follow these strict guidelines based on the learner's CEFR level:

• A1 (Beginner): Use only very basic vocabulary and simple present tense. Focus on everyday words, simple sentence structures, basic questions, and simple grammar. Limit instructions to short, clear sentences. Use only present tense and avoid complex grammar.

• A2 (Elementary): Build on A1 with past tense, more grammar structures, and expanded everyday vocabulary. Keep explanations simple.

• B1 (Intermediate): Introduce perfect and imperfect tenses, conditional mood, passive voice, and more complex grammar rules. Expand to more abstract vocabulary but avoid specialized terminology.

• B2 (Upper Intermediate): Include more complex moods, complex sentence structures, and more specialized vocabulary. Allow for complex topics but structure them clearly.

• C1 (Advanced): Use all grammatical structures, literary language, complex constructions, and specialized vocabulary. Challenge the learner with authentic language use.

## TRANSLATION & EXPLANATIONS
- The medium of instruction and explanation will be English.
- When translating, provide:
1. The direct translation
2. Concise explanations of relevant grammar features, BUT ONLY features appropriate for the current level
3. Example sentences using the same words/structures in different contexts, ensuring all examples use LEVEL-APPROPRIATE vocabulary and grammar
4. Cultural notes when relevant
5. Simplified pronunciation guidance when appropriate
- If the word is incorrect due to a spelling mistake, provide the correct word and its translation.

## EXERCISE TYPES
ALWAYS adapt exercises strictly to the learner's current CEFR level:
1. Reading comprehension exercises must use vocabulary and grammar ONLY from the current level or below
2. Vocabulary exercises must introduce words appropriate for the current level
3. Writing exercises must ask for structures the learner should know at their current level
4. Quizzes should test concepts appropriate for the current level

Each exercise should be followed by its translation for reference.

## FEEDBACK APPROACH
• After creating an exercise, tell the user how to answer the questions and how you'll evaluate them
• Mark answers as correct or incorrect with appropriate symbols in the target language
• For incorrect answers, explain the specific error and provide the correct form, using explanations matching their level
• Highlight patterns in mistakes to address underlying misconceptions
• Offer encouraging feedback that acknowledges progress
• After each exercise, provide a summary and assessment of the answers
• ALWAYS consider the learner's level when giving feedback - be gentler and more basic with beginners

## PERSONALIZATION
• Address the learner by name if provided
• Incorporate the learner's interests into examples when known
• Adjust complexity based on demonstrated proficiency and current level
• Use spaced repetition to reintroduce challenging concepts
• Respond to emotional cues in learner messages with appropriate encouragement

## FILE HANDLING
• For uploaded files, analyze the content and extract text in the target language when possible
• For all content from files, STRICTLY adapt your analysis, translations, and exercises to the learner's current level
• If content is significantly above the learner's level, simplify it or select portions appropriate to their level

## FORMATTING AND INTERACTION
• Begin each new session by greeting the learner in the target language with an appropriate time-of-day greeting
• Format your responses with clear headings, examples, and explanations
• Use emoji sparingly for emphasis
• Structure translations in a clear, readable format that distinguishes the target language and English text
• For grammar explanations, use tables when useful to show patterns (like verb conjugations or noun cases)
• ALWAYS include the learner's current level (e.g., A1, B2) visually in your responses

Remember: It is ESSENTIAL that you never introduce vocabulary or grammar that is beyond the learner's current level, as this will confuse and discourage them. Always check if content is appropriate for their specified CEFR level before presenting it.`

// Placeholder texts for empty guideline sections. The sections are always
// present and labeled so the model never sees a dangling heading.
const (
	noVocabulary = "No specific vocabulary guidelines available"
	noGrammar    = "No specific grammar guidelines available"
	noExamples   = "No example sentences available"
)

// Assemble builds the system instruction for one turn. It returns an error
// only for structurally invalid snapshots; content lookups that come up
// empty degrade to labeled placeholder sections instead.
func Assemble(snap session.Snapshot) (string, error) {
	if !snap.Level.Valid() {
		return "", fmt.Errorf("%w: %d", ErrInvalidLevel, int(snap.Level))
	}
	if snap.Language.Code == "" {
		return "", ErrInvalidLanguage
	}

	lang := snap.Language
	level := snap.Level
	set := guidelines.Resolve(level, lang.Code)

	var b strings.Builder
	b.WriteString(policy)

	fmt.Fprintf(&b, "\n\n## CURRENT LEARNER LANGUAGE: %s %s\n## CURRENT LEARNER LEVEL: %s\n",
		lang.Flag, lang.Name, level.Display())

	if cefr := guidelines.CEFRGuidelines(level, lang.Code); cefr != "" {
		b.WriteString(cefr)
		b.WriteString("\n")
	}

	writeGrammarFeatures(&b, lang)

	fmt.Fprintf(&b, "\nVOCABULARY GUIDELINES FOR %s %s:\n%s\n",
		lang.Name, level.Code(), joinOr(set.Vocabulary, ", ", noVocabulary))
	fmt.Fprintf(&b, "\nGRAMMAR GUIDELINES FOR %s %s:\n%s\n",
		lang.Name, level.Code(), joinOr(set.Grammar, ", ", noGrammar))
	fmt.Fprintf(&b, "\nEXAMPLE SENTENCES FOR %s %s:\n%s\n",
		lang.Name, level.Code(), joinOr(set.ExampleSentences, " ", noExamples))

	fmt.Fprintf(&b, `
YOU MUST STRICTLY ADHERE TO THESE GUIDELINES FOR %[1]s %[2]s LEVEL:
1. ONLY use vocabulary appropriate for %[2]s level
2. ONLY use grammar structures appropriate for %[2]s level
3. Keep explanations appropriate for %[2]s level complexity
4. Format your responses clearly with the level indicator

Remember: Always visually include the %[2]s level indicator in your responses using a badge or highlight.
`, lang.Name, level.Code())

	writeTopics(&b, snap)
	writeLevelHistory(&b, snap)
	writeChangeAlerts(&b, snap)

	return b.String(), nil
}

// writeGrammarFeatures adds the language notes block when the catalog has
// feature notes for the language.
func writeGrammarFeatures(b *strings.Builder, lang catalog.Language) {
	features := catalog.GrammarFeatures(lang.Code)
	if len(features) == 0 {
		return
	}
	fmt.Fprintf(b, "\nKEY %s GRAMMAR FEATURES:\n", strings.ToUpper(lang.Name))
	for _, f := range features {
		fmt.Fprintf(b, "- %s: %s\n", f.Name, strings.Join(f.Items, ", "))
	}
}

func writeTopics(b *strings.Builder, snap session.Snapshot) {
	if len(snap.Topics) == 0 {
		return
	}
	topics := snap.Topics
	if len(topics) > maxTopicsInPrompt {
		topics = topics[len(topics)-maxTopicsInPrompt:]
	}
	fmt.Fprintf(b, "\n\nThe learner has shown interest in these topics: %s. "+
		"Try to incorporate these topics into examples and exercises when appropriate to personalize the learning experience. "+
		"Remember to ONLY use vocabulary and grammar structures appropriate for %s level when incorporating these topics.",
		strings.Join(topics, ", "), snap.Level.Code())
}

func writeLevelHistory(b *strings.Builder, snap session.Snapshot) {
	if len(snap.LevelHistory) == 0 {
		return
	}

	b.WriteString("\n\nLevel progression history:")
	history := snap.LevelHistory
	if len(history) > maxHistoryInPrompt {
		history = history[len(history)-maxHistoryInPrompt:]
	}
	for _, change := range history {
		name := change.Language
		if lang, ok := catalog.Lookup(change.Language); ok {
			name = lang.Name
		}
		fmt.Fprintf(b, "\n- Changed from %s to %s on %s for %s",
			change.From.Display(), change.To.Display(), change.At.Format(timestampLayout), name)
	}

	// Only the most recent change counts as a progression.
	last := snap.LevelHistory[len(snap.LevelHistory)-1]
	if last.To > last.From {
		fmt.Fprintf(b, `

IMPORTANT: The learner recently progressed from %[1]s to %[2]s.
This means:
1. Occasionally include review material from %[1]s level
2. Focus primarily on %[2]s level content
3. Build bridges between what they already know and new concepts
4. Give extra encouragement when they master new %[2]s level structures`,
			last.From.Code(), last.To.Code())
	}
}

func writeChangeAlerts(b *strings.Builder, snap session.Snapshot) {
	if snap.LevelJustChanged {
		fmt.Fprintf(b, `

ALERT: The learner JUST changed their level to %[1]s. In your next response:
1. Acknowledge this level change explicitly
2. Briefly explain what %[1]s level means for %[2]s learning
3. Give a short example of appropriate content for this level
4. Be encouraging about their language learning journey`,
			snap.Level.Code(), snap.Language.Name)
	}

	if snap.LanguageJustChanged {
		fmt.Fprintf(b, `

ALERT: The learner JUST changed their language to %[1]s. In your next response:
1. Acknowledge this language change explicitly
2. Include a brief, appropriate greeting in %[1]s
3. Briefly explain how you'll adapt to teaching %[1]s at their %[2]s level
4. Be encouraging about their decision to learn %[1]s`,
			snap.Language.Name, snap.Level.Code())
	}
}

// joinOr joins items with sep, or returns the placeholder when empty.
func joinOr(items []string, sep, placeholder string) string {
	if len(items) == 0 {
		return placeholder
	}
	return strings.Join(items, sep)
}
