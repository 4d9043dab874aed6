// Package topics tracks the learning topics a learner has touched on, so
// later exercises can be personalized. Extraction is heuristic by default
// (word and term matching) with an optional model-assisted path, and the
// package also provides language detection and exercise request parsing.
package topics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// MaxTopics bounds the tracked list; oldest entries are dropped first.
	MaxTopics = 30

	// minModelInputLen is the minimum message length (in runes) for the
	// model-assisted path. Shorter messages go straight to the heuristic.
	minModelInputLen = 10

	// maxModelTopics caps how many topics one model extraction may add.
	maxModelTopics = 8

	// maxTopicLen truncates individual model-produced topics.
	maxTopicLen = 60

	// maxModelResponseBytes limits model output size before JSON parsing.
	maxModelResponseBytes = 4 * 1024

	cacheSize = 100
)

// wordRe matches candidate words of three or more letters across the Latin,
// Greek, Cyrillic, kana, han and hangul ranges.
var wordRe = regexp.MustCompile(`[a-zA-Z\x{00C0}-\x{00FF}\x{0100}-\x{017F}\x{0180}-\x{024F}\x{0370}-\x{03FF}\x{0400}-\x{04FF}\x{3040}-\x{30FF}\x{4E00}-\x{9FFF}\x{1100}-\x{11FF}\x{AC00}-\x{D7AF}]{3,}`)

var (
	grammarTermRe  = regexp.MustCompile(`\b(verb|noun|case|tense|plural|singular|adjective|adverb|conjugation|particle|preposition|article|gender|declension)\b`)
	learningTermRe = regexp.MustCompile(`\b(exercise|translate|vocabulary|grammar|pronunciation|reading|writing|speaking|listening)\b`)
)

// extractionPrompt instructs the model to pull topic phrases out of one
// learner message. %s placeholder: the message.
const extractionPrompt = `You are a topic extraction system for a language tutoring application.
Extract the learning topics from the learner message below. Topics are words
the learner is studying, grammar concepts, or learning activities.

Rules:
- Output between 2 and 8 short topic phrases
- Lowercase, at most four words per phrase
- Output ONLY a JSON array of strings
- Output [] if the message contains no learning topics

Learner message:
%s

Topics as JSON array:`

// Config configures a Tracker.
type Config struct {
	// Genkit enables the model-assisted extraction path when non-nil.
	Genkit *genkit.Genkit

	// ModelName is the model used for extraction. Required when Genkit is set.
	ModelName string

	// Logger is required.
	Logger *slog.Logger
}

func (c Config) validate() error {
	if c.Logger == nil {
		return errors.New("logger is required")
	}
	if c.Genkit != nil && c.ModelName == "" {
		return errors.New("model name is required when genkit is set")
	}
	return nil
}

// Tracker extracts and accumulates learning topics from learner messages.
// The heuristic path is always available; the model path is preferred for
// longer messages and falls back to the heuristic on any failure.
type Tracker struct {
	g         *genkit.Genkit
	modelName string
	logger    *slog.Logger

	// cache memoizes model extractions keyed on the raw message text.
	cache *lru.Cache[string, []string]
}

// NewTracker creates a Tracker.
func NewTracker(cfg Config) (*Tracker, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid tracker config: %w", err)
	}
	cache, err := lru.New[string, []string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating topic cache: %w", err)
	}
	return &Tracker{
		g:         cfg.Genkit,
		modelName: cfg.ModelName,
		logger:    cfg.Logger,
		cache:     cache,
	}, nil
}

// Update extracts topics from message and merges them into current, returning
// the updated list. The input slice is never mutated. Duplicates are dropped
// case-insensitively; when the list exceeds MaxTopics the oldest entries go.
func (t *Tracker) Update(ctx context.Context, message string, current []string) []string {
	candidates := t.extract(ctx, message)

	updated := make([]string, len(current), len(current)+len(candidates))
	copy(updated, current)

	for _, c := range candidates {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		seen := false
		for _, existing := range updated {
			if strings.EqualFold(existing, c) {
				seen = true
				break
			}
		}
		if !seen {
			updated = append(updated, c)
		}
	}

	if len(updated) > MaxTopics {
		updated = updated[len(updated)-MaxTopics:]
	}
	return updated
}

func (t *Tracker) extract(ctx context.Context, message string) []string {
	if t.g != nil && len([]rune(message)) >= minModelInputLen {
		if cached, ok := t.cache.Get(message); ok {
			return cached
		}
		extracted, err := t.extractWithModel(ctx, message)
		if err == nil {
			t.cache.Add(message, extracted)
			return extracted
		}
		t.logger.Warn("model topic extraction failed, using heuristic",
			"error", err)
	}
	return extractHeuristic(message)
}

// extractHeuristic collects candidate words plus grammar and learning terms.
func extractHeuristic(message string) []string {
	lower := strings.ToLower(message)
	topics := wordRe.FindAllString(lower, -1)
	topics = append(topics, grammarTermRe.FindAllString(lower, -1)...)
	topics = append(topics, learningTermRe.FindAllString(lower, -1)...)
	return topics
}

func (t *Tracker) extractWithModel(ctx context.Context, message string) ([]string, error) {
	resp, err := genkit.Generate(ctx, t.g,
		ai.WithModelName(t.modelName),
		ai.WithPrompt(fmt.Sprintf(extractionPrompt, message)),
	)
	if err != nil {
		return nil, fmt.Errorf("generating extraction: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if len(text) > maxModelResponseBytes {
		return nil, fmt.Errorf("extraction response too large: %d bytes", len(text))
	}
	text = stripCodeFences(text)

	var raw []string
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("parsing extraction result: %w (raw: %q)", err, truncate(text, 200))
	}

	valid := raw[:0]
	for _, topic := range raw {
		topic = strings.ToLower(strings.TrimSpace(topic))
		if topic == "" {
			continue
		}
		if len(topic) > maxTopicLen {
			topic = topic[:maxTopicLen]
		}
		valid = append(valid, topic)
	}
	if len(valid) > maxModelTopics {
		valid = valid[:maxModelTopics]
	}
	return valid, nil
}

// stripCodeFences removes ```json ... ``` wrapping from model output.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}
	return s
}

// truncate shortens s to at most n bytes for logging.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
