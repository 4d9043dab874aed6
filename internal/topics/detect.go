package topics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/polyglot-labs/polyglot/internal/catalog"
)

// DefaultDetectionThreshold is the heuristic confidence at or above which the
// model-assisted refinement is skipped.
const DefaultDetectionThreshold = 0.8

// scriptPatterns map distinctive character classes to a language code,
// checked in order. Finnish precedes German: both use ä/ö, so the shared
// subset resolves to Finnish while ü/ß still identify German.
var scriptPatterns = []struct {
	code string
	re   *regexp.Regexp
}{
	{"fin", regexp.MustCompile(`[äöå]`)},
	{"spa", regexp.MustCompile(`[áéíóúüñ¿¡]`)},
	{"fra", regexp.MustCompile(`[àâçéèêëîïôùûüÿœæ]`)},
	{"deu", regexp.MustCompile(`[äöüß]`)},
	{"rus", regexp.MustCompile(`[а-я]`)},
}

// DetectLanguage guesses the language of text from distinctive characters.
// A script match is high confidence; the English default is low confidence.
func DetectLanguage(text string) (code string, confidence float64) {
	lower := strings.ToLower(text)
	for _, p := range scriptPatterns {
		if p.re.MatchString(lower) {
			return p.code, 0.9
		}
	}
	return "eng", 0.5
}

// detectionPrompt asks the model for a single language code. %s placeholders:
// (1) allowed codes, (2) text.
const detectionPrompt = `Identify the language of the text below.
Respond with exactly one lowercase ISO 639-3 code from this list: %s.
If none fits, respond with eng.

Text:
%s

Language code:`

// DetectorConfig configures a Detector.
type DetectorConfig struct {
	// Genkit enables the model-assisted path when non-nil.
	Genkit *genkit.Genkit

	// ModelName is required when Genkit is set.
	ModelName string

	// Threshold overrides DefaultDetectionThreshold when non-zero.
	Threshold float64

	// Logger is required.
	Logger *slog.Logger
}

func (c DetectorConfig) validate() error {
	if c.Logger == nil {
		return errors.New("logger is required")
	}
	if c.Genkit != nil && c.ModelName == "" {
		return errors.New("model name is required when genkit is set")
	}
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold %v out of range [0,1]", c.Threshold)
	}
	return nil
}

// Detector identifies the language of learner text. The character heuristic
// is authoritative above the confidence threshold; below it, a configured
// model refines the guess, with the heuristic as fallback on any failure.
type Detector struct {
	g         *genkit.Genkit
	modelName string
	threshold float64
	logger    *slog.Logger
	cache     *lru.Cache[string, string]
}

// NewDetector creates a Detector.
func NewDetector(cfg DetectorConfig) (*Detector, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid detector config: %w", err)
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = DefaultDetectionThreshold
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating detection cache: %w", err)
	}
	return &Detector{
		g:         cfg.Genkit,
		modelName: cfg.ModelName,
		threshold: cfg.Threshold,
		logger:    cfg.Logger,
		cache:     cache,
	}, nil
}

// Detect returns the most likely language code for text.
func (d *Detector) Detect(ctx context.Context, text string) string {
	code, confidence := DetectLanguage(text)
	if confidence >= d.threshold || d.g == nil {
		return code
	}

	if cached, ok := d.cache.Get(text); ok {
		return cached
	}

	refined, err := d.detectWithModel(ctx, text)
	if err != nil {
		d.logger.Warn("model language detection failed, using heuristic",
			"error", err, "heuristic", code)
		return code
	}
	d.cache.Add(text, refined)
	return refined
}

func (d *Detector) detectWithModel(ctx context.Context, text string) (string, error) {
	codes := make([]string, 0, 8)
	for _, l := range catalog.All() {
		codes = append(codes, l.Code)
	}
	codes = append(codes, "eng")

	resp, err := genkit.Generate(ctx, d.g,
		ai.WithModelName(d.modelName),
		ai.WithPrompt(fmt.Sprintf(detectionPrompt, strings.Join(codes, ", "), text)),
	)
	if err != nil {
		return "", fmt.Errorf("generating detection: %w", err)
	}

	got := strings.ToLower(strings.TrimSpace(resp.Text()))
	if got == "eng" {
		return got, nil
	}
	if _, ok := catalog.Lookup(got); !ok {
		return "", fmt.Errorf("model returned unsupported code %q", got)
	}
	return got, nil
}
