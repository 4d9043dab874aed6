package guidelines

import (
	"strings"
	"testing"

	"github.com/polyglot-labs/polyglot/internal/catalog"
)

func TestResolveBaseCoversAllLevels(t *testing.T) {
	for _, level := range catalog.Levels() {
		t.Run(level.Code(), func(t *testing.T) {
			set := Resolve(level, "swe")
			if len(set.Grammar) == 0 {
				t.Error("grammar empty")
			}
			if len(set.Vocabulary) == 0 {
				t.Error("vocabulary empty")
			}
			if len(set.ExampleSentences) == 0 {
				t.Error("example sentences empty")
			}
		})
	}
}

func TestResolveFinnishOverride(t *testing.T) {
	set := Resolve(catalog.A1, "fin")

	var hasGradation bool
	for _, g := range set.Grammar {
		if strings.Contains(g, "consonant gradation") {
			hasGradation = true
		}
	}
	if !hasGradation {
		t.Error("finnish A1 grammar missing consonant gradation")
	}

	// Overrides replace the whole field: the base placeholder sentence set
	// must not leak through.
	for _, s := range set.ExampleSentences {
		if s == "My name is..." {
			t.Error("base example sentence present in finnish override")
		}
	}
	if got := set.ExampleSentences[0]; !strings.HasPrefix(got, "Minä olen") {
		t.Errorf("first finnish example = %q", got)
	}
}

func TestResolveSpanishOverride(t *testing.T) {
	set := Resolve(catalog.A2, "spa")
	if got := set.Grammar[0]; got != "Preterite tense of regular verbs" {
		t.Errorf("spanish A2 grammar[0] = %q", got)
	}
}

func TestResolveUnaffectedLevels(t *testing.T) {
	// Language overrides exist only for A1/A2; higher levels use base content.
	base := Resolve(catalog.B2, "swe")
	fin := Resolve(catalog.B2, "fin")
	if len(base.Grammar) != len(fin.Grammar) {
		t.Errorf("B2 grammar differs: base %d items, fin %d items", len(base.Grammar), len(fin.Grammar))
	}
	if base.Grammar[0] != fin.Grammar[0] {
		t.Errorf("B2 grammar[0] differs: %q vs %q", base.Grammar[0], fin.Grammar[0])
	}
}

func TestResolveInvalidLevel(t *testing.T) {
	set := Resolve(catalog.Level(99), "fin")
	if len(set.Grammar) != 0 || len(set.Vocabulary) != 0 || len(set.ExampleSentences) != 0 {
		t.Errorf("invalid level produced content: %+v", set)
	}
}

func TestCEFRGuidelines(t *testing.T) {
	t.Run("base only", func(t *testing.T) {
		got := CEFRGuidelines(catalog.B1, "swe")
		if !strings.Contains(got, "B1 LEVEL GUIDELINES") {
			t.Errorf("missing base heading in %q", got)
		}
		if strings.Contains(got, "SPECIFIC GUIDELINES") {
			t.Errorf("unexpected language block in %q", got)
		}
	})

	t.Run("finnish appended", func(t *testing.T) {
		got := CEFRGuidelines(catalog.A1, "fin")
		if !strings.Contains(got, "A1 LEVEL GUIDELINES") {
			t.Error("missing base heading")
		}
		if !strings.Contains(got, "FINNISH A1 SPECIFIC GUIDELINES") {
			t.Error("missing finnish block")
		}
		if strings.Index(got, "A1 LEVEL GUIDELINES") > strings.Index(got, "FINNISH A1 SPECIFIC GUIDELINES") {
			t.Error("language block precedes base block")
		}
	})

	t.Run("spanish appended", func(t *testing.T) {
		got := CEFRGuidelines(catalog.C1, "spa")
		if !strings.Contains(got, "SPANISH C1 SPECIFIC GUIDELINES") {
			t.Error("missing spanish block")
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		if got := CEFRGuidelines(catalog.Level(42), "fin"); got != "" {
			t.Errorf("invalid level produced %q", got)
		}
	})
}
