package cmd

import (
	"strings"
	"testing"

	"github.com/polyglot-labs/polyglot/internal/catalog"
	"github.com/polyglot-labs/polyglot/internal/session"
)

func newCommandState(t *testing.T) *session.State {
	t.Helper()
	s, err := session.New("fin", catalog.B1)
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	return s
}

func TestHandleCommandLevel(t *testing.T) {
	s := newCommandState(t)
	var out strings.Builder

	if exit := handleCommand(&out, s, "/level B2"); exit {
		t.Fatal("level change requested exit")
	}
	if s.Level() != catalog.B2 {
		t.Errorf("Level = %v, want B2", s.Level())
	}
	if !strings.Contains(out.String(), "level has been changed to B2 (Upper Intermediate)") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	handleCommand(&out, s, "/level D9")
	if !strings.Contains(out.String(), "Unknown level") {
		t.Errorf("output = %q", out.String())
	}
	if s.Level() != catalog.B2 {
		t.Error("level changed on bad input")
	}

	out.Reset()
	handleCommand(&out, s, "/level")
	if !strings.Contains(out.String(), "Current level: B2 (Upper Intermediate)") {
		t.Errorf("output = %q", out.String())
	}
}

func TestHandleCommandLanguage(t *testing.T) {
	s := newCommandState(t)
	var out strings.Builder

	handleCommand(&out, s, "/language spa")
	if s.Language().Code != "spa" {
		t.Errorf("Language = %q, want spa", s.Language().Code)
	}
	if !strings.Contains(out.String(), "target language has been changed to 🇪🇸 Spanish") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	handleCommand(&out, s, "/language jpn")
	if !strings.Contains(out.String(), "Unsupported language") {
		t.Errorf("output = %q", out.String())
	}
	if s.Language().Code != "spa" {
		t.Error("language changed on bad input")
	}
}

func TestHandleCommandTopicsAndReset(t *testing.T) {
	s := newCommandState(t)
	var out strings.Builder

	handleCommand(&out, s, "/topics")
	if !strings.Contains(out.String(), "No topics tracked yet.") {
		t.Errorf("output = %q", out.String())
	}

	s.SetTopics([]string{"travel", "verbs"})
	out.Reset()
	handleCommand(&out, s, "/topics")
	if !strings.Contains(out.String(), "Tracked topics: travel, verbs") {
		t.Errorf("output = %q", out.String())
	}

	oldID := s.ID()
	out.Reset()
	if exit := handleCommand(&out, s, "/reset"); exit {
		t.Fatal("reset requested exit")
	}
	if s.ID() == oldID || len(s.Topics()) != 0 {
		t.Error("reset did not refresh the session")
	}
	if !strings.Contains(out.String(), "Conversation reset.") {
		t.Errorf("output = %q", out.String())
	}
}

func TestHandleCommandExit(t *testing.T) {
	s := newCommandState(t)
	var out strings.Builder

	for _, cmd := range []string{"/exit", "/quit"} {
		if !handleCommand(&out, s, cmd) {
			t.Errorf("%s did not request exit", cmd)
		}
	}

	if handleCommand(&out, s, "/bogus") {
		t.Error("unknown command requested exit")
	}
	if !strings.Contains(out.String(), "Unknown command: /bogus") {
		t.Errorf("output = %q", out.String())
	}
}
