package session

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/polyglot-labs/polyglot/internal/artifact"
	"github.com/polyglot-labs/polyglot/internal/catalog"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	s, err := New(catalog.DefaultLanguageCode, catalog.DefaultLevel)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.now = func() time.Time { return time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC) }
	return s
}

func TestNewValidation(t *testing.T) {
	if _, err := New("xxx", catalog.B1); !errors.Is(err, ErrUnknownLanguage) {
		t.Errorf("unknown language error = %v", err)
	}
	if _, err := New("fin", catalog.Level(9)); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("invalid level error = %v", err)
	}

	s, err := New("spa", catalog.A2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.ID() == "" {
		t.Error("empty session ID")
	}
	if s.Language().Code != "spa" || s.Level() != catalog.A2 {
		t.Errorf("initial state = %q/%v", s.Language().Code, s.Level())
	}
}

func TestAppendStampsLevelAndLanguage(t *testing.T) {
	s := newTestState(t)

	s.AppendUser("hello")
	if err := s.ChangeLevel(catalog.C1); err != nil {
		t.Fatalf("ChangeLevel: %v", err)
	}
	s.AppendAssistant("response")

	msgs := s.Messages()
	if len(msgs) != 3 { // user, level notice, assistant
		t.Fatalf("len(messages) = %d, want 3", len(msgs))
	}
	if msgs[0].Level != catalog.B1 || msgs[0].Role != RoleUser {
		t.Errorf("first message = %+v", msgs[0])
	}
	if msgs[2].Level != catalog.C1 || msgs[2].Language != "fin" {
		t.Errorf("post-change message = %+v", msgs[2])
	}
	if msgs[0].Timestamp.IsZero() {
		t.Error("timestamp not stamped")
	}
}

func TestChangeLevel(t *testing.T) {
	s := newTestState(t)

	if err := s.ChangeLevel(catalog.B2); err != nil {
		t.Fatalf("ChangeLevel: %v", err)
	}

	if s.Level() != catalog.B2 {
		t.Errorf("Level = %v, want B2", s.Level())
	}
	if !s.LevelJustChanged() {
		t.Error("LevelJustChanged = false after change")
	}

	history := s.LevelHistory()
	if len(history) != 1 {
		t.Fatalf("len(history) = %d, want 1", len(history))
	}
	change := history[0]
	if change.From != catalog.B1 || change.To != catalog.B2 || change.Language != "fin" {
		t.Errorf("history entry = %+v", change)
	}

	notice, ok := s.LastAssistantMessage()
	if !ok || !strings.Contains(notice, "level has been changed to B2 (Upper Intermediate)") {
		t.Errorf("notice = %q", notice)
	}

	if err := s.ChangeLevel(catalog.Level(7)); !errors.Is(err, ErrInvalidLevel) {
		t.Errorf("invalid level error = %v", err)
	}
}

func TestChangeLevelNoOp(t *testing.T) {
	s := newTestState(t)

	if err := s.ChangeLevel(catalog.B1); err != nil {
		t.Fatalf("ChangeLevel: %v", err)
	}
	if s.LevelJustChanged() {
		t.Error("flag raised on no-op change")
	}
	if len(s.LevelHistory()) != 0 {
		t.Error("history recorded on no-op change")
	}
	if len(s.Messages()) != 0 {
		t.Error("notice enqueued on no-op change")
	}
}

func TestChangeLanguage(t *testing.T) {
	s := newTestState(t)
	if err := s.ChangeLevel(catalog.B2); err != nil {
		t.Fatalf("ChangeLevel: %v", err)
	}
	s.ClearChangeFlags()

	if err := s.ChangeLanguage("spa"); err != nil {
		t.Fatalf("ChangeLanguage: %v", err)
	}

	if s.Language().Code != "spa" {
		t.Errorf("Language = %q, want spa", s.Language().Code)
	}
	if !s.LanguageJustChanged() {
		t.Error("LanguageJustChanged = false after change")
	}
	// Level and history carry over across a language switch.
	if s.Level() != catalog.B2 {
		t.Errorf("Level = %v after language change, want B2", s.Level())
	}
	if len(s.LevelHistory()) != 1 {
		t.Errorf("history length = %d after language change, want 1", len(s.LevelHistory()))
	}

	notice, ok := s.LastAssistantMessage()
	if !ok || !strings.Contains(notice, "target language has been changed to 🇪🇸 Spanish") {
		t.Errorf("notice = %q", notice)
	}

	if err := s.ChangeLanguage("jpn"); !errors.Is(err, ErrUnknownLanguage) {
		t.Errorf("unknown language error = %v", err)
	}
}

func TestChangeLanguageNoOp(t *testing.T) {
	s := newTestState(t)
	if err := s.ChangeLanguage("fin"); err != nil {
		t.Fatalf("ChangeLanguage: %v", err)
	}
	if s.LanguageJustChanged() || len(s.Messages()) != 0 {
		t.Error("no-op language change had side effects")
	}
}

func TestAttachArtifact(t *testing.T) {
	s := newTestState(t)

	a := &artifact.Artifact{Name: "story.txt", Level: catalog.B1, Language: "fin"}
	s.AttachArtifact(a)

	if s.Artifact() != a {
		t.Error("artifact not stored")
	}
	notice, ok := s.LastAssistantMessage()
	if !ok || !strings.Contains(notice, "has been uploaded") {
		t.Errorf("upload notice = %q", notice)
	}

	s.ClearArtifact()
	if s.Artifact() != nil {
		t.Error("artifact survived ClearArtifact")
	}

	s.AttachArtifact(nil)
	if s.Artifact() != nil {
		t.Error("nil artifact stored")
	}
}

func TestReset(t *testing.T) {
	s := newTestState(t)
	oldID := s.ID()

	s.AppendUser("hello")
	s.MarkGreeted()
	s.SetTopics([]string{"travel"})
	s.AttachArtifact(&artifact.Artifact{Name: "f.txt"})
	if err := s.ChangeLevel(catalog.C1); err != nil {
		t.Fatalf("ChangeLevel: %v", err)
	}

	s.Reset()

	if s.ID() == oldID {
		t.Error("session ID unchanged after reset")
	}
	if len(s.Messages()) != 0 || len(s.Topics()) != 0 || s.Artifact() != nil {
		t.Error("transcript state survived reset")
	}
	if s.GreetingIssued() || s.LevelJustChanged() || s.LanguageJustChanged() {
		t.Error("flags survived reset")
	}
	// Selections and progression history are preserved.
	if s.Level() != catalog.C1 || s.Language().Code != "fin" {
		t.Errorf("selections after reset = %q/%v", s.Language().Code, s.Level())
	}
	if len(s.LevelHistory()) != 1 {
		t.Errorf("level history length = %d after reset, want 1", len(s.LevelHistory()))
	}
}

func TestClearChangeFlags(t *testing.T) {
	s := newTestState(t)
	if err := s.ChangeLevel(catalog.A1); err != nil {
		t.Fatalf("ChangeLevel: %v", err)
	}
	if err := s.ChangeLanguage("deu"); err != nil {
		t.Fatalf("ChangeLanguage: %v", err)
	}

	s.ClearChangeFlags()
	if s.LevelJustChanged() || s.LanguageJustChanged() {
		t.Error("flags still raised after ClearChangeFlags")
	}
}

func TestMessagesReturnsCopy(t *testing.T) {
	s := newTestState(t)
	s.AppendUser("hello")

	msgs := s.Messages()
	msgs[0].Content = "mutated"

	if got := s.Messages()[0].Content; got != "hello" {
		t.Errorf("internal state mutated through copy: %q", got)
	}
}

func TestSnapshot(t *testing.T) {
	s := newTestState(t)
	s.SetTopics([]string{"travel", "verbs"})
	if err := s.ChangeLevel(catalog.B2); err != nil {
		t.Fatalf("ChangeLevel: %v", err)
	}

	snap := s.Snapshot()
	if snap.ID != s.ID() || snap.Level != catalog.B2 || snap.Language.Code != "fin" {
		t.Errorf("snapshot = %+v", snap)
	}
	if !snap.LevelJustChanged || snap.LanguageJustChanged {
		t.Errorf("snapshot flags = %v/%v", snap.LevelJustChanged, snap.LanguageJustChanged)
	}
	if len(snap.Topics) != 2 || len(snap.LevelHistory) != 1 {
		t.Errorf("snapshot collections = %d topics, %d history", len(snap.Topics), len(snap.LevelHistory))
	}

	// Snapshot slices are detached from the live state.
	snap.Topics[0] = "mutated"
	if got := s.Topics()[0]; got != "travel" {
		t.Errorf("state mutated through snapshot: %q", got)
	}
}

func TestLastAssistantMessage(t *testing.T) {
	s := newTestState(t)
	if _, ok := s.LastAssistantMessage(); ok {
		t.Error("ok = true on empty transcript")
	}

	s.AppendAssistant("first")
	s.AppendUser("question")
	s.AppendAssistant("second")
	s.AppendUser("another")

	got, ok := s.LastAssistantMessage()
	if !ok || got != "second" {
		t.Errorf("LastAssistantMessage = %q, %v", got, ok)
	}
}
