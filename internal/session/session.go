// Package session holds the in-memory state of one tutoring conversation:
// the transcript, the learner's language and level selections, level change
// history, tracked topics, and the pending upload.
//
// State is the single aggregate every other component reads through; all
// mutations go through its methods and are safe for concurrent use.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/polyglot-labs/polyglot/internal/artifact"
	"github.com/polyglot-labs/polyglot/internal/catalog"
)

// Role constants define valid message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one transcript entry. Level and Language record the learner's
// selection at the time the message was added, for export and review.
type Message struct {
	Role      string
	Content   string
	Timestamp time.Time
	Level     catalog.Level
	Language  string
}

// LevelChange records one proficiency level transition.
type LevelChange struct {
	From     catalog.Level
	To       catalog.Level
	Language string
	At       time.Time
}

// State is the tutoring session aggregate.
//
// The zero value is not useful; use New.
type State struct {
	mu sync.RWMutex

	id       string
	language catalog.Language
	level    catalog.Level

	messages     []Message
	levelHistory []LevelChange
	topics       []string
	artifact     *artifact.Artifact

	levelChanged    bool
	languageChanged bool
	greeted         bool

	now func() time.Time
}

// New creates a session for the given language code and level.
func New(languageCode string, level catalog.Level) (*State, error) {
	lang, ok := catalog.Lookup(languageCode)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, languageCode)
	}
	if !level.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLevel, int(level))
	}
	return &State{
		id:       uuid.NewString(),
		language: lang,
		level:    level,
		now:      time.Now,
	}, nil
}

// ID returns the session identifier.
func (s *State) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// Language returns the current target language.
func (s *State) Language() catalog.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

// Level returns the current proficiency level.
func (s *State) Level() catalog.Level {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.level
}

// Messages returns a copy of the transcript.
func (s *State) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// LevelHistory returns a copy of the level change history.
func (s *State) LevelHistory() []LevelChange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]LevelChange, len(s.levelHistory))
	copy(out, s.levelHistory)
	return out
}

// Topics returns a copy of the tracked topics.
func (s *State) Topics() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.topics))
	copy(out, s.topics)
	return out
}

// SetTopics replaces the tracked topics.
func (s *State) SetTopics(topics []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = make([]string, len(topics))
	copy(s.topics, topics)
}

// Artifact returns the pending upload, or nil.
func (s *State) Artifact() *artifact.Artifact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.artifact
}

// AppendUser appends a user message stamped with the current level and
// language.
func (s *State) AppendUser(content string) {
	s.append(RoleUser, content)
}

// AppendAssistant appends an assistant message stamped with the current
// level and language.
func (s *State) AppendAssistant(content string) {
	s.append(RoleAssistant, content)
}

func (s *State) append(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: s.now(),
		Level:     s.level,
		Language:  s.language.Code,
	})
}

// LastAssistantMessage returns the content of the most recent assistant
// message, with ok false when there is none.
func (s *State) LastAssistantMessage() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Role == RoleAssistant {
			return s.messages[i].Content, true
		}
	}
	return "", false
}

// ChangeLevel switches the proficiency level. Selecting the current level is
// a no-op. A real change is recorded in the level history, raises the
// level-changed flag, and enqueues an assistant notice.
func (s *State) ChangeLevel(to catalog.Level) error {
	if !to.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, int(to))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if to == s.level {
		return nil
	}

	s.levelHistory = append(s.levelHistory, LevelChange{
		From:     s.level,
		To:       to,
		Language: s.language.Code,
		At:       s.now(),
	})
	s.level = to
	s.levelChanged = true

	notice := fmt.Sprintf("Your %s level has been changed to %s. All content will now be adapted to this level.",
		s.language.Name, to.Display())
	s.appendLocked(RoleAssistant, notice)
	return nil
}

// ChangeLanguage switches the target language. Selecting the current
// language is a no-op. A real change raises the language-changed flag and
// enqueues an assistant notice. The level and level history carry over.
func (s *State) ChangeLanguage(code string) error {
	lang, ok := catalog.Lookup(code)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if lang.Code == s.language.Code {
		return nil
	}

	s.language = lang
	s.languageChanged = true

	notice := fmt.Sprintf("Your target language has been changed to %s %s. All content will now be adapted to this language.",
		lang.Flag, lang.Name)
	s.appendLocked(RoleAssistant, notice)
	return nil
}

// appendLocked appends a message; the caller must hold s.mu.
func (s *State) appendLocked(role, content string) {
	s.messages = append(s.messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: s.now(),
		Level:     s.level,
		Language:  s.language.Code,
	})
}

// AttachArtifact stores a processed upload and enqueues the assistant notice
// whose presence triggers one-shot injection on the next turn.
func (s *State) AttachArtifact(a *artifact.Artifact) {
	if a == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifact = a
	s.appendLocked(RoleAssistant, artifact.UploadNotice(a, s.language.Name))
}

// ClearArtifact drops the pending upload without touching the transcript.
func (s *State) ClearArtifact() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifact = nil
}

// LevelJustChanged reports whether the level changed since the last
// completed turn.
func (s *State) LevelJustChanged() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.levelChanged
}

// LanguageJustChanged reports whether the language changed since the last
// completed turn.
func (s *State) LanguageJustChanged() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.languageChanged
}

// ClearChangeFlags lowers both change flags. Called after every completed
// turn, including error turns.
func (s *State) ClearChangeFlags() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levelChanged = false
	s.languageChanged = false
}

// GreetingIssued reports whether the one-time session greeting was added.
func (s *State) GreetingIssued() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.greeted
}

// MarkGreeted records that the session greeting was added.
func (s *State) MarkGreeted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.greeted = true
}

// Reset starts a fresh conversation under a new session ID. The transcript,
// topics, upload, greeting marker and change flags are cleared; the selected
// language, level, and the level history survive for progression tracking.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = uuid.NewString()
	s.messages = nil
	s.topics = nil
	s.artifact = nil
	s.levelChanged = false
	s.languageChanged = false
	s.greeted = false
}

// Snapshot is an immutable view of the state used for prompt assembly.
type Snapshot struct {
	ID                  string
	Language            catalog.Language
	Level               catalog.Level
	Topics              []string
	LevelHistory        []LevelChange
	LevelJustChanged    bool
	LanguageJustChanged bool
}

// Snapshot captures the current state under one lock acquisition.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	topics := make([]string, len(s.topics))
	copy(topics, s.topics)
	history := make([]LevelChange, len(s.levelHistory))
	copy(history, s.levelHistory)

	return Snapshot{
		ID:                  s.id,
		Language:            s.language,
		Level:               s.level,
		Topics:              topics,
		LevelHistory:        history,
		LevelJustChanged:    s.levelChanged,
		LanguageJustChanged: s.languageChanged,
	}
}
