// Package export renders a session transcript as a downloadable Markdown
// document.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/polyglot-labs/polyglot/internal/catalog"
	"github.com/polyglot-labs/polyglot/internal/session"
)

const timestampLayout = "2006-01-02 15:04:05"

// Markdown renders the full chat history with session metadata, the level
// progression, and per-message level indicators. now stamps the export date.
func Markdown(state *session.State, now time.Time) string {
	lang := state.Language()
	level := state.Level()

	var b strings.Builder
	fmt.Fprintf(&b, "# Polyglot %s Language Tutor - Chat History\n\n", lang.Name)
	fmt.Fprintf(&b, "Session ID: %s\n", state.ID())
	fmt.Fprintf(&b, "Date: %s\n", now.Format(timestampLayout))
	fmt.Fprintf(&b, "Language: %s\n", lang.Name)
	fmt.Fprintf(&b, "Current Proficiency Level: %s\n\n", level.Display())

	if history := state.LevelHistory(); len(history) > 0 {
		b.WriteString("## Level Progression\n\n")
		for _, change := range history {
			name := ""
			if l, ok := catalog.Lookup(change.Language); ok {
				name = fmt.Sprintf(" (%s)", l.Name)
			}
			fmt.Fprintf(&b, "- Changed from %s to %s on %s%s\n",
				change.From.Display(), change.To.Display(), change.At.Format(timestampLayout), name)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n")

	for _, msg := range state.Messages() {
		ts := msg.Timestamp.Format(timestampLayout)
		if msg.Role == session.RoleUser {
			fmt.Fprintf(&b, "## User (%s)\n\n", ts)
		} else {
			fmt.Fprintf(&b, "## Tutor - %s (%s)\n\n", msg.Level.Display(), ts)
		}
		fmt.Fprintf(&b, "%s\n\n---\n\n", msg.Content)
	}

	return b.String()
}

// Filename returns the download name for an export, derived from the target
// language and the export time.
func Filename(state *session.State, now time.Time) string {
	return fmt.Sprintf("polyglot_%s_chat_%s.md",
		strings.ToLower(state.Language().Name), now.Format("20060102_150405"))
}
