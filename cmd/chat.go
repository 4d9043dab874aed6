package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/polyglot-labs/polyglot/internal/artifact"
	"github.com/polyglot-labs/polyglot/internal/catalog"
	"github.com/polyglot-labs/polyglot/internal/config"
	"github.com/polyglot-labs/polyglot/internal/export"
	"github.com/polyglot-labs/polyglot/internal/log"
	"github.com/polyglot-labs/polyglot/internal/session"
	"github.com/polyglot-labs/polyglot/internal/topics"
	"github.com/polyglot-labs/polyglot/internal/tutor"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive tutoring session",
	RunE:  runChat,
}

// Flag overrides applied on top of the loaded configuration.
var (
	flagLanguage string
	flagLevel    string
	flagModel    string
)

func init() {
	rootCmd.AddCommand(chatCmd)
	rootCmd.PersistentFlags().StringVar(&flagLanguage, "language", "", "target language code (fin, spa, fra, deu, ita, rus, swe)")
	rootCmd.PersistentFlags().StringVar(&flagLevel, "level", "", "CEFR level (A1, A2, B1, B2, C1)")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "chat model name")
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if flagLanguage != "" {
		cfg.DefaultLanguage = flagLanguage
	}
	if flagLevel != "" {
		cfg.DefaultLevel = flagLevel
	}
	if flagModel != "" {
		cfg.ModelName = flagModel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating flag overrides: %w", err)
	}

	logger := log.New(log.Config{Level: slog.LevelWarn})

	g := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{}))
	if g == nil {
		return errors.New("initializing genkit")
	}

	// Model-assisted extraction and detection need a key; without one both
	// fall back to their heuristics.
	trackerCfg := topics.Config{Logger: logger}
	detectorCfg := topics.DetectorConfig{
		Threshold: cfg.DetectionThreshold,
		Logger:    logger,
	}
	if cfg.APIKey != "" {
		trackerCfg.Genkit = g
		trackerCfg.ModelName = cfg.FullModelName()
		detectorCfg.Genkit = g
		detectorCfg.ModelName = cfg.FullModelName()
	}
	tracker, err := topics.NewTracker(trackerCfg)
	if err != nil {
		return fmt.Errorf("creating topic tracker: %w", err)
	}
	detector, err := topics.NewDetector(detectorCfg)
	if err != nil {
		return fmt.Errorf("creating language detector: %w", err)
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1)
	}

	controller, err := tutor.New(tutor.Config{
		Genkit:      g,
		ModelName:   cfg.FullModelName(),
		APIKey:      cfg.APIKey,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Tracker:     tracker,
		Limiter:     limiter,
		Timeout:     cfg.Timeout(),
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating tutor: %w", err)
	}

	state, err := session.New(cfg.DefaultLanguage, cfg.Level())
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	printWelcome(os.Stdout, state)
	if greeting := controller.Greet(state); greeting != "" {
		fmt.Printf("Tutor: %s\n\n", greeting)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")

		if !scanner.Scan() {
			// EOF (Ctrl+D)
			fmt.Println("\nNäkemiin! Goodbye!")
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if handleCommand(os.Stdout, state, input) {
				break
			}
			continue
		}

		if hint := languageHint(ctx, detector, state, input); hint != "" {
			fmt.Println(hint)
		}
		if params := topics.ParseExerciseParams(input); params.Type != "" {
			logger.Debug("exercise request",
				"type", params.Type, "direction", params.Direction, "topic", params.Topic)
		}

		fmt.Print("Tutor: ")
		streamed := false
		turn, err := controller.ProcessMessage(ctx, state, input, func(ctx context.Context, chunk string) error {
			streamed = true
			fmt.Print(chunk)
			return nil
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
			continue
		}
		if !streamed {
			fmt.Print(turn.Reply)
		}
		fmt.Println()
		fmt.Println()
	}

	if err := scanner.Err(); err != nil && err != io.EOF {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

// languageHint suggests a language switch when the typed text looks like a
// supported language other than the current target.
func languageHint(ctx context.Context, detector *topics.Detector, state *session.State, input string) string {
	detected := detector.Detect(ctx, input)
	if detected == "eng" || detected == state.Language().Code {
		return ""
	}
	lang, ok := catalog.Lookup(detected)
	if !ok {
		return ""
	}
	return fmt.Sprintf("(That looks like %s %s. Use /language %s to switch.)", lang.Flag, lang.Name, lang.Code)
}

func printWelcome(out io.Writer, state *session.State) {
	lang := state.Language()
	fmt.Fprintf(out, "%s Polyglot - Your %s Language Tutor [%s]\n", lang.Flag, lang.Name, state.Level().Code())
	fmt.Fprintf(out, "Session ID: %s\n", state.ID())
	fmt.Fprintln(out, "Type /help for commands, Ctrl+D to quit.")
	fmt.Fprintln(out)
}

// handleCommand executes a slash command, returning true on exit.
func handleCommand(out io.Writer, state *session.State, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return false
	}

	switch parts[0] {
	case "/help":
		fmt.Fprintln(out, "Commands:")
		fmt.Fprintln(out, "  /language <code>  switch target language")
		fmt.Fprintln(out, "  /level <code>     switch proficiency level (A1, A2, B1, B2, C1)")
		fmt.Fprintln(out, "  /upload <path>    upload a file to study")
		fmt.Fprintln(out, "  /topics           show tracked learning topics")
		fmt.Fprintln(out, "  /reset            start a fresh conversation")
		fmt.Fprintln(out, "  /export           save the chat history as Markdown")
		fmt.Fprintln(out, "  /exit             quit")
		fmt.Fprintln(out, "Languages:")
		for _, lang := range catalog.All() {
			fmt.Fprintf(out, "  %s %s (%s) - /language %s\n", lang.Flag, lang.Name, lang.NativeName, lang.Code)
		}
		fmt.Fprintln(out)

	case "/language":
		if len(parts) < 2 {
			lang := state.Language()
			fmt.Fprintf(out, "Current language: %s %s\n", lang.Flag, lang.Name)
			for _, f := range catalog.GrammarFeatures(lang.Code) {
				fmt.Fprintf(out, "  %s: %s\n", f.Name, strings.Join(f.Items, ", "))
			}
			fmt.Fprintln(out)
			return false
		}
		if err := state.ChangeLanguage(parts[1]); err != nil {
			fmt.Fprintf(out, "Unsupported language %q. See /help for the list.\n\n", parts[1])
			return false
		}
		if notice, ok := state.LastAssistantMessage(); ok {
			fmt.Fprintf(out, "%s\n\n", notice)
		}

	case "/level":
		if len(parts) < 2 {
			fmt.Fprintf(out, "Current level: %s\n\n", state.Level().Display())
			return false
		}
		level, err := catalog.ParseLevel(parts[1])
		if err != nil {
			fmt.Fprintf(out, "Unknown level %q. Levels: A1, A2, B1, B2, C1.\n\n", parts[1])
			return false
		}
		if err := state.ChangeLevel(level); err != nil {
			fmt.Fprintf(out, "Could not change level: %v\n\n", err)
			return false
		}
		if notice, ok := state.LastAssistantMessage(); ok {
			fmt.Fprintf(out, "%s\n\n", notice)
		}

	case "/upload":
		if len(parts) < 2 {
			fmt.Fprintln(out, "Usage: /upload <path>")
			fmt.Fprintln(out)
			return false
		}
		path := parts[1]
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(out, "Could not read file: %v\n\n", err)
			return false
		}
		a, err := artifact.Process(filepath.Base(path), data, "", state.Level(), state.Language().Code)
		if err != nil {
			fmt.Fprintf(out, "Could not process file: %v\n\n", err)
			return false
		}
		state.AttachArtifact(a)
		if notice, ok := state.LastAssistantMessage(); ok {
			fmt.Fprintf(out, "%s\n\n", notice)
		}

	case "/topics":
		topicList := state.Topics()
		if len(topicList) == 0 {
			fmt.Fprintln(out, "No topics tracked yet.")
		} else {
			fmt.Fprintf(out, "Tracked topics: %s\n", strings.Join(topicList, ", "))
		}
		fmt.Fprintln(out)

	case "/reset":
		state.Reset()
		fmt.Fprintf(out, "Conversation reset. New session ID: %s\n\n", state.ID())

	case "/export":
		now := time.Now()
		name := export.Filename(state, now)
		if err := os.WriteFile(name, []byte(export.Markdown(state, now)), 0o644); err != nil {
			fmt.Fprintf(out, "Could not write export: %v\n\n", err)
			return false
		}
		fmt.Fprintf(out, "Chat history saved to %s\n\n", name)

	case "/exit", "/quit":
		fmt.Fprintln(out, "Näkemiin! Goodbye!")
		return true

	default:
		fmt.Fprintf(out, "Unknown command: %s\n", parts[0])
		fmt.Fprintln(out, "Type /help to see available commands")
		fmt.Fprintln(out)
	}

	return false
}
