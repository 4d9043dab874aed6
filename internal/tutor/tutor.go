// Package tutor runs the tutoring conversation loop: it turns one learner
// message into a model call with the assembled instruction and transcript,
// streams the reply, and keeps the session state consistent across the turn.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/polyglot-labs/polyglot/internal/artifact"
	"github.com/polyglot-labs/polyglot/internal/catalog"
	"github.com/polyglot-labs/polyglot/internal/prompt"
	"github.com/polyglot-labs/polyglot/internal/session"
	"github.com/polyglot-labs/polyglot/internal/topics"
)

// uploadMarker in the most recent assistant message signals that the pending
// upload has not been sent to the model yet.
const uploadMarker = "has been uploaded"

// missingKeyReply is shown in the assistant's voice when no API key is
// configured. The turn completes normally so the UI stays usable.
const missingKeyReply = "Error: Gemini API key not configured. Please set the GEMINI_API_KEY environment variable."

// StreamCallback receives reply fragments as they arrive.
type StreamCallback func(ctx context.Context, chunk string) error

// Turn is the result of processing one learner message.
type Turn struct {
	// Greeting is the session greeting, non-empty only on the first turn.
	Greeting string

	// Reply is the assistant reply appended to the transcript.
	Reply string
}

// Config configures a Controller.
type Config struct {
	// Genkit is the initialized Genkit instance. Required.
	Genkit *genkit.Genkit

	// ModelName identifies the chat model. Required.
	ModelName string

	// APIKey is the provider API key. When empty, turns complete with a
	// fixed configuration-error reply instead of calling the model.
	APIKey string

	// MaxTokens caps the reply length. Zero uses the provider default.
	MaxTokens int

	// Temperature is the sampling temperature, in [0, 2].
	Temperature float64

	// Tracker updates the topic list from learner messages. Optional.
	Tracker *topics.Tracker

	// Limiter throttles model calls. Optional.
	Limiter *rate.Limiter

	// Timeout bounds one model call. Zero means no per-call deadline.
	Timeout time.Duration

	// Logger is required.
	Logger *slog.Logger

	// Now supplies the clock for greetings. Defaults to time.Now.
	Now func() time.Time
}

func (c Config) validate() error {
	if c.Genkit == nil {
		return errors.New("genkit instance is required")
	}
	if c.ModelName == "" {
		return errors.New("model name is required")
	}
	if c.Logger == nil {
		return errors.New("logger is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature %.2f out of range [0, 2]", c.Temperature)
	}
	return nil
}

// Controller drives tutoring turns against the model.
type Controller struct {
	g           *genkit.Genkit
	modelName   string
	apiKey      string
	maxTokens   int
	temperature float64
	tracker     *topics.Tracker
	limiter     *rate.Limiter
	timeout     time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

// New creates a Controller.
func New(cfg Config) (*Controller, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid tutor config: %w", err)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Controller{
		g:           cfg.Genkit,
		modelName:   cfg.ModelName,
		apiKey:      cfg.APIKey,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		tracker:     cfg.Tracker,
		limiter:     cfg.Limiter,
		timeout:     cfg.Timeout,
		logger:      cfg.Logger,
		now:         now,
	}, nil
}

// ProcessMessage runs one tutoring turn: greet on the first message, record
// the learner input, update topics, call the model with the assembled
// instruction and transcript, and append the badge-prefixed reply.
//
// Provider failures and a missing API key become assistant replies rather
// than errors, so the conversation always moves forward. A non-nil error
// means the turn could not be represented at all.
func (c *Controller) ProcessMessage(ctx context.Context, state *session.State, input string, cb StreamCallback) (Turn, error) {
	var turn Turn
	turn.Greeting = c.Greet(state)

	state.AppendUser(input)

	if c.tracker != nil {
		state.SetTopics(c.tracker.Update(ctx, input, state.Topics()))
	}

	snap := state.Snapshot()
	system, err := prompt.Assemble(snap)
	if err != nil {
		return Turn{}, fmt.Errorf("assembling instruction: %w", err)
	}

	if c.apiKey == "" {
		c.logger.Warn("no API key configured, skipping model call")
		turn.Reply = missingKeyReply
		c.finishTurn(state, turn.Reply)
		return turn, nil
	}

	messages := c.buildMessages(state, snap.Level, snap.Language)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Turn{}, fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	badge := snap.Level.Badge()
	reply, err := c.generate(callCtx, system, messages, badge, cb)
	if err != nil {
		c.logger.Error("model call failed", "error", err, "session", snap.ID)
		reply = fmt.Sprintf("I'm sorry, there was an error processing your request: %v. Please try again.", err)
	} else if !catalog.HasBadge(reply) {
		reply = badge + " " + reply
	}

	turn.Reply = reply
	c.finishTurn(state, reply)
	return turn, nil
}

// Greet appends the one-time session greeting and returns it, or returns the
// empty string when the session has already been greeted.
func (c *Controller) Greet(state *session.State) string {
	if state.GreetingIssued() {
		return ""
	}
	lang := state.Language()
	level := state.Level()
	greeting := fmt.Sprintf("%s I'm your %s language tutor. %s You've selected the %s level. I'll adapt all my responses, exercises, and vocabulary to this level. How can I help you today?",
		catalog.Greeting(lang.Code, c.now()), lang.Name, level.Badge(), level.Display())
	state.AppendAssistant(greeting)
	state.MarkGreeted()
	return greeting
}

// buildMessages converts the transcript for the model and injects the pending
// upload exactly once: only while the most recent assistant message is still
// the upload notice.
func (c *Controller) buildMessages(state *session.State, level catalog.Level, lang catalog.Language) []*ai.Message {
	transcript := state.Messages()
	messages := make([]*ai.Message, 0, len(transcript)+1)
	for _, msg := range transcript {
		part := ai.NewTextPart(msg.Content)
		if msg.Role == session.RoleAssistant {
			messages = append(messages, ai.NewModelMessage(part))
		} else {
			messages = append(messages, ai.NewUserMessage(part))
		}
	}

	a := state.Artifact()
	if a == nil {
		return messages
	}
	last, ok := state.LastAssistantMessage()
	if !ok || !strings.Contains(last, uploadMarker) {
		return messages
	}

	display := level.Display()
	code := level.Code()
	switch {
	case a.IsImage():
		text := fmt.Sprintf("Here's an image I've uploaded. I'm learning %s at %s level. Please extract any %s text from it, translate it, and create exercises based on it that are STRICTLY appropriate for %s level students. Ensure all vocabulary and grammar is EXACTLY at %s level complexity - do not use any structures or words from higher levels.",
			lang.Name, display, lang.Name, code, code)
		messages = append(messages, ai.NewUserMessage(
			ai.NewTextPart(text),
			ai.NewMediaPart(a.MIMEType, a.DataURI()),
		))
	case a.IsText && a.Text != "":
		text := fmt.Sprintf("Here's a %s I've uploaded named '%s'. I'm learning %s at %s level. Here's the content of the file:\n\n```\n%s\n```\n\nPlease analyze this text, translate any %s content, explain grammar concepts, and create exercises based on it that are STRICTLY appropriate for %s level students. Ensure all vocabulary and grammar is EXACTLY at %s level complexity - do not use any structures or words from higher levels.",
			artifact.TypeDescription(a.MIMEType), a.Name, lang.Name, display, a.Text, lang.Name, code, code)
		messages = append(messages, ai.NewUserMessage(ai.NewTextPart(text)))
	default:
		text := fmt.Sprintf("I've uploaded a %s named '%s'. I'm learning %s at %s level. Please help me learn %s from this file by creating appropriate exercises and content for %s level students. Ensure all vocabulary and grammar is EXACTLY at %s level complexity - do not use any structures or words from higher levels.",
			artifact.TypeDescription(a.MIMEType), a.Name, lang.Name, display, lang.Name, code, code)
		messages = append(messages, ai.NewUserMessage(ai.NewTextPart(text)))
	}
	return messages
}

// generate calls the model, streaming through cb when given. The level badge
// is emitted ahead of the first chunk unless the model produced its own.
func (c *Controller) generate(ctx context.Context, system string, messages []*ai.Message, badge string, cb StreamCallback) (string, error) {
	opts := []ai.GenerateOption{
		ai.WithModelName(c.modelName),
		ai.WithSystem(system),
		ai.WithMessages(messages...),
	}

	genCfg := &genai.GenerateContentConfig{}
	if c.temperature > 0 {
		genCfg.Temperature = genai.Ptr(float32(c.temperature))
	}
	if c.maxTokens > 0 {
		genCfg.MaxOutputTokens = int32(c.maxTokens)
	}
	opts = append(opts, ai.WithConfig(genCfg))

	if cb != nil {
		first := true
		opts = append(opts, ai.WithStreaming(func(ctx context.Context, chunk *ai.ModelResponseChunk) error {
			text := chunk.Text()
			if first {
				first = false
				if !catalog.HasBadge(text) {
					if err := cb(ctx, badge+" "); err != nil {
						return err
					}
				}
			}
			return cb(ctx, text)
		}))
	}

	resp, err := genkit.Generate(ctx, c.g, opts...)
	if err != nil {
		return "", fmt.Errorf("generating reply: %w", err)
	}
	return resp.Text(), nil
}

// finishTurn records the reply and lowers the change flags so alerts fire on
// exactly one instruction.
func (c *Controller) finishTurn(state *session.State, reply string) {
	state.AppendAssistant(reply)
	state.ClearChangeFlags()
}
