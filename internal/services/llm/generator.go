package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"sceneforge/internal/logging"
	"sceneforge/internal/validate"
)

const generateAttempts = 3

// Completer is the chat surface the generator needs; satisfied by Client.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Generator turns scene prompts into validated manim code. Without an API
// key it serves canned demo templates; with one it asks the model and
// feeds validation failures back for another attempt.
type Generator struct {
	client   Completer
	demoMode bool
	logger   *slog.Logger
}

// NewGenerator constructs a generator from the LLM config. Placeholder
// keys (empty or "your_..." scaffolding values) select demo mode.
func NewGenerator(cfg Config, logger *slog.Logger, opts ...Option) *Generator {
	if logger == nil {
		logger = logging.NewNop()
	}
	key := strings.TrimSpace(cfg.APIKey)
	demo := key == "" || strings.HasPrefix(key, "your_")
	gen := &Generator{
		demoMode: demo,
		logger:   logging.WithComponent(logger, "generator"),
	}
	if !demo {
		gen.client = NewClient(cfg, opts...)
	}
	return gen
}

// DemoMode reports whether the generator serves canned templates.
func (g *Generator) DemoMode() bool {
	return g.demoMode
}

// GenerateScene produces validated manim code for a prompt. In LLM mode
// each invalid attempt is appended to the conversation with the validation
// error so the model can correct itself, up to a fixed attempt budget.
func (g *Generator) GenerateScene(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", fmt.Errorf("generate scene: prompt required")
	}

	if g.demoMode {
		g.logger.Info("serving demo template", logging.String("prompt", summarizePayloadSnippet(prompt)))
		return DemoCode(prompt), nil
	}

	messages := conversation(prompt)
	var lastErr error
	for attempt := 1; attempt <= generateAttempts; attempt++ {
		reply, err := g.client.Complete(ctx, messages)
		if err != nil {
			return "", fmt.Errorf("generate scene: %w", err)
		}

		code := ExtractCode(reply)
		validationErr := validate.Validate(code)
		if validationErr == nil {
			return code, nil
		}
		lastErr = validationErr

		g.logger.Warn("generated code rejected",
			logging.Int("attempt", attempt),
			logging.Error(validationErr))
		messages = append(messages,
			Message{Role: "assistant", Content: reply},
			Message{Role: "user", Content: fmt.Sprintf(
				"The previous code had an error: %s\nPlease fix it and generate valid Manim code.",
				validationErr.Error(),
			)},
		)
	}

	return "", fmt.Errorf("generate scene: failed to produce valid code after %d attempts: %w", generateAttempts, lastErr)
}
