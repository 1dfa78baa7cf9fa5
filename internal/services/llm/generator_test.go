package llm_test

import (
	"context"
	"strings"
	"testing"

	"sceneforge/internal/services/llm"
	"sceneforge/internal/validate"
)

type scriptedCompleter struct {
	replies []string
	calls   int
	history [][]llm.Message
}

func (s *scriptedCompleter) Complete(_ context.Context, messages []llm.Message) (string, error) {
	s.history = append(s.history, append([]llm.Message(nil), messages...))
	reply := s.replies[s.calls]
	s.calls++
	return reply, nil
}

func TestDemoModeServesValidTemplates(t *testing.T) {
	gen := llm.NewGenerator(llm.Config{}, nil)
	if !gen.DemoMode() {
		t.Fatal("expected demo mode without api key")
	}

	for _, prompt := range []string{
		"draw a circle",
		"rotate a square",
		"show the pythagorean theorem",
		"animate bubble sort",
		"something unrecognized entirely",
	} {
		code, err := gen.GenerateScene(context.Background(), prompt)
		if err != nil {
			t.Fatalf("GenerateScene(%q) failed: %v", prompt, err)
		}
		if err := validate.Validate(code); err != nil {
			t.Fatalf("demo template for %q fails validation: %v", prompt, err)
		}
	}
}

func TestPlaceholderKeySelectsDemoMode(t *testing.T) {
	gen := llm.NewGenerator(llm.Config{APIKey: "your_openrouter_api_key_here"}, nil)
	if !gen.DemoMode() {
		t.Fatal("expected placeholder key to select demo mode")
	}
}

func TestGenerateSceneRetriesWithValidationFeedback(t *testing.T) {
	bad := "```python\nprint('no scene here')\n```"
	good := "```python\nfrom manim import *\n\nclass GeneratedScene(Scene):\n    def construct(self):\n        self.wait(1)\n```"
	completer := &scriptedCompleter{replies: []string{bad, good}}
	gen := llm.NewGeneratorForTest(completer)

	code, err := gen.GenerateScene(context.Background(), "draw something")
	if err != nil {
		t.Fatalf("GenerateScene failed: %v", err)
	}
	if !strings.Contains(code, "class GeneratedScene(Scene)") {
		t.Fatalf("unexpected code %q", code)
	}
	if completer.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", completer.calls)
	}

	// Second attempt's conversation must carry the validation feedback.
	second := completer.history[1]
	last := second[len(second)-1]
	if last.Role != "user" || !strings.Contains(last.Content, "error") {
		t.Fatalf("expected error feedback message, got %+v", last)
	}
}

func TestGenerateSceneGivesUpAfterBudget(t *testing.T) {
	bad := "still not a scene"
	completer := &scriptedCompleter{replies: []string{bad, bad, bad}}
	gen := llm.NewGeneratorForTest(completer)

	if _, err := gen.GenerateScene(context.Background(), "draw"); err == nil {
		t.Fatal("expected failure after attempt budget")
	}
	if completer.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", completer.calls)
	}
}

func TestGenerateSceneRequiresPrompt(t *testing.T) {
	gen := llm.NewGenerator(llm.Config{}, nil)
	if _, err := gen.GenerateScene(context.Background(), "  "); err == nil {
		t.Fatal("expected error for blank prompt")
	}
}
