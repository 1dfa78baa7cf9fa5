package llm

import "sceneforge/internal/logging"

// NewGeneratorForTest wires a generator to a scripted completer.
func NewGeneratorForTest(c Completer) *Generator {
	return &Generator{client: c, logger: logging.NewNop()}
}
