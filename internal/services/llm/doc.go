// Package llm generates manim scene code from natural-language prompts via
// the OpenRouter chat completion API.
//
// # Generation Logic
//
// The Generator sends a system prompt plus few-shot examples, extracts the
// Python source from the reply, and validates it before returning. Invalid
// code is appended back into the conversation with the validation error so
// the model can correct itself, up to a fixed attempt budget.
//
// # Demo Mode
//
// When no API key is configured the generator serves canned templates keyed
// on prompt keywords, keeping the rest of the pipeline exercisable offline.
//
// # Retry Behaviour
//
// The HTTP client retries on 408/429/5xx and network timeouts with
// exponential backoff (base 1s, max 10s, up to 3 attempts by default).
// Context cancellation aborts retries immediately.
package llm
