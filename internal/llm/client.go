package llm

import "context"

// GenerationParams bounds a single completion call. Values are injected by
// the caller's configuration so tests can substitute deterministic fakes
// without touching globals.
type GenerationParams struct {
	MaxTokens        int
	Temperature      float32
	FrequencyPenalty float32
}

// Client is the remote text-generation collaborator. Complete returns the
// raw model output; any error, timeout or empty result is handled by the
// caller's fallback chain. Implementations must enforce their own timeout
// so a call always finishes in bounded time.
type Client interface {
	Complete(ctx context.Context, prompt string, params GenerationParams) (string, error)
}
