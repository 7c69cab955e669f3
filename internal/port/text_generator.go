package port

import "context"

// GenerateInput carries one text-generation request: a system instruction
// framing the task and the task-specific prompt.
type GenerateInput struct {
	System string
	Prompt string
}

// TextGenerator abstracts an LLM text-generation capability. The returned
// text is untrusted: callers that expect structured output must parse it
// defensively and fall back on a documented default when parsing fails.
type TextGenerator interface {
	Generate(ctx context.Context, input GenerateInput) (string, error)
}
