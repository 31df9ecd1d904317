package llm

import (
	"context"

	"ai-lessonplan-be/internal/pkg/apperrors"
)

// Gateway is the single entry point the pipeline uses to talk to a model.
// It composes a system instruction with a user prompt and normalizes every
// transport failure into a typed GenerationError. No retries, no caching;
// that belongs to the orchestrator.
type Gateway struct {
	provider LLMProvider
}

func NewGateway(provider LLMProvider) *Gateway {
	return &Gateway{provider: provider}
}

// Complete sends the composed prompt and returns the raw model text.
func (g *Gateway) Complete(ctx context.Context, system, prompt string, opts ...Option) (string, error) {
	history := make([]Message, 0, 2)
	if system != "" {
		history = append(history, Message{Role: RoleSystem, Content: system})
	}
	history = append(history, Message{Role: RoleUser, Content: prompt})

	out, err := g.provider.Chat(ctx, history, opts...)
	if err != nil {
		return "", &apperrors.GenerationError{Cause: err}
	}
	return out, nil
}
