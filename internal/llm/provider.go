package llm

import "context"

// LLM answers a single two-message conversation.
type LLM interface {
	Name() string
	Query(ctx context.Context, systemPrompt string, userQuery string) (string, error)
}

// Factory builds a provider for one request.
type Factory func(Settings) (LLM, error)
