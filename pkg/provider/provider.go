// Package provider is the AI collaborator boundary: an abstraction over
// chat-completion APIs that return code review issues for submitted files.
package provider

import (
	"context"
	"fmt"
)

// Request carries the prompts for one review call.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
}

// Response is the raw model output; parsing the issue envelope out of it
// belongs to pkg/review.
type Response struct {
	Content    string
	TokensUsed int
}

// Provider is the abstraction over a reviewer model endpoint.
type Provider interface {
	Review(ctx context.Context, req Request) (Response, error)
	Name() string
}

// New creates a provider by name. "openai" also covers any endpoint that
// speaks the chat-completions wire format (Ollama, LM Studio, vLLM).
func New(name, model, baseURL string) (Provider, error) {
	switch name {
	case "openai", "ollama", "lmstudio":
		return NewOpenAI(model, baseURL)
	default:
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
}
