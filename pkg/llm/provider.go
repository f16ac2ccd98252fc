package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system", "tool"
	Content string

	// ToolCalls is set on assistant messages that request tool execution.
	ToolCalls []ToolCall

	// ToolCallID links a tool-role message back to the call it answers.
	ToolCallID string
}

// ToolCall is a structured invocation request emitted by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string // raw JSON object
}

// ToolSpec declares a callable tool to the model: name, natural-language
// purpose, and a JSON-schema parameter contract.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// Result is the outcome of one generation: either final text or one or more
// tool invocations.
type Result struct {
	Content   string
	ToolCalls []ToolCall
}

func (r *Result) WantsTools() bool {
	return r != nil && len(r.ToolCalls) > 0
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// Provider defines the contract for any generative model backend
type Provider interface {
	// Chat sends a chat history to the model and returns the response text
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// ChatWithTools additionally offers the declared tools; the model either
	// answers directly or requests invocations
	ChatWithTools(ctx context.Context, history []Message, tools []ToolSpec, options ...Option) (*Result, error)
}
