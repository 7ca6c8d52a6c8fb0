// Package llm defines the contract with the external generation service.
// The pipeline consumes the service strictly through Provider: send typed
// chat messages, get one complete response back. Transport and response
// format problems surface as ServiceError, which the retry layer treats as
// transient.
package llm

import (
	"context"
	"fmt"
)

// Message represents a chat message for generation-service communication.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Role constants.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Provider is the sole external collaborator the pipeline core depends on.
// Any OpenAI-compatible endpoint can back it; tests and offline runs use the
// in-repo mocks.
type Provider interface {
	// CallLLM sends messages to the generation service and returns the
	// complete response.
	CallLLM(ctx context.Context, messages []Message) (Message, error)
}

// ServiceError wraps any transport or response-format failure from the
// generation service. It deliberately does not implement the permanent-error
// marker: every ServiceError is retryable.
type ServiceError struct {
	Op  string // call site, e.g. "questions", "faq_page"
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("generation service (%s): %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }
