// Package provider abstracts LLM chat APIs behind a single interface.
package provider

import (
	"context"

	"github.com/toolscout-io/toolscout/pkg/protocol"
)

// Provider is the abstraction over LLM APIs.
type Provider interface {
	Chat(ctx context.Context, req protocol.ChatRequest) (*protocol.ChatResponse, error)
	Name() string
}
