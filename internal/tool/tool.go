// Package tool defines the callable tool abstraction and the immutable
// id-keyed registry the agent resolves tool calls against.
package tool

import "context"

// Tool is a named, described capability the model can invoke.
type Tool interface {
	Name() string
	Description() string
	Parameters() map[string]any // JSON Schema
	Execute(ctx context.Context, args map[string]any) (string, error)
}
