package tool

import "context"

// Func adapts a plain Go function into a Tool. It is the glue used to expose
// library functions whose signatures know nothing about tool calling.
type Func struct {
	name        string
	description string
	parameters  map[string]any
	fn          func(ctx context.Context, args map[string]any) (string, error)
}

// NewFunc wraps fn as a Tool with the given name, description, and JSON
// Schema parameters.
func NewFunc(name, description string, parameters map[string]any, fn func(ctx context.Context, args map[string]any) (string, error)) *Func {
	return &Func{
		name:        name,
		description: description,
		parameters:  parameters,
		fn:          fn,
	}
}

func (f *Func) Name() string               { return f.name }
func (f *Func) Description() string        { return f.description }
func (f *Func) Parameters() map[string]any { return f.parameters }

func (f *Func) Execute(ctx context.Context, args map[string]any) (string, error) {
	return f.fn(ctx, args)
}
