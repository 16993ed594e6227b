// Package agent implements the tool-retrieval-augmented agent loop. The
// model starts with a single meta-tool, retrieve_tools, and the set of real
// tools bound to it grows as retrievals run: every decision step recomputes
// the visible tool set from the registry and the ids selected so far.
package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/toolscout-io/toolscout/internal/provider"
	"github.com/toolscout-io/toolscout/internal/store"
	"github.com/toolscout-io/toolscout/internal/tool"
	"github.com/toolscout-io/toolscout/pkg/protocol"
)

const (
	defaultMaxIterations = 20
	defaultRetrieveLimit = 2
)

// Mode selects how a run is driven.
type Mode int

const (
	// ModeBlocking runs decide/execute sequentially on the caller's
	// goroutine via Invoke.
	ModeBlocking Mode = iota
	// ModeStepwise exposes each model call and each tool call as a separate
	// suspension point via Start/Next, resumed by an external scheduler.
	ModeStepwise
)

// Retrieval is the outcome of an asynchronous retrieval.
type Retrieval struct {
	IDs []string
	Err error
}

// RetrieveFunc is a custom synchronous retrieval behavior: free-text query
// in, ranked tool ids out.
type RetrieveFunc func(ctx context.Context, query string) ([]string, error)

// AsyncRetrieveFunc is a custom retrieval behavior for stepwise runs. It
// starts the search and delivers exactly one Retrieval on the returned
// channel.
type AsyncRetrieveFunc func(ctx context.Context, query string) <-chan Retrieval

// Agent drives the retrieval-augmented loop over an immutable tool registry
// and a semantic tool store. Construct with New; a zero Agent is not usable.
type Agent struct {
	provider provider.Provider
	registry *tool.Registry
	store    store.Store

	mode          Mode
	retrieve      RetrieveFunc
	retrieveAsync AsyncRetrieveFunc
	retrieveLimit int
	errorPolicy   ErrorPolicy
	logger        *slog.Logger
	maxIterations int
	systemPrompt  string
}

// Option configures an Agent at construction time.
type Option func(*Agent)

// WithMode selects the execution mode (default ModeBlocking).
func WithMode(m Mode) Option {
	return func(a *Agent) { a.mode = m }
}

// WithRetrieveFunc replaces the default store-backed retrieval with a custom
// synchronous function.
func WithRetrieveFunc(f RetrieveFunc) Option {
	return func(a *Agent) { a.retrieve = f }
}

// WithAsyncRetrieveFunc replaces the default store-backed retrieval with a
// custom asynchronous function, used by stepwise runs.
func WithAsyncRetrieveFunc(f AsyncRetrieveFunc) Option {
	return func(a *Agent) { a.retrieveAsync = f }
}

// WithRetrieveLimit caps how many ids the default retrieval returns per
// query (default 2).
func WithRetrieveLimit(n int) Option {
	return func(a *Agent) { a.retrieveLimit = n }
}

// WithErrorPolicy sets the tool-execution error policy (default StrictErrors).
func WithErrorPolicy(p ErrorPolicy) Option {
	return func(a *Agent) { a.errorPolicy = p }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Agent) { a.logger = l }
}

// WithMaxIterations bounds the number of decide steps per run.
func WithMaxIterations(n int) Option {
	return func(a *Agent) { a.maxIterations = n }
}

// WithSystemPrompt prepends a system message to every run whose input does
// not already start with one.
func WithSystemPrompt(prompt string) Option {
	return func(a *Agent) { a.systemPrompt = prompt }
}

// New constructs an Agent and validates that the supplied retrieval
// functions are consistent with the execution mode. All configuration errors
// wrap ErrConfiguration and surface here, before any run starts.
func New(p provider.Provider, reg *tool.Registry, st store.Store, opts ...Option) (*Agent, error) {
	a := &Agent{
		provider:      p,
		registry:      reg,
		store:         st,
		mode:          ModeBlocking,
		retrieveLimit: defaultRetrieveLimit,
		errorPolicy:   StrictErrors,
		logger:        slog.Default(),
		maxIterations: defaultMaxIterations,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.provider == nil {
		return nil, fmt.Errorf("%w: provider is required", ErrConfiguration)
	}
	if a.registry == nil {
		return nil, fmt.Errorf("%w: tool registry is required", ErrConfiguration)
	}
	if a.store == nil && a.retrieve == nil && a.retrieveAsync == nil {
		return nil, fmt.Errorf("%w: a store or a custom retrieval function is required", ErrConfiguration)
	}

	// A custom retrieval behavior must cover the mode the agent runs in.
	// Supplying both is fine; the mode-matching one is used.
	custom := a.retrieve != nil || a.retrieveAsync != nil
	switch {
	case custom && a.mode == ModeBlocking && a.retrieve == nil:
		return nil, fmt.Errorf("%w: blocking mode requires a synchronous retrieval function", ErrConfiguration)
	case custom && a.mode == ModeStepwise && a.retrieveAsync == nil:
		return nil, fmt.Errorf("%w: stepwise mode requires an asynchronous retrieval function", ErrConfiguration)
	}

	return a, nil
}

// Input seeds a run's message history.
type Input struct {
	Messages []protocol.ChatMessage `json:"messages"`
}

// UserInput wraps a single user message as run input.
func UserInput(text string) Input {
	return Input{Messages: []protocol.ChatMessage{{Role: protocol.RoleUser, Content: text}}}
}

// Result is the final state of a run: the full ordered history and the
// accumulated selection.
type Result struct {
	Messages        []protocol.ChatMessage `json:"messages"`
	SelectedToolIDs []string               `json:"selected_tool_ids"`
}

// visibleTools recomputes the model-facing tool set: retrieve_tools first,
// then the definitions of every selected registry entry in selection order.
// It is a pure function of (registry, selection) and is never cached across
// decide steps.
func (a *Agent) visibleTools(selected []string) []protocol.ToolDefinition {
	defs := make([]protocol.ToolDefinition, 0, len(selected)+1)
	defs = append(defs, retrieveToolDefinition())
	for _, id := range selected {
		if t, ok := a.registry.Lookup(id); ok {
			defs = append(defs, protocol.NewToolDefinition(t.Name(), t.Description(), t.Parameters()))
		}
	}
	return defs
}

// resolve maps a requested action name to an executable tool: a registry id
// directly, or the model-visible name of an already-selected entry.
func (a *Agent) resolve(name string, st *State) (tool.Tool, bool) {
	if t, ok := a.registry.Lookup(name); ok {
		return t, true
	}
	for _, id := range st.selected {
		if t, ok := a.registry.Lookup(id); ok && t.Name() == name {
			return t, true
		}
	}
	return nil, false
}
