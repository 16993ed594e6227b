package agent

import (
	"context"
	"fmt"

	"github.com/toolscout-io/toolscout/pkg/protocol"
)

// EventKind classifies what a single step produced.
type EventKind int

const (
	// EventModel: one model call completed; the assistant message carries
	// tool calls that will be executed by subsequent steps.
	EventModel EventKind = iota
	// EventTool: one tool call completed and its response was appended.
	EventTool
	// EventDone: the model answered with no tool calls; Result is set.
	EventDone
)

// Event is the outcome of one Run.Next call.
type Event struct {
	Kind    EventKind
	Message protocol.ChatMessage
	Result  *Result // non-nil only for EventDone
}

type stepPhase int

const (
	phaseDecide stepPhase = iota
	phaseExecute
	phaseDone
)

// Run is an in-flight stepwise invocation. Each Next call performs exactly
// one suspension point — one model call or one tool call — so an external
// scheduler controls when the run makes progress. A Run is not safe for
// concurrent use; it is owned by whoever drives it.
type Run struct {
	agent      *Agent
	state      *State
	phase      stepPhase
	pending    []protocol.ToolCall
	iterations int
}

// Start begins a stepwise run. Only agents built for ModeStepwise may call
// it.
func (a *Agent) Start(input Input) (*Run, error) {
	if a.mode != ModeStepwise {
		return nil, fmt.Errorf("%w: Start requires ModeStepwise", ErrConfiguration)
	}
	return &Run{
		agent: a,
		state: a.newState(input),
	}, nil
}

// Next advances the run by one suspension point. After EventDone, or after
// any error, further calls return ErrRunFinished. A cancelled context aborts
// the step with no partial append: either the step's message is fully
// appended or the state is untouched.
func (r *Run) Next(ctx context.Context) (Event, error) {
	switch r.phase {
	case phaseDone:
		return Event{}, ErrRunFinished
	case phaseDecide:
		return r.decide(ctx)
	default:
		return r.execute(ctx)
	}
}

func (r *Run) decide(ctx context.Context) (Event, error) {
	if err := ctx.Err(); err != nil {
		return r.fail(fmt.Errorf("agent: context cancelled: %w", err))
	}
	if r.iterations >= r.agent.maxIterations {
		return r.fail(fmt.Errorf("agent: exceeded max iterations (%d)", r.agent.maxIterations))
	}
	r.iterations++

	req := protocol.ChatRequest{
		Messages: r.state.Messages,
		Tools:    r.agent.visibleTools(r.state.selected),
	}
	r.agent.logger.Debug("decide step",
		"iteration", r.iterations,
		"messages", len(r.state.Messages),
		"visible_tools", len(req.Tools),
		"selected", len(r.state.selected),
	)

	resp, err := r.agent.provider.Chat(ctx, req)
	if err != nil {
		return r.fail(fmt.Errorf("agent: provider error: %w", err))
	}

	msg := protocol.ChatMessage{
		Role:      protocol.RoleAssistant,
		Content:   resp.Content,
		ToolCalls: resp.ToolCalls,
	}
	r.state.append(msg)

	if !resp.HasToolCalls() {
		r.phase = phaseDone
		return Event{Kind: EventDone, Message: msg, Result: r.state.result()}, nil
	}

	r.pending = resp.ToolCalls
	r.phase = phaseExecute
	return Event{Kind: EventModel, Message: msg}, nil
}

func (r *Run) execute(ctx context.Context) (Event, error) {
	call := r.pending[0]
	r.agent.logger.Info(fmt.Sprintf("tool call: %s", call.Name), "call_id", call.ID)

	msg, ids, err := r.agent.executeCall(ctx, r.state, call, true)
	if err != nil {
		return r.fail(err)
	}

	// Consume the call only once it fully succeeded, so a cancelled step can
	// be observed without having mutated the state.
	r.pending = r.pending[1:]
	r.state.Merge(ids)
	r.state.append(msg)

	if len(r.pending) == 0 {
		r.phase = phaseDecide
	}
	return Event{Kind: EventTool, Message: msg}, nil
}

func (r *Run) fail(err error) (Event, error) {
	r.phase = phaseDone
	return Event{}, err
}
