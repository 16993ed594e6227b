package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/toolscout-io/toolscout/pkg/protocol"
)

func TestStepwise_EndToEnd(t *testing.T) {
	reg, st := newMathFixture(t)
	prov := &mockProvider{responses: acosScript(t, reg)}

	a, err := New(prov, reg, st, WithMode(ModeStepwise))
	if err != nil {
		t.Fatalf("new agent: %v", err)
	}
	run, err := a.Start(UserInput("Use available tools to calculate arc cosine of 0.5."))
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// decide, tool, decide, tool, decide(final)
	wantKinds := []EventKind{EventModel, EventTool, EventModel, EventTool, EventDone}
	var result *Result
	for i, want := range wantKinds {
		ev, err := run.Next(context.Background())
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if ev.Kind != want {
			t.Fatalf("step %d: expected kind %v, got %v", i, want, ev.Kind)
		}
		if ev.Kind == EventDone {
			result = ev.Result
		}
	}
	if result == nil {
		t.Fatal("expected a result from EventDone")
	}
	validateAcosResult(t, reg, result)

	if _, err := run.Next(context.Background()); !errors.Is(err, ErrRunFinished) {
		t.Errorf("expected ErrRunFinished after completion, got %v", err)
	}
}

func TestStepwise_OneSuspensionPerNext(t *testing.T) {
	reg, st := newMathFixture(t)
	sqrtID, _ := reg.FindByName("sqrt")
	cbrtID, _ := reg.FindByName("cbrt")

	prov := &mockProvider{responses: []*protocol.ChatResponse{
		{ToolCalls: []protocol.ToolCall{
			{ID: "c1", Name: sqrtID, Arguments: map[string]any{"x": 4.0}},
			{ID: "c2", Name: cbrtID, Arguments: map[string]any{"x": 8.0}},
		}},
		{Content: "done"},
	}}

	a, err := New(prov, reg, st, WithMode(ModeStepwise))
	if err != nil {
		t.Fatalf("new agent: %v", err)
	}
	run, err := a.Start(UserInput("roots"))
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if ev, err := run.Next(context.Background()); err != nil || ev.Kind != EventModel {
		t.Fatalf("expected model event, got %v (err=%v)", ev.Kind, err)
	}

	// Each tool call is its own step, answered in request order.
	ev1, err := run.Next(context.Background())
	if err != nil || ev1.Kind != EventTool || ev1.Message.ToolCallID != "c1" {
		t.Fatalf("expected tool event for c1, got %+v (err=%v)", ev1.Message, err)
	}
	if len(prov.calls) != 1 {
		t.Error("no model call may happen between tool steps")
	}
	ev2, err := run.Next(context.Background())
	if err != nil || ev2.Kind != EventTool || ev2.Message.ToolCallID != "c2" {
		t.Fatalf("expected tool event for c2, got %+v (err=%v)", ev2.Message, err)
	}

	ev3, err := run.Next(context.Background())
	if err != nil || ev3.Kind != EventDone {
		t.Fatalf("expected done, got %v (err=%v)", ev3.Kind, err)
	}
}

func TestStepwise_AsyncRetrieveFunc(t *testing.T) {
	reg, st := newMathFixture(t)
	acosID, _ := reg.FindByName("acos")

	called := false
	async := func(_ context.Context, _ string) <-chan Retrieval {
		called = true
		ch := make(chan Retrieval, 1)
		ch <- Retrieval{IDs: []string{acosID}}
		return ch
	}
	// Sync slot populated too; stepwise mode must pick the async one.
	sync := func(_ context.Context, _ string) ([]string, error) {
		t.Error("sync retrieval must not run in stepwise mode")
		return nil, nil
	}

	prov := &mockProvider{responses: acosScript(t, reg)}
	a, err := New(prov, reg, st, WithMode(ModeStepwise), WithRetrieveFunc(sync), WithAsyncRetrieveFunc(async))
	if err != nil {
		t.Fatalf("new agent: %v", err)
	}
	run, err := a.Start(UserInput("arc cosine of 0.5"))
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	var result *Result
	for {
		ev, err := run.Next(context.Background())
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if ev.Kind == EventDone {
			result = ev.Result
			break
		}
	}
	if !called {
		t.Error("async retrieval function was not used")
	}
	if len(result.SelectedToolIDs) != 1 || result.SelectedToolIDs[0] != acosID {
		t.Errorf("expected selection [%s], got %v", acosID, result.SelectedToolIDs)
	}
}

func TestStepwise_AsyncRetrieveFuncErrorIsFatal(t *testing.T) {
	reg, st := newMathFixture(t)
	errBoom := errors.New("boom")

	async := func(_ context.Context, _ string) <-chan Retrieval {
		ch := make(chan Retrieval, 1)
		ch <- Retrieval{Err: errBoom}
		return ch
	}

	prov := &mockProvider{responses: acosScript(t, reg)}
	a, err := New(prov, reg, st, WithMode(ModeStepwise), WithAsyncRetrieveFunc(async))
	if err != nil {
		t.Fatalf("new agent: %v", err)
	}
	run, err := a.Start(UserInput("arc cosine of 0.5"))
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := run.Next(context.Background()); err != nil {
		t.Fatalf("decide step: %v", err)
	}
	if _, err := run.Next(context.Background()); !errors.Is(err, errBoom) {
		t.Fatalf("expected the raised error, got %v", err)
	}
	if _, err := run.Next(context.Background()); !errors.Is(err, ErrRunFinished) {
		t.Errorf("run must be finished after a fatal step, got %v", err)
	}
}

func TestStepwise_CancellationLeavesNoPartialAppend(t *testing.T) {
	reg, st := newMathFixture(t)
	prov := &mockProvider{responses: acosScript(t, reg)}

	a, err := New(prov, reg, st, WithMode(ModeStepwise))
	if err != nil {
		t.Fatalf("new agent: %v", err)
	}
	run, err := a.Start(UserInput("arc cosine of 0.5"))
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := run.Next(context.Background()); err != nil {
		t.Fatalf("decide step: %v", err)
	}
	before := len(run.state.Messages)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := run.Next(ctx); err == nil {
		t.Fatal("expected cancellation error")
	}
	if got := len(run.state.Messages); got != before {
		t.Errorf("cancelled step must not append: had %d messages, now %d", before, got)
	}
}
