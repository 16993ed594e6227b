package agent

import (
	"errors"
	"fmt"

	"github.com/toolscout-io/toolscout/pkg/protocol"
)

// ErrConfiguration marks construction-time validation failures. Check with
// errors.Is.
var ErrConfiguration = errors.New("agent: invalid configuration")

// ErrRunFinished is returned by Run.Next after the run has produced its
// result or failed.
var ErrRunFinished = errors.New("agent: run already finished")

// ErrorPolicy decides what happens when a resolved tool's execution fails.
// Returning recovered=true converts the failure into the tool message
// content so the model sees it and can adapt; recovered=false propagates the
// error and aborts the run. Unknown tool names are always converted,
// regardless of policy.
type ErrorPolicy func(call protocol.ToolCall, err error) (content string, recovered bool)

// StrictErrors propagates every tool execution failure as a run failure.
// This is the default.
func StrictErrors(_ protocol.ToolCall, _ error) (string, bool) {
	return "", false
}

// RecoverErrors surfaces tool execution failures to the model as tool
// message content instead of aborting the run.
func RecoverErrors(_ protocol.ToolCall, err error) (string, bool) {
	return fmt.Sprintf("Error: %v", err), true
}
