package agent

import (
	"context"
	"fmt"

	"github.com/toolscout-io/toolscout/pkg/protocol"
)

// Invoke runs the blocking loop: ask the model to decide, execute any
// requested tool calls in request order, and repeat until the model answers
// with no tool calls or the iteration limit is reached. Only agents built
// for ModeBlocking may call it.
func (a *Agent) Invoke(ctx context.Context, input Input) (*Result, error) {
	if a.mode != ModeBlocking {
		return nil, fmt.Errorf("%w: Invoke requires ModeBlocking", ErrConfiguration)
	}

	st := a.newState(input)

	for i := 0; i < a.maxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("agent: context cancelled: %w", err)
		}

		req := protocol.ChatRequest{
			Messages: st.Messages,
			Tools:    a.visibleTools(st.selected),
		}

		a.logger.Debug("decide step",
			"iteration", i+1,
			"messages", len(st.Messages),
			"visible_tools", len(req.Tools),
			"selected", len(st.selected),
		)

		resp, err := a.provider.Chat(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("agent: provider error: %w", err)
		}

		st.append(protocol.ChatMessage{
			Role:      protocol.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		if !resp.HasToolCalls() {
			a.logger.Debug("final response",
				"iteration", i+1,
				"content_len", len(resp.Content),
			)
			return st.result(), nil
		}

		for _, tc := range resp.ToolCalls {
			a.logger.Info(fmt.Sprintf("tool call: %s", tc.Name), "call_id", tc.ID)

			msg, ids, err := a.executeCall(ctx, st, tc, false)
			if err != nil {
				return nil, err
			}
			st.Merge(ids)
			st.append(msg)
		}
	}

	return nil, fmt.Errorf("agent: exceeded max iterations (%d)", a.maxIterations)
}
