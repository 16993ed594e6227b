package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/toolscout-io/toolscout/pkg/protocol"
)

// RetrieveToolName is the name of the always-visible meta-tool the model
// calls to expand its selection.
const RetrieveToolName = "retrieve_tools"

func retrieveToolDefinition() protocol.ToolDefinition {
	return protocol.NewToolDefinition(
		RetrieveToolName,
		"Retrieve tools relevant to a query. Call this to discover tools before using them; retrieved tools become available on your next turn.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Free-text description of the capability you need",
				},
			},
			"required": []string{"query"},
		},
	)
}

// runRetrieve performs one retrieve_tools search. The boolean reports
// whether a caller-supplied function ran: failures of custom functions
// always abort the run, while default store failures go through the error
// policy like any other tool execution failure.
func (a *Agent) runRetrieve(ctx context.Context, query string, stepwise bool) ([]string, bool, error) {
	if stepwise && a.retrieveAsync != nil {
		select {
		case r := <-a.retrieveAsync(ctx, query):
			return r.IDs, true, r.Err
		case <-ctx.Done():
			return nil, true, ctx.Err()
		}
	}
	if a.retrieve != nil {
		ids, err := a.retrieve(ctx, query)
		return ids, true, err
	}
	ids, err := a.store.Search(ctx, query, a.retrieveLimit)
	return ids, false, err
}

// executeCall runs one requested action and returns the correlated tool
// message plus any ids to merge into the selection. The caller merges and
// appends together, after the call fully succeeds, so a cancelled call
// leaves no partial append behind.
func (a *Agent) executeCall(ctx context.Context, st *State, call protocol.ToolCall, stepwise bool) (protocol.ChatMessage, []string, error) {
	if err := ctx.Err(); err != nil {
		return protocol.ChatMessage{}, nil, err
	}

	msg := protocol.ChatMessage{Role: protocol.RoleTool, ToolCallID: call.ID, Name: call.Name}

	if call.Name == RetrieveToolName {
		query, _ := call.Arguments["query"].(string)
		ids, custom, err := a.runRetrieve(ctx, query, stepwise)
		if err != nil {
			if custom {
				// Caller-supplied retrieval functions fail the run outright.
				return protocol.ChatMessage{}, nil, fmt.Errorf("%s: %w", RetrieveToolName, err)
			}
			content, recovered := a.errorPolicy(call, err)
			if !recovered {
				return protocol.ChatMessage{}, nil, fmt.Errorf("%s: %w", RetrieveToolName, err)
			}
			msg.Content = content
			return msg, nil, nil
		}
		msg.Content = formatRetrieved(ids)
		return msg, ids, nil
	}

	t, ok := a.resolve(call.Name, st)
	if !ok {
		// Unknown tool names never crash the run; the model sees the
		// failure and can adapt.
		msg.Content = fmt.Sprintf("Error: unknown tool %q", call.Name)
		return msg, nil, nil
	}

	out, err := t.Execute(ctx, call.Arguments)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return protocol.ChatMessage{}, nil, cerr
		}
		content, recovered := a.errorPolicy(call, err)
		if !recovered {
			return protocol.ChatMessage{}, nil, fmt.Errorf("tool %s: %w", call.Name, err)
		}
		msg.Content = content
		return msg, nil, nil
	}
	msg.Content = out
	return msg, nil, nil
}

func formatRetrieved(ids []string) string {
	if len(ids) == 0 {
		return "No matching tools found."
	}
	return "Available tool ids: " + strings.Join(ids, ", ")
}
