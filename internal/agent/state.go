package agent

import "github.com/toolscout-io/toolscout/pkg/protocol"

// State is the mutable record threaded through one run: the append-only
// message history and the monotonically growing selection of tool ids. Each
// run owns its State exclusively; nothing is shared across invocations.
type State struct {
	Messages []protocol.ChatMessage

	selected    []string // insertion order
	selectedSet map[string]struct{}
}

func (a *Agent) newState(input Input) *State {
	st := &State{
		Messages:    make([]protocol.ChatMessage, 0, len(input.Messages)+1),
		selectedSet: make(map[string]struct{}),
	}
	if a.systemPrompt != "" && (len(input.Messages) == 0 || input.Messages[0].Role != protocol.RoleSystem) {
		st.Messages = append(st.Messages, protocol.ChatMessage{Role: protocol.RoleSystem, Content: a.systemPrompt})
	}
	st.Messages = append(st.Messages, input.Messages...)
	return st
}

// Merge unions ids into the selection. The selection only ever grows;
// duplicates are dropped and insertion order of first sight is kept.
func (s *State) Merge(ids []string) {
	for _, id := range ids {
		if _, ok := s.selectedSet[id]; ok {
			continue
		}
		s.selectedSet[id] = struct{}{}
		s.selected = append(s.selected, id)
	}
}

// Selected returns a copy of the accumulated tool ids in insertion order.
func (s *State) Selected() []string {
	out := make([]string, len(s.selected))
	copy(out, s.selected)
	return out
}

func (s *State) append(msg protocol.ChatMessage) {
	s.Messages = append(s.Messages, msg)
}

func (s *State) result() *Result {
	return &Result{
		Messages:        s.Messages,
		SelectedToolIDs: s.Selected(),
	}
}
