package tool

import "sort"

// Registry is the immutable catalog of every tool the agent may ever use,
// keyed by opaque identifier. The agent only reads it; entries never change
// for the process lifetime, so no locking is needed.
type Registry struct {
	tools map[string]Tool
	ids   []string // sorted
}

// NewRegistry builds a registry from an id → tool mapping. The mapping is
// copied; the caller may discard it afterwards.
func NewRegistry(tools map[string]Tool) *Registry {
	r := &Registry{
		tools: make(map[string]Tool, len(tools)),
		ids:   make([]string, 0, len(tools)),
	}
	for id, t := range tools {
		r.tools[id] = t
		r.ids = append(r.ids, id)
	}
	sort.Strings(r.ids)
	return r
}

// Lookup returns the tool registered under the given id.
func (r *Registry) Lookup(id string) (Tool, bool) {
	t, ok := r.tools[id]
	return t, ok
}

// IDs returns all registered ids in sorted order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.ids))
	copy(out, r.ids)
	return out
}

// Entries returns a copy of the id → tool mapping. Used by callers that
// index tool descriptions into a store before any run.
func (r *Registry) Entries() map[string]Tool {
	out := make(map[string]Tool, len(r.tools))
	for id, t := range r.tools {
		out[id] = t
	}
	return out
}

// FindByName returns the id of the first entry (in id order) whose tool name
// matches. Names are not required to be unique; callers that need uniqueness
// enforce it themselves.
func (r *Registry) FindByName(name string) (string, bool) {
	for _, id := range r.ids {
		if r.tools[id].Name() == name {
			return id, true
		}
	}
	return "", false
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.tools)
}
