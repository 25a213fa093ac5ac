// Package collide indexes a batch of keybinds and detects every way two
// assignments can conflict.
//
// The registry is rebuilt from scratch on every call and never shared
// between calls, so independent detections over unrelated batches are
// safe to run in parallel by the caller.
package collide

import (
	"sort"

	"github.com/dshills/keymerge/internal/keybind"
)

// Registry is a three-tier lookup over one batch of keybinds: canonical
// key globally, canonical key per context, and canonical key per tool.
// It is a value derived from a batch, never incrementally updated.
type Registry struct {
	// Global maps canonical key to the ids bound to it anywhere.
	Global map[string][]string

	// ByContext maps context to canonical key to ids.
	ByContext map[string]map[string][]string

	// ByTool maps tool to canonical key to ids.
	ByTool map[string]map[string][]string

	binds map[string]*keybind.Keybind
}

// BuildRegistry constructs a fresh registry from the batch. Records
// missing a canonical key are normalized on the way in; nothing is ever
// dropped.
func BuildRegistry(batch []*keybind.Keybind) *Registry {
	r := &Registry{
		Global:    make(map[string][]string),
		ByContext: make(map[string]map[string][]string),
		ByTool:    make(map[string]map[string][]string),
		binds:     make(map[string]*keybind.Keybind, len(batch)),
	}

	for _, kb := range batch {
		if kb == nil {
			continue
		}
		if kb.CanonicalKey == "" {
			kb.Refresh()
		}
		key := kb.CanonicalKey
		r.binds[kb.ID] = kb
		r.Global[key] = append(r.Global[key], kb.ID)

		if r.ByContext[kb.Context] == nil {
			r.ByContext[kb.Context] = make(map[string][]string)
		}
		r.ByContext[kb.Context][key] = append(r.ByContext[kb.Context][key], kb.ID)

		if r.ByTool[kb.Tool] == nil {
			r.ByTool[kb.Tool] = make(map[string][]string)
		}
		r.ByTool[kb.Tool][key] = append(r.ByTool[kb.Tool][key], kb.ID)
	}

	return r
}

// Lookup returns the keybind for an id, or nil.
func (r *Registry) Lookup(id string) *keybind.Keybind {
	return r.binds[id]
}

// lookupAll resolves ids to records, skipping unknown ids.
func (r *Registry) lookupAll(ids []string) []*keybind.Keybind {
	out := make([]*keybind.Keybind, 0, len(ids))
	for _, id := range ids {
		if kb := r.binds[id]; kb != nil {
			out = append(out, kb)
		}
	}
	return out
}

// sortedKeys returns the registry's global canonical keys in order, for
// deterministic iteration.
func (r *Registry) sortedKeys() []string {
	keys := make([]string, 0, len(r.Global))
	for k := range r.Global {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
