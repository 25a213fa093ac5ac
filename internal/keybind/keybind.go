// Package keybind defines the shortcut assignment records that flow
// through the reconciliation pipeline.
package keybind

import (
	"github.com/dshills/keymerge/internal/keys"
)

// ContextGlobal is the context that overlaps every other context.
const ContextGlobal = "global"

// Source identifies where an assignment came from. Source order drives
// all priority decisions during merging.
type Source string

const (
	// SourceSystem is a platform-level assignment.
	SourceSystem Source = "system"
	// SourceDefault is a tool's shipped default.
	SourceDefault Source = "default"
	// SourceUser is an explicit user assignment.
	SourceUser Source = "user"
	// SourceGenerated is an assignment proposed by this tool.
	SourceGenerated Source = "generated"
)

// Valid returns true for one of the four known sources.
func (s Source) Valid() bool {
	switch s {
	case SourceSystem, SourceDefault, SourceUser, SourceGenerated:
		return true
	}
	return false
}

// Tier returns the numeric priority tier for the source. Lower wins.
func (s Source) Tier() int {
	switch s {
	case SourceSystem:
		return 0
	case SourceUser:
		return 1
	case SourceDefault:
		return 2
	case SourceGenerated:
		return 3
	default:
		return 4
	}
}

// Frequency is how often the bound action is used, for tie-breaking.
type Frequency string

const (
	FrequencyHigh   Frequency = "high"
	FrequencyMedium Frequency = "medium"
	FrequencyLow    Frequency = "low"
)

// Rank returns the sort rank for the frequency. Higher frequency ranks
// first. An unset frequency ranks as medium.
func (f Frequency) Rank() int {
	switch f {
	case FrequencyHigh:
		return 0
	case FrequencyMedium, "":
		return 1
	case FrequencyLow:
		return 2
	default:
		return 3
	}
}

// Keybind is one candidate shortcut assignment. Records are created
// fresh each run by the extractors; only the merger mutates them, and
// only the Disabled and ConflictsWith fields.
type Keybind struct {
	ID            string             `json:"id"`
	Tool          string             `json:"tool"`
	RawKey        string             `json:"key"`
	CanonicalKey  string             `json:"canonical_key"`
	Normalized    keys.NormalizedKey `json:"normalized"`
	Action        string             `json:"action"`
	Context       string             `json:"context"`
	Source        Source             `json:"source"`
	PriorityTier  int                `json:"priority_tier"`
	Frequency     Frequency          `json:"frequency,omitempty"`
	Difficulty    string             `json:"difficulty,omitempty"`
	Disabled      bool               `json:"disabled,omitempty"`
	ConflictsWith []string           `json:"conflicts_with,omitempty"`
}

// New creates a keybind with its key normalized and its priority tier
// derived from the source. An empty context defaults to global.
func New(id, tool, rawKey, action, context string, source Source) *Keybind {
	kb := &Keybind{
		ID:      id,
		Tool:    tool,
		RawKey:  rawKey,
		Action:  action,
		Context: context,
		Source:  source,
	}
	kb.Refresh()
	return kb
}

// Refresh recomputes the derived fields (canonical key, priority tier,
// default context) from the raw ones.
func (k *Keybind) Refresh() {
	k.Normalized = keys.Normalize(k.RawKey)
	k.CanonicalKey = k.Normalized.Canonical
	k.PriorityTier = k.Source.Tier()
	if k.Context == "" {
		k.Context = ContextGlobal
	}
}

// IsGlobal returns true when the keybind lives in the global context.
func (k *Keybind) IsGlobal() bool {
	return k.Context == ContextGlobal
}

// Clone returns a deep copy of the keybind.
func (k *Keybind) Clone() *Keybind {
	clone := *k
	if k.ConflictsWith != nil {
		clone.ConflictsWith = make([]string, len(k.ConflictsWith))
		copy(clone.ConflictsWith, k.ConflictsWith)
	}
	if k.Normalized.Sequence != nil {
		clone.Normalized.Sequence = make([]string, len(k.Normalized.Sequence))
		copy(clone.Normalized.Sequence, k.Normalized.Sequence)
	}
	return &clone
}
