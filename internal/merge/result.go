package merge

import (
	"github.com/dshills/keymerge/internal/collide"
	"github.com/dshills/keymerge/internal/keybind"
)

// ToolResult groups one tool's share of the merged configuration.
type ToolResult struct {
	Tool        string             `json:"tool"`
	System      []*keybind.Keybind `json:"system,omitempty"`
	Defaults    []*keybind.Keybind `json:"defaults"`
	User        []*keybind.Keybind `json:"user"`
	Generated   []*keybind.Keybind `json:"generated"`
	Conflicts   []collide.Conflict `json:"conflicts"`
	Suggestions []Suggestion       `json:"suggestions"`
}

// Suggestion proposes collision-free alternative keys for one keybind.
type Suggestion struct {
	KeybindID    string   `json:"keybind_id"`
	Tool         string   `json:"tool"`
	CurrentKey   string   `json:"current_key"`
	Alternatives []string `json:"alternatives"`
	Reason       string   `json:"reason"`
	Confidence   float64  `json:"confidence"`
}

// ConflictPartition splits conflicts by scope and resolution state.
type ConflictPartition struct {
	// Global conflicts involve the global context or span tools.
	Global []collide.Conflict `json:"global"`
	// Contextual conflicts are confined to one tool's own context.
	Contextual []collide.Conflict `json:"contextual"`
	// Resolved conflicts were error-severity and have been auto-resolved.
	Resolved []collide.Conflict `json:"resolved"`
}

// ValidationResult is the pass/fail view of a detection run. Valid is
// true iff no unresolved error-severity conflicts remain.
type ValidationResult struct {
	Valid    bool               `json:"valid"`
	Errors   []collide.Conflict `json:"errors"`
	Warnings []collide.Conflict `json:"warnings"`
	Info     []collide.Conflict `json:"info"`
}

// Stats aggregates counts across the merged configuration.
type Stats struct {
	TotalKeybinds  int            `json:"total_keybinds"`
	EnabledCount   int            `json:"enabled_count"`
	DisabledCount  int            `json:"disabled_count"`
	ByTool         map[string]int `json:"by_tool"`
	BySource       map[string]int `json:"by_source"`
	ByConflictType map[string]int `json:"by_conflict_type"`
}

// MergedConfig is the final artifact of a merge run. It is fully
// serializable and exposes only ids and human-readable strings in its
// conflict and suggestion data; the internal registry never crosses
// this boundary.
type MergedConfig struct {
	Tools      map[string]*ToolResult `json:"tools"`
	Conflicts  ConflictPartition      `json:"conflicts"`
	Validation ValidationResult       `json:"validation"`
	Stats      Stats                  `json:"stats"`

	// Keybinds is the combined post-resolution batch, filtered of
	// disabled entries unless PreserveDisabled was set.
	Keybinds []*keybind.Keybind `json:"keybinds"`
}
