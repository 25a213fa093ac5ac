package collide

import (
	"sort"
	"strings"
)

// Severity classifies how serious a conflict is.
type Severity string

const (
	// SeverityError must be resolved before a configuration is valid.
	SeverityError Severity = "error"
	// SeverityWarning is reported but never auto-resolved.
	SeverityWarning Severity = "warning"
	// SeverityInfo is an expected condition, reported for visibility.
	SeverityInfo Severity = "info"
)

// rank orders severities for deterministic output. Errors first.
func (s Severity) rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	case SeverityInfo:
		return 2
	default:
		return 3
	}
}

// Type identifies the way two assignments conflict.
type Type string

const (
	// TypeHard is two or more enabled assignments on one key and context.
	TypeHard Type = "hard_collision"
	// TypeSoft is a key/context overlap where at least one participant
	// is already disabled, so no live ambiguity exists.
	TypeSoft Type = "soft_collision"
	// TypeShadow is a user assignment intentionally overriding a default
	// on the same key and context.
	TypeShadow Type = "shadow_collision"
	// TypeCrossTool is one key bound by different tools in overlapping
	// contexts.
	TypeCrossTool Type = "cross_tool"
	// TypeSystemReserved is a non-system assignment on a reserved key.
	TypeSystemReserved Type = "system_reserved_override"
)

// Conflict is a derived record describing one detected collision.
// Conflicts are never mutated after creation; resolution changes keybind
// state, not conflict state.
type Conflict struct {
	Type         Type     `json:"type"`
	Severity     Severity `json:"severity"`
	CanonicalKey string   `json:"canonical_key"`
	KeybindIDs   []string `json:"keybind_ids"`
	Contexts     []string `json:"contexts"`
	Tools        []string `json:"tools"`
	Message      string   `json:"message"`
	Suggestions  []string `json:"suggestions,omitempty"`
}

// Signature identifies a conflict for deduplication: two conflicts with
// the same type, key, and participant set are the same conflict.
func (c *Conflict) Signature() string {
	ids := make([]string, len(c.KeybindIDs))
	copy(ids, c.KeybindIDs)
	sort.Strings(ids)
	return string(c.Type) + "|" + c.CanonicalKey + "|" + strings.Join(ids, ",")
}

// Involves returns true when the keybind id participates in the conflict.
func (c *Conflict) Involves(id string) bool {
	for _, p := range c.KeybindIDs {
		if p == id {
			return true
		}
	}
	return false
}

// sortConflicts orders conflicts deterministically: severity, then key,
// then participant signature.
func sortConflicts(conflicts []Conflict) {
	sort.Slice(conflicts, func(i, j int) bool {
		if conflicts[i].Severity != conflicts[j].Severity {
			return conflicts[i].Severity.rank() < conflicts[j].Severity.rank()
		}
		if conflicts[i].CanonicalKey != conflicts[j].CanonicalKey {
			return conflicts[i].CanonicalKey < conflicts[j].CanonicalKey
		}
		return conflicts[i].Signature() < conflicts[j].Signature()
	})
}
