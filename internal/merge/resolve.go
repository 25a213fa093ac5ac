package merge

import (
	"sort"

	"github.com/dshills/keymerge/internal/collide"
	"github.com/dshills/keymerge/internal/keybind"
)

// resolve walks the detected conflicts and turns every error-severity
// conflict into definitive keybind state. System-reserved overrides are
// resolved unconditionally; hard collisions only when ResolveConflicts
// is set. Warnings and info are reported, never resolved.
func (m *Merger) resolve(conflicts []collide.Conflict, batch []*keybind.Keybind) (resolved, unresolved []collide.Conflict) {
	index := indexByID(batch)

	for _, c := range conflicts {
		switch {
		case c.Type == collide.TypeSystemReserved:
			// Correctness rule, not a preference: a reserved key can
			// only be held by a system assignment.
			for _, id := range c.KeybindIDs {
				if kb := index[id]; kb != nil && kb.Source != keybind.SourceSystem {
					kb.Disabled = true
				}
			}
			resolved = append(resolved, c)

		case c.Type == collide.TypeHard && m.opts.ResolveConflicts:
			m.resolveHard(c, index)
			resolved = append(resolved, c)

		default:
			unresolved = append(unresolved, c)
		}
	}
	return resolved, unresolved
}

// resolveHard picks one winner among the participants and disables the
// rest. Losers reference the winner's id; the winner records the losers.
func (m *Merger) resolveHard(c collide.Conflict, index map[string]*keybind.Keybind) {
	parts := make([]*keybind.Keybind, 0, len(c.KeybindIDs))
	for _, id := range c.KeybindIDs {
		kb := index[id]
		// A participant already disabled (e.g. by the reserved rule on
		// the same key) cannot win.
		if kb != nil && !kb.Disabled {
			parts = append(parts, kb)
		}
	}
	if len(parts) < 2 {
		return
	}

	sortByPriority(parts)

	winner := parts[0]
	for _, loser := range parts[1:] {
		loser.Disabled = true
		loser.ConflictsWith = appendUnique(loser.ConflictsWith, winner.ID)
		winner.ConflictsWith = appendUnique(winner.ConflictsWith, loser.ID)
	}
}

// sortByPriority orders participants by the total priority law:
// user-sourced first, then lower priority tier, then higher frequency,
// then stable id order. Identical input always produces identical
// output.
func sortByPriority(parts []*keybind.Keybind) {
	sort.SliceStable(parts, func(i, j int) bool {
		a, b := parts[i], parts[j]
		aUser := a.Source == keybind.SourceUser
		bUser := b.Source == keybind.SourceUser
		if aUser != bUser {
			return aUser
		}
		if a.PriorityTier != b.PriorityTier {
			return a.PriorityTier < b.PriorityTier
		}
		if a.Frequency.Rank() != b.Frequency.Rank() {
			return a.Frequency.Rank() < b.Frequency.Rank()
		}
		return a.ID < b.ID
	})
}

func appendUnique(list []string, id string) []string {
	for _, v := range list {
		if v == id {
			return list
		}
	}
	return append(list, id)
}
