package collide

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/keymerge/internal/keybind"
	"github.com/dshills/keymerge/internal/tables"
)

// Detector classifies collisions in a batch of keybinds. It holds only
// the lookup tables; every detection builds its own registry.
type Detector struct {
	tables *tables.Tables
}

// NewDetector creates a detector. A nil tables argument uses the
// built-in defaults.
func NewDetector(t *tables.Tables) *Detector {
	if t == nil {
		t = tables.Default()
	}
	return &Detector{tables: t}
}

// DetectAll returns every conflict in the batch, classified and
// deduplicated by (type, canonical key, participants). It never fails:
// malformed key text still normalizes and is still indexed.
func (d *Detector) DetectAll(batch []*keybind.Keybind) []Conflict {
	reg := BuildRegistry(batch)

	seen := make(map[string]bool)
	var out []Conflict
	add := func(c Conflict) {
		sig := c.Signature()
		if !seen[sig] {
			seen[sig] = true
			out = append(out, c)
		}
	}

	for _, key := range reg.sortedKeys() {
		if key == "" {
			// Records with empty key text share an empty canonical
			// string; they are indexed but cannot meaningfully collide.
			continue
		}
		participants := reg.lookupAll(reg.Global[key])

		if len(participants) > 1 {
			for _, c := range d.classifyBucket(key, participants) {
				add(c)
			}
		}

		// The reserved check is independent of any context grouping.
		if res, ok := d.tables.IsReserved(key); ok {
			var offenders []*keybind.Keybind
			for _, p := range participants {
				if p.Source != keybind.SourceSystem {
					offenders = append(offenders, p)
				}
			}
			if len(offenders) > 0 {
				add(newConflict(TypeSystemReserved, SeverityError, key, offenders,
					fmt.Sprintf("%s is reserved by %s and can only be held by a system assignment", key, res.Owner)))
			}
		}
	}

	sortConflicts(out)
	return out
}

// DetectForCandidate applies the same classification restricted to one
// proposed keybind against an existing batch. Suggestion generation uses
// it to probe whether an alternative key is clean before offering it.
func (d *Detector) DetectForCandidate(candidate *keybind.Keybind, batch []*keybind.Keybind) []Conflict {
	if candidate == nil {
		return nil
	}
	if candidate.ID == "" {
		candidate = candidate.Clone()
		candidate.ID = "candidate"
	}
	candidate.Refresh()

	combined := make([]*keybind.Keybind, 0, len(batch)+1)
	for _, kb := range batch {
		if kb != nil && kb.ID != candidate.ID {
			combined = append(combined, kb)
		}
	}
	combined = append(combined, candidate)

	var out []Conflict
	for _, c := range d.DetectAll(combined) {
		if c.Involves(candidate.ID) {
			out = append(out, c)
		}
	}
	return out
}

// classifyBucket classifies one canonical-key bucket with more than one
// participant.
func (d *Detector) classifyBucket(key string, participants []*keybind.Keybind) []Conflict {
	byContext := make(map[string][]*keybind.Keybind)
	for _, p := range participants {
		byContext[p.Context] = append(byContext[p.Context], p)
	}

	contexts := make([]string, 0, len(byContext))
	for ctx := range byContext {
		contexts = append(contexts, ctx)
	}
	sort.Strings(contexts)

	var out []Conflict
	shared := false
	for _, ctx := range contexts {
		group := byContext[ctx]
		if len(group) < 2 {
			continue
		}
		shared = true
		out = append(out, d.classifyGroup(key, ctx, group))
	}

	// Every participant in a distinct context: a conflict only when the
	// contexts overlap. Non-overlapping contexts are fine.
	if !shared && len(byContext) > 1 && contextsOverlap(participants) {
		out = append(out, newConflict(TypeCrossTool, SeverityWarning, key, participants,
			fmt.Sprintf("%s is bound in overlapping contexts by %s", key, joinTools(participants))))
	}

	return out
}

// classifyGroup classifies participants sharing one context.
func (d *Detector) classifyGroup(key, ctx string, group []*keybind.Keybind) Conflict {
	// Exactly one default and one user participant is the expected
	// override pattern, whether or not the default has already been
	// disabled by layering.
	if len(group) == 2 && isShadowPair(group[0], group[1]) {
		return newConflict(TypeShadow, SeverityInfo, key, group,
			fmt.Sprintf("user assignment overrides the default for %s in context %q", key, ctx))
	}

	live := make([]*keybind.Keybind, 0, len(group))
	for _, p := range group {
		if !p.Disabled {
			live = append(live, p)
		}
	}

	// Overlap that is no longer live: visibility only.
	if len(live) < 2 {
		return newConflict(TypeSoft, SeverityWarning, key, group,
			fmt.Sprintf("%s in context %q overlaps assignments that are already disabled", key, ctx))
	}

	return newConflict(TypeHard, SeverityError, key, live,
		fmt.Sprintf("%d assignments claim %s in context %q", len(live), key, ctx))
}

// isShadowPair reports whether the two keybinds form one tool's
// default/user pair. Across tools the same combination is a genuine
// collision, not an override.
func isShadowPair(a, b *keybind.Keybind) bool {
	if a.Tool != b.Tool {
		return false
	}
	return (a.Source == keybind.SourceDefault && b.Source == keybind.SourceUser) ||
		(a.Source == keybind.SourceUser && b.Source == keybind.SourceDefault)
}

// contextsOverlap reports whether any two participants live in
// overlapping contexts: the global context overlaps everything, and two
// contexts belonging to the same tool overlap.
func contextsOverlap(participants []*keybind.Keybind) bool {
	for i := 0; i < len(participants); i++ {
		for j := i + 1; j < len(participants); j++ {
			a, b := participants[i], participants[j]
			if a.Context == keybind.ContextGlobal || b.Context == keybind.ContextGlobal {
				return true
			}
			if a.Tool == b.Tool {
				return true
			}
		}
	}
	return false
}

// newConflict builds a conflict with sorted, deduplicated id, context,
// and tool lists.
func newConflict(typ Type, sev Severity, key string, participants []*keybind.Keybind, msg string) Conflict {
	ids := make([]string, 0, len(participants))
	ctxSet := make(map[string]bool)
	toolSet := make(map[string]bool)
	for _, p := range participants {
		ids = append(ids, p.ID)
		ctxSet[p.Context] = true
		toolSet[p.Tool] = true
	}
	sort.Strings(ids)

	return Conflict{
		Type:         typ,
		Severity:     sev,
		CanonicalKey: key,
		KeybindIDs:   ids,
		Contexts:     sortedSet(ctxSet),
		Tools:        sortedSet(toolSet),
		Message:      msg,
	}
}

func sortedSet(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func joinTools(participants []*keybind.Keybind) string {
	set := make(map[string]bool)
	for _, p := range participants {
		set[p.Tool] = true
	}
	return strings.Join(sortedSet(set), ", ")
}
