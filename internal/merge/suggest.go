package merge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/dshills/keymerge/internal/collide"
	"github.com/dshills/keymerge/internal/keybind"
	"github.com/dshills/keymerge/internal/keys"
)

// suggest produces ranked remediation suggestions: alternative keys for
// the losers of resolved conflicts, plus general hygiene findings.
func (m *Merger) suggest(resolved []collide.Conflict, batch []*keybind.Keybind) []Suggestion {
	index := indexByID(batch)
	seen := make(map[string]bool)
	var out []Suggestion

	for _, c := range resolved {
		for _, id := range c.KeybindIDs {
			kb := index[id]
			if kb == nil || !kb.Disabled || seen[id] {
				continue
			}
			alts := m.alternativesFor(kb, batch)
			if len(alts) == 0 {
				continue
			}
			seen[id] = true
			out = append(out, Suggestion{
				KeybindID:    kb.ID,
				Tool:         kb.Tool,
				CurrentKey:   kb.CanonicalKey,
				Alternatives: alts,
				Reason:       fmt.Sprintf("disabled by %s on %s", conflictNoun(c.Type), c.CanonicalKey),
				Confidence:   m.confidence(kb, c.Severity, alts),
			})
		}
	}

	out = append(out, m.hygieneSuggestions(batch, seen)...)
	return out
}

// alternativesFor probes nearby modifier combinations and physically
// adjacent base keys through the detector's single-record check,
// returning the first collision-free candidates. Sequences are left
// alone: their first element is usually a deliberate prefix.
func (m *Merger) alternativesFor(kb *keybind.Keybind, batch []*keybind.Keybind) []string {
	if kb.Normalized.IsSequence() {
		return nil
	}
	limit := m.tables.Thresholds.MaxSuggestions
	if limit <= 0 {
		limit = 3
	}

	base := kb.Normalized.Base
	mods := kb.Normalized.Modifiers

	var candidates []string
	for _, v := range modifierVariants(mods) {
		candidates = append(candidates, keys.Combo(v, base))
	}
	for _, nb := range m.tables.AdjacentKeys(base) {
		candidates = append(candidates, keys.Combo(mods, nb))
	}

	var clean []string
	tried := make(map[string]bool)
	for _, cand := range candidates {
		if cand == kb.CanonicalKey || tried[cand] {
			continue
		}
		tried[cand] = true
		if m.isClean(kb, cand, batch) {
			clean = append(clean, cand)
			if len(clean) >= limit {
				break
			}
		}
	}
	return clean
}

// modifierVariants enumerates nearby modifier sets in a fixed order.
func modifierVariants(mods keys.Modifier) []keys.Modifier {
	var vs []keys.Modifier
	seen := make(map[keys.Modifier]bool)
	add := func(v keys.Modifier) {
		if v != mods && v != keys.ModNone && !seen[v] {
			seen[v] = true
			vs = append(vs, v)
		}
	}

	add(mods.With(keys.ModShift))
	add(mods.With(keys.ModAlt))
	add(mods.With(keys.ModCtrl))
	if mods.Has(keys.ModCtrl) {
		add(mods.Without(keys.ModCtrl).With(keys.ModAlt))
	}
	if mods.Has(keys.ModMeta) {
		add(mods.Without(keys.ModMeta).With(keys.ModCtrl))
	}
	if mods.Has(keys.ModAlt) {
		add(mods.Without(keys.ModAlt).With(keys.ModMeta))
	}
	return vs
}

// isClean probes one candidate key for the keybind against the batch.
func (m *Merger) isClean(kb *keybind.Keybind, raw string, batch []*keybind.Keybind) bool {
	probe := kb.Clone()
	probe.ID = kb.ID + ":probe"
	probe.RawKey = raw
	probe.Disabled = false
	probe.ConflictsWith = nil
	return len(m.detector.DetectForCandidate(probe, batch)) == 0
}

// hygieneSuggestions flags overloaded modifier sets, inconsistent
// modifier ordering within one tool's raw specs, and high-frequency
// actions bound to awkward keys.
func (m *Merger) hygieneSuggestions(batch []*keybind.Keybind, seen map[string]bool) []Suggestion {
	maxMods := m.tables.Thresholds.MaxModifiers
	if maxMods <= 0 {
		maxMods = 3
	}

	canonicalOrdered := make(map[string]bool) // tool -> has canonically ordered spec
	divergent := make(map[string][]*keybind.Keybind)
	for _, kb := range batch {
		ordered, multi := rawOrderCanonical(kb.RawKey)
		if !multi {
			continue
		}
		if ordered {
			canonicalOrdered[kb.Tool] = true
		} else {
			divergent[kb.Tool] = append(divergent[kb.Tool], kb)
		}
	}

	var out []Suggestion
	for _, kb := range batch {
		if kb.Disabled || seen[kb.ID] {
			continue
		}

		switch {
		case kb.Normalized.Modifiers.Count() > maxMods:
			alts := m.alternativesFor(kb, batch)
			out = append(out, Suggestion{
				KeybindID:    kb.ID,
				Tool:         kb.Tool,
				CurrentKey:   kb.CanonicalKey,
				Alternatives: alts,
				Reason:       fmt.Sprintf("uses %d modifiers", kb.Normalized.Modifiers.Count()),
				Confidence:   m.confidence(kb, collide.SeverityWarning, alts),
			})
			seen[kb.ID] = true

		case kb.Frequency == keybind.FrequencyHigh && m.tables.IsAwkward(kb.Normalized.Base):
			alts := m.alternativesFor(kb, batch)
			out = append(out, Suggestion{
				KeybindID:    kb.ID,
				Tool:         kb.Tool,
				CurrentKey:   kb.CanonicalKey,
				Alternatives: alts,
				Reason:       fmt.Sprintf("high-frequency action on awkward key %s", kb.Normalized.Base),
				Confidence:   m.confidence(kb, collide.SeverityInfo, alts),
			})
			seen[kb.ID] = true
		}
	}

	// Ordering inconsistency only matters when the tool mixes styles.
	divergentTools := make([]string, 0, len(divergent))
	for tool := range divergent {
		divergentTools = append(divergentTools, tool)
	}
	sort.Strings(divergentTools)
	for _, tool := range divergentTools {
		if !canonicalOrdered[tool] {
			continue
		}
		for _, kb := range divergent[tool] {
			if seen[kb.ID] {
				continue
			}
			seen[kb.ID] = true
			out = append(out, Suggestion{
				KeybindID:    kb.ID,
				Tool:         kb.Tool,
				CurrentKey:   kb.CanonicalKey,
				Alternatives: []string{kb.CanonicalKey},
				Reason:       fmt.Sprintf("modifier order in %q differs from this tool's usual style", kb.RawKey),
				Confidence:   m.confidence(kb, collide.SeverityInfo, nil),
			})
		}
	}

	return out
}

// suggestOrder is the canonical modifier order used to judge raw specs.
var suggestOrder = []keys.Modifier{keys.ModCtrl, keys.ModAlt, keys.ModMeta, keys.ModShift}

// rawOrderCanonical reports whether a joined raw spec lists its
// modifiers in canonical order. The second return is false for specs
// with fewer than two modifiers, which carry no ordering signal.
func rawOrderCanonical(raw string) (ordered, multi bool) {
	toks := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '+' || r == '-' || r == ' '
	})
	// The last token is the base key; "a" would otherwise read as Alt.
	if len(toks) > 0 {
		toks = toks[:len(toks)-1]
	}

	var observed []keys.Modifier
	for _, tok := range toks {
		m, ok := keys.ModifierFromToken(tok)
		if !ok {
			break
		}
		observed = append(observed, m)
	}
	if len(observed) < 2 {
		return true, false
	}

	rank := func(m keys.Modifier) int {
		for i, v := range suggestOrder {
			if v == m {
				return i
			}
		}
		return len(suggestOrder)
	}
	for i := 1; i < len(observed); i++ {
		if rank(observed[i-1]) > rank(observed[i]) {
			return false, true
		}
	}
	return true, true
}

// confidence combines source priority, frequency, conflict severity, and
// the edit-distance proximity of the best alternative into one rank.
func (m *Merger) confidence(kb *keybind.Keybind, sev collide.Severity, alts []string) float64 {
	c := 0.4
	switch sev {
	case collide.SeverityError:
		c += 0.3
	case collide.SeverityWarning:
		c += 0.15
	case collide.SeverityInfo:
		c += 0.05
	}
	if kb.Source == keybind.SourceUser {
		c += 0.1
	}
	switch kb.Frequency {
	case keybind.FrequencyHigh:
		c += 0.1
	case keybind.FrequencyLow:
		c -= 0.05
	}
	if len(alts) > 0 {
		denom := len(kb.CanonicalKey)
		if denom == 0 {
			denom = 1
		}
		prox := 1 - float64(levenshtein.ComputeDistance(kb.CanonicalKey, alts[0]))/float64(denom)
		if prox < 0 {
			prox = 0
		}
		c += 0.15 * prox
	}
	if c > 1 {
		c = 1
	}
	if c < 0 {
		c = 0
	}
	return c
}

// conflictNoun renders a conflict type for suggestion messages.
func conflictNoun(t collide.Type) string {
	switch t {
	case collide.TypeHard:
		return "hard collision"
	case collide.TypeSystemReserved:
		return "system-reserved key"
	case collide.TypeCrossTool:
		return "cross-tool collision"
	case collide.TypeShadow:
		return "shadow collision"
	case collide.TypeSoft:
		return "soft collision"
	default:
		return string(t)
	}
}
