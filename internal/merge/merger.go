// Package merge layers per-tool keybind sets, detects conflicts across
// all tools, and resolves every error-severity conflict into a
// definitive enabled/disabled assignment.
//
// The engine is synchronous and free of shared mutable state across
// invocations; two merges over unrelated data are safe to run in
// parallel by the caller. The merger mutates the Disabled and
// ConflictsWith fields of the records it is given, so callers must not
// mutate a batch concurrently with an in-flight merge.
package merge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/keymerge/internal/collide"
	"github.com/dshills/keymerge/internal/keybind"
	"github.com/dshills/keymerge/internal/tables"
)

// ErrMissingKeyText is returned when a record arrives without key text.
// This is the only structurally invalid input; every conflict condition
// is data, never an error.
var ErrMissingKeyText = errors.New("keybind is missing key text")

// Merger runs the layering, detection, and resolution pipeline.
type Merger struct {
	opts     Options
	tables   *tables.Tables
	detector *collide.Detector
}

// New creates a merger. A nil tables argument uses the built-in
// defaults.
func New(opts Options, t *tables.Tables) *Merger {
	if t == nil {
		t = tables.Default()
	}
	return &Merger{
		opts:     opts,
		tables:   t,
		detector: collide.NewDetector(t),
	}
}

// Merge is the package-level entry point using default tables.
func Merge(toolLayers []ToolLayers, opts Options) (*MergedConfig, error) {
	return New(opts, nil).Merge(toolLayers)
}

// Merge layers each tool's record sets, runs one detection over the
// combined batch, resolves error-severity conflicts, and assembles the
// merged configuration. It fails only on structurally invalid input.
func (m *Merger) Merge(toolLayers []ToolLayers) (*MergedConfig, error) {
	if err := checkInput(toolLayers); err != nil {
		return nil, err
	}

	cfg := &MergedConfig{Tools: make(map[string]*ToolResult)}

	var combined []*keybind.Keybind
	for _, tl := range toolLayers {
		name := tl.Tool
		if name == "" {
			name = "unknown"
		}
		// One grouped result per input tool, even when it ends up empty.
		if cfg.Tools[name] == nil {
			cfg.Tools[name] = newToolResult(name)
		}
		combined = append(combined, m.MergeToolLayers(tl)...)
	}

	conflicts := m.detector.DetectAll(combined)
	resolved, unresolved := m.resolve(conflicts, combined)

	var suggestions []Suggestion
	if m.opts.GenerateSuggestions {
		suggestions = m.suggest(resolved, combined)
	}

	m.assemble(cfg, combined, resolved, unresolved, suggestions)
	return cfg, nil
}

// checkInput rejects records with empty key text.
func checkInput(toolLayers []ToolLayers) error {
	for _, tl := range toolLayers {
		for _, layer := range tl.all() {
			for _, kb := range layer {
				if kb == nil {
					continue
				}
				if strings.TrimSpace(kb.RawKey) == "" {
					return fmt.Errorf("%w: tool %q id %q", ErrMissingKeyText, tl.Tool, kb.ID)
				}
			}
		}
	}
	return nil
}

// assemble builds the final MergedConfig from post-resolution state.
func (m *Merger) assemble(cfg *MergedConfig, combined []*keybind.Keybind, resolved, unresolved []collide.Conflict, suggestions []Suggestion) {
	cfg.Conflicts = ConflictPartition{
		Global:     make([]collide.Conflict, 0),
		Contextual: make([]collide.Conflict, 0),
		Resolved:   resolved,
	}
	if cfg.Conflicts.Resolved == nil {
		cfg.Conflicts.Resolved = make([]collide.Conflict, 0)
	}
	for _, c := range unresolved {
		if isGlobalConflict(c) {
			cfg.Conflicts.Global = append(cfg.Conflicts.Global, c)
		} else {
			cfg.Conflicts.Contextual = append(cfg.Conflicts.Contextual, c)
		}
	}

	cfg.Validation = validationFromConflicts(unresolved)

	cfg.Stats = Stats{
		ByTool:         make(map[string]int),
		BySource:       make(map[string]int),
		ByConflictType: make(map[string]int),
	}
	cfg.Keybinds = make([]*keybind.Keybind, 0, len(combined))

	for _, kb := range combined {
		cfg.Stats.TotalKeybinds++
		cfg.Stats.ByTool[kb.Tool]++
		cfg.Stats.BySource[string(kb.Source)]++
		if kb.Disabled {
			cfg.Stats.DisabledCount++
		} else {
			cfg.Stats.EnabledCount++
		}

		if kb.Disabled && !m.opts.PreserveDisabled {
			continue
		}
		cfg.Keybinds = append(cfg.Keybinds, kb)

		tr := cfg.Tools[kb.Tool]
		if tr == nil {
			tr = newToolResult(kb.Tool)
			cfg.Tools[kb.Tool] = tr
		}
		switch kb.Source {
		case keybind.SourceSystem:
			tr.System = append(tr.System, kb)
		case keybind.SourceUser:
			tr.User = append(tr.User, kb)
		case keybind.SourceGenerated:
			tr.Generated = append(tr.Generated, kb)
		default:
			tr.Defaults = append(tr.Defaults, kb)
		}
	}

	for _, c := range append(append([]collide.Conflict{}, resolved...), unresolved...) {
		cfg.Stats.ByConflictType[string(c.Type)]++
		for _, tool := range c.Tools {
			if tr := cfg.Tools[tool]; tr != nil {
				tr.Conflicts = append(tr.Conflicts, c)
			}
		}
	}

	for _, s := range suggestions {
		if tr := cfg.Tools[s.Tool]; tr != nil {
			tr.Suggestions = append(tr.Suggestions, s)
		}
	}
}

// isGlobalConflict reports whether a conflict spans tools or touches the
// global context.
func isGlobalConflict(c collide.Conflict) bool {
	if len(c.Tools) > 1 {
		return true
	}
	for _, ctx := range c.Contexts {
		if ctx == keybind.ContextGlobal {
			return true
		}
	}
	return false
}

func newToolResult(tool string) *ToolResult {
	return &ToolResult{
		Tool:        tool,
		Defaults:    make([]*keybind.Keybind, 0),
		User:        make([]*keybind.Keybind, 0),
		Generated:   make([]*keybind.Keybind, 0),
		Conflicts:   make([]collide.Conflict, 0),
		Suggestions: make([]Suggestion, 0),
	}
}

// indexByID maps record ids to records.
func indexByID(batch []*keybind.Keybind) map[string]*keybind.Keybind {
	index := make(map[string]*keybind.Keybind, len(batch))
	for _, kb := range batch {
		if kb != nil {
			index[kb.ID] = kb
		}
	}
	return index
}
