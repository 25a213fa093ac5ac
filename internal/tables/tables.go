// Package tables provides the static lookup tables the engine consults:
// system-reserved keys, physical key adjacency, awkward-key and action
// category classifications. The data lives in TOML rather than code so
// it can be replaced without a rebuild.
package tables

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/keymerge/internal/keys"
)

//go:embed defaults.toml
var defaultsTOML []byte

// ReservedKey is a platform shortcut that only a system-sourced
// assignment may hold.
type ReservedKey struct {
	Key   string `toml:"key"`
	Owner string `toml:"owner"`

	// Canonical is derived from Key at load time.
	Canonical string `toml:"-"`
}

// ActionCategory classifies actions by substring match for reporting.
type ActionCategory struct {
	Match string `toml:"match"`
	Name  string `toml:"name"`
	Label string `toml:"label"`
}

// Thresholds holds tunable limits for hygiene checks and suggestions.
type Thresholds struct {
	MaxModifiers   int `toml:"max_modifiers"`
	MaxSuggestions int `toml:"max_suggestions"`
}

// Tables is the full set of lookup data.
type Tables struct {
	Reserved    []ReservedKey     `toml:"reserved"`
	Adjacency   map[string]string `toml:"adjacency"`
	AwkwardKeys []string          `toml:"awkward_keys"`
	Categories  []ActionCategory  `toml:"category"`
	Thresholds  Thresholds        `toml:"thresholds"`

	reservedIndex map[string]ReservedKey
	awkwardIndex  map[string]bool
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
)

// Default returns the built-in tables parsed from the embedded TOML.
func Default() *Tables {
	defaultOnce.Do(func() {
		t, err := Parse(defaultsTOML)
		if err != nil {
			panic("tables: embedded defaults.toml: " + err.Error())
		}
		defaultTables = t
	})
	return defaultTables
}

// Parse decodes a TOML document into Tables and builds the indexes.
func Parse(data []byte) (*Tables, error) {
	var t Tables
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing tables: %w", err)
	}
	t.buildIndexes()
	return &t, nil
}

// LoadFile reads tables from a TOML file. Sections absent from the file
// fall back to the built-in defaults.
func LoadFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tables file %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, err
	}

	def := Default()
	if t.Reserved == nil {
		t.Reserved = def.Reserved
	}
	if t.Adjacency == nil {
		t.Adjacency = def.Adjacency
	}
	if t.AwkwardKeys == nil {
		t.AwkwardKeys = def.AwkwardKeys
	}
	if t.Categories == nil {
		t.Categories = def.Categories
	}
	if t.Thresholds.MaxModifiers == 0 {
		t.Thresholds.MaxModifiers = def.Thresholds.MaxModifiers
	}
	if t.Thresholds.MaxSuggestions == 0 {
		t.Thresholds.MaxSuggestions = def.Thresholds.MaxSuggestions
	}
	t.buildIndexes()
	return t, nil
}

func (t *Tables) buildIndexes() {
	t.reservedIndex = make(map[string]ReservedKey, len(t.Reserved))
	for i := range t.Reserved {
		t.Reserved[i].Canonical = keys.Canonical(t.Reserved[i].Key)
		t.reservedIndex[t.Reserved[i].Canonical] = t.Reserved[i]
	}
	t.awkwardIndex = make(map[string]bool, len(t.AwkwardKeys))
	for _, k := range t.AwkwardKeys {
		t.awkwardIndex[keys.Canonical(k)] = true
	}
}

// IsReserved looks up a canonical key in the system-reserved set.
func (t *Tables) IsReserved(canonical string) (ReservedKey, bool) {
	r, ok := t.reservedIndex[canonical]
	return r, ok
}

// IsAwkward returns true when the canonical base key is in the
// awkward-key list.
func (t *Tables) IsAwkward(base string) bool {
	return t.awkwardIndex[keys.Canonical(base)]
}

// AdjacentKeys returns the physical neighbors of a single-letter base
// key, in table order. Non-letter bases have no neighbors.
func (t *Tables) AdjacentKeys(base string) []string {
	row, ok := t.Adjacency[strings.ToLower(base)]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(row))
	for _, r := range row {
		out = append(out, strings.ToUpper(string(r)))
	}
	return out
}

// CategoryFor classifies an action by substring match. The first
// matching category wins; table order is significant.
func (t *Tables) CategoryFor(action string) (ActionCategory, bool) {
	lower := strings.ToLower(action)
	for _, c := range t.Categories {
		if strings.Contains(lower, c.Match) {
			return c, true
		}
	}
	return ActionCategory{}, false
}
