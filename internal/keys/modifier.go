package keys

import "strings"

// Modifier represents keyboard modifier keys as a bitset.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModCtrl indicates the Control key.
	ModCtrl Modifier = 1 << iota

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS, Win on Windows).
	ModMeta

	// ModShift indicates the Shift key.
	ModShift
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// Count returns the number of modifiers set.
func (m Modifier) Count() int {
	n := 0
	for _, mod := range canonicalOrder {
		if m.Has(mod) {
			n++
		}
	}
	return n
}

// canonicalOrder is the fixed order modifiers appear in a canonical string.
var canonicalOrder = []Modifier{ModCtrl, ModAlt, ModMeta, ModShift}

// canonicalName maps each modifier to its canonical token.
var canonicalName = map[Modifier]string{
	ModCtrl:  "Ctrl",
	ModAlt:   "Alt",
	ModMeta:  "Meta",
	ModShift: "Shift",
}

// Names returns the canonical modifier tokens in canonical order.
func (m Modifier) Names() []string {
	if m == ModNone {
		return nil
	}
	parts := make([]string, 0, 4)
	for _, mod := range canonicalOrder {
		if m.Has(mod) {
			parts = append(parts, canonicalName[mod])
		}
	}
	return parts
}

// String returns the canonical representation like "Ctrl+Shift".
func (m Modifier) String() string {
	return strings.Join(m.Names(), "+")
}

// modifierAliases maps modifier names (lowercase) and glyphs to Modifier
// values. Covers word forms across macOS/Windows/Linux conventions, the
// single-letter forms used by tmux and Vim, and the Unicode glyphs used
// in macOS menu notation.
var modifierAliases = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"ctl":     ModCtrl,
	"c":       ModCtrl,
	"^":       ModCtrl,
	"⌃":       ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"a":       ModAlt,
	"⌥":       ModAlt,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"command": ModMeta,
	"super":   ModMeta,
	"win":     ModMeta,
	"windows": ModMeta,
	"mod4":    ModMeta,
	"m":       ModMeta,
	"d":       ModMeta, // Vim uses D for command/meta
	"⌘":       ModMeta,
	"shift":   ModShift,
	"s":       ModShift,
	"⇧":       ModShift,
}

// ModifierFromToken returns the Modifier for a token (case-insensitive).
// The second return value reports whether the token named a modifier.
func ModifierFromToken(tok string) (Modifier, bool) {
	m, ok := modifierAliases[strings.ToLower(strings.TrimSpace(tok))]
	return m, ok
}
