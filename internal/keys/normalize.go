package keys

import (
	"regexp"
	"strings"
)

// NormalizedKey is the canonical form of a key specification.
//
// For a single combo, Base and Modifiers describe the combination and
// Canonical is the joined form ("Ctrl+Shift+A"). For a multi-key sequence,
// Sequence holds the canonical form of each element and Canonical joins
// them with a space. A combo's canonical string never contains a space,
// so a sequence can never collide with an unrelated combo.
type NormalizedKey struct {
	Base      string   `json:"base"`
	Modifiers Modifier `json:"modifiers"`
	Sequence  []string `json:"sequence,omitempty"`
	Canonical string   `json:"canonical"`
}

// IsSequence returns true for multi-key sequences like "C-b c".
func (n NormalizedKey) IsSequence() bool {
	return len(n.Sequence) > 1
}

// sequenceSeparator joins sequence elements in the canonical string.
// A space cannot appear inside a combo's canonical string.
const sequenceSeparator = " "

var (
	// "x then y" and "x, y" are sequence notations.
	thenSep  = regexp.MustCompile(`(?i)\s+then\s+`)
	commaSep = regexp.MustCompile(`\s*,\s+|\s+,\s*`)
	// Spaces around a plus joiner ("cmd + shift + a") are cosmetic.
	plusJoin = regexp.MustCompile(`\s*\+\s*`)
)

// Normalize converts any supported key notation into its canonical form.
// It is pure and total: unrecognized tokens pass through capitalized and
// empty input yields a zero NormalizedKey.
func Normalize(raw string) NormalizedKey {
	s := strings.TrimSpace(raw)
	if s == "" {
		return NormalizedKey{}
	}

	s = thenSep.ReplaceAllString(s, " ")
	s = commaSep.ReplaceAllString(s, " ")
	s = plusJoin.ReplaceAllString(s, "+")

	fields := strings.Fields(s)
	if len(fields) > 1 {
		return normalizeSequence(fields)
	}
	mods, base := normalizeCombo(fields[0])
	return NormalizedKey{
		Base:      base,
		Modifiers: mods,
		Canonical: comboString(mods, base),
	}
}

// Canonical is shorthand for Normalize(raw).Canonical.
func Canonical(raw string) string {
	return Normalize(raw).Canonical
}

// Equivalent reports whether two raw key specifications normalize to the
// same canonical string.
func Equivalent(a, b string) bool {
	return Canonical(a) == Canonical(b)
}

// normalizeSequence normalizes each element independently. Base and
// Modifiers reflect the first element.
func normalizeSequence(fields []string) NormalizedKey {
	elems := make([]string, len(fields))
	var firstMods Modifier
	var firstBase string
	for i, f := range fields {
		mods, base := normalizeCombo(f)
		elems[i] = comboString(mods, base)
		if i == 0 {
			firstMods, firstBase = mods, base
		}
	}
	return NormalizedKey{
		Base:      firstBase,
		Modifiers: firstMods,
		Sequence:  elems,
		Canonical: strings.Join(elems, sequenceSeparator),
	}
}

// normalizeCombo normalizes a single key combination token.
func normalizeCombo(tok string) (Modifier, string) {
	mods := ModNone

	// Leading glyph modifiers ("⌘⇧A", "^X"). A lone glyph is a base key.
	runes := []rune(tok)
	for len(runes) > 1 {
		m, ok := glyphModifier(runes[0])
		if !ok {
			break
		}
		mods = mods.With(m)
		runes = runes[1:]
	}
	rest := string(runes)

	var parts []string
	switch {
	case len(rest) > 1 && strings.Contains(rest, "+"):
		parts = splitJoined(rest, '+')
	case len(rest) > 1 && strings.Contains(rest, "-"):
		parts = splitJoined(rest, '-')
	default:
		parts = []string{rest}
	}

	// Leading tokens are modifiers; anything unrecognized folds into the
	// base so no input is ever dropped.
	var baseParts []string
	for i, p := range parts {
		if i < len(parts)-1 {
			if m, ok := ModifierFromToken(p); ok {
				mods = mods.With(m)
				continue
			}
		}
		baseParts = append(baseParts, p)
	}

	return mods, BaseFromToken(strings.Join(baseParts, ""))
}

// Combo joins a modifier set and a canonical base key into the canonical
// combo form. Suggestion generation uses it to build candidate keys
// without round-tripping through Normalize.
func Combo(mods Modifier, base string) string {
	return comboString(mods, base)
}

// comboString joins modifiers and base into the canonical combo form.
func comboString(mods Modifier, base string) string {
	return strings.Join(append(mods.Names(), base), "+")
}

// glyphModifier maps macOS menu glyphs (and caret) to modifiers.
func glyphModifier(r rune) (Modifier, bool) {
	switch r {
	case '⌘':
		return ModMeta, true
	case '⇧':
		return ModShift, true
	case '⌥':
		return ModAlt, true
	case '⌃', '^':
		return ModCtrl, true
	}
	return ModNone, false
}

// splitJoined splits a joined combo on its separator. A trailing separator
// means the separator character itself is the base key ("C--" is
// Ctrl+Minus, "Ctrl++" is Ctrl+Plus).
func splitJoined(s string, sep byte) []string {
	literalBase := ""
	if s[len(s)-1] == sep {
		literalBase = string(sep)
		s = s[:len(s)-1]
	}

	var parts []string
	for _, p := range strings.Split(s, string(sep)) {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if literalBase != "" {
		parts = append(parts, literalBase)
	}
	if len(parts) == 0 {
		parts = []string{string(sep)}
	}
	return parts
}
