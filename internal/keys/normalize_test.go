package keys

import "testing"

func TestNormalizeCombos(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"ctrl+a", "Ctrl+A"},
		{"Ctrl+A", "Ctrl+A"},
		{"C-a", "Ctrl+A"},
		{"^a", "Ctrl+A"},
		{"cmd+shift+a", "Meta+Shift+A"},
		{"Command+Shift+A", "Meta+Shift+A"},
		{"super+shift+a", "Meta+Shift+A"},
		{"⌘⇧A", "Meta+Shift+A"},
		{"shift+ctrl+a", "Ctrl+Shift+A"},
		{"M-x", "Meta+X"},
		{"alt+tab", "Alt+Tab"},
		{"option+left", "Alt+Left"},
		{"ctrl + b", "Ctrl+B"},
		{"Ctrl+Shift+P", "Ctrl+Shift+P"},
		{"enter", "Enter"},
		{"Return", "Enter"},
		{"esc", "Escape"},
		{"pgup", "PageUp"},
		{"f5", "F5"},
		{"F12", "F12"},
		{"ctrl+/", "Ctrl+Slash"},
		{"ctrl+,", "Ctrl+Comma"},
		{"ctrl+-", "Ctrl+Minus"},
		{"ctrl++", "Ctrl+Plus"},
		{"space", "Space"},
		{"Ctrl-Alt-Delete", "Ctrl+Alt+Delete"},
	}

	for _, tt := range tests {
		if got := Canonical(tt.raw); got != tt.want {
			t.Errorf("Canonical(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeUppercaseLetterNoImplicitShift(t *testing.T) {
	// "Ctrl+A" and "ctrl+a" are the same combo; case alone never adds
	// Shift.
	a := Normalize("ctrl+a")
	b := Normalize("Ctrl+A")
	if a.Canonical != b.Canonical {
		t.Errorf("canonical mismatch: %q vs %q", a.Canonical, b.Canonical)
	}
	if a.Modifiers.Has(ModShift) {
		t.Errorf("Normalize(%q) added implicit Shift", "ctrl+a")
	}
}

func TestNormalizeSequences(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"ctrl+b then c", "Ctrl+B C"},
		{"Ctrl+B, c", "Ctrl+B C"},
		{"ctrl+x ctrl+s", "Ctrl+X Ctrl+S"},
		{"g g", "G G"},
		{"ctrl+k then ctrl+d then ctrl+u", "Ctrl+K Ctrl+D Ctrl+U"},
	}

	for _, tt := range tests {
		nk := Normalize(tt.raw)
		if nk.Canonical != tt.want {
			t.Errorf("Normalize(%q) canonical = %q, want %q", tt.raw, nk.Canonical, tt.want)
		}
		if !nk.IsSequence() {
			t.Errorf("Normalize(%q) not flagged as sequence", tt.raw)
		}
	}
}

func TestComboCanonicalHasNoSpace(t *testing.T) {
	combos := []string{"ctrl+a", "⌘⇧A", "cmd + shift + p", "alt-f4"}
	for _, raw := range combos {
		nk := Normalize(raw)
		if nk.IsSequence() {
			t.Errorf("Normalize(%q) parsed as sequence", raw)
		}
		for _, r := range nk.Canonical {
			if r == ' ' {
				t.Errorf("Normalize(%q) canonical %q contains a space", raw, nk.Canonical)
			}
		}
	}
}

func TestEquivalent(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"cmd+shift+a", "⌘⇧A", true},
		{"cmd+shift+a", "Command+Shift+A", true},
		{"shift+cmd+a", "cmd+shift+a", true},
		{"C-x C-s", "ctrl+x then ctrl+s", true},
		{"ctrl+a", "alt+a", false},
		{"ctrl+a", "ctrl+b", false},
	}

	for _, tt := range tests {
		if got := Equivalent(tt.a, tt.b); got != tt.want {
			t.Errorf("Equivalent(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"ctrl+a", "⌘⇧A", "ctrl+b then c", "f5", "ctrl+/"}
	for _, raw := range inputs {
		once := Canonical(raw)
		twice := Canonical(once)
		if once != twice {
			t.Errorf("Canonical not idempotent: %q -> %q -> %q", raw, once, twice)
		}
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	if nk := Normalize("   "); nk.Canonical != "" || nk.IsSequence() {
		t.Errorf("Normalize(blank) = %+v, want zero value", nk)
	}
}

func TestCombo(t *testing.T) {
	tests := []struct {
		mods Modifier
		base string
		want string
	}{
		{ModCtrl, "A", "Ctrl+A"},
		{ModCtrl | ModShift, "A", "Ctrl+Shift+A"},
		{ModMeta | ModShift, "A", "Meta+Shift+A"},
		{ModNone, "Enter", "Enter"},
	}
	for _, tt := range tests {
		if got := Combo(tt.mods, tt.base); got != tt.want {
			t.Errorf("Combo(%v, %q) = %q, want %q", tt.mods, tt.base, got, tt.want)
		}
	}
}
