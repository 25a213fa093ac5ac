package keys

import "testing"

func TestModifierFromToken(t *testing.T) {
	tests := []struct {
		tok  string
		want Modifier
		ok   bool
	}{
		{"ctrl", ModCtrl, true},
		{"Control", ModCtrl, true},
		{"C", ModCtrl, true},
		{"^", ModCtrl, true},
		{"alt", ModAlt, true},
		{"Option", ModAlt, true},
		{"opt", ModAlt, true},
		{"meta", ModMeta, true},
		{"cmd", ModMeta, true},
		{"Command", ModMeta, true},
		{"super", ModMeta, true},
		{"win", ModMeta, true},
		{"shift", ModShift, true},
		{"S", ModShift, true},
		{"enter", ModNone, false},
		{"x", ModNone, false},
	}

	for _, tt := range tests {
		got, ok := ModifierFromToken(tt.tok)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ModifierFromToken(%q) = %v, %v; want %v, %v", tt.tok, got, ok, tt.want, tt.ok)
		}
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mods Modifier
		want string
	}{
		{ModNone, ""},
		{ModCtrl, "Ctrl"},
		{ModShift | ModCtrl, "Ctrl+Shift"},
		{ModShift | ModMeta | ModAlt | ModCtrl, "Ctrl+Alt+Meta+Shift"},
	}
	for _, tt := range tests {
		if got := tt.mods.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mods, got, tt.want)
		}
	}
}

func TestModifierSetOps(t *testing.T) {
	m := ModCtrl.With(ModShift)
	if !m.Has(ModCtrl) || !m.Has(ModShift) || m.Has(ModAlt) {
		t.Errorf("With/Has: unexpected set %v", m)
	}
	if m.Count() != 2 {
		t.Errorf("Count() = %d, want 2", m.Count())
	}
	m = m.Without(ModCtrl)
	if m.Has(ModCtrl) || !m.Has(ModShift) {
		t.Errorf("Without: unexpected set %v", m)
	}
	if !ModNone.IsEmpty() || m.IsEmpty() {
		t.Errorf("IsEmpty misreported")
	}
}

func TestBaseFromToken(t *testing.T) {
	tests := []struct {
		tok  string
		want string
	}{
		{"a", "A"},
		{"Z", "Z"},
		{"enter", "Enter"},
		{"ESC", "Escape"},
		{"f1", "F1"},
		{"f24", "F24"},
		{"pgdn", "PageDown"},
		{"/", "Slash"},
		{";", "Semicolon"},
		{"`", "Grave"},
		{"-", "Minus"},
		{"+", "Plus"},
		{"unknowntoken", "Unknowntoken"},
	}
	for _, tt := range tests {
		if got := BaseFromToken(tt.tok); got != tt.want {
			t.Errorf("BaseFromToken(%q) = %q, want %q", tt.tok, got, tt.want)
		}
	}
}
