package collide

import (
	"reflect"
	"testing"

	"github.com/dshills/keymerge/internal/keybind"
)

func bind(id, tool, rawKey, context string, source keybind.Source) *keybind.Keybind {
	return keybind.New(id, tool, rawKey, "action-"+id, context, source)
}

func TestDetectAllNoConflicts(t *testing.T) {
	batch := []*keybind.Keybind{
		bind("t1", "tmux", "ctrl+b", "", keybind.SourceDefault),
		bind("v1", "vim", "ctrl+w", "", keybind.SourceDefault),
		bind("e1", "editor", "cmd+p", "", keybind.SourceUser),
	}
	if got := NewDetector(nil).DetectAll(batch); len(got) != 0 {
		t.Errorf("DetectAll = %+v, want none", got)
	}
}

func TestDetectAllHardCollision(t *testing.T) {
	batch := []*keybind.Keybind{
		bind("t1", "tmux", "ctrl+a", "", keybind.SourceDefault),
		bind("v1", "vim", "C-a", "", keybind.SourceDefault),
	}
	conflicts := NewDetector(nil).DetectAll(batch)
	if len(conflicts) != 1 {
		t.Fatalf("DetectAll returned %d conflicts, want 1: %+v", len(conflicts), conflicts)
	}

	c := conflicts[0]
	if c.Type != TypeHard || c.Severity != SeverityError {
		t.Errorf("conflict = %s/%s, want %s/%s", c.Type, c.Severity, TypeHard, SeverityError)
	}
	if c.CanonicalKey != "Ctrl+A" {
		t.Errorf("CanonicalKey = %q, want Ctrl+A", c.CanonicalKey)
	}
	if !reflect.DeepEqual(c.KeybindIDs, []string{"t1", "v1"}) {
		t.Errorf("KeybindIDs = %v, want [t1 v1]", c.KeybindIDs)
	}
	if !reflect.DeepEqual(c.Tools, []string{"tmux", "vim"}) {
		t.Errorf("Tools = %v, want [tmux vim]", c.Tools)
	}
}

func TestDetectAllShadow(t *testing.T) {
	def := bind("v-def", "vim", "ctrl+p", "", keybind.SourceDefault)
	usr := bind("v-usr", "vim", "ctrl+p", "", keybind.SourceUser)

	conflicts := NewDetector(nil).DetectAll([]*keybind.Keybind{def, usr})
	if len(conflicts) != 1 {
		t.Fatalf("DetectAll returned %d conflicts, want 1: %+v", len(conflicts), conflicts)
	}
	if conflicts[0].Type != TypeShadow || conflicts[0].Severity != SeverityInfo {
		t.Errorf("conflict = %s/%s, want %s/%s",
			conflicts[0].Type, conflicts[0].Severity, TypeShadow, SeverityInfo)
	}

	// The classification holds after layering has disabled the default.
	def.Disabled = true
	conflicts = NewDetector(nil).DetectAll([]*keybind.Keybind{def, usr})
	if len(conflicts) != 1 || conflicts[0].Type != TypeShadow {
		t.Errorf("shadow with disabled default = %+v, want one %s", conflicts, TypeShadow)
	}
}

func TestDetectAllSoftCollision(t *testing.T) {
	a := bind("a", "tmux", "ctrl+t", "", keybind.SourceDefault)
	b := bind("b", "vim", "ctrl+t", "", keybind.SourceDefault)
	b.Disabled = true

	conflicts := NewDetector(nil).DetectAll([]*keybind.Keybind{a, b})
	if len(conflicts) != 1 {
		t.Fatalf("DetectAll returned %d conflicts, want 1: %+v", len(conflicts), conflicts)
	}
	if conflicts[0].Type != TypeSoft || conflicts[0].Severity != SeverityWarning {
		t.Errorf("conflict = %s/%s, want %s/%s",
			conflicts[0].Type, conflicts[0].Severity, TypeSoft, SeverityWarning)
	}
}

func TestDetectAllCrossTool(t *testing.T) {
	// Distinct contexts, one of them global: overlapping.
	batch := []*keybind.Keybind{
		bind("t1", "tmux", "ctrl+g", "copy-mode", keybind.SourceDefault),
		bind("v1", "vim", "ctrl+g", "", keybind.SourceDefault),
	}
	conflicts := NewDetector(nil).DetectAll(batch)
	if len(conflicts) != 1 || conflicts[0].Type != TypeCrossTool {
		t.Fatalf("DetectAll = %+v, want one %s", conflicts, TypeCrossTool)
	}
	if conflicts[0].Severity != SeverityWarning {
		t.Errorf("Severity = %s, want %s", conflicts[0].Severity, SeverityWarning)
	}
}

func TestDetectAllNonOverlappingContexts(t *testing.T) {
	// Same key, different tools, both scoped to tool-specific contexts:
	// no ambiguity, no conflict.
	batch := []*keybind.Keybind{
		bind("t1", "tmux", "ctrl+n", "tmux:copy-mode", keybind.SourceDefault),
		bind("v1", "vim", "ctrl+n", "vim:insert", keybind.SourceDefault),
	}
	if got := NewDetector(nil).DetectAll(batch); len(got) != 0 {
		t.Errorf("DetectAll = %+v, want none", got)
	}
}

func TestDetectAllSystemReserved(t *testing.T) {
	batch := []*keybind.Keybind{
		bind("e1", "editor", "cmd+space", "", keybind.SourceUser),
	}
	conflicts := NewDetector(nil).DetectAll(batch)
	if len(conflicts) != 1 {
		t.Fatalf("DetectAll returned %d conflicts, want 1: %+v", len(conflicts), conflicts)
	}
	c := conflicts[0]
	if c.Type != TypeSystemReserved || c.Severity != SeverityError {
		t.Errorf("conflict = %s/%s, want %s/%s", c.Type, c.Severity, TypeSystemReserved, SeverityError)
	}
	if c.Message == "" {
		t.Error("reserved conflict has no message")
	}
}

func TestDetectAllSystemSourceOnReservedKey(t *testing.T) {
	batch := []*keybind.Keybind{
		bind("os1", "macos", "cmd+space", "", keybind.SourceSystem),
	}
	if got := NewDetector(nil).DetectAll(batch); len(got) != 0 {
		t.Errorf("system assignment on reserved key flagged: %+v", got)
	}
}

func TestDetectAllDeterministic(t *testing.T) {
	mk := func() []*keybind.Keybind {
		return []*keybind.Keybind{
			bind("a", "tmux", "ctrl+a", "", keybind.SourceDefault),
			bind("b", "vim", "ctrl+a", "", keybind.SourceDefault),
			bind("c", "editor", "cmd+space", "", keybind.SourceUser),
			bind("d", "editor", "ctrl+g", "editor:pane", keybind.SourceDefault),
			bind("e", "vim", "ctrl+g", "", keybind.SourceDefault),
		}
	}
	reversed := mk()
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}

	d := NewDetector(nil)
	first := d.DetectAll(mk())
	second := d.DetectAll(reversed)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("conflict order depends on input order:\n%+v\n%+v", first, second)
	}

	// Errors sort before warnings.
	if len(first) < 2 || first[0].Severity != SeverityError {
		t.Errorf("first conflict = %+v, want error severity first", first)
	}
}

func TestDetectForCandidate(t *testing.T) {
	batch := []*keybind.Keybind{
		bind("t1", "tmux", "ctrl+a", "", keybind.SourceDefault),
		bind("v1", "vim", "ctrl+w", "", keybind.SourceDefault),
	}
	d := NewDetector(nil)

	dirty := bind("cand", "editor", "C-a", "", keybind.SourceUser)
	conflicts := d.DetectForCandidate(dirty, batch)
	if len(conflicts) == 0 {
		t.Fatal("DetectForCandidate found nothing for a colliding key")
	}
	for _, c := range conflicts {
		if !c.Involves("cand") {
			t.Errorf("conflict %+v does not involve the candidate", c)
		}
	}

	clean := bind("cand", "editor", "ctrl+e", "", keybind.SourceUser)
	if got := d.DetectForCandidate(clean, batch); len(got) != 0 {
		t.Errorf("DetectForCandidate(clean) = %+v, want none", got)
	}
}

func TestDetectForCandidateExcludesSelf(t *testing.T) {
	// Probing a record already in the batch must not collide with itself.
	kb := bind("t1", "tmux", "ctrl+a", "", keybind.SourceDefault)
	batch := []*keybind.Keybind{kb}

	probe := kb.Clone()
	if got := NewDetector(nil).DetectForCandidate(probe, batch); len(got) != 0 {
		t.Errorf("candidate collided with itself: %+v", got)
	}
}
