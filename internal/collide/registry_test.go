package collide

import (
	"reflect"
	"testing"

	"github.com/dshills/keymerge/internal/keybind"
)

func TestBuildRegistryTiers(t *testing.T) {
	batch := []*keybind.Keybind{
		bind("t1", "tmux", "ctrl+a", "", keybind.SourceDefault),
		bind("t2", "tmux", "ctrl+b", "copy-mode", keybind.SourceDefault),
		bind("v1", "vim", "C-a", "", keybind.SourceUser),
	}
	reg := BuildRegistry(batch)

	if got := reg.Global["Ctrl+A"]; !reflect.DeepEqual(got, []string{"t1", "v1"}) {
		t.Errorf("Global[Ctrl+A] = %v, want [t1 v1]", got)
	}
	if got := reg.ByContext["copy-mode"]["Ctrl+B"]; !reflect.DeepEqual(got, []string{"t2"}) {
		t.Errorf("ByContext[copy-mode][Ctrl+B] = %v, want [t2]", got)
	}
	if got := reg.ByTool["tmux"]["Ctrl+A"]; !reflect.DeepEqual(got, []string{"t1"}) {
		t.Errorf("ByTool[tmux][Ctrl+A] = %v, want [t1]", got)
	}
	if reg.Lookup("v1") == nil || reg.Lookup("missing") != nil {
		t.Error("Lookup misbehaved")
	}
}

func TestBuildRegistryIsFresh(t *testing.T) {
	batch := []*keybind.Keybind{
		bind("t1", "tmux", "ctrl+a", "", keybind.SourceDefault),
	}
	a := BuildRegistry(batch)
	b := BuildRegistry(batch)

	a.Global["Ctrl+A"] = append(a.Global["Ctrl+A"], "injected")
	if len(b.Global["Ctrl+A"]) != 1 {
		t.Error("registries share state between builds")
	}
}

func TestBuildRegistryNormalizesMissingCanonical(t *testing.T) {
	kb := &keybind.Keybind{ID: "x", Tool: "tmux", RawKey: "ctrl+a", Source: keybind.SourceDefault}
	reg := BuildRegistry([]*keybind.Keybind{kb})
	if len(reg.Global["Ctrl+A"]) != 1 {
		t.Errorf("record without canonical key not indexed: %v", reg.Global)
	}
	if kb.Context != keybind.ContextGlobal {
		t.Errorf("Refresh did not default context: %q", kb.Context)
	}
}
