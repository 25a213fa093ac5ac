package merge

import (
	"github.com/dshills/keymerge/internal/keybind"
)

// ToolLayers is one tool's record sets as delivered by its extractor,
// split by source.
type ToolLayers struct {
	Tool      string             `json:"tool"`
	System    []*keybind.Keybind `json:"system,omitempty"`
	Defaults  []*keybind.Keybind `json:"defaults,omitempty"`
	User      []*keybind.Keybind `json:"user,omitempty"`
	Generated []*keybind.Keybind `json:"generated,omitempty"`
}

// all returns the layers in source order.
func (tl ToolLayers) all() [][]*keybind.Keybind {
	return [][]*keybind.Keybind{tl.System, tl.Defaults, tl.User, tl.Generated}
}

// layerSources matches the slice order of all().
var layerSources = []keybind.Source{
	keybind.SourceSystem,
	keybind.SourceDefault,
	keybind.SourceUser,
	keybind.SourceGenerated,
}

// slotKey identifies a layering slot: one canonical key within one
// context of one tool.
type slotKey struct {
	context string
	key     string
}

// MergeToolLayers layers one tool's record sets in source order
// system → default → user → generated. A later layer takes over a slot
// only under the replacement rules; the replaced entry is kept, marked
// disabled, so overrides stay visible to the detector. Generated entries
// never overwrite: an occupied slot drops them.
func (m *Merger) MergeToolLayers(tl ToolLayers) []*keybind.Keybind {
	slots := make(map[slotKey]*keybind.Keybind)
	var out []*keybind.Keybind

	for li, layer := range tl.all() {
		for _, kb := range layer {
			if kb == nil {
				continue
			}
			if kb.Tool == "" {
				kb.Tool = tl.Tool
			}
			if kb.Source == "" {
				kb.Source = layerSources[li]
			}
			kb.Refresh()

			sk := slotKey{context: kb.Context, key: kb.CanonicalKey}
			occupant := slots[sk]

			switch {
			case occupant == nil:
				slots[sk] = kb
				out = append(out, kb)

			case kb.Source == keybind.SourceGenerated:
				// Generated entries only fill empty slots.

			case occupant.Source == keybind.SourceSystem && !m.opts.AllowSystemOverrides:
				// System entries are never replaced without the
				// explicit override; the later entry is kept for
				// auditability but cannot be active.
				kb.Disabled = true
				out = append(out, kb)

			case kb.Source == keybind.SourceUser && occupant.Source != keybind.SourceUser && m.opts.PrioritizeUserConfig:
				occupant.Disabled = true
				slots[sk] = kb
				out = append(out, kb)

			default:
				// No replacement rule applies. Both stay enabled and
				// the detector classifies the overlap.
				out = append(out, kb)
			}
		}
	}

	return out
}
