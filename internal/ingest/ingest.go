// Package ingest reads the structured record dumps produced by per-tool
// extractors. Input is JSON, one document per tool, read tolerantly: the
// only hard requirement is that each record carries key text. Absent
// optional fields get defaults and missing ids are generated.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/dshills/keymerge/internal/keybind"
	"github.com/dshills/keymerge/internal/merge"
)

// ErrInvalidJSON wraps parse failures on an extractor dump.
var ErrInvalidJSON = fmt.Errorf("invalid extractor JSON")

// LoadDir loads every *.json file in a directory, sorted by name so the
// resulting tool order is stable.
func LoadDir(dir string) ([]merge.ToolLayers, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading extractor directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	out := make([]merge.ToolLayers, 0, len(paths))
	for _, p := range paths {
		tl, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, tl)
	}
	return out, nil
}

// LoadFile loads one tool's dump. When the document does not name its
// tool, the file name (without extension) is used.
func LoadFile(path string) (merge.ToolLayers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return merge.ToolLayers{}, fmt.Errorf("reading extractor dump %s: %w", path, err)
	}
	tl, err := Parse(data)
	if err != nil {
		return merge.ToolLayers{}, fmt.Errorf("%s: %w", path, err)
	}
	if tl.Tool == "" {
		tl.Tool = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		retag(&tl)
	}
	return tl, nil
}

// Parse decodes one tool document. Two shapes are accepted: layered
// ("layers" object keyed by source) and flat (a "keybinds" array whose
// records carry their own source).
func Parse(data []byte) (merge.ToolLayers, error) {
	if !gjson.ValidBytes(data) {
		return merge.ToolLayers{}, ErrInvalidJSON
	}
	doc := gjson.ParseBytes(data)

	tl := merge.ToolLayers{Tool: doc.Get("tool").String()}

	if layers := doc.Get("layers"); layers.Exists() {
		tl.System = parseRecords(layers.Get("system"), tl.Tool, keybind.SourceSystem)
		tl.Defaults = parseRecords(layers.Get("default"), tl.Tool, keybind.SourceDefault)
		tl.User = parseRecords(layers.Get("user"), tl.Tool, keybind.SourceUser)
		tl.Generated = parseRecords(layers.Get("generated"), tl.Tool, keybind.SourceGenerated)
		return tl, nil
	}

	for _, kb := range parseRecords(doc.Get("keybinds"), tl.Tool, keybind.SourceDefault) {
		switch kb.Source {
		case keybind.SourceSystem:
			tl.System = append(tl.System, kb)
		case keybind.SourceUser:
			tl.User = append(tl.User, kb)
		case keybind.SourceGenerated:
			tl.Generated = append(tl.Generated, kb)
		default:
			tl.Defaults = append(tl.Defaults, kb)
		}
	}
	return tl, nil
}

// parseRecords converts one JSON array into keybinds. Records without an
// id get a generated one; records without a source inherit the layer's.
func parseRecords(arr gjson.Result, tool string, layerSource keybind.Source) []*keybind.Keybind {
	if !arr.Exists() || !arr.IsArray() {
		return nil
	}

	var out []*keybind.Keybind
	arr.ForEach(func(_, rec gjson.Result) bool {
		kb := &keybind.Keybind{
			ID:         rec.Get("id").String(),
			Tool:       rec.Get("tool").String(),
			RawKey:     rec.Get("key").String(),
			Action:     rec.Get("action").String(),
			Context:    rec.Get("context").String(),
			Source:     keybind.Source(rec.Get("source").String()),
			Frequency:  keybind.Frequency(rec.Get("frequency").String()),
			Difficulty: rec.Get("difficulty").String(),
		}
		if kb.ID == "" {
			kb.ID = uuid.NewString()
		}
		if kb.Tool == "" {
			kb.Tool = tool
		}
		if !kb.Source.Valid() {
			kb.Source = layerSource
		}
		kb.Refresh()
		out = append(out, kb)
		return true
	})
	return out
}

// retag fills in the tool name on records parsed before it was known.
func retag(tl *merge.ToolLayers) {
	for _, layer := range [][]*keybind.Keybind{tl.System, tl.Defaults, tl.User, tl.Generated} {
		for _, kb := range layer {
			if kb.Tool == "" {
				kb.Tool = tl.Tool
			}
		}
	}
}
