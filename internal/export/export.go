// Package export writes merged configurations out: a canonical JSON
// document for downstream tooling, and in-place patches to a companion
// application's existing settings file.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/sjson"

	"github.com/dshills/keymerge/internal/merge"
)

// Marshal renders a merged configuration as indented JSON. The record
// order inside the document is the merge's deterministic order, so the
// same input yields byte-identical output.
func Marshal(cfg *merge.MergedConfig) ([]byte, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding merged config: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteFile writes the merged configuration to path as JSON.
func WriteFile(path string, cfg *merge.MergedConfig) error {
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing merged config %s: %w", path, err)
	}
	return nil
}

// PatchCompanion updates a companion app's JSON settings document with
// the enabled bindings from a merge, leaving every unrelated field in
// the document untouched. A missing file starts from an empty document.
func PatchCompanion(path string, cfg *merge.MergedConfig) error {
	doc, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		doc = []byte("{}\n")
	} else if err != nil {
		return fmt.Errorf("reading companion settings %s: %w", path, err)
	}

	patched, err := Patch(doc, cfg)
	if err != nil {
		return fmt.Errorf("patching companion settings %s: %w", path, err)
	}
	if err := os.WriteFile(path, patched, 0o644); err != nil {
		return fmt.Errorf("writing companion settings %s: %w", path, err)
	}
	return nil
}

// Patch applies the enabled bindings to a JSON document and returns the
// modified document. Bindings land under tools.<tool>.bindings keyed by
// canonical key text.
func Patch(doc []byte, cfg *merge.MergedConfig) ([]byte, error) {
	out := doc
	var err error
	for _, kb := range cfg.Keybinds {
		if kb.Disabled {
			continue
		}
		path := fmt.Sprintf("tools.%s.bindings.%s",
			escapePathSegment(kb.Tool), escapePathSegment(kb.CanonicalKey))
		out, err = sjson.SetBytes(out, path, map[string]string{
			"action":  kb.Action,
			"context": kb.Context,
			"source":  string(kb.Source),
		})
		if err != nil {
			return nil, fmt.Errorf("setting binding %s for %s: %w", kb.CanonicalKey, kb.Tool, err)
		}
	}
	return out, nil
}

// escapePathSegment protects path metacharacters in key text so a
// canonical key like "Ctrl+." stays one object key.
func escapePathSegment(s string) string {
	r := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`)
	return r.Replace(s)
}
