package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDump(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadInputsFilesAndDirs(t *testing.T) {
	dir := t.TempDir()
	writeDump(t, dir, "tmux.json", `{"tool": "tmux", "layers": {"default": [{"id": "t1", "key": "ctrl+b"}]}}`)
	extra := writeDump(t, t.TempDir(), "vim.json", `{"tool": "vim", "layers": {"user": [{"id": "v1", "key": "ctrl+p"}]}}`)

	tls, err := loadInputs([]string{dir, extra})
	require.NoError(t, err)
	require.Len(t, tls, 2)
	assert.Equal(t, "tmux", tls[0].Tool)
	assert.Equal(t, "vim", tls[1].Tool)
}

func TestLoadInputsMissingPath(t *testing.T) {
	_, err := loadInputs([]string{"/nonexistent/dump.json"})
	require.Error(t, err)
}

func TestFlatten(t *testing.T) {
	dump := writeDump(t, t.TempDir(), "tmux.json", `{
		"tool": "tmux",
		"layers": {
			"system": [{"id": "s1", "key": "cmd+tab"}],
			"default": [{"id": "d1", "key": "ctrl+b"}],
			"user": [{"id": "u1", "key": "C-a"}],
			"generated": [{"id": "g1", "key": "ctrl+j"}]
		}
	}`)

	tls, err := loadInputs([]string{dump})
	require.NoError(t, err)

	batch := flatten(tls)
	require.Len(t, batch, 4)
	ids := make([]string, 0, len(batch))
	for _, kb := range batch {
		ids = append(ids, kb.ID)
	}
	assert.Equal(t, []string{"s1", "d1", "u1", "g1"}, ids)
}

func TestMergeOptionsDefaults(t *testing.T) {
	initConfig()
	opts, err := mergeOptions()
	require.NoError(t, err)
	assert.True(t, opts.ResolveConflicts)
	assert.True(t, opts.PrioritizeUserConfig)
	assert.True(t, opts.GenerateSuggestions)
	assert.False(t, opts.AllowSystemOverrides)
	assert.False(t, opts.PreserveDisabled)
}

func TestLoadTablesOverride(t *testing.T) {
	path := writeDump(t, t.TempDir(), "tables.toml", "[thresholds]\nmax_suggestions = 7\n")
	tablesFile = path
	defer func() { tablesFile = "" }()

	tab, err := loadTables()
	require.NoError(t, err)
	assert.Equal(t, 7, tab.Thresholds.MaxSuggestions)
}
