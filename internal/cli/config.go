package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/dshills/keymerge/internal/merge"
	"github.com/dshills/keymerge/internal/tables"
)

var v = viper.New()

// initConfig seeds defaults and reads the optional config file. Env var
// overrides use prefix KEYMERGE_, e.g. KEYMERGE_MERGE_RESOLVE_CONFLICTS.
func initConfig() {
	v.SetDefault("merge.resolve_conflicts", true)
	v.SetDefault("merge.prioritize_user_config", true)
	v.SetDefault("merge.allow_system_overrides", false)
	v.SetDefault("merge.preserve_disabled", false)
	v.SetDefault("merge.generate_suggestions", true)
	v.SetDefault("tables", "")

	v.SetConfigType("toml")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "keymerge"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("KEYMERGE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// config file is optional
	_ = v.ReadInConfig()
}

// mergeOptions assembles merge options from config, env, and flags.
func mergeOptions() (merge.Options, error) {
	var opts merge.Options
	if err := v.UnmarshalKey("merge", &opts); err != nil {
		return merge.Options{}, fmt.Errorf("unmarshal merge options: %w", err)
	}
	return opts, nil
}

// loadTables resolves the lookup tables: the --tables flag wins, then
// the config file's tables key, then the built-in defaults.
func loadTables() (*tables.Tables, error) {
	path := tablesFile
	if path == "" {
		path = v.GetString("tables")
	}
	if path == "" {
		return tables.Default(), nil
	}
	return tables.LoadFile(path)
}
