// Package cli wires the merge engine to the keymerge command line.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version string

	cfgFile    string
	tablesFile string
)

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "keymerge",
	Short: "Reconcile keyboard shortcuts across terminal tools",
	Long: `keymerge - merge keybind dumps from terminal tools (tmux, vim, editors,
window managers) into one validated configuration.

Key specs in any common notation are normalized to a canonical form,
collisions are detected across tools and contexts, and error-severity
conflicts are resolved by source priority. The result is written as JSON
and summarized on the terminal.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/keymerge/config.toml)")
	rootCmd.PersistentFlags().StringVar(&tablesFile, "tables", "", "lookup tables file overriding the built-in defaults")
}
