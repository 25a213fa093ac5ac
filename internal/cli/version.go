package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the keymerge version",
	Run: func(cmd *cobra.Command, args []string) {
		if version == "" {
			version = "dev"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "keymerge %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
