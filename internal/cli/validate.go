package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/keymerge/internal/keybind"
	"github.com/dshills/keymerge/internal/merge"
	"github.com/dshills/keymerge/internal/report"
)

var validateCmd = &cobra.Command{
	Use:   "validate <dump.json|dir>...",
	Short: "Check extractor dumps for conflicts without merging",
	Long: `Runs conflict detection over the combined inputs and reports every
finding. Exits non-zero when any error-severity conflict exists, for use
as a CI gate.`,
	Args:          cobra.MinimumNArgs(1),
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		toolLayers, err := loadInputs(args)
		if err != nil {
			return err
		}
		t, err := loadTables()
		if err != nil {
			return err
		}

		vr := merge.ValidateConfigurationWith(flatten(toolLayers), t)
		fmt.Fprint(cmd.OutOrStdout(), report.RenderValidation(vr))
		if !vr.Valid {
			return fmt.Errorf("validation failed with %d errors", len(vr.Errors))
		}
		return nil
	},
}

// flatten combines every layer of every tool into one detection batch.
// Validation sees the raw inputs, not the layered slot winners.
func flatten(toolLayers []merge.ToolLayers) []*keybind.Keybind {
	var batch []*keybind.Keybind
	for _, tl := range toolLayers {
		for _, kb := range tl.System {
			batch = append(batch, kb)
		}
		for _, kb := range tl.Defaults {
			batch = append(batch, kb)
		}
		for _, kb := range tl.User {
			batch = append(batch, kb)
		}
		for _, kb := range tl.Generated {
			batch = append(batch, kb)
		}
	}
	return batch
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
