package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/keymerge/internal/export"
	"github.com/dshills/keymerge/internal/ingest"
	"github.com/dshills/keymerge/internal/merge"
	"github.com/dshills/keymerge/internal/report"
)

var (
	mergeOut   string
	mergePatch string
	mergeQuiet bool
)

var mergeCmd = &cobra.Command{
	Use:   "merge <dump.json|dir>...",
	Short: "Merge extractor dumps into one validated configuration",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		toolLayers, err := loadInputs(args)
		if err != nil {
			return err
		}
		opts, err := mergeOptions()
		if err != nil {
			return err
		}
		t, err := loadTables()
		if err != nil {
			return err
		}

		cfg, err := merge.New(opts, t).Merge(toolLayers)
		if err != nil {
			return err
		}

		if mergeOut != "" {
			if err := export.WriteFile(mergeOut, cfg); err != nil {
				return err
			}
		}
		if mergePatch != "" {
			if err := export.PatchCompanion(mergePatch, cfg); err != nil {
				return err
			}
		}

		switch {
		case mergeQuiet:
		case mergeOut == "" && mergePatch == "":
			// No destination: the document goes to stdout, the summary
			// to stderr so piped output stays clean JSON.
			data, err := export.Marshal(cfg)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return err
			}
			fmt.Fprint(cmd.ErrOrStderr(), report.RenderWith(cfg, t))
		default:
			fmt.Fprint(cmd.OutOrStdout(), report.RenderWith(cfg, t))
		}
		return nil
	},
}

// loadInputs reads every argument as an extractor dump file or a
// directory of them.
func loadInputs(args []string) ([]merge.ToolLayers, error) {
	var out []merge.ToolLayers
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", arg, err)
		}
		if info.IsDir() {
			tls, err := ingest.LoadDir(arg)
			if err != nil {
				return nil, err
			}
			out = append(out, tls...)
			continue
		}
		tl, err := ingest.LoadFile(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, tl)
	}
	return out, nil
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeOut, "out", "o", "", "write the merged configuration JSON to this file")
	mergeCmd.Flags().StringVar(&mergePatch, "patch", "", "patch this companion settings JSON file in place")
	mergeCmd.Flags().BoolVarP(&mergeQuiet, "quiet", "q", false, "suppress the terminal summary")

	mergeCmd.Flags().Bool("resolve-conflicts", true, "resolve hard collisions by priority")
	mergeCmd.Flags().Bool("prioritize-user", true, "let user bindings replace defaults in layering")
	mergeCmd.Flags().Bool("allow-system-overrides", false, "let later layers replace system bindings in layering")
	mergeCmd.Flags().Bool("preserve-disabled", false, "keep disabled keybinds in the output")
	mergeCmd.Flags().Bool("suggest", true, "generate alternative-key suggestions")

	cobra.CheckErr(v.BindPFlag("merge.resolve_conflicts", mergeCmd.Flags().Lookup("resolve-conflicts")))
	cobra.CheckErr(v.BindPFlag("merge.prioritize_user_config", mergeCmd.Flags().Lookup("prioritize-user")))
	cobra.CheckErr(v.BindPFlag("merge.allow_system_overrides", mergeCmd.Flags().Lookup("allow-system-overrides")))
	cobra.CheckErr(v.BindPFlag("merge.preserve_disabled", mergeCmd.Flags().Lookup("preserve-disabled")))
	cobra.CheckErr(v.BindPFlag("merge.generate_suggestions", mergeCmd.Flags().Lookup("suggest")))

	rootCmd.AddCommand(mergeCmd)
}
