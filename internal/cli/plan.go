package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localorganizer/organizer/internal/pipeline"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Scan --root, classify every file, and write a reviewable plan to --output",
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := resolveBackendConfig(cmd)
	if err != nil {
		return err
	}

	planPath, err := pipeline.Plan(cmd.Context(), flagValues.Root, cfg, flagValues.Output)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "plan written: %s\n", planPath)
	fmt.Fprintf(cmd.OutOrStdout(), "review it, then run `organizer review --plan %s` or `organizer execute --plan %s --apply`\n", planPath, planPath)
	return nil
}
