package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localorganizer/organizer/internal/pipeline"
)

var executeCmd = &cobra.Command{
	Use:   "execute",
	Short: "Execute a plan produced by `organizer plan`",
	RunE:  runExecute,
}

var executeFlags struct {
	PlanPath string
	Apply    bool
	LogDir   string
}

func init() {
	executeCmd.Flags().StringVar(&executeFlags.PlanPath, "plan", "", "path to the plan JSON file (required)")
	executeCmd.Flags().BoolVar(&executeFlags.Apply, "apply", false, "perform the filesystem operations; omit for a dry run")
	executeCmd.Flags().StringVar(&executeFlags.LogDir, "log-dir", "", "directory to write the execution manifest to (defaults to --output)")
	_ = executeCmd.MarkFlagRequired("plan")
	rootCmd.AddCommand(executeCmd)
}

func runExecute(cmd *cobra.Command, args []string) error {
	logDir := executeFlags.LogDir
	if logDir == "" {
		logDir = flagValues.Output
	}

	res, err := pipeline.Execute(cmd.Context(), executeFlags.PlanPath, executeFlags.Apply, logDir)
	if err != nil && res == nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "executed:  %d\n", res.Stats.TotalExecuted)
	fmt.Fprintf(out, "succeeded: %d\n", res.Stats.Successful)
	fmt.Fprintf(out, "failed:    %d\n", res.Stats.Failed)
	if res.ManifestPath != "" {
		fmt.Fprintf(out, "manifest:  %s\n", res.ManifestPath)
	}
	return err
}
