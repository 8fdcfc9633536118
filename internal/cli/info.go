package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localorganizer/organizer/internal/pipeline"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the resolved backend configuration and LLM endpoint status",
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveBackendConfig(cmd)
	if err != nil {
		return err
	}

	snap := pipeline.Info(cmd.Context(), cfg)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "backend:       %s\n", snap.Backend)
	fmt.Fprintf(out, "model:         %s\n", snap.Model)
	fmt.Fprintf(out, "hardware tier: %s\n", snap.HardwareTier)
	if snap.EndpointURL != "" {
		fmt.Fprintf(out, "endpoint:      %s\n", snap.EndpointURL)
		fmt.Fprintf(out, "reachable:     %t\n", snap.EndpointReachable)
	}
	return nil
}
