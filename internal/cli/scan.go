package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/localorganizer/organizer/internal/pipeline"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Walk --root and report discovered files and extraction statistics",
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := resolveBackendConfig(cmd)
	if err != nil {
		return err
	}

	res, err := pipeline.Scan(cmd.Context(), flagValues.Root, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "files scanned:     %d\n", res.ScanStats.FilesScanned)
	fmt.Fprintf(out, "files excluded:    %d\n", res.ScanStats.FilesExcluded)
	fmt.Fprintf(out, "dirs excluded:     %d\n", res.ScanStats.DirectoriesExcluded)
	fmt.Fprintf(out, "total bytes:       %d\n", res.ScanStats.TotalBytes)
	fmt.Fprintf(out, "extraction errors: %d\n", res.ExtractStats.ExtractionErrors)
	fmt.Fprintf(out, "excerpt bytes:     %d\n", res.ExtractStats.ExcerptBytes)
	return nil
}
