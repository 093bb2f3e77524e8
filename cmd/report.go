package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/signalnine/olsbench/internal/report"
)

func newReportCmd() *cobra.Command {
	var (
		format string
		bins   int
	)
	cmd := &cobra.Command{
		Use:   "report [run-dir]",
		Short: "Generate summary from stored results",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runDir, err := resolveRunDir(cmd, args)
			if err != nil {
				return err
			}
			return report.Generate(runDir, format, cmd.OutOrStdout(), bins)
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "output format (table, markdown, json)")
	cmd.Flags().IntVar(&bins, "histogram", 0, "histogram bins per method (0 = none)")
	return cmd
}

// resolveRunDir returns the run directory argument, or the latest run under
// the configured results directory.
func resolveRunDir(cmd *cobra.Command, args []string) (string, error) {
	var runDir string
	if len(args) > 0 {
		runDir = args[0]
	} else {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return "", err
		}
		runDir = filepath.Join(cfg.Results.Dir, "latest")
	}
	resolved, err := filepath.EvalSymlinks(runDir)
	if err != nil {
		return "", fmt.Errorf("resolving run dir: %w", err)
	}
	return resolved, nil
}
