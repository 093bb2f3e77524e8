package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/signalnine/olsbench/internal/config"
	"github.com/signalnine/olsbench/internal/report"
	"github.com/signalnine/olsbench/internal/resample"
	"github.com/signalnine/olsbench/internal/result"
	"github.com/signalnine/olsbench/internal/stats"
)

func newResampleCmd() *cobra.Command {
	var (
		method      string
		k           int
		repetitions int
		seed        uint64
		bins        int
		format      string
		withValues  bool
	)
	cmd := &cobra.Command{
		Use:   "resample [run-dir]",
		Short: "Resample means from a stored timing buffer (CLT demo)",
		Long: `Draw subsamples with replacement from one method's timing buffer and
report the distribution of their means next to the source distribution.
Defaults come from the clt section of the config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			clt := cfg.CLT
			flags := cmd.Flags()
			if flags.Changed("method") {
				clt.Method = method
			}
			if flags.Changed("subsample-size") {
				clt.SubsampleSize = k
			}
			if flags.Changed("repetitions") {
				clt.Repetitions = repetitions
			}
			if flags.Changed("seed") {
				clt.Seed = seed
			}

			runDir, err := resolveRunDir(cmd, args)
			if err != nil {
				return err
			}
			run, err := result.ReadRun(runDir)
			if err != nil {
				return err
			}

			rep, err := resampleRun(run, clt, bins)
			if err != nil {
				return err
			}
			logger.InfoContext(cmd.Context(), "resampled",
				slog.String("method", rep.Method),
				slog.Float64("source_skewness", rep.Source.Skewness),
				slog.Float64("means_skewness", rep.Means.Skewness),
			)
			if !withValues {
				rep.Values = nil
			}
			return report.WriteResample(rep, format, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&method, "method", "", "method whose buffer is resampled")
	cmd.Flags().IntVarP(&k, "subsample-size", "k", 0, "values drawn per resample")
	cmd.Flags().IntVar(&repetitions, "repetitions", 0, "number of resamples")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "resampler seed (0 = time based)")
	cmd.Flags().IntVar(&bins, "histogram", 20, "histogram bins for the means (0 = none)")
	cmd.Flags().StringVar(&format, "format", "table", "output format (table, json)")
	cmd.Flags().BoolVar(&withValues, "values", false, "include every resampled mean in json output")
	return cmd
}

func resampleRun(run *result.Run, clt config.CLT, bins int) (*report.ResampleReport, error) {
	buf, ok := run.Buffer(clt.Method)
	if !ok {
		return nil, fmt.Errorf("run %s has no buffer for method %q", run.ID, clt.Method)
	}

	r := resample.New(clt.Seed)
	means, err := r.Means(buf, clt.SubsampleSize, clt.Repetitions)
	if err != nil {
		return nil, err
	}

	rep := &report.ResampleReport{
		RunID:         run.ID,
		Method:        clt.Method,
		SubsampleSize: clt.SubsampleSize,
		Repetitions:   clt.Repetitions,
		Seed:          r.Seed(),
		Values:        means,
	}
	if rep.Source, err = report.NewMoments(buf); err != nil {
		return nil, err
	}
	if rep.Means, err = report.NewMoments(means); err != nil {
		return nil, err
	}
	if bins > 0 {
		if rep.Histogram, err = stats.Histogram(means, bins); err != nil {
			return nil, err
		}
	}
	return rep, nil
}
