package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/signalnine/olsbench/internal/config"
	"github.com/signalnine/olsbench/internal/report"
	"github.com/signalnine/olsbench/internal/result"
	"github.com/signalnine/olsbench/internal/runner"
	"github.com/signalnine/olsbench/internal/solver"
)

var (
	flagRows       int
	flagColumns    int
	flagTrials     int
	flagWarmup     int
	flagSeed       uint64
	flagModelMode  string
	flagMethods    []string
	flagResultsDir string
	flagFormat     string
	flagHistogram  int
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute a benchmark run",
		RunE:  runBenchmark,
	}
	cmd.Flags().IntVar(&flagRows, "rows", 0, "override row count n")
	cmd.Flags().IntVar(&flagColumns, "columns", 0, "override column count p (p-1 predictors + response)")
	cmd.Flags().IntVar(&flagTrials, "trials", 0, "override trial count")
	cmd.Flags().IntVar(&flagWarmup, "warmup", 0, "override discarded warmup rounds")
	cmd.Flags().Uint64Var(&flagSeed, "seed", 0, "override sample seed (0 = time based)")
	cmd.Flags().StringVar(&flagModelMode, "model-mode", "", "override model measurement mode (construct, solve, both)")
	cmd.Flags().StringSliceVar(&flagMethods, "methods", nil, "override methods, in interleaving order")
	cmd.Flags().StringVar(&flagResultsDir, "results-dir", "", "override results directory")
	cmd.Flags().StringVar(&flagFormat, "format", "table", "output format (table, markdown, json)")
	cmd.Flags().IntVar(&flagHistogram, "histogram", 0, "histogram bins per method (0 = none)")
	return cmd
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyOverrides(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.Seed = resolveSeed(cfg.Seed, time.Now())

	methods, err := solver.NewAll(cfg.Methods, solver.Options{
		Rows:      cfg.Rows,
		Columns:   cfg.Columns,
		Seed:      cfg.Seed,
		ModelMode: solver.Mode(cfg.ModelMode),
	})
	if err != nil {
		return err
	}

	h, err := runner.NewHarness(methods, runner.HarnessOpts{
		Trials: cfg.Trials,
		Warmup: cfg.Warmup,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	logger.InfoContext(ctx, "starting benchmark",
		slog.Int("rows", cfg.Rows),
		slog.Int("columns", cfg.Columns),
		slog.Int("trials", cfg.Trials),
		slog.Any("methods", cfg.Methods),
		slog.String("model_mode", cfg.ModelMode),
		slog.Uint64("seed", cfg.Seed),
	)

	started := time.Now()
	if err := h.Run(ctx); err != nil {
		return fmt.Errorf("benchmark: %w", err)
	}
	elapsed := time.Since(started)

	buffers, err := h.Buffers()
	if err != nil {
		return err
	}
	run, err := result.NewRun(*cfg, started, elapsed, buffers)
	if err != nil {
		return err
	}

	runDir, err := result.CreateRunDir(cfg.Results.Dir)
	if err != nil {
		return err
	}
	if err := result.WriteRun(runDir, run); err != nil {
		return fmt.Errorf("writing run: %w", err)
	}
	logger.InfoContext(ctx, "benchmark complete",
		slog.String("run_id", run.ID),
		slog.String("run_dir", runDir),
		slog.Duration("elapsed", elapsed),
	)

	return report.Write(run, flagFormat, cmd.OutOrStdout(), flagHistogram)
}

func applyOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("rows") {
		cfg.Rows = flagRows
	}
	if flags.Changed("columns") {
		cfg.Columns = flagColumns
	}
	if flags.Changed("trials") {
		cfg.Trials = flagTrials
	}
	if flags.Changed("warmup") {
		cfg.Warmup = flagWarmup
	}
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("model-mode") {
		cfg.ModelMode = flagModelMode
	}
	if flags.Changed("methods") {
		cfg.Methods = flagMethods
	}
	if flags.Changed("results-dir") {
		cfg.Results.Dir = flagResultsDir
	}
}

// resolveSeed replaces a zero seed with one taken from now so the stored run
// records the seed that was actually used.
func resolveSeed(seed uint64, now time.Time) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(now.UnixNano())
}
