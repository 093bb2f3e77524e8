package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/signalnine/olsbench/internal/config"
)

const defaultConfigFile = "olsbench.yaml"

var (
	cfgFile      string
	flagLogLevel string
	logger       = slog.New(slog.DiscardHandler)
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "olsbench",
		Short: "Compare runtimes of three ordinary least-squares solvers",
		Long: `olsbench times three ways of fitting a no-intercept OLS regression on
fresh standard-normal samples, interleaving the methods round by round,
and summarizes the timing distributions. The resample command shows the
sampling distribution of the mean of a stored timing buffer.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(cmd.ErrOrStderr(), flagLogLevel)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", defaultConfigFile, "config file path")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.AddCommand(newRunCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newReportCmd())
	root.AddCommand(newResampleCmd())
	root.AddCommand(newValidateCmd())
	return root
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		TimeFormat: time.TimeOnly,
	})), nil
}

// loadConfig reads --config. When the flag was left at its default and the
// file does not exist, the built-in defaults are used instead.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := cfgFile
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			logger.Debug("no config file, using defaults", slog.String("path", path))
			return config.Default(), nil
		}
	}
	return config.Load(path)
}
