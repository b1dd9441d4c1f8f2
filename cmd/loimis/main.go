// Command loimis compiles Estonian soil texture codes into layered profiles.
//
// Usage:
//
//	loimis parse [--debug] CODE...
//	loimis batch --in records.csv --out profiles.csv
//	loimis tables validate|show|dump
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"estsoil-loimis/internal/config"
	"estsoil-loimis/internal/lookup"
	"estsoil-loimis/internal/pipeline"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app is the state shared by every subcommand, built before any of them runs.
type app struct {
	cfg      config.Config
	tables   *lookup.Tables
	compiler *pipeline.Compiler
	logger   *slog.Logger
}

type rootFlags struct {
	configPath string
	tables     string
	logLevel   string
	logFormat  string
	workers    int
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	var (
		flags rootFlags
		a     app
	)

	rootCmd := &cobra.Command{
		Use:           "loimis",
		Short:         "Compile Estonian soil texture codes into layered profiles",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(flags, cmd.ErrOrStderr())
		},
	}

	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Path to a YAML config file")
	pf.StringVar(&flags.tables, "tables", "", "Path to a lookup tables file (default: embedded)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: text or json")
	pf.IntVarP(&flags.workers, "workers", "w", 0, "Number of concurrent workers for batch runs")

	rootCmd.AddCommand(newParseCmd(&a), newBatchCmd(&a), newTablesCmd(&a))

	return rootCmd
}

func (a *app) setup(flags rootFlags, logOut io.Writer) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	cfg = config.Merge(cfg, config.Config{
		Tables:  flags.tables,
		Workers: flags.workers,
		Log:     config.Log{Level: flags.logLevel, Format: flags.logFormat},
	})

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := cfg.NewLogger(logOut)
	if err != nil {
		return err
	}

	tables, err := lookup.LoadOrDefault(cfg.Tables)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.tables = tables
	a.logger = logger
	a.compiler = pipeline.New(tables, cfg.PipelineOptions(), logger)

	logger.Debug("configured",
		slog.String("tables", tables.Version()),
		slog.Int("workers", cfg.Workers),
		slog.Int("max_layers", cfg.MaxLayers))

	return nil
}
