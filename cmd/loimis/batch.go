package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"estsoil-loimis/internal/export"
)

type batchFlags struct {
	in          string
	out         string
	diagnostics string
	idCol       string
	codeCol     string
	typeCol     string
}

func newBatchCmd(a *app) *cobra.Command {
	var flags batchFlags

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Compile every record of a CSV file",
		Long: "Reads a headed CSV with an id column and a texture code column, compiles\n" +
			"each record concurrently and writes one output row per record.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBatch(cmd, flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.in, "in", "i", "-", "Input CSV file, - for stdin")
	f.StringVarP(&flags.out, "out", "o", "-", "Output CSV file, - for stdout")
	f.StringVar(&flags.diagnostics, "diagnostics", "", "Optional CSV file for per-record diagnostics")
	f.StringVar(&flags.idCol, "id-col", "", "Input column holding the record id")
	f.StringVar(&flags.codeCol, "code-col", "", "Input column holding the texture code")
	f.StringVar(&flags.typeCol, "type-col", "", "Input column holding the soil type")

	return cmd
}

func (a *app) runBatch(cmd *cobra.Command, flags batchFlags) error {
	cols := export.Columns{
		ID:       pick(flags.idCol, a.cfg.Columns.ID),
		Code:     pick(flags.codeCol, a.cfg.Columns.Code),
		SoilType: pick(flags.typeCol, a.cfg.Columns.SoilType),
	}

	in, closeIn, err := openInput(flags.in, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer func() { _ = closeIn() }()

	records, err := export.ReadRecords(in, cols)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", flags.in, err)
	}

	rows, summary, err := a.compiler.RunBatch(cmd.Context(), records, a.cfg.Workers)
	if err != nil {
		return err
	}

	if err := writeOutput(flags.out, cmd.OutOrStdout(), func(w io.Writer) error {
		return export.WriteRows(w, rows, a.cfg.MaxLayers)
	}); err != nil {
		return err
	}

	if flags.diagnostics != "" {
		if err := writeOutput(flags.diagnostics, cmd.OutOrStdout(), func(w io.Writer) error {
			return export.WriteDiagnostics(w, rows)
		}); err != nil {
			return err
		}
	}

	a.logger.Info("batch complete",
		slog.Int("records", summary.Records),
		slog.Int("parse_errors", summary.ParseErrors),
		slog.Int("warnings", summary.Warnings))
	fmt.Fprintln(cmd.ErrOrStderr(), summary)

	return nil
}

func pick(flag, fallback string) string {
	if flag != "" {
		return flag
	}

	return fallback
}

func openInput(path string, stdin io.Reader) (io.Reader, func() error, error) {
	if path == "-" || path == "" {
		return stdin, func() error { return nil }, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening file %s: %w", path, err)
	}

	return f, f.Close, nil
}

func writeOutput(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "-" || path == "" {
		return write(stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := write(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return f.Close()
}
