package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"estsoil-loimis/internal/diagnostic"
	"estsoil-loimis/internal/lookup"
	"estsoil-loimis/soil"
)

var errTablesInvalid = errors.New("tables have errors")

func newTablesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Inspect and validate lookup tables",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "validate [FILE...]",
			Short: "Validate tables files (default: the active tables)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.validateTables(cmd.OutOrStdout(), args)
			},
		},
		&cobra.Command{
			Use:   "show KEY",
			Short: "Show what the tables know about a code",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				showKey(cmd.OutOrStdout(), a.tables, args[0])
				return nil
			},
		},
		newTablesDumpCmd(a),
	)

	return cmd
}

func newTablesDumpCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write the active tables as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if out != "" {
				return lookup.WriteFile(out, a.tables.Document())
			}

			data, err := lookup.Marshal(a.tables.Document())
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(data)

			return err
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")

	return cmd
}

func (a *app) validateTables(w io.Writer, paths []string) error {
	type target struct {
		name   string
		tables *lookup.Tables
	}

	var targets []target

	if len(paths) == 0 {
		name := a.cfg.Tables
		if name == "" {
			name = "embedded"
		}

		targets = append(targets, target{name, a.tables})
	}

	failed := false

	for _, p := range paths {
		t, err := lookup.Load(p)
		if err != nil {
			fmt.Fprintf(w, "%s: %v\n", p, err)
			failed = true

			continue
		}

		targets = append(targets, target{p, t})
	}

	for _, t := range targets {
		diags := t.tables.Validate()
		diags.SetRecord(t.name)

		for _, d := range diags.All() {
			fmt.Fprintf(w, "%s %s\n", d.Severity, d)
		}

		if diags.HasErrors() {
			failed = true
			continue
		}

		fmt.Fprintf(w, "%s: ok (version %s, %d warnings)\n", t.name, t.tables.Version(), len(diags.Warnings))
	}

	if failed {
		return errTablesInvalid
	}

	return nil
}

func showKey(w io.Writer, t *lookup.Tables, key string) {
	found := false

	if canon := t.Canonical(key); canon != key {
		fmt.Fprintf(w, "alias: %s -> %s\n", key, canon)
		key = canon
	}

	if e, ok := t.Texture(key); ok {
		found = true
		fmt.Fprintf(w, "texture: sand=%d silt=%d clay=%d class=%s\n", e.Sand, e.Silt, e.Clay, e.Class)
	}

	if pct, src := t.RockPercent(key, 0); src != lookup.RockUnknown {
		found = true
		fmt.Fprintf(w, "rock: %d%% without amplifier\n", pct)

		for amp := soil.MinAmplifier; amp <= soil.MaxAmplifier; amp++ {
			if p, s := t.RockPercent(key, amp); s == lookup.RockAmplifier {
				fmt.Fprintf(w, "rock: %d%% with amplifier %d\n", p, amp)
			}
		}
	}

	if to, ok := t.Legacy(key); ok {
		found = true
		fmt.Fprintf(w, "legacy: %s -> %s\n", key, to)
	}

	if to, ok := t.Filler(key); ok {
		found = true
		fmt.Fprintf(w, "filler: soil type %s -> %s\n", key, to)
	}

	if !found {
		fmt.Fprintf(w, "%s: %s\n", key, diagnostic.CodeLookupMiss)

		if s := t.Suggest(key); len(s) > 0 {
			fmt.Fprintf(w, "did you mean: %v\n", s)
		}
	}
}
