package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"estsoil-loimis/internal/export"
	"estsoil-loimis/internal/pipeline"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func newParseCmd(a *app) *cobra.Command {
	var (
		debug  bool
		asCSV  bool
		soilTy string
	)

	cmd := &cobra.Command{
		Use:   "parse CODE...",
		Short: "Compile one or more texture codes and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			rows := make([]pipeline.Row, 0, len(args))
			for i, code := range args {
				row := a.compiler.Compile(pipeline.Record{
					ID:       strconv.Itoa(i + 1),
					Code:     code,
					SoilType: soilTy,
				})
				rows = append(rows, row)

				if asCSV {
					continue
				}

				printRow(out, row)

				if debug {
					printDebug(out, a.compiler, code)
				}
			}

			if asCSV {
				return export.WriteRows(out, rows, a.cfg.MaxLayers)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&debug, "debug", false, "Dump repair attempts and parse trees")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "Print rows as CSV")
	cmd.Flags().StringVar(&soilTy, "soil-type", "", "Soil type used to fill an empty code")

	return cmd
}

func printRow(w io.Writer, row pipeline.Row) {
	fmt.Fprintf(w, "%s\t%s\t%s\n", row.RawCode, row.Status, row.ParseTrace)

	if row.Repaired != "" && row.Repaired != row.RawCode {
		fmt.Fprintf(w, "  repaired: %s\n", row.Repaired)
	}

	for i, l := range row.Layers {
		fmt.Fprintf(w, "  %d: %5d mm  clay=%d silt=%d sand=%d rock=%d  %s %s [%s]\n",
			i+1, l.DepthMM, l.ClayPct, l.SiltPct, l.SandPct, l.RockPct,
			l.TextureClass, l.RockType, l.RawFineEarthCode)
	}

	if row.PeatCode != "" {
		fmt.Fprintf(w, "  peat: %s %d mm\n", row.PeatCode, row.PeatDepthMM)
	}

	for _, d := range row.Diagnostics.All() {
		fmt.Fprintf(w, "  %s %s\n", d.Severity, d)
	}
}

func printDebug(w io.Writer, c *pipeline.Compiler, code string) {
	parsed := c.Parse(code)

	for i, o := range parsed.Outcomes {
		fmt.Fprintf(w, "  repair %d: branch=%s rounds=%d dialect=%s\n", i+1, o.Branch, o.Rounds, o.Match.Dialect)

		for _, at := range o.Attempts {
			mark := " "
			if at.Accepted {
				mark = "*"
			}

			fmt.Fprintf(w, "   %s r%d %-18s %q\n", mark, at.Round, at.Branch, at.Text)
		}

		if o.Match.Tree != nil {
			fmt.Fprintf(w, "    %s\n", o.Match.Tree)
		}
	}

	fmt.Fprintln(w, indent(dumper.Sdump(parsed.Profile), "  "))
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i := range lines {
		lines[i] = prefix + lines[i]
	}

	return strings.Join(lines, "\n")
}
