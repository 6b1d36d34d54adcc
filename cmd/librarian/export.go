package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"booklend/internal/app"

	"github.com/spf13/cobra"
)

func newExportCmd(e *env) *cobra.Command {
	var out string

	names := make([]string, 0, len(app.Tables))
	for _, t := range app.Tables {
		names = append(names, t.Name)
	}

	cmd := &cobra.Command{
		Use:       "export <table>",
		Short:     "Write a table, header included, as CSV",
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := args[0]
			if !knownTable(table) {
				return fmt.Errorf("unknown table %q (want one of %s)", table, strings.Join(names, ", "))
			}

			ctx := cmd.Context()
			backend, err := e.openStore(ctx)
			if err != nil {
				return err
			}
			defer backend.Close()

			rows, err := backend.Store.ReadTable(ctx, table)
			if err != nil {
				return fmt.Errorf("read %s: %w", table, err)
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			cw := csv.NewWriter(w)
			if err := cw.WriteAll(rows); err != nil {
				return fmt.Errorf("write csv: %w", err)
			}
			e.log.Sugar().Infof("exported %d rows from %s", len(rows), table)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")
	return cmd
}

func knownTable(name string) bool {
	for _, t := range app.Tables {
		if t.Name == name {
			return true
		}
	}
	return false
}
