package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"wageengine/internal/domain/wage"
)

func newComputeCmd(app *App) *cobra.Command {
	var year, month int
	var personID string

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute monthly wage totals for one person",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			snap, err := app.Store.LoadSnapshot(ctx, year, month)
			if err != nil {
				return fmt.Errorf("loading reference snapshot: %w", err)
			}

			totals, warnings, err := app.Engine.ComputeMonthlyTotals(wage.PersonID(personID), snap)
			if err != nil {
				return fmt.Errorf("computing totals: %w", err)
			}
			for _, w := range warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning [%s]: report %s: %s\n", w.Code, w.ReportID, w.Message)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(totals)
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "target year")
	cmd.Flags().IntVar(&month, "month", 0, "target month (1-12)")
	cmd.Flags().StringVar(&personID, "person", "", "person id")
	cmd.MarkFlagRequired("year")
	cmd.MarkFlagRequired("month")
	cmd.MarkFlagRequired("person")

	return cmd
}
