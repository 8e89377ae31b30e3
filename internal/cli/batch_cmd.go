package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"wageengine/internal/domain/wage"
	"wageengine/internal/platform/metrics"
)

func newBatchCmd(app *App) *cobra.Command {
	var year, month, concurrency int
	var showMetrics bool

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Compute monthly wage totals for every person with a report that month",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			snap, err := app.Store.LoadSnapshot(ctx, year, month)
			if err != nil {
				return fmt.Errorf("loading reference snapshot: %w", err)
			}

			people := app.Store.PersonIDsWithReports(ctx, snap)
			requests := make([]wage.BatchRequest, len(people))
			for i, p := range people {
				requests[i] = wage.BatchRequest{Person: p, Snapshot: snap}
			}

			collector := metrics.New()
			results, err := app.Engine.RunBatch(ctx, requests, concurrency, collector)
			if err != nil {
				return fmt.Errorf("running batch: %w", err)
			}

			for _, r := range results {
				if r.Err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "person %s: error: %v\n", r.Person, r.Err)
				}
				for _, w := range r.Warnings {
					fmt.Fprintf(cmd.ErrOrStderr(), "person %s: warning [%s]: report %s: %s\n", r.Person, w.Code, w.ReportID, w.Message)
				}
			}
			if showMetrics {
				fmt.Fprintf(cmd.ErrOrStderr(), "batch metrics: %+v\n", collector.Snapshot())
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(toBatchOutput(results))
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "target year")
	cmd.Flags().IntVar(&month, "month", 0, "target month (1-12)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "maximum concurrent per-person computations")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print batch computation metrics to stderr")
	cmd.MarkFlagRequired("year")
	cmd.MarkFlagRequired("month")

	return cmd
}

// batchResultOutput mirrors wage.BatchResult but renders Err as a string,
// since error is an interface with no exported fields and would otherwise
// marshal to an uninformative {}.
type batchResultOutput struct {
	Person   wage.PersonID   `json:"person"`
	Totals   wage.MonthlyTotals `json:"totals"`
	Warnings []wage.Warning  `json:"warnings"`
	Err      string          `json:"error,omitempty"`
}

func toBatchOutput(results []wage.BatchResult) []batchResultOutput {
	out := make([]batchResultOutput, len(results))
	for i, r := range results {
		out[i] = batchResultOutput{
			Person:   r.Person,
			Totals:   r.Totals,
			Warnings: r.Warnings,
		}
		if r.Err != nil {
			out[i].Err = r.Err.Error()
		}
	}
	return out
}
