package main

import (
	"github.com/spf13/cobra"

	"github.com/ugswater/dbseeder/internal/wqp"
)

func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Fetch new Water Quality Portal results since the last seeded sample date",
		Long: `Update queries the destination for its most recent sample date, fetches
everything newer from the Water Quality Portal web service, and loads it
through the normal pipeline. Stations already present are merged; results
already present are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			stopOps := a.serveOps()
			defer stopOps()

			client := wqp.NewClient(a.cfg.WQPBaseURL, a.cfg.WQPTimeout, a.log)
			sum, err := a.orch.Update(ctx, client)
			a.log.Info("update summary",
				"run_id", sum.RunID,
				"state", string(sum.State),
				"stations_inserted", sum.StationsInserted,
				"stations_merged", sum.StationsMerged,
				"results_inserted", sum.ResultsInserted,
				"duplicates_skipped", sum.DuplicatesSkipped,
				"duration", sum.Duration)
			return err
		},
	}
}
