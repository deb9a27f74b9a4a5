package main

import (
	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var dataRoot string

	cmd := &cobra.Command{
		Use:   "seed [sources...]",
		Short: "Seed the destination from file extracts under the data root",
		Long: `Seed reads the extracts of the named source programs from the data root
and loads them into the destination. With no sources named, every known
program is seeded. A failed source never stops the sources queued after it;
the command exits non-zero if any job failed.`,
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

			summaries, err := a.orch.Seed(ctx, dataRoot, sourceArgs(args))
			for _, sum := range summaries {
				a.log.Info("job summary",
					"run_id", sum.RunID,
					"source", sum.Source,
					"state", string(sum.State),
					"stations_inserted", sum.StationsInserted,
					"stations_merged", sum.StationsMerged,
					"results_inserted", sum.ResultsInserted,
					"duplicates_skipped", sum.DuplicatesSkipped,
					"orphans", sum.Orphans,
					"duration", sum.Duration)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&dataRoot, "path", ".", "data root holding one folder per source program")
	return cmd
}
