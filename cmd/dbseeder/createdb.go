package main

import (
	"github.com/spf13/cobra"
)

func newCreateDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "createdb",
		Short: "Create the Stations and Results tables in the destination",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.store.EnsureSchema(ctx); err != nil {
				return err
			}
			a.log.Info("destination schema ready")
			return nil
		},
	}
}
