package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ugswater/dbseeder/internal/pipeline"
	"github.com/ugswater/dbseeder/internal/source"
)

// newValidateCmd builds the dry-run command: parse and map extracts without
// touching any database, so a bad delivery is caught before a long seed.
func newValidateCmd() *cobra.Command {
	var dataRoot string

	cmd := &cobra.Command{
		Use:   "validate [sources...]",
		Short: "Parse and map extracts without writing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := slog.New(slog.NewTextHandler(os.Stderr, nil))

			bindings, err := pipeline.BindAll(sourceArgs(args))
			if err != nil {
				return err
			}

			failed := false
			for _, b := range bindings {
				if err := validateSource(log, dataRoot, b); err != nil {
					log.Error("source invalid", "source", b.Format.Tag, "error", err)
					failed = true
				}
			}
			if failed {
				return fmt.Errorf("validation failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataRoot, "path", ".", "data root holding one folder per source program")
	return cmd
}

func validateSource(log *slog.Logger, root string, b pipeline.Binding) error {
	ext, err := b.Format.Open(root)
	if err != nil {
		return err
	}

	var stations, results, mappingErrors int

	stIter, err := ext.Stations()
	if err != nil {
		return err
	}
	if err := drain(stIter, func(rec source.RawRecord) {
		stations++
		if _, err := b.Rules.MapStation(rec); err != nil {
			mappingErrors++
		}
	}); err != nil {
		return err
	}

	rIter, err := ext.Results()
	if err != nil {
		return err
	}
	if err := drain(rIter, func(rec source.RawRecord) {
		results++
		if _, err := b.Rules.MapResult(rec); err != nil {
			mappingErrors++
		}
	}); err != nil {
		return err
	}

	log.Info("source valid",
		"source", b.Format.Tag,
		"stations", stations,
		"results", results,
		"mapping_errors", mappingErrors)
	return nil
}

func drain(it source.Iterator, visit func(source.RawRecord)) error {
	defer it.Close()
	for {
		rec, err := it.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		visit(rec)
	}
}
