package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pietrocfn02/neXSim-latest/internal/pipeline"
)

var characterizeCmd = &cobra.Command{
	Use:   "characterize <entity-id>...",
	Short: "Characterize a unit: the most-specific common conjunctive shape of its summaries",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPipeline()
		if err != nil {
			return err
		}
		unit, err := pipeline.ValidateUnit(args)
		if err != nil {
			return err
		}
		ctx := context.Background()
		summaries, err := p.Summary(ctx, unit)
		if err != nil {
			return err
		}
		atoms, err := p.Characterize(ctx, unit, summaries)
		if err != nil {
			return err
		}
		return printJSON(atoms)
	},
}
