package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pietrocfn02/neXSim-latest/internal/pipeline"
)

var kernelCmd = &cobra.Command{
	Use:   "kernel <entity-id>...",
	Short: "Compute the kernel explanation: characterization over LCA-rewritten summaries",
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
		lcaAtoms, err := p.LCA(ctx, unit)
		if err != nil {
			return err
		}
		atoms, err := p.Kernel(ctx, unit, summaries, lcaAtoms)
		if err != nil {
			return err
		}
		return printJSON(atoms)
	},
}
