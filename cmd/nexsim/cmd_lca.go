package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/pietrocfn02/neXSim-latest/internal/pipeline"
)

var lcaCmd = &cobra.Command{
	Use:   "lca <entity-id>...",
	Short: "Compute least common ancestors of a unit under the hypernym and meronym relations",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPipeline()
		if err != nil {
			return err
		}
		unit, err := pipeline.ValidateUnit(args)
		if err != nil {
			return err
		}
		atoms, err := p.LCA(context.Background(), unit)
		if err != nil {
			return err
		}
		return printJSON(atoms)
	},
}
