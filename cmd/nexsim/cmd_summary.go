package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pietrocfn02/neXSim-latest/internal/pipeline"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <entity-id>...",
	Short: "Compute the transitively-closed relational summary for each entity in a unit",
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
		summaries, err := p.Summary(context.Background(), unit)
		if err != nil {
			return err
		}
		return printJSON(summaries)
	},
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
