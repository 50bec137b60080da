package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pietrocfn02/neXSim-latest/internal/report"
)

var reportJSON bool

var reportCmd = &cobra.Command{
	Use:   "report <entity-id>...",
	Short: "Run the full pipeline and print a human-readable explanation of the unit",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			fmt.Println(report.EmptyUnit)
			return nil
		}
		p, err := buildPipeline()
		if err != nil {
			return err
		}
		resp, err := p.RunFull(context.Background(), args)
		if err != nil {
			return err
		}
		if reportJSON {
			return printJSON(resp)
		}
		fmt.Println(report.Render(resp))
		return nil
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "Emit the full populated response as JSON instead of a text report")
}
