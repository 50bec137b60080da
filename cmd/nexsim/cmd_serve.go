package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pietrocfn02/neXSim-latest/internal/httpapi"
	"github.com/pietrocfn02/neXSim-latest/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP surface exposing /summary, /lca, /characterize, /kernel, /report",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := buildPipeline()
		if err != nil {
			return err
		}
		server := httpapi.NewServer(p)

		addr := cfg.Server.Addr
		logging.For(logging.CategoryHTTP).Info("listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, server.Handler()); err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	},
}
