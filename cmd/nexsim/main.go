// Package main implements the neXSim CLI: a symbolic pipeline over a
// lexico-semantic knowledge graph, exposing the same five operations
// (summary, lca, characterize, kernel, report) as the HTTP surface, plus
// a standalone `serve` subcommand for the HTTP surface itself.
//
// File layout mirrors the teacher's one-subcommand-per-file convention:
//   - main.go        - entry point, rootCmd, global flags, pipeline wiring
//   - cmd_report.go  - reportCmd
//   - cmd_summary.go - summaryCmd
//   - cmd_lca.go     - lcaCmd
//   - cmd_characterize.go - characterizeCmd
//   - cmd_kernel.go  - kernelCmd
//   - cmd_serve.go   - serveCmd
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pietrocfn02/neXSim-latest/internal/config"
	"github.com/pietrocfn02/neXSim-latest/internal/graph"
	"github.com/pietrocfn02/neXSim-latest/internal/logging"
	"github.com/pietrocfn02/neXSim-latest/internal/model"
	"github.com/pietrocfn02/neXSim-latest/internal/pipeline"
	"github.com/pietrocfn02/neXSim-latest/internal/relational"
)

var (
	// Global flags
	verbose      bool
	configPath   string
	graphFixture string

	// Loaded once in PersistentPreRunE, consumed by every subcommand.
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "nexsim",
	Short: "neXSim - symbolic explanation engine over a lexico-semantic knowledge graph",
	Long: `neXSim explains why a set of entities ("a unit") drawn from a lexico-semantic
knowledge graph belong together.

It computes, for an ordered tuple of entity identifiers: per-entity
transitively-closed relational summaries, least common ancestors over two
taxonomic relations via a Mangle/Datalog (ASP) encoding, a symbolic
characterization of the unit, and a kernel explanation rewritten over the
unit's LCA edges.

Logic determines the explanation; nothing here ranks, scores, or learns.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if graphFixture != "" {
			loaded.GraphDB.Fixture = graphFixture
		}
		if verbose {
			loaded.Logging.Verbose = true
		}
		cfg = loaded

		logger, err = logging.Init(cfg.Logging.Verbose)
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug-level logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "nexsim.yaml", "Path to YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&graphFixture, "graph-fixture", "", "Path to a JSON edge-list fixture (overrides config graph_db.fixture)")

	rootCmd.AddCommand(
		summaryCmd,
		lcaCmd,
		characterizeCmd,
		kernelCmd,
		reportCmd,
		serveCmd,
	)
}

// buildPipeline loads the configured graph fixture into a MemoryGraph and
// wires the four engines plus an optional relational recorder into a
// pipeline.Pipeline, matching §9's dependency-injection posture: no
// package-level singletons, one pipeline per process built from cfg.
func buildPipeline() (*pipeline.Pipeline, error) {
	if cfg.GraphDB.Fixture == "" {
		return nil, fmt.Errorf("graph_db.fixture is not set: no real graph-DB driver is wired in this build; pass --graph-fixture or set graph_db.fixture")
	}
	edges, err := graph.LoadFixtureFile(cfg.GraphDB.Fixture)
	if err != nil {
		return nil, fmt.Errorf("load graph fixture: %w", err)
	}

	spelling := model.Spelling{Upper: cfg.PredicatesUpper}
	access := graph.NewMemoryGraph(edges, spelling)

	var recorder relational.Recorder
	if cfg.RelationalDB.DSN != "" {
		path := cfg.RelationalDB.DSN
		r, err := relational.NewSQLiteRecorder(path)
		if err != nil {
			logging.For(logging.CategoryRelational).Warn("failed to open audit database, continuing without auditing", zap.Error(err))
		} else {
			recorder = r
		}
	}

	return pipeline.New(access, spelling, cfg.RequestTimeout, recorder), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
