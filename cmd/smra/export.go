package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medgraphlab/smra/internal/config"
	"github.com/medgraphlab/smra/internal/graph"
	"github.com/medgraphlab/smra/internal/kb"
	"github.com/medgraphlab/smra/internal/logger"
)

var exportGraphCmd = &cobra.Command{
	Use:   "export-graph",
	Short: "Export the triplet store into Memgraph/Neo4j",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		log, err := logger.New(cfg.Pipeline.Verbose)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		store, _, err := kb.Load(cfg.Knowledge.Path)
		if err != nil {
			return fmt.Errorf("load knowledge store: %w", err)
		}

		driver, err := graph.NewMemgraphDriver(cfg.Graph.URI, cfg.Graph.User, cfg.Graph.Password, log)
		if err != nil {
			return fmt.Errorf("connect to graph database: %w", err)
		}
		defer func() { _ = driver.Close(ctx) }()

		exporter := &graph.Exporter{Driver: driver, Log: log}
		return exporter.Export(ctx, store)
	},
}
