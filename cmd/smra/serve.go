package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medgraphlab/smra/internal/config"
	"github.com/medgraphlab/smra/internal/kb"
	"github.com/medgraphlab/smra/internal/logger"
	"github.com/medgraphlab/smra/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the knowledge store over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		log, err := logger.New(cfg.Pipeline.Verbose)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		store, meta, err := kb.Load(cfg.Knowledge.Path)
		if err != nil {
			return fmt.Errorf("load knowledge store: %w", err)
		}
		log.Infow("loaded knowledge store",
			"triplets", meta.TotalTriplets, "entities", meta.UniqueEntities)

		srv := server.New(kb.NewRetriever(store), meta, log)
		log.Infow("serving knowledge queries", "addr", cfg.Server.Addr)
		return srv.SetupRouter().Run(cfg.Server.Addr)
	},
}
