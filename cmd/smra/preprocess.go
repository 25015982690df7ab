package main

import (
	"github.com/spf13/cobra"

	"github.com/medgraphlab/smra/internal/config"
	"github.com/medgraphlab/smra/internal/kb"
	"github.com/medgraphlab/smra/internal/logger"
)

var (
	radgraphPath string
	tcgaPath     string
)

func init() {
	preprocessCmd.Flags().StringVar(&radgraphPath, "radgraph", "", "path to the RadGraph dataset JSON")
	preprocessCmd.Flags().StringVar(&tcgaPath, "tcga", "", "path to the TCGA-Reports dataset JSON")
	_ = preprocessCmd.MarkFlagRequired("radgraph")
	_ = preprocessCmd.MarkFlagRequired("tcga")
}

var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Build the knowledge store from the source corpora",
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

		p := &kb.Preprocessor{
			RadGraphPath: radgraphPath,
			TCGAPath:     tcgaPath,
			OutputDir:    cfg.Knowledge.Path,
		}
		meta, err := p.Run()
		if err != nil {
			return err
		}

		log.Infow("knowledge store built",
			"dir", cfg.Knowledge.Path,
			"total_triplets", meta.TotalTriplets,
			"radgraph_triplets", meta.RadgraphTriplets,
			"tcga_triplets", meta.TcgaTriplets,
			"unique_entities", meta.UniqueEntities)
		return nil
	},
}
