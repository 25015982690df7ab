package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/medgraphlab/smra/internal/config"
	"github.com/medgraphlab/smra/internal/consensus"
	"github.com/medgraphlab/smra/internal/dataset"
	"github.com/medgraphlab/smra/internal/kb"
	"github.com/medgraphlab/smra/internal/ledger"
	"github.com/medgraphlab/smra/internal/llm"
	"github.com/medgraphlab/smra/internal/logger"
	"github.com/medgraphlab/smra/internal/pipeline"
	"github.com/medgraphlab/smra/internal/refiner"
)

var (
	datasetName string
	datasetPath string
)

func init() {
	runCmd.Flags().StringVar(&datasetName, "dataset-name", "", "name of the medical QA dataset")
	runCmd.Flags().StringVar(&datasetPath, "dataset-path", "", "path to the dataset JSON file")
	_ = runCmd.MarkFlagRequired("dataset-name")
	_ = runCmd.MarkFlagRequired("dataset-path")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Answer a dataset of medical visual questions",
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

		language, err := llm.NewEngine(ctx, cfg.LanguageModel)
		if err != nil {
			return fmt.Errorf("language model: %w", err)
		}
		vision, err := llm.NewEngine(ctx, cfg.VisionModel)
		if err != nil {
			return fmt.Errorf("vision model: %w", err)
		}

		var sceneRefiner *refiner.Refiner
		switch {
		case !cfg.Knowledge.Enabled:
			log.Infow("knowledge augmentation disabled")
		case !kb.Exists(cfg.Knowledge.Path):
			log.Warnw("knowledge store not found, continuing without knowledge augmentation",
				"path", cfg.Knowledge.Path)
		default:
			store, meta, err := kb.Load(cfg.Knowledge.Path)
			if err != nil {
				return fmt.Errorf("load knowledge store: %w", err)
			}
			log.Infow("loaded knowledge store",
				"triplets", meta.TotalTriplets, "entities", meta.UniqueEntities)
			sceneRefiner = refiner.New(kb.NewRetriever(store), language, cfg.Knowledge.MaxTripletsPerEntity, log)
		}

		ds, err := dataset.Load(datasetName, datasetPath)
		if err != nil {
			return err
		}
		log.Infow("loaded dataset", "name", ds.Name, "items", ds.Len())

		resultsFile := fmt.Sprintf("%s_SMRAgents_%s_%s_results.json",
			datasetName, cfg.LanguageModel.Model, cfg.VisionModel.Model)

		p := &pipeline.Pipeline{
			Dataset:      ds,
			Ledger:       ledger.New(filepath.Join(cfg.Pipeline.OutputDir, resultsFile)),
			Vision:       vision,
			Orchestrator: consensus.New(language, log),
			Refiner:      sceneRefiner,
			MaxRetries:   cfg.Pipeline.MaxRetries,
			Log:          log,
		}
		return p.Run(ctx)
	},
}
