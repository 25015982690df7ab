// Package pipeline drives the outer answering loop: retry rounds over the
// dataset, one item at a time, with the ledger as the only cross-run
// resumption mechanism.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/medgraphlab/smra/internal/consensus"
	"github.com/medgraphlab/smra/internal/dataset"
	"github.com/medgraphlab/smra/internal/ledger"
	"github.com/medgraphlab/smra/internal/llm"
	"github.com/medgraphlab/smra/internal/prompts"
	"github.com/medgraphlab/smra/internal/refiner"
	"github.com/medgraphlab/smra/internal/scenegraph"
)

type Pipeline struct {
	Dataset      *dataset.Dataset
	Ledger       *ledger.Ledger
	Vision       llm.Engine
	Orchestrator *consensus.Orchestrator

	// Refiner is nil when knowledge augmentation is disabled; the initial
	// scene graph is then used as-is.
	Refiner *refiner.Refiner

	MaxRetries int
	Log        *zap.SugaredLogger
}

// Run executes up to MaxRetries rounds. Each round re-scans the ledger and
// only (re)processes unfinished indices, so the loop resumes cleanly across
// process restarts. A failing item is recorded as an error result and does
// not stop the round.
func (p *Pipeline) Run(ctx context.Context) error {
	for round := 0; round < p.MaxRetries; round++ {
		todo, err := p.Ledger.ListUnfinished(p.Dataset.Len())
		if err != nil {
			return err
		}
		if len(todo) == 0 {
			p.Log.Infow("all questions answered", "dataset", p.Dataset.Name)
			return nil
		}
		p.Log.Infow("starting answering round", "round", round+1, "pending", len(todo))

		for _, idx := range todo {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := p.Dataset.Items[idx]

			answer, err := p.processItem(ctx, idx)
			entry := ledger.Entry{
				Index:       idx,
				Question:    item.Question,
				GroundTruth: item.Answer,
				Prediction:  answer,
			}
			if err != nil {
				p.Log.Errorw("question failed", "index", idx, "error", err)
				entry.Prediction = fmt.Sprintf("Error: %v", err)
				entry.Status = ledger.StatusError
			}
			if err := p.Ledger.Upsert(entry); err != nil {
				return fmt.Errorf("record result for index %d: %w", idx, err)
			}
		}
	}
	return nil
}

// processItem answers one question end to end. Panics from deep inside a
// model client are converted to errors so they stay within the per-item
// boundary.
func (p *Pipeline) processItem(ctx context.Context, idx int) (answer string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	item := p.Dataset.Items[idx]
	img, err := p.Dataset.LoadImage(idx)
	if err != nil {
		return "", err
	}

	description, err := p.GenerateAndRefine(ctx, item.Question, img)
	if err != nil {
		return "", fmt.Errorf("scene graph: %w", err)
	}

	return p.Orchestrator.Run(ctx, item.Question, description)
}

// GenerateAndRefine produces the scene description for a question: one vision
// call for the initial graph, then best-effort knowledge refinement. The
// initial graph is returned whenever the refined text fails structural
// validation.
func (p *Pipeline) GenerateAndRefine(ctx context.Context, question string, img *llm.Image) (string, error) {
	initial, err := p.Vision.Respond(ctx, prompts.Description(question), img)
	if err != nil {
		return "", err
	}
	if p.Refiner == nil {
		return initial, nil
	}

	refined, err := p.Refiner.Refine(ctx, initial)
	if err != nil {
		return "", err
	}

	result := scenegraph.Validate(refined)
	if !result.IsValid {
		p.Log.Warnw("refined scene graph failed validation, using initial graph", "errors", result.Errors)
		return initial, nil
	}
	if len(result.Warnings) > 0 {
		p.Log.Debugw("scene graph validation warnings", "warnings", result.Warnings)
	}
	return refined, nil
}
