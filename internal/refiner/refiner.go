// Package refiner corrects generated scene graphs against the knowledge
// store. Refinement is best-effort: the model performs the actual correction,
// this package only assembles the knowledge context and validates the shape
// of what comes back.
package refiner

import (
	"context"

	"go.uber.org/zap"

	"github.com/medgraphlab/smra/internal/kb"
	"github.com/medgraphlab/smra/internal/llm"
	"github.com/medgraphlab/smra/internal/prompts"
	"github.com/medgraphlab/smra/internal/scenegraph"
)

type Refiner struct {
	retriever    *kb.Retriever
	engine       llm.Engine
	maxPerEntity int
	log          *zap.SugaredLogger
}

func New(retriever *kb.Retriever, engine llm.Engine, maxPerEntity int, log *zap.SugaredLogger) *Refiner {
	return &Refiner{
		retriever:    retriever,
		engine:       engine,
		maxPerEntity: maxPerEntity,
		log:          log,
	}
}

// Refine retrieves knowledge for the parsed scene graph and drives one model
// call to produce a corrected graph, returned verbatim. If the input does not
// parse, refinement is skipped and the input comes back unchanged. Model
// failures propagate to the caller.
func (r *Refiner) Refine(ctx context.Context, initial string) (string, error) {
	graph, err := scenegraph.Parse(initial)
	if err != nil {
		r.log.Debugw("scene graph did not parse, skipping refinement", "error", err)
		return initial, nil
	}

	knowledge := r.retriever.RetrieveForSceneGraph(graph, r.maxPerEntity)
	r.log.Debugw("retrieved knowledge for scene graph", "keys", knowledge.Len())

	refined, err := r.engine.Respond(ctx, prompts.Refinement(initial, knowledge.Format()), nil)
	if err != nil {
		return "", err
	}
	return refined, nil
}
