// Package graph exports the triplet store into a Memgraph/Neo4j instance for
// interactive exploration. The graph database is not on the answering path.
package graph

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/medgraphlab/smra/internal/kb"
)

const mergeTripletQuery = `
	MERGE (s:Entity {name: $subject})
	MERGE (o:Entity {name: $object})
	MERGE (s)-[r:FACT {predicate: $predicate}]->(o)
	ON CREATE SET r.count = 1
	ON MATCH SET r.count = r.count + 1
	RETURN s.name AS subject
`

type Exporter struct {
	Driver Driver
	Log    *zap.SugaredLogger
}

// Export merges every triplet in the store into the graph database. Duplicate
// facts bump the relationship count instead of creating parallel edges.
func (e *Exporter) Export(ctx context.Context, store *kb.Store) error {
	if err := e.Driver.BuildIndices(ctx); err != nil {
		return fmt.Errorf("build indices: %w", err)
	}

	for i, t := range store.Triplets() {
		params := map[string]interface{}{
			"subject":   t.Subject,
			"predicate": t.Predicate,
			"object":    t.Object,
		}
		if _, err := e.Driver.ExecuteQuery(ctx, mergeTripletQuery, params); err != nil {
			return fmt.Errorf("export triplet %d: %w", i, err)
		}
	}

	e.Log.Infow("exported triplets", "count", store.Len())
	return nil
}
