package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/medgraphlab/smra/internal/kb"
)

type executedQuery struct {
	Query  string
	Params map[string]interface{}
}

type mockDriver struct {
	Queries  []executedQuery
	Err      error
	Indexed  bool
	IndexErr error
}

func (m *mockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Queries = append(m.Queries, executedQuery{Query: query, Params: params})
	return neo4j.EagerResult{}, m.Err
}

func (m *mockDriver) BuildIndices(ctx context.Context) error {
	m.Indexed = true
	return m.IndexErr
}

func (m *mockDriver) Close(ctx context.Context) error {
	return nil
}

func testStore() *kb.Store {
	return kb.NewStore([]kb.Triplet{
		{Subject: "lung nodule", Predicate: "located_in", Object: "right lung"},
		{Subject: "lung nodule", Predicate: "has_suggestive_of", Object: "malignancy"},
	})
}

func TestExportMergesEveryTriplet(t *testing.T) {
	driver := &mockDriver{}
	e := &Exporter{Driver: driver, Log: zaptest.NewLogger(t).Sugar()}

	require.NoError(t, e.Export(context.Background(), testStore()))

	assert.True(t, driver.Indexed)
	require.Len(t, driver.Queries, 2)
	assert.Equal(t, mergeTripletQuery, driver.Queries[0].Query)
	assert.Equal(t, "lung nodule", driver.Queries[0].Params["subject"])
	assert.Equal(t, "located_in", driver.Queries[0].Params["predicate"])
	assert.Equal(t, "malignancy", driver.Queries[1].Params["object"])
}

func TestExportStopsOnQueryError(t *testing.T) {
	driver := &mockDriver{Err: errors.New("bolt connection reset")}
	e := &Exporter{Driver: driver, Log: zaptest.NewLogger(t).Sugar()}

	err := e.Export(context.Background(), testStore())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export triplet 0")
	assert.Len(t, driver.Queries, 1)
}

func TestExportFailsWhenIndicesCannotBeBuilt(t *testing.T) {
	driver := &mockDriver{IndexErr: errors.New("unavailable")}
	e := &Exporter{Driver: driver, Log: zaptest.NewLogger(t).Sugar()}

	err := e.Export(context.Background(), testStore())
	require.Error(t, err)
	assert.Empty(t, driver.Queries)
}
