package kb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const radGraphFixture = `{
  "report1": {
    "entities": {
      "1": {"label": "nodule", "label_type": "OBS", "attributes": {"size": "2cm"}},
      "2": {"label": "right lung", "label_type": "ANAT"}
    },
    "relations": [
      {"subject": "1", "object": "2", "type": "located_at"},
      {"subject": "1", "object": "99", "type": "dangling"}
    ]
  }
}`

const tcgaFixture = `[
  {
    "findings": {
      "lung": [
        {"entity": "adenocarcinoma", "attributes": {"grade": "II"}},
        {"entity": ""}
      ]
    }
  }
]`

func TestPreprocessorRun(t *testing.T) {
	dir := t.TempDir()
	radPath := filepath.Join(dir, "radgraph.json")
	tcgaPath := filepath.Join(dir, "tcga.json")
	require.NoError(t, os.WriteFile(radPath, []byte(radGraphFixture), 0o644))
	require.NoError(t, os.WriteFile(tcgaPath, []byte(tcgaFixture), 0o644))

	outDir := filepath.Join(dir, "processed")
	p := &Preprocessor{RadGraphPath: radPath, TCGAPath: tcgaPath, OutputDir: outDir}

	meta, err := p.Run()
	require.NoError(t, err)

	// Relation + attribute triplet from RadGraph (the dangling relation is
	// dropped), located_in + attribute triplet from TCGA.
	assert.Equal(t, 2, meta.RadgraphTriplets)
	assert.Equal(t, 2, meta.TcgaTriplets)
	assert.Equal(t, 4, meta.TotalTriplets)

	store, loadedMeta, err := Load(outDir)
	require.NoError(t, err)
	assert.Equal(t, meta, loadedMeta)

	assert.Contains(t, store.Triplets(), Triplet{"nodule:OBS", "located_at", "right lung:ANAT"})
	assert.Contains(t, store.Triplets(), Triplet{"nodule:OBS", "has_size", "2cm"})
	assert.Contains(t, store.Triplets(), Triplet{"adenocarcinoma", "located_in", "lung"})
	assert.Contains(t, store.Triplets(), Triplet{"adenocarcinoma", "has_grade", "II"})
}

func TestPreprocessorMissingSource(t *testing.T) {
	p := &Preprocessor{
		RadGraphPath: filepath.Join(t.TempDir(), "missing.json"),
		TCGAPath:     filepath.Join(t.TempDir(), "missing.json"),
		OutputDir:    t.TempDir(),
	}
	_, err := p.Run()
	assert.Error(t, err)
}
