package kb

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	tripletsFile = "medical_triplets.gob"
	indexFile    = "entity_index.gob"
	metadataFile = "metadata.json"
)

// Metadata is the JSON sidecar describing a persisted knowledge store.
type Metadata struct {
	TotalTriplets    int `json:"total_triplets"`
	RadgraphTriplets int `json:"radgraph_triplets"`
	TcgaTriplets     int `json:"tcga_triplets"`
	UniqueEntities   int `json:"unique_entities"`
}

// Exists reports whether a persisted knowledge store is present in dir.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, tripletsFile))
	return err == nil
}

// Save persists the triplet collection, the entity index and the metadata
// sidecar into dir.
func Save(dir string, store *Store, meta Metadata) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create knowledge store dir: %w", err)
	}

	if err := writeGob(filepath.Join(dir, tripletsFile), store.Triplets()); err != nil {
		return fmt.Errorf("save triplets: %w", err)
	}
	if err := writeGob(filepath.Join(dir, indexFile), store.Index()); err != nil {
		return fmt.Errorf("save entity index: %w", err)
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, metadataFile), data, 0o644); err != nil {
		return fmt.Errorf("save metadata: %w", err)
	}
	return nil
}

// Load reads a persisted knowledge store. Missing or corrupt artifacts are
// fatal: the store either loads fully or not at all.
func Load(dir string) (*Store, Metadata, error) {
	var meta Metadata

	var triplets []Triplet
	if err := readGob(filepath.Join(dir, tripletsFile), &triplets); err != nil {
		return nil, meta, fmt.Errorf("load triplets: %w", err)
	}

	var index map[string][]Triplet
	if err := readGob(filepath.Join(dir, indexFile), &index); err != nil {
		return nil, meta, fmt.Errorf("load entity index: %w", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, meta, fmt.Errorf("load metadata: %w", err)
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, meta, fmt.Errorf("parse metadata: %w", err)
	}

	// The index is rebuilt from the triplets so entity order is the
	// construction order; the persisted index only cross-checks integrity.
	store := NewStore(triplets)
	if len(store.Index()) != len(index) {
		return nil, meta, fmt.Errorf("entity index does not match triplets: %d keys stored, %d rebuilt",
			len(index), len(store.Index()))
	}

	return store, meta, nil
}

func writeGob(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(v)
}

func readGob(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewDecoder(f).Decode(v)
}
