// Package ledger is the persisted, resumable record of per-item outcomes.
// The store is a single JSON array sorted by index and rewritten in full on
// every write; there is no concurrent writer in the pipeline, so no locking.
package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// StatusError marks an entry recorded at the per-item failure boundary.
// Entries carrying it stay eligible for reprocessing in later rounds.
const StatusError = "error"

// Entry is one per-item outcome, keyed by Index.
type Entry struct {
	Index       int    `json:"index"`
	Question    string `json:"question"`
	GroundTruth string `json:"ground_truth"`
	Prediction  string `json:"prediction"`
	Status      string `json:"status,omitempty"`
}

type Ledger struct {
	path string
}

func New(path string) *Ledger {
	return &Ledger{path: path}
}

// Path returns the backing file location.
func (l *Ledger) Path() string {
	return l.path
}

// Entries reads the full store. A missing file is an empty ledger.
func (l *Ledger) Entries() ([]Entry, error) {
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse ledger %s: %w", l.path, err)
	}
	return entries, nil
}

// Upsert inserts the entry or overwrites the existing entry with the same
// index, then rewrites the whole store sorted ascending by index.
func (l *Ledger) Upsert(e Entry) error {
	entries, err := l.Entries()
	if err != nil {
		return err
	}

	replaced := false
	for i := range entries {
		if entries[i].Index == e.Index {
			entries[i] = e
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, e)
	}

	sort.Slice(entries, func(a, b int) bool {
		return entries[a].Index < entries[b].Index
	})

	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create ledger dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}

// ListUnfinished returns, in order, every index in [0, total) that has no
// ledger entry or whose entry is an error result.
func (l *Ledger) ListUnfinished(total int) ([]int, error) {
	entries, err := l.Entries()
	if err != nil {
		return nil, err
	}

	finished := make(map[int]bool, len(entries))
	for _, e := range entries {
		if e.Status == StatusError {
			continue
		}
		finished[e.Index] = true
	}

	var todo []int
	for i := 0; i < total; i++ {
		if !finished[i] {
			todo = append(todo, i)
		}
	}
	return todo, nil
}
