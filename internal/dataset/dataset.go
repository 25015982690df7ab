// Package dataset loads medical VQA items. A dataset file is a JSON array of
// {image, question, answer} objects; image paths are relative to the file.
package dataset

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/medgraphlab/smra/internal/llm"
)

type Item struct {
	Image    string `json:"image"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Dataset struct {
	Name  string
	Items []Item

	baseDir string
}

func Load(name, path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}

	return &Dataset{
		Name:    name,
		Items:   items,
		baseDir: filepath.Dir(path),
	}, nil
}

func (d *Dataset) Len() int {
	return len(d.Items)
}

// LoadImage reads the image bytes for an item and sniffs the content type.
func (d *Dataset) LoadImage(i int) (*llm.Image, error) {
	path := d.Items[i].Image
	if !filepath.IsAbs(path) {
		path = filepath.Join(d.baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return &llm.Image{
		Data: data,
		MIME: http.DetectContentType(data),
	}, nil
}
