package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Minimal valid PNG header so content sniffing has something to chew on.
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func writeDataset(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "vqa.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeDataset(t, `[
		{"image": "scans/a.png", "question": "Is there a nodule?", "answer": "yes"},
		{"image": "scans/b.png", "question": "Which lobe?", "answer": "upper"}
	]`)

	ds, err := Load("vqa-rad", path)
	require.NoError(t, err)

	assert.Equal(t, "vqa-rad", ds.Name)
	require.Equal(t, 2, ds.Len())
	assert.Equal(t, "Is there a nodule?", ds.Items[0].Question)
	assert.Equal(t, "upper", ds.Items[1].Answer)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := writeDataset(t, `{"not": "an array"}`)

	_, err := Load("vqa-rad", path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("vqa-rad", filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestLoadImageRelativeToDatasetFile(t *testing.T) {
	path := writeDataset(t, `[{"image": "scans/a.png", "question": "q", "answer": "a"}]`)
	dir := filepath.Dir(path)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scans"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scans", "a.png"), pngBytes, 0o644))

	ds, err := Load("vqa-rad", path)
	require.NoError(t, err)

	img, err := ds.LoadImage(0)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, img.Data)
	assert.Equal(t, "image/png", img.MIME)
}

func TestLoadImageMissing(t *testing.T) {
	path := writeDataset(t, `[{"image": "scans/a.png", "question": "q", "answer": "a"}]`)

	ds, err := Load("vqa-rad", path)
	require.NoError(t, err)

	_, err = ds.LoadImage(0)
	require.Error(t, err)
}
