package whisper

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"video-to-transcript/internal/domain"
)

// DefaultModel is the recommended speed/quality balance.
const DefaultModel = "base"

const downloadTimeout = 30 * time.Minute

var modelCatalog = []domain.ModelOption{
	{
		ID:          "tiny",
		Name:        "Tiny",
		FileName:    "ggml-tiny.bin",
		URL:         "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-tiny.bin",
		SizeLabel:   "~75 MB",
		Description: "Fastest, least accurate.",
	},
	{
		ID:          "base",
		Name:        "Base",
		FileName:    "ggml-base.bin",
		URL:         "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-base.bin",
		SizeLabel:   "~142 MB",
		Description: "Good balance of speed and accuracy (recommended).",
	},
	{
		ID:          "small",
		Name:        "Small",
		FileName:    "ggml-small.bin",
		URL:         "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-small.bin",
		SizeLabel:   "~466 MB",
		Description: "Better accuracy, slower.",
	},
	{
		ID:          "medium",
		Name:        "Medium",
		FileName:    "ggml-medium.bin",
		URL:         "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-medium.bin",
		SizeLabel:   "~1.5 GB",
		Description: "High accuracy, significantly slower.",
	},
	{
		ID:          "large-v3",
		Name:        "Large v3",
		FileName:    "ggml-large-v3.bin",
		URL:         "https://huggingface.co/ggerganov/whisper.cpp/resolve/main/ggml-large-v3.bin",
		SizeLabel:   "~2.9 GB",
		Description: "Best accuracy, slowest.",
	},
}

// Catalog returns the model presets, marking entries present in cacheDir.
func Catalog(cacheDir string) []domain.ModelOption {
	models := make([]domain.ModelOption, len(modelCatalog))
	copy(models, modelCatalog)

	for i := range models {
		candidate := filepath.Join(cacheDir, models[i].FileName)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		models[i].Downloaded = true
		models[i].LocalPath = candidate
	}
	return models
}

// Lookup returns the catalog entry for a model ID.
func Lookup(id string) (domain.ModelOption, bool) {
	for _, model := range modelCatalog {
		if model.ID == id {
			return model, true
		}
	}
	return domain.ModelOption{}, false
}

// ModelIDs returns catalog IDs in presentation order.
func ModelIDs() []string {
	ids := make([]string, len(modelCatalog))
	for i, model := range modelCatalog {
		ids[i] = model.ID
	}
	return ids
}

// Download fetches a catalog model into cacheDir and returns the local path.
// The file is written to a temp name first and renamed, so an interrupted
// download never leaves a half-written model behind.
func Download(id, cacheDir string) (string, error) {
	model, ok := Lookup(id)
	if !ok {
		return "", fmt.Errorf("unknown model id: %s", id)
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("create model cache dir: %w", err)
	}

	destPath := filepath.Join(cacheDir, model.FileName)
	if info, err := os.Stat(destPath); err == nil && info.Size() > 0 {
		return destPath, nil
	}

	client := &http.Client{Timeout: downloadTimeout}
	resp, err := client.Get(model.URL)
	if err != nil {
		return "", fmt.Errorf("download model %s: %w", model.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download model %s: HTTP %d", model.Name, resp.StatusCode)
	}

	tmpPath := destPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("download model %s: %w", model.Name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("finish model file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("move model into cache: %w", err)
	}
	return destPath, nil
}
