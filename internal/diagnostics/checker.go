// Package diagnostics validates the external tools and filesystem paths a
// transcription run depends on.
package diagnostics

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"video-to-transcript/internal/domain"
	"video-to-transcript/internal/whisper"
)

// Checker validates external tools and required filesystem paths.
type Checker struct {
	lookPath   func(string) (string, error)
	stat       func(string) (os.FileInfo, error)
	mkdirAll   func(string, os.FileMode) error
	createTemp func(string, string) (*os.File, error)
	remove     func(string) error
}

// NewChecker builds a checker using real OS dependencies.
func NewChecker() *Checker {
	return &Checker{
		lookPath:   exec.LookPath,
		stat:       os.Stat,
		mkdirAll:   os.MkdirAll,
		createTemp: os.CreateTemp,
		remove:     os.Remove,
	}
}

// Run executes all environment checks and returns a combined report.
func (c *Checker) Run(settings domain.Settings) domain.DiagnosticReport {
	items := []domain.DiagnosticItem{
		c.checkTool(settings.FFmpegPath),
		c.checkTool(settings.FFprobePath),
		c.checkTool(settings.WhisperPath),
		c.checkModelCache(settings.Model, settings.CacheDir),
		c.checkOutputDir(settings.OutputDir),
	}

	hasFailures := false
	for _, item := range items {
		if item.Status == domain.DiagnosticStatusFail {
			hasFailures = true
			break
		}
	}

	return domain.DiagnosticReport{
		GeneratedAt: time.Now().UTC(),
		HasFailures: hasFailures,
		Items:       items,
	}
}

// checkTool verifies a required CLI executable is on PATH.
func (c *Checker) checkTool(name string) domain.DiagnosticItem {
	base := filepath.Base(name)
	path, err := c.lookPath(name)
	if err != nil {
		return domain.DiagnosticItem{
			ID:      "tool_" + base,
			Name:    base,
			Status:  domain.DiagnosticStatusFail,
			Message: fmt.Sprintf("Tool not found in PATH: %s", name),
			Hint:    "Install it and ensure the binary is available on PATH before starting a transcription.",
		}
	}

	return domain.DiagnosticItem{
		ID:      "tool_" + base,
		Name:    base,
		Status:  domain.DiagnosticStatusPass,
		Message: fmt.Sprintf("Found at %s", path),
	}
}

// checkModelCache validates the selected model is known and downloaded.
func (c *Checker) checkModelCache(model, cacheDir string) domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   "model_cache",
		Name: "Model cache",
	}

	option, ok := whisper.Lookup(model)
	if !ok {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("Unknown model: %s", model)
		item.Hint = fmt.Sprintf("Choose one of: %s.", strings.Join(whisper.ModelIDs(), ", "))
		return item
	}

	modelPath := filepath.Join(cacheDir, option.FileName)
	info, err := c.stat(modelPath)
	if err != nil {
		item.Status = domain.DiagnosticStatusFail
		if errors.Is(err, os.ErrNotExist) {
			item.Message = fmt.Sprintf("Model %s is not downloaded: %s", model, modelPath)
		} else {
			item.Message = fmt.Sprintf("Cannot access model file: %s", modelPath)
		}
		item.Hint = fmt.Sprintf("Run `models download %s` to fetch it (%s).", model, option.SizeLabel)
		return item
	}
	if info.Size() == 0 {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("Model file is empty: %s", modelPath)
		item.Hint = fmt.Sprintf("Delete it and run `models download %s` again.", model)
		return item
	}

	item.Status = domain.DiagnosticStatusPass
	item.Message = fmt.Sprintf("Model %s cached at %s", model, modelPath)
	return item
}

// checkOutputDir validates output directory existence and write access.
func (c *Checker) checkOutputDir(outputDir string) domain.DiagnosticItem {
	item := domain.DiagnosticItem{
		ID:   "output_dir",
		Name: "Output directory",
	}

	if strings.TrimSpace(outputDir) == "" {
		// Exports default next to the source file.
		item.Status = domain.DiagnosticStatusPass
		item.Message = "Exports are written next to the source files."
		return item
	}

	if err := c.mkdirAll(outputDir, 0o755); err != nil {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("Cannot create output directory: %s", outputDir)
		item.Hint = "Choose a writable location or adjust filesystem permissions."
		return item
	}

	tmpFile, err := c.createTemp(outputDir, ".write-check-*")
	if err != nil {
		item.Status = domain.DiagnosticStatusFail
		item.Message = fmt.Sprintf("Output directory is not writable: %s", outputDir)
		item.Hint = "Choose a writable directory for transcript export."
		return item
	}

	tmpPath := tmpFile.Name()
	_ = tmpFile.Close()
	_ = c.remove(tmpPath)

	item.Status = domain.DiagnosticStatusPass
	item.Message = fmt.Sprintf("Writable directory: %s", outputDir)
	return item
}

// NewCheckerForTests creates a checker with injectable dependencies.
func NewCheckerForTests(
	lookPath func(string) (string, error),
	stat func(string) (os.FileInfo, error),
	mkdirAll func(string, os.FileMode) error,
	createTemp func(string, string) (*os.File, error),
	remove func(string) error,
) *Checker {
	return &Checker{
		lookPath:   lookPath,
		stat:       stat,
		mkdirAll:   mkdirAll,
		createTemp: createTemp,
		remove:     remove,
	}
}
