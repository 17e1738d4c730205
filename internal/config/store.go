package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"video-to-transcript/internal/domain"
)

// Store defines persistence operations for app settings.
type Store interface {
	Load() (domain.Settings, error)
	Save(domain.Settings) error
}

// YAMLStore persists settings in a single YAML file on disk.
type YAMLStore struct {
	path string
}

// NewYAMLStore creates a YAML-backed settings store.
func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path}
}

// Load reads settings from disk, filling missing fields with defaults.
// A missing file returns pure defaults, not an error.
func (s *YAMLStore) Load() (domain.Settings, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultSettings(), nil
		}

		return domain.Settings{}, err
	}

	cfg := DefaultSettings()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Settings{}, err
	}

	return Normalize(cfg), nil
}

// Save writes settings as YAML and creates parent directories.
func (s *YAMLStore) Save(cfg domain.Settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(Normalize(cfg))
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o644)
}

// Normalize trims user inputs and applies defaults for empty fields.
func Normalize(cfg domain.Settings) domain.Settings {
	defaults := DefaultSettings()

	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.Model == "" {
		cfg.Model = defaults.Model
	}
	cfg.Mode = strings.TrimSpace(cfg.Mode)
	if cfg.Mode != string(domain.ModeSentenceLevel) {
		cfg.Mode = string(domain.ModeNaturalPauses)
	}
	cfg.Language = strings.TrimSpace(cfg.Language)
	if cfg.Language == "" {
		cfg.Language = "auto"
	}
	cfg.OutputDir = strings.TrimSpace(cfg.OutputDir)
	cfg.CacheDir = strings.TrimSpace(cfg.CacheDir)
	if cfg.CacheDir == "" {
		cfg.CacheDir = defaults.CacheDir
	}
	cfg.FFmpegPath = strings.TrimSpace(cfg.FFmpegPath)
	if cfg.FFmpegPath == "" {
		cfg.FFmpegPath = defaults.FFmpegPath
	}
	cfg.FFprobePath = strings.TrimSpace(cfg.FFprobePath)
	if cfg.FFprobePath == "" {
		cfg.FFprobePath = defaults.FFprobePath
	}
	cfg.WhisperPath = strings.TrimSpace(cfg.WhisperPath)
	if cfg.WhisperPath == "" {
		cfg.WhisperPath = defaults.WhisperPath
	}
	cfg.Listen = strings.TrimSpace(cfg.Listen)

	return cfg
}
