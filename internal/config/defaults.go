package config

import (
	"os"
	"path/filepath"

	"video-to-transcript/internal/domain"
)

// DefaultPath returns the default config file location.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".config", "video-to-transcript", "config.yaml")
}

// DefaultSettings returns baseline configuration for first launch.
func DefaultSettings() domain.Settings {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return domain.Settings{
		Model:       "base",
		Mode:        string(domain.ModeNaturalPauses),
		Language:    "auto",
		OutputDir:   "",
		CacheDir:    filepath.Join(homeDir, ".cache", "video-to-transcript", "models"),
		FFmpegPath:  "ffmpeg",
		FFprobePath: "ffprobe",
		WhisperPath: "whisper-transcribe",
		Listen:      "",
	}
}
