// Package cmd defines the command line interface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"video-to-transcript/internal/bootstrap"
	"video-to-transcript/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "video-to-transcript",
	Short: "Transcribe video and audio files into subtitles and text",
	Long: "video-to-transcript extracts audio from media files, runs speech\n" +
		"inference on it, and renders the transcript as TXT, SRT, VTT, or JSON.",
	SilenceUsage: true,
}

// Execute runs the CLI, exiting non-zero on error.
func Execute() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newApp wires the application from the configured settings store.
func newApp() (*bootstrap.App, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	return bootstrap.New(config.NewYAMLStore(path))
}
