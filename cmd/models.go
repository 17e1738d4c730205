package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"video-to-transcript/internal/whisper"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Manage the whisper model cache",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available models and their download state",
	RunE: func(command *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		out := command.OutOrStdout()
		for _, option := range whisper.Catalog(app.Settings.CacheDir) {
			state := " "
			if option.Downloaded {
				state = "*"
			}
			fmt.Fprintf(out, "%s %-10s %-8s %s\n", state, option.ID, option.SizeLabel, option.Description)
		}
		fmt.Fprintf(out, "\n* downloaded to %s\n", app.Settings.CacheDir)
		return nil
	},
}

var modelsDownloadCmd = &cobra.Command{
	Use:   "download <model>",
	Short: "Download a model into the cache",
	Args:  cobra.ExactArgs(1),
	RunE: func(command *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		fmt.Fprintf(command.OutOrStdout(), "Downloading %s...\n", args[0])
		path, err := whisper.Download(args[0], app.Settings.CacheDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(command.OutOrStdout(), "Saved %s\n", path)
		return nil
	},
}

func init() {
	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsDownloadCmd)
	rootCmd.AddCommand(modelsCmd)
}
