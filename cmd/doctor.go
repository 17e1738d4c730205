package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"video-to-transcript/internal/domain"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check external tools, the model cache, and the output directory",
	RunE: func(command *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		report := app.Diagnostics()
		out := command.OutOrStdout()
		for _, item := range report.Items {
			mark := "ok"
			if item.Status == domain.DiagnosticStatusFail {
				mark = "FAIL"
			}
			fmt.Fprintf(out, "[%-4s] %-18s %s\n", mark, item.Name, item.Message)
			if item.Hint != "" {
				fmt.Fprintf(out, "       %s\n", item.Hint)
			}
		}

		if report.HasFailures {
			return fmt.Errorf("environment checks failed")
		}
		fmt.Fprintln(out, "All checks passed.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
