package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"video-to-transcript/internal/domain"
	"video-to-transcript/internal/eventstream"
	"video-to-transcript/internal/export"
	"video-to-transcript/internal/media"
	"video-to-transcript/internal/transcribe"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <file>...",
	Short: "Transcribe one or more media files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTranscribe,
}

func init() {
	transcribeCmd.Flags().StringP("model", "m", "", "whisper model (tiny, base, small, medium, large-v3)")
	transcribeCmd.Flags().BoolP("sentences", "s", false, "resegment the transcript at sentence boundaries")
	transcribeCmd.Flags().StringP("format", "f", "txt", "export format ("+formatList()+")")
	transcribeCmd.Flags().StringP("output", "o", "", "output path (single input only; default: source path with format extension)")
	transcribeCmd.Flags().BoolP("timestamps", "t", false, "prefix plain-text paragraphs with [HH:MM:SS]")
	transcribeCmd.Flags().BoolP("copy", "c", false, "copy the transcript text to the clipboard")
	transcribeCmd.Flags().Bool("force", false, "re-transcribe files even if a previous run completed or failed")

	rootCmd.AddCommand(transcribeCmd)
}

func formatList() string {
	names := make([]string, 0, len(export.Formats()))
	for _, format := range export.Formats() {
		names = append(names, string(format))
	}
	return strings.Join(names, ", ")
}

func runTranscribe(command *cobra.Command, args []string) error {
	model, _ := command.Flags().GetString("model")
	sentences, _ := command.Flags().GetBool("sentences")
	formatName, _ := command.Flags().GetString("format")
	outputPath, _ := command.Flags().GetString("output")
	timestamps, _ := command.Flags().GetBool("timestamps")
	copyText, _ := command.Flags().GetBool("copy")
	force, _ := command.Flags().GetBool("force")

	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}
	if outputPath != "" && len(args) > 1 {
		return fmt.Errorf("--output needs a single input file, got %d", len(args))
	}

	for _, path := range args {
		if !media.IsSupportedFile(path) {
			return fmt.Errorf("unsupported media file: %s", path)
		}
	}

	app, err := newApp()
	if err != nil {
		return err
	}

	mode := domain.SegmentationMode("")
	if sentences {
		mode = domain.ModeSentenceLevel
	}

	items := app.Add(args...)
	if force {
		for _, item := range items {
			item.ClearTranscription()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if app.Settings.Listen != "" {
		stream := eventstream.NewServer(app.Bus)
		go stream.ListenAndServe(ctx, app.Settings.Listen)
		fmt.Fprintf(command.ErrOrStderr(), "Event stream on ws://%s/events\n", app.Settings.Listen)
	}

	if err := app.Transcribe(ctx, items, app.Options(model, mode), consoleSink(command)); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return fmt.Errorf("transcription cancelled")
	}

	failures := 0
	for _, item := range items {
		if item.HasError() {
			fmt.Fprintf(command.ErrOrStderr(), "%s: %s\n", item.Filename(), item.ErrorMessage)
			failures++
			continue
		}
		written, err := app.Export(item.Path, format, outputPath, timestamps)
		if err != nil {
			fmt.Fprintf(command.ErrOrStderr(), "%s: %v\n", item.Filename(), err)
			failures++
			continue
		}
		fmt.Fprintf(command.OutOrStdout(), "Wrote %s\n", written)
	}

	if copyText && len(items) > 0 && !items[0].HasError() {
		if err := app.CopyText(items[0].Path); err != nil {
			fmt.Fprintf(command.ErrOrStderr(), "clipboard: %v\n", err)
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d files failed", failures, len(items))
	}
	return nil
}

// consoleSink prints item lifecycle events, overwriting the progress line.
func consoleSink(command *cobra.Command) transcribe.BatchSink {
	out := command.OutOrStdout()
	return transcribe.BatchSink{
		OnItemStarted: func(item *domain.VideoItem) {
			fmt.Fprintf(out, "Transcribing %s\n", item.Filename())
		},
		OnItemProgress: func(item *domain.VideoItem, percent float64, message string) {
			fmt.Fprintf(out, "\r  %3.0f%% %-40s", percent, message)
		},
		OnItemCompleted: func(item *domain.VideoItem) {
			fmt.Fprintf(out, "\r  done: %d segments%-30s\n", len(item.Segments), "")
		},
		OnItemError: func(item *domain.VideoItem, message string) {
			fmt.Fprintf(out, "\r  failed: %-40s\n", message)
		},
	}
}
