package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"video-to-transcript/internal/domain"
	"video-to-transcript/internal/eventstream"
	"video-to-transcript/internal/export"
	"video-to-transcript/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Watch a directory and transcribe media files as they appear",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringP("model", "m", "", "whisper model (tiny, base, small, medium, large-v3)")
	watchCmd.Flags().BoolP("sentences", "s", false, "resegment transcripts at sentence boundaries")
	watchCmd.Flags().StringP("format", "f", "srt", "export format ("+formatList()+")")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(command *cobra.Command, args []string) error {
	model, _ := command.Flags().GetString("model")
	sentences, _ := command.Flags().GetBool("sentences")
	formatName, _ := command.Flags().GetString("format")

	format, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	info, err := os.Stat(args[0])
	if err != nil || !info.IsDir() {
		return fmt.Errorf("not a directory: %s", args[0])
	}

	app, err := newApp()
	if err != nil {
		return err
	}

	mode := domain.SegmentationMode("")
	if sentences {
		mode = domain.ModeSentenceLevel
	}
	opts := app.Options(model, mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if app.Settings.Listen != "" {
		stream := eventstream.NewServer(app.Bus)
		go stream.ListenAndServe(ctx, app.Settings.Listen)
		fmt.Fprintf(command.ErrOrStderr(), "Event stream on ws://%s/events\n", app.Settings.Listen)
	}

	out := command.OutOrStdout()
	fmt.Fprintf(out, "Watching %s\n", args[0])

	watcher := watch.NewWatcher(args[0], func(path string) {
		item := app.Worklist.Add(path)
		if item.IsTranscribed() || item.HasError() {
			return
		}
		if err := app.Transcribe(ctx, []*domain.VideoItem{item}, opts, consoleSink(command)); err != nil {
			fmt.Fprintf(command.ErrOrStderr(), "%s: %v\n", item.Filename(), err)
			return
		}
		if item.HasError() {
			fmt.Fprintf(command.ErrOrStderr(), "%s: %s\n", item.Filename(), item.ErrorMessage)
			return
		}
		if ctx.Err() != nil {
			return
		}
		written, err := app.Export(item.Path, format, "", false)
		if err != nil {
			fmt.Fprintf(command.ErrOrStderr(), "%s: %v\n", item.Filename(), err)
			return
		}
		fmt.Fprintf(out, "Wrote %s\n", written)
	})

	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
