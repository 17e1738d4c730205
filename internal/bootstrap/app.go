// Package bootstrap wires configuration, the worklist, the pipeline, and
// the event bus into one application object shared by all commands.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/atotto/clipboard"

	"video-to-transcript/internal/config"
	"video-to-transcript/internal/diagnostics"
	"video-to-transcript/internal/domain"
	"video-to-transcript/internal/export"
	"video-to-transcript/internal/jobs"
	"video-to-transcript/internal/media"
	"video-to-transcript/internal/transcribe"
	"video-to-transcript/internal/whisper"
	"video-to-transcript/internal/worklist"
)

// batchRunner isolates the batch orchestrator behind an interface.
type batchRunner interface {
	Run(ctx context.Context, items []*domain.VideoItem, opts transcribe.Options, sink transcribe.BatchSink)
}

// App holds the wired application state for one process.
type App struct {
	Settings domain.Settings
	Store    config.Store
	Worklist *worklist.Worklist
	Bus      *jobs.EventBus
	Models   *whisper.Manager

	batch     batchRunner
	checker   *diagnostics.Checker
	writeText func(string) error
}

// New loads settings from the store and wires all collaborators.
func New(store config.Store) (*App, error) {
	settings, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	settings = config.Normalize(settings)

	manager := whisper.NewManager(whisper.NewCLIEngine(settings.WhisperPath, settings.CacheDir))
	pipeline := transcribe.NewPipeline(manager, func() transcribe.Extractor {
		return media.NewExtractor(settings.FFmpegPath, settings.FFprobePath)
	})

	return &App{
		Settings:  settings,
		Store:     store,
		Worklist:  worklist.New(),
		Bus:       jobs.NewEventBus(1000),
		Models:    manager,
		batch:     transcribe.NewBatch(pipeline),
		checker:   diagnostics.NewChecker(),
		writeText: clipboard.WriteAll,
	}, nil
}

// Options derives pipeline options from current settings, letting callers
// override the model and mode per run.
func (a *App) Options(model string, mode domain.SegmentationMode) transcribe.Options {
	if model == "" {
		model = a.Settings.Model
	}
	if mode == "" {
		mode = domain.SegmentationMode(a.Settings.Mode)
	}
	return transcribe.Options{
		Model:    model,
		Mode:     mode,
		Language: a.Settings.Language,
	}
}

// Add registers media paths on the worklist, returning the items in input
// order.
func (a *App) Add(paths ...string) []*domain.VideoItem {
	items := make([]*domain.VideoItem, 0, len(paths))
	for _, path := range paths {
		items = append(items, a.Worklist.Add(path))
	}
	return items
}

// Transcribe runs the batch synchronously over the given items, publishing
// run events on the bus alongside the caller's sink. The single active-run
// slot is claimed for the duration; Cancel aborts the run cooperatively.
func (a *App) Transcribe(ctx context.Context, items []*domain.VideoItem, opts transcribe.Options, extra transcribe.BatchSink) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.Worklist.Begin(cancel); err != nil {
		return err
	}
	defer a.Worklist.End()

	a.batch.Run(runCtx, items, opts, tee(jobs.BusSink(a.Bus, jobs.NewRunID()), extra))
	return nil
}

// Start launches Transcribe on its own goroutine, returning once the run
// slot is claimed. done receives the outcome when the run finishes.
func (a *App) Start(ctx context.Context, items []*domain.VideoItem, opts transcribe.Options, extra transcribe.BatchSink) (<-chan struct{}, error) {
	runCtx, cancel := context.WithCancel(ctx)
	if err := a.Worklist.Begin(cancel); err != nil {
		cancel()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer a.Worklist.End()
		defer cancel()
		a.batch.Run(runCtx, items, opts, tee(jobs.BusSink(a.Bus, jobs.NewRunID()), extra))
	}()
	return done, nil
}

// Cancel requests cancellation of the active run.
func (a *App) Cancel() error {
	return a.Worklist.Cancel()
}

// SetMode swaps an item's displayed segments between natural-pause and
// sentence-level segmentation without re-running inference. Natural mode
// restores the inference-time segments exactly.
func (a *App) SetMode(path string, mode domain.SegmentationMode) error {
	item, ok := a.Worklist.Get(path)
	if !ok {
		return worklist.ErrNotInWorklist
	}
	if !item.IsTranscribed() {
		return fmt.Errorf("no transcript available for %s", item.Filename())
	}

	switch mode {
	case domain.ModeSentenceLevel:
		if sentences := transcribe.BySentence(item.WordData); len(sentences) > 0 {
			item.Segments = sentences
		}
	case domain.ModeNaturalPauses:
		item.Segments = append([]domain.TranscriptionSegment(nil), item.OriginalSegments...)
	default:
		return fmt.Errorf("unknown segmentation mode: %s", mode)
	}
	return nil
}

// ApplyEdit reparses a manually edited plain-text transcript back into an
// item's segments. An edit that yields no segments leaves the item
// unchanged.
func (a *App) ApplyEdit(path, text string) error {
	item, ok := a.Worklist.Get(path)
	if !ok {
		return worklist.ErrNotInWorklist
	}
	if !item.IsTranscribed() {
		return fmt.Errorf("no transcript available for %s", item.Filename())
	}

	if segments := export.ReparseEdited(text, item.Segments); len(segments) > 0 {
		item.Segments = segments
	}
	return nil
}

// Reset clears an item's transcript and error state so it can be re-run.
func (a *App) Reset(path string) error {
	item, ok := a.Worklist.Get(path)
	if !ok {
		return worklist.ErrNotInWorklist
	}
	item.ClearTranscription()
	return nil
}

// Export writes an item's transcript in the given format, returning the
// path written.
func (a *App) Export(path string, format export.Format, outputPath string, timestamps bool) (string, error) {
	item, ok := a.Worklist.Get(path)
	if !ok {
		return "", worklist.ErrNotInWorklist
	}
	return export.Write(item, format, outputPath, timestamps)
}

// CopyText places an item's full transcript text on the system clipboard.
func (a *App) CopyText(path string) error {
	item, ok := a.Worklist.Get(path)
	if !ok {
		return worklist.ErrNotInWorklist
	}
	text := item.FullText()
	if text == "" {
		return export.ErrNoTranscript
	}
	return a.writeText(text)
}

// Diagnostics runs the environment checks against current settings.
func (a *App) Diagnostics() domain.DiagnosticReport {
	return a.checker.Run(a.Settings)
}

// SaveSettings normalizes, persists, and adopts new settings.
func (a *App) SaveSettings(settings domain.Settings) error {
	settings = config.Normalize(settings)
	if err := a.Store.Save(settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	a.Settings = settings
	return nil
}

// tee fans batch events out to two sinks in order.
func tee(first, second transcribe.BatchSink) transcribe.BatchSink {
	return transcribe.BatchSink{
		OnItemStarted: func(item *domain.VideoItem) {
			first.OnItemStarted(item)
			if second.OnItemStarted != nil {
				second.OnItemStarted(item)
			}
		},
		OnItemProgress: func(item *domain.VideoItem, percent float64, message string) {
			first.OnItemProgress(item, percent, message)
			if second.OnItemProgress != nil {
				second.OnItemProgress(item, percent, message)
			}
		},
		OnItemSegment: func(item *domain.VideoItem, segment domain.TranscriptionSegment) {
			first.OnItemSegment(item, segment)
			if second.OnItemSegment != nil {
				second.OnItemSegment(item, segment)
			}
		},
		OnItemCompleted: func(item *domain.VideoItem) {
			first.OnItemCompleted(item)
			if second.OnItemCompleted != nil {
				second.OnItemCompleted(item)
			}
		},
		OnItemError: func(item *domain.VideoItem, message string) {
			first.OnItemError(item, message)
			if second.OnItemError != nil {
				second.OnItemError(item, message)
			}
		},
		OnBatchCompleted: func() {
			first.OnBatchCompleted()
			if second.OnBatchCompleted != nil {
				second.OnBatchCompleted()
			}
		},
	}
}

// NewForTests wires an app over injectable collaborators.
func NewForTests(settings domain.Settings, store config.Store, batch batchRunner, writeText func(string) error) *App {
	return &App{
		Settings:  settings,
		Store:     store,
		Worklist:  worklist.New(),
		Bus:       jobs.NewEventBus(1000),
		batch:     batch,
		checker:   diagnostics.NewChecker(),
		writeText: writeText,
	}
}
