package transcribe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"video-to-transcript/internal/domain"
	"video-to-transcript/internal/whisper"
)

// Options selects model and segmentation for a run.
type Options struct {
	Model    string
	Mode     domain.SegmentationMode
	Language string
}

// Extractor is the audio-extraction collaborator boundary.
type Extractor interface {
	Extract(ctx context.Context, sourcePath string) (string, error)
	ProbeDuration(ctx context.Context, sourcePath string) (float64, error)
	Cleanup()
}

// ModelLoader is the inference-model manager boundary.
type ModelLoader interface {
	Load(name string) (whisper.Model, error)
}

// Pipeline drives one media item through extraction, inference, and
// resegmentation. A fresh Extractor is created per run so each run owns its
// temporary audio artifact exclusively.
type Pipeline struct {
	models       ModelLoader
	newExtractor func() Extractor
	stat         func(name string) (os.FileInfo, error)
}

// NewPipeline constructs a pipeline over the given collaborators.
func NewPipeline(models ModelLoader, newExtractor func() Extractor) *Pipeline {
	return &Pipeline{
		models:       models,
		newExtractor: newExtractor,
		stat:         os.Stat,
	}
}

// Run executes the state machine for one item.
//
// Collaborator failures become the item's error state with the collaborator
// message preserved; this is the only path into StatusError. Cancellation
// via ctx stops the run without any further transition, leaving the item in
// whatever status it last reached. The temporary audio artifact is released
// on every exit path.
func (p *Pipeline) Run(ctx context.Context, item *domain.VideoItem, opts Options, sink Sink) {
	extractor := p.newExtractor()
	defer extractor.Cleanup()

	if err := p.run(ctx, item, opts, sink, extractor); err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) {
			return
		}
		item.SetError(err.Error())
		sink.emitError(item, err.Error())
	}
}

func (p *Pipeline) run(ctx context.Context, item *domain.VideoItem, opts Options, sink Sink, extractor Extractor) error {
	if cancelled(ctx) {
		return nil
	}

	if _, err := p.stat(item.Path); err != nil {
		return &StageError{Stage: StageValidate, Err: fmt.Errorf("video file not found: %s", item.Path)}
	}

	item.Status = domain.StatusExtracting
	item.Progress = 5
	sink.emitProgress(item, 5, "Extracting audio...")

	if cancelled(ctx) {
		return nil
	}

	audioPath, err := extractor.Extract(ctx, item.Path)
	if err != nil {
		return &StageError{Stage: StageExtract, Err: err}
	}

	if cancelled(ctx) {
		return nil
	}

	item.Progress = 10
	sink.emitProgress(item, 10, "Loading model...")

	model, err := p.models.Load(opts.Model)
	if err != nil {
		return &StageError{Stage: StageLoadModel, Err: err}
	}

	if cancelled(ctx) {
		return nil
	}

	item.Status = domain.StatusTranscribing
	item.Progress = 15
	sink.emitProgress(item, 15, "Transcribing...")

	item.Segments = nil

	stream, info, err := model.Transcribe(ctx, audioPath, whisper.TranscribeOptions{
		WordTimestamps: true,
		BeamSize:       5,
		VADFilter:      true,
		Language:       opts.Language,
	})
	if err != nil {
		return &StageError{Stage: StageTranscribe, Err: err}
	}
	defer stream.Close()

	total := info.Duration
	if total <= 0 {
		if probed, probeErr := extractor.ProbeDuration(ctx, item.Path); probeErr == nil {
			total = probed
		}
	}
	if total < 1 {
		total = 1
	}

	var words []domain.WordTiming
	for {
		if cancelled(ctx) {
			return nil
		}

		raw, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return &StageError{Stage: StageTranscribe, Err: err}
		}

		segment := domain.TranscriptionSegment{
			Start:      raw.Start,
			End:        raw.End,
			Text:       raw.Text,
			Confidence: raw.Confidence(),
		}
		item.Segments = append(item.Segments, segment)
		sink.emitSegment(item, segment)

		for _, word := range raw.Words {
			words = append(words, domain.WordTiming{
				Start: word.Start,
				End:   word.End,
				Word:  word.Word,
			})
		}

		percent := 15 + (raw.End/total)*80
		if percent > 95 {
			percent = 95
		}
		item.Progress = percent
		sink.emitProgress(item, percent, fmt.Sprintf("Transcribing... (%d/%ds)", int(raw.End), int(total)))
	}

	if cancelled(ctx) {
		return nil
	}

	item.OriginalSegments = append([]domain.TranscriptionSegment(nil), item.Segments...)
	item.WordData = words

	if opts.Mode == domain.ModeSentenceLevel && len(words) > 0 {
		item.Progress = 96
		sink.emitProgress(item, 96, "Resegmenting by sentences...")

		// An empty resegmentation keeps the natural-pause segments; a
		// transcribed item never ends up with zero segments.
		if sentences := BySentence(words); len(sentences) > 0 {
			item.Segments = sentences
		}
	}

	item.Status = domain.StatusCompleted
	item.Progress = 100
	sink.emitProgress(item, 100, "Complete")
	sink.emitCompleted(item)
	return nil
}

// cancelled reports whether the run should stop making progress.
func cancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// NewPipelineForTests constructs a pipeline with an injectable stat.
func NewPipelineForTests(models ModelLoader, newExtractor func() Extractor, stat func(string) (os.FileInfo, error)) *Pipeline {
	return &Pipeline{
		models:       models,
		newExtractor: newExtractor,
		stat:         stat,
	}
}
