package transcribe

import (
	"context"

	"video-to-transcript/internal/domain"
)

// itemRunner isolates the single-item pipeline behind an interface.
type itemRunner interface {
	Run(ctx context.Context, item *domain.VideoItem, opts Options, sink Sink)
}

// Batch runs the single-item pipeline across a worklist, sequentially. The
// model instance is shared and inference is the bottleneck, so items are
// never transcribed concurrently.
type Batch struct {
	runner itemRunner
}

// NewBatch creates a batch orchestrator over a pipeline.
func NewBatch(pipeline *Pipeline) *Batch {
	return &Batch{runner: pipeline}
}

// Run processes items in worklist order.
//
// Items already completed or in error are skipped; retrying either requires
// an explicit reset by the caller. One item's failure never aborts the rest.
// The batch-completed event fires exactly once, even when the run is
// cancelled partway or the list is empty.
func (b *Batch) Run(ctx context.Context, items []*domain.VideoItem, opts Options, sink BatchSink) {
	defer sink.emitBatchCompleted()

	for _, item := range items {
		if cancelled(ctx) {
			return
		}
		if item.Status == domain.StatusCompleted {
			continue
		}
		if item.HasError() {
			continue
		}

		sink.emitItemStarted(item)

		b.runner.Run(ctx, item, opts, Sink{
			OnProgress:  sink.OnItemProgress,
			OnSegment:   sink.OnItemSegment,
			OnCompleted: sink.OnItemCompleted,
			OnError:     sink.OnItemError,
		})
	}
}

// NewBatchForTests creates a batch over an injectable runner.
func NewBatchForTests(runner itemRunner) *Batch {
	return &Batch{runner: runner}
}
