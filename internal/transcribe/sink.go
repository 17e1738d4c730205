package transcribe

import "video-to-transcript/internal/domain"

// Sink receives events from one pipeline run. Nil callbacks are skipped, so
// callers wire only what they consume; the pipeline never depends on any
// presentation mechanism.
type Sink struct {
	OnProgress  func(item *domain.VideoItem, percent float64, message string)
	OnSegment   func(item *domain.VideoItem, segment domain.TranscriptionSegment)
	OnCompleted func(item *domain.VideoItem)
	OnError     func(item *domain.VideoItem, message string)
}

func (s Sink) emitProgress(item *domain.VideoItem, percent float64, message string) {
	if s.OnProgress != nil {
		s.OnProgress(item, percent, message)
	}
}

func (s Sink) emitSegment(item *domain.VideoItem, segment domain.TranscriptionSegment) {
	if s.OnSegment != nil {
		s.OnSegment(item, segment)
	}
}

func (s Sink) emitCompleted(item *domain.VideoItem) {
	if s.OnCompleted != nil {
		s.OnCompleted(item)
	}
}

func (s Sink) emitError(item *domain.VideoItem, message string) {
	if s.OnError != nil {
		s.OnError(item, message)
	}
}

// BatchSink receives events from a batch run.
type BatchSink struct {
	OnItemStarted    func(item *domain.VideoItem)
	OnItemProgress   func(item *domain.VideoItem, percent float64, message string)
	OnItemSegment    func(item *domain.VideoItem, segment domain.TranscriptionSegment)
	OnItemCompleted  func(item *domain.VideoItem)
	OnItemError      func(item *domain.VideoItem, message string)
	OnBatchCompleted func()
}

func (s BatchSink) emitItemStarted(item *domain.VideoItem) {
	if s.OnItemStarted != nil {
		s.OnItemStarted(item)
	}
}

func (s BatchSink) emitBatchCompleted() {
	if s.OnBatchCompleted != nil {
		s.OnBatchCompleted()
	}
}
