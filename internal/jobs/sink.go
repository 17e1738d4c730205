package jobs

import (
	"github.com/google/uuid"

	"video-to-transcript/internal/domain"
	"video-to-transcript/internal/transcribe"
)

// NewRunID allocates an identifier shared by all events of one run.
func NewRunID() string {
	return uuid.NewString()
}

// BusSink bridges batch pipeline callbacks onto the event bus, tagging
// every event with the run's identifier.
func BusSink(bus *EventBus, runID string) transcribe.BatchSink {
	return transcribe.BatchSink{
		OnItemStarted: func(item *domain.VideoItem) {
			bus.Publish(Event{
				RunID:  runID,
				Type:   EventTypeItemStarted,
				Path:   item.Path,
				Status: item.Status,
			})
		},
		OnItemProgress: func(item *domain.VideoItem, percent float64, message string) {
			bus.Publish(Event{
				RunID:   runID,
				Type:    EventTypeProgress,
				Path:    item.Path,
				Status:  item.Status,
				Percent: percent,
				Message: message,
			})
		},
		OnItemSegment: func(item *domain.VideoItem, segment domain.TranscriptionSegment) {
			bus.Publish(Event{
				RunID:   runID,
				Type:    EventTypeSegmentReady,
				Path:    item.Path,
				Status:  item.Status,
				Segment: &segment,
			})
		},
		OnItemCompleted: func(item *domain.VideoItem) {
			bus.Publish(Event{
				RunID:  runID,
				Type:   EventTypeItemCompleted,
				Path:   item.Path,
				Status: item.Status,
			})
		},
		OnItemError: func(item *domain.VideoItem, message string) {
			bus.Publish(Event{
				RunID:   runID,
				Type:    EventTypeItemError,
				Path:    item.Path,
				Status:  item.Status,
				Message: message,
			})
		},
		OnBatchCompleted: func() {
			bus.Publish(Event{
				RunID: runID,
				Type:  EventTypeBatchCompleted,
			})
		},
	}
}
