// Package jobs carries run-scoped events from the transcription pipeline to
// subscribers such as the websocket stream.
package jobs

import (
	"sync"
	"time"

	"video-to-transcript/internal/domain"
)

// EventType classifies messages emitted during a transcription run.
type EventType string

const (
	EventTypeItemStarted    EventType = "item_started"
	EventTypeProgress       EventType = "progress"
	EventTypeSegmentReady   EventType = "segment_ready"
	EventTypeItemCompleted  EventType = "item_completed"
	EventTypeItemError      EventType = "item_error"
	EventTypeBatchCompleted EventType = "batch_completed"
)

// Event is a sequenced payload consumed by stream subscribers.
type Event struct {
	Seq       int64                        `json:"seq"`
	Timestamp time.Time                    `json:"timestamp"`
	RunID     string                       `json:"runId"`
	Type      EventType                    `json:"type"`
	Path      string                       `json:"path,omitempty"`
	Status    domain.TranscriptionStatus   `json:"status,omitempty"`
	Percent   float64                      `json:"percent,omitempty"`
	Message   string                       `json:"message,omitempty"`
	Segment   *domain.TranscriptionSegment `json:"segment,omitempty"`
}

// EventBus stores recent events and provides incremental reads.
type EventBus struct {
	mu        sync.RWMutex
	nextSeq   int64
	maxEvents int
	events    []Event
}

// NewEventBus creates a bounded in-memory event buffer.
func NewEventBus(maxEvents int) *EventBus {
	if maxEvents <= 0 {
		maxEvents = 500
	}

	return &EventBus{
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
	}
}

// Publish appends one event and assigns sequence and timestamp.
func (b *EventBus) Publish(event Event) Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextSeq++
	event.Seq = b.nextSeq
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	b.events = append(b.events, event)
	if len(b.events) > b.maxEvents {
		trim := len(b.events) - b.maxEvents
		b.events = append([]Event(nil), b.events[trim:]...)
	}

	return event
}

// Since returns events with sequence strictly greater than seq.
func (b *EventBus) Since(seq int64) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.events) == 0 {
		return nil
	}

	out := make([]Event, 0, len(b.events))
	for _, event := range b.events {
		if event.Seq > seq {
			out = append(out, event)
		}
	}
	return out
}

// LastSeq returns the sequence number of the most recent event.
func (b *EventBus) LastSeq() int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.nextSeq
}
