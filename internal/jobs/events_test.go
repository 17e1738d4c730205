package jobs

import (
	"testing"

	"video-to-transcript/internal/domain"
)

// TestEventBusSince verifies incremental event reads by sequence.
func TestEventBusSince(t *testing.T) {
	bus := NewEventBus(3)
	bus.Publish(Event{Type: EventTypeProgress, Message: "1"})
	bus.Publish(Event{Type: EventTypeProgress, Message: "2"})
	bus.Publish(Event{Type: EventTypeProgress, Message: "3"})

	events := bus.Since(1)
	if len(events) != 2 {
		t.Fatalf("len = %d, want 2", len(events))
	}
	if events[0].Seq != 2 || events[1].Seq != 3 {
		t.Fatalf("unexpected seqs: %+v", events)
	}
}

// TestEventBusCapsHistory verifies buffer limit trimming behavior.
func TestEventBusCapsHistory(t *testing.T) {
	bus := NewEventBus(2)
	bus.Publish(Event{Message: "1"})
	bus.Publish(Event{Message: "2"})
	bus.Publish(Event{Message: "3"})

	events := bus.Since(0)
	if len(events) != 2 {
		t.Fatalf("len = %d, want 2", len(events))
	}
	if events[0].Message != "2" || events[1].Message != "3" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

// TestEventBusAssignsTimestamps verifies default timestamping on publish.
func TestEventBusAssignsTimestamps(t *testing.T) {
	bus := NewEventBus(10)
	published := bus.Publish(Event{Type: EventTypeItemStarted})
	if published.Timestamp.IsZero() {
		t.Fatal("timestamp not assigned")
	}
	if published.Seq != 1 {
		t.Fatalf("seq = %d, want 1", published.Seq)
	}
	if bus.LastSeq() != 1 {
		t.Fatalf("LastSeq = %d, want 1", bus.LastSeq())
	}
}

// TestBusSinkPublishesRunEvents verifies the pipeline-to-bus bridge.
func TestBusSinkPublishesRunEvents(t *testing.T) {
	bus := NewEventBus(100)
	sink := BusSink(bus, "run-1")

	item := domain.NewVideoItem("/media/a.mp4")
	item.Status = domain.StatusTranscribing

	sink.OnItemStarted(item)
	sink.OnItemProgress(item, 47, "Transcribing... (4/10s)")
	sink.OnItemSegment(item, domain.TranscriptionSegment{Start: 0, End: 4, Text: "hi"})
	sink.OnItemCompleted(item)
	sink.OnBatchCompleted()

	events := bus.Since(0)
	if len(events) != 5 {
		t.Fatalf("events = %d, want 5", len(events))
	}
	wantTypes := []EventType{
		EventTypeItemStarted,
		EventTypeProgress,
		EventTypeSegmentReady,
		EventTypeItemCompleted,
		EventTypeBatchCompleted,
	}
	for i, event := range events {
		if event.Type != wantTypes[i] {
			t.Fatalf("events[%d].Type = %s, want %s", i, event.Type, wantTypes[i])
		}
		if event.RunID != "run-1" {
			t.Fatalf("events[%d].RunID = %q", i, event.RunID)
		}
	}
	if events[1].Percent != 47 {
		t.Fatalf("progress percent = %v", events[1].Percent)
	}
	if events[2].Segment == nil || events[2].Segment.Text != "hi" {
		t.Fatalf("segment payload = %+v", events[2].Segment)
	}
	if events[4].Path != "" {
		t.Fatal("batch-completed carries no item path")
	}
}

// TestNewRunIDUnique verifies identifiers do not repeat.
func TestNewRunIDUnique(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	if a == "" || a == b {
		t.Fatalf("run ids: %q, %q", a, b)
	}
}
