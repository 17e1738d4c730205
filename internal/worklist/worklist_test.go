package worklist

import (
	"testing"

	"video-to-transcript/internal/domain"
)

func TestAddPreservesOrder(t *testing.T) {
	w := New()
	w.Add("/media/b.mp4")
	w.Add("/media/a.mp4")
	w.Add("/media/c.mp4")

	items := w.Items()
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	want := []string{"b.mp4", "a.mp4", "c.mp4"}
	for i, item := range items {
		if item.Filename() != want[i] {
			t.Fatalf("items[%d] = %q, want %q", i, item.Filename(), want[i])
		}
	}
}

func TestAddIsIdempotentByPath(t *testing.T) {
	w := New()
	first := w.Add("/media/a.mp4")
	first.Status = domain.StatusCompleted
	first.Segments = []domain.TranscriptionSegment{{Start: 0, End: 1, Text: "hi"}}

	again := w.Add("/media/x/../a.mp4")
	if again != first {
		t.Fatal("normalized paths must resolve to the same item")
	}
	if len(again.Segments) != 1 {
		t.Fatal("re-adding must not discard the transcript")
	}
	if w.Len() != 1 {
		t.Fatalf("len = %d, want 1", w.Len())
	}
}

func TestRemove(t *testing.T) {
	w := New()
	w.Add("/media/a.mp4")
	w.Add("/media/b.mp4")

	if err := w.Remove("/media/a.mp4"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if w.Len() != 1 {
		t.Fatalf("len = %d, want 1", w.Len())
	}
	if _, ok := w.Get("/media/a.mp4"); ok {
		t.Fatal("removed item still resolvable")
	}
	if err := w.Remove("/media/a.mp4"); err != ErrNotInWorklist {
		t.Fatalf("second remove err = %v", err)
	}
}

func TestSingleActiveRun(t *testing.T) {
	w := New()

	cancelled := false
	if err := w.Begin(func() { cancelled = true }); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if !w.IsRunning() {
		t.Fatal("IsRunning = false after Begin")
	}
	if err := w.Begin(func() {}); err != ErrRunAlreadyActive {
		t.Fatalf("second Begin err = %v", err)
	}

	if err := w.Cancel(); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if !cancelled {
		t.Fatal("cancel function not invoked")
	}
	// The slot stays claimed until the run acknowledges with End.
	if !w.IsRunning() {
		t.Fatal("Cancel must not release the slot")
	}

	w.End()
	if w.IsRunning() {
		t.Fatal("IsRunning = true after End")
	}
	if err := w.Cancel(); err != ErrNoActiveRun {
		t.Fatalf("idle Cancel err = %v", err)
	}
}

func TestEndIsIdempotent(t *testing.T) {
	w := New()
	w.End()
	if err := w.Begin(func() {}); err != nil {
		t.Fatalf("Begin after stray End: %v", err)
	}
	w.End()
	w.End()
}
