package watch

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestSweepReportsOnlySupportedFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"talk.mp4", "notes.txt", "song.mp3", "image.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "clips.mp4"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	var mu sync.Mutex
	var got []string
	w := NewWatcher(dir, func(path string) {
		mu.Lock()
		got = append(got, filepath.Base(path))
		mu.Unlock()
	})
	w.sweep()

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 {
		t.Fatalf("reported = %v, want the two media files", got)
	}
	for _, name := range got {
		if name != "talk.mp4" && name != "song.mp3" {
			t.Fatalf("unexpected report: %s", name)
		}
	}
}

func TestReportDeduplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "talk.mp4")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	count := 0
	w := NewWatcher(dir, func(string) { count++ })
	w.report(path)
	w.report(path)
	w.sweep()

	if count != 1 {
		t.Fatalf("callback count = %d, want 1", count)
	}
}
