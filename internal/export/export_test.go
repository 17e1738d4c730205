package export

import (
	"os"
	"strings"
	"testing"
	"time"

	"video-to-transcript/internal/domain"
)

func transcribedItem() *domain.VideoItem {
	item := domain.NewVideoItem("/media/talk.mp4")
	item.Status = domain.StatusCompleted
	item.Segments = []domain.TranscriptionSegment{
		{Start: 0.0, End: 4.2, Text: " Hello world.", Confidence: 1.0},
		{Start: 4.5, End: 9.8, Text: "How are you?", Confidence: 0.92},
		{Start: 10.0, End: 12.0, Text: "   ", Confidence: 1.0},
		{Start: 12.5, End: 15.0, Text: "Goodbye.", Confidence: 1.0},
	}
	return item
}

func TestRenderTXTPlain(t *testing.T) {
	got, err := RenderTXT(transcribedItem(), false)
	if err != nil {
		t.Fatalf("RenderTXT: %v", err)
	}
	want := "Hello world.\n\nHow are you?\n\nGoodbye."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderTXTWithTimestamps(t *testing.T) {
	got, err := RenderTXT(transcribedItem(), true)
	if err != nil {
		t.Fatalf("RenderTXT: %v", err)
	}
	want := "[00:00:00] Hello world.\n\n[00:00:04] How are you?\n\n[00:00:12] Goodbye."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderSRTNumbersStayContiguous(t *testing.T) {
	got, err := RenderSRT(transcribedItem())
	if err != nil {
		t.Fatalf("RenderSRT: %v", err)
	}

	// The whitespace-only third segment is skipped, so the last emitted
	// segment carries number 3, not 4.
	want := strings.Join([]string{
		"1",
		"00:00:00,000 --> 00:00:04,200",
		"Hello world.",
		"",
		"2",
		"00:00:04,500 --> 00:00:09,800",
		"How are you?",
		"",
		"3",
		"00:00:12,500 --> 00:00:15,000",
		"Goodbye.",
		"",
	}, "\n")
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderVTT(t *testing.T) {
	got, err := RenderVTT(transcribedItem())
	if err != nil {
		t.Fatalf("RenderVTT: %v", err)
	}
	if !strings.HasPrefix(got, "WEBVTT\n\n") {
		t.Fatalf("missing header: %q", got[:20])
	}
	if !strings.Contains(got, "00:00:04.500 --> 00:00:09.800") {
		t.Fatalf("period timestamps missing:\n%s", got)
	}
	if strings.Contains(got, ",") {
		t.Fatal("WebVTT output must not contain comma timestamps")
	}
	if strings.Contains(got, "\n1\n") {
		t.Fatal("WebVTT output must not contain sequence numbers")
	}
}

func TestRenderJSONMetadata(t *testing.T) {
	restore := timeNow
	timeNow = func() time.Time {
		return time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)
	}
	defer func() { timeNow = restore }()

	got, err := RenderJSON(transcribedItem(), true)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	for _, fragment := range []string{
		`"source_file": "/media/talk.mp4"`,
		`"filename": "talk.mp4"`,
		`"exported_at": "2026-03-14T09:26:53Z"`,
		`"total_segments": 3`,
		`"total_duration": 15`,
		`"text": "Hello world. How are you?  Goodbye."`,
		`"id": 0`,
		`"start_formatted": "00:00:00,000"`,
		`"confidence": 0.92`,
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("output missing %s:\n%s", fragment, got)
		}
	}
}

func TestRenderJSONWithoutMetadata(t *testing.T) {
	got, err := RenderJSON(transcribedItem(), false)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	if strings.Contains(got, `"metadata"`) {
		t.Fatalf("metadata block must be omitted:\n%s", got)
	}
}

func TestRenderSegmentsJSON(t *testing.T) {
	got, err := RenderSegmentsJSON(transcribedItem())
	if err != nil {
		t.Fatalf("RenderSegmentsJSON: %v", err)
	}
	if !strings.HasPrefix(got, "[") {
		t.Fatalf("want a bare array, got:\n%s", got)
	}
	if strings.Contains(got, `"id"`) || strings.Contains(got, `"confidence"`) {
		t.Fatalf("minimal variant must omit ids and confidence:\n%s", got)
	}
	if !strings.Contains(got, `"text": "Goodbye."`) {
		t.Fatalf("segment text missing:\n%s", got)
	}
}

func TestExportersRejectEmptyTranscript(t *testing.T) {
	item := domain.NewVideoItem("/media/silent.mp4")
	item.Segments = []domain.TranscriptionSegment{{Start: 0, End: 1, Text: "   "}}

	if _, err := RenderTXT(item, false); err != ErrNoTranscript {
		t.Fatalf("txt err = %v", err)
	}
	if _, err := RenderSRT(item); err != ErrNoTranscript {
		t.Fatalf("srt err = %v", err)
	}
	if _, err := RenderVTT(item); err != ErrNoTranscript {
		t.Fatalf("vtt err = %v", err)
	}
	if _, err := RenderJSON(item, true); err != ErrNoTranscript {
		t.Fatalf("json err = %v", err)
	}
	if _, err := RenderSegmentsJSON(item); err != ErrNoTranscript {
		t.Fatalf("segments json err = %v", err)
	}
}

func TestDefaultPath(t *testing.T) {
	cases := []struct {
		source string
		format Format
		want   string
	}{
		{"/media/talk.mp4", FormatTXT, "/media/talk.txt"},
		{"/media/talk.mp4", FormatSRT, "/media/talk.srt"},
		{"/media/show.S01E02.mkv", FormatVTT, "/media/show.S01E02.vtt"},
		{"/media/noext", FormatJSON, "/media/noext.json"},
	}
	for _, tc := range cases {
		if got := DefaultPath(tc.source, tc.format); got != tc.want {
			t.Errorf("DefaultPath(%q, %s) = %q, want %q", tc.source, tc.format, got, tc.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(" SRT "); err != nil || f != FormatSRT {
		t.Fatalf("ParseFormat = %v, %v", f, err)
	}
	if _, err := ParseFormat("docx"); err == nil {
		t.Fatal("want error for unknown format")
	}
}

func TestWriteDefaultsOutputPath(t *testing.T) {
	dir := t.TempDir()
	item := transcribedItem()
	item.Path = dir + "/talk.mp4"

	path, err := Write(item, FormatSRT, "", false)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if path != dir+"/talk.srt" {
		t.Fatalf("path = %q", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	data := string(raw)
	if !strings.HasPrefix(data, "1\n00:00:00,000") {
		t.Fatalf("content = %q", data[:30])
	}
	if strings.HasPrefix(data, "\ufeff") {
		t.Fatal("output must not carry a BOM")
	}
}
