package domain

import (
	"path/filepath"
	"strings"
)

// TranscriptionStatus tracks the lifecycle of one media item.
type TranscriptionStatus string

const (
	StatusPending      TranscriptionStatus = "pending"
	StatusExtracting   TranscriptionStatus = "extracting"
	StatusTranscribing TranscriptionStatus = "transcribing"
	StatusCompleted    TranscriptionStatus = "completed"
	StatusError        TranscriptionStatus = "error"
)

// SegmentationMode selects how transcript segments are cut.
type SegmentationMode string

const (
	// ModeNaturalPauses keeps segments as the inference engine emitted them.
	ModeNaturalPauses SegmentationMode = "natural"
	// ModeSentenceLevel rebuilds segments at sentence punctuation using word timings.
	ModeSentenceLevel SegmentationMode = "sentence"
)

// TranscriptionSegment is one span of transcript text with timing.
type TranscriptionSegment struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Duration returns the segment length in seconds.
func (s TranscriptionSegment) Duration() float64 {
	return s.End - s.Start
}

// StartTimestamp returns the start as HH:MM:SS,mmm for subtitle output.
func (s TranscriptionSegment) StartTimestamp() string {
	return FormatTimestamp(s.Start, true, true)
}

// EndTimestamp returns the end as HH:MM:SS,mmm for subtitle output.
func (s TranscriptionSegment) EndTimestamp() string {
	return FormatTimestamp(s.End, true, true)
}

// StartClock returns the start as HH:MM:SS for display.
func (s TranscriptionSegment) StartClock() string {
	return FormatTimestamp(s.Start, false, true)
}

// EndClock returns the end as HH:MM:SS for display.
func (s TranscriptionSegment) EndClock() string {
	return FormatTimestamp(s.End, false, true)
}

// WordTiming is one token with timing as reported by the inference engine.
// Word may carry the engine's leading/trailing whitespace.
type WordTiming struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Word  string  `json:"word"`
}

// Key identifies a media item by its normalized absolute path.
type Key string

// KeyFor normalizes a path into an item key.
func KeyFor(path string) Key {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return Key(filepath.Clean(abs))
}

// VideoItem is one media file and its transcription state.
//
// Segments holds the currently displayed list; OriginalSegments and WordData
// are written exactly once per successful run and never touched by mode
// switches, so sentence mode can be toggled without re-inference.
type VideoItem struct {
	Path             string                 `json:"path"`
	Status           TranscriptionStatus    `json:"status"`
	Progress         float64                `json:"progress"`
	ErrorMessage     string                 `json:"errorMessage,omitempty"`
	Segments         []TranscriptionSegment `json:"segments"`
	OriginalSegments []TranscriptionSegment `json:"originalSegments,omitempty"`
	WordData         []WordTiming           `json:"wordData,omitempty"`
}

// NewVideoItem creates a pending item for a media path.
func NewVideoItem(path string) *VideoItem {
	return &VideoItem{
		Path:   path,
		Status: StatusPending,
	}
}

// Key returns the path-based identity of this item.
func (v *VideoItem) Key() Key {
	return KeyFor(v.Path)
}

// Filename returns the base name without directories.
func (v *VideoItem) Filename() string {
	return filepath.Base(v.Path)
}

// FullText joins all trimmed segment texts with single spaces.
func (v *VideoItem) FullText() string {
	parts := make([]string, 0, len(v.Segments))
	for _, seg := range v.Segments {
		parts = append(parts, strings.TrimSpace(seg.Text))
	}
	return strings.Join(parts, " ")
}

// IsTranscribed reports whether a completed transcript is present.
func (v *VideoItem) IsTranscribed() bool {
	return v.Status == StatusCompleted && len(v.Segments) > 0
}

// HasError reports whether the last run failed.
func (v *VideoItem) HasError() bool {
	return v.Status == StatusError
}

// IsProcessing reports whether a pipeline run currently owns this item.
func (v *VideoItem) IsProcessing() bool {
	return v.Status == StatusExtracting || v.Status == StatusTranscribing
}

// ClearTranscription resets the item to pending and drops all transcript data.
func (v *VideoItem) ClearTranscription() {
	v.Status = StatusPending
	v.Progress = 0
	v.ErrorMessage = ""
	v.Segments = nil
	v.OriginalSegments = nil
	v.WordData = nil
}

// SetError marks the item failed with a human-readable message.
func (v *VideoItem) SetError(message string) {
	v.Status = StatusError
	v.ErrorMessage = message
	v.Progress = 0
}
