package export

import (
	"encoding/json"
	"strings"
	"time"

	"video-to-transcript/internal/domain"
)

// timeNow is swapped in tests to pin the export timestamp.
var timeNow = time.Now

type jsonMetadata struct {
	SourceFile    string  `json:"source_file"`
	Filename      string  `json:"filename"`
	ExportedAt    string  `json:"exported_at"`
	TotalSegments int     `json:"total_segments"`
	TotalDuration float64 `json:"total_duration"`
}

type jsonSegment struct {
	ID             int     `json:"id"`
	Start          float64 `json:"start"`
	End            float64 `json:"end"`
	StartFormatted string  `json:"start_formatted"`
	EndFormatted   string  `json:"end_formatted"`
	Text           string  `json:"text"`
	Confidence     float64 `json:"confidence"`
	Duration       float64 `json:"duration"`
}

type jsonDocument struct {
	Metadata *jsonMetadata `json:"metadata,omitempty"`
	Text     string        `json:"text"`
	Segments []jsonSegment `json:"segments"`
}

// RenderJSON produces the structured export: an optional metadata block,
// the space-joined full text, and one object per segment with indexed
// timing, formatted timestamps, and confidence.
func RenderJSON(item *domain.VideoItem, metadata bool) (string, error) {
	segments := exportable(item.Segments)
	if len(segments) == 0 {
		return "", ErrNoTranscript
	}

	doc := jsonDocument{
		Text:     item.FullText(),
		Segments: make([]jsonSegment, 0, len(segments)),
	}
	if metadata {
		doc.Metadata = &jsonMetadata{
			SourceFile:    item.Path,
			Filename:      item.Filename(),
			ExportedAt:    timeNow().Format(time.RFC3339),
			TotalSegments: len(segments),
			TotalDuration: segments[len(segments)-1].End,
		}
	}
	for i, segment := range segments {
		doc.Segments = append(doc.Segments, jsonSegment{
			ID:             i,
			Start:          segment.Start,
			End:            segment.End,
			StartFormatted: segment.StartTimestamp(),
			EndFormatted:   segment.EndTimestamp(),
			Text:           strings.TrimSpace(segment.Text),
			Confidence:     segment.Confidence,
			Duration:       segment.Duration(),
		})
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

type minimalSegment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// RenderSegmentsJSON produces the minimal variant: a bare array of
// start/end/text objects with no metadata or indices.
func RenderSegmentsJSON(item *domain.VideoItem) (string, error) {
	segments := exportable(item.Segments)
	if len(segments) == 0 {
		return "", ErrNoTranscript
	}

	out := make([]minimalSegment, 0, len(segments))
	for _, segment := range segments {
		out = append(out, minimalSegment{
			Start: segment.Start,
			End:   segment.End,
			Text:  strings.TrimSpace(segment.Text),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
