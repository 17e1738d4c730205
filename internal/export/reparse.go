package export

import (
	"regexp"
	"strconv"
	"strings"

	"video-to-transcript/internal/domain"
)

var timestampPrefix = regexp.MustCompile(`^\[(\d{2}):(\d{2}):(\d{2})\]\s*(.*)$`)

// ReparseEdited reconstructs segments from a manually edited timestamped
// plain-text view. Paragraphs are split on blank lines; a paragraph with a
// [HH:MM:SS] prefix anchors a new segment at that start time, reusing the
// end time of an anchor segment whose start is within 2 seconds, else
// defaulting to a 5-second span. A paragraph without a prefix is appended
// to the previously emitted segment, or seeded from the first anchor
// segment when nothing was emitted yet.
//
// This is a lossy best-effort reconstruction: merged or reordered
// paragraphs collapse onto the nearest timing anchor rather than failing.
// A result with no segments means the edit produced nothing usable and the
// caller should keep the current list.
func ReparseEdited(text string, anchors []domain.TranscriptionSegment) []domain.TranscriptionSegment {
	paragraphs := strings.Split(text, "\n\n")

	var segments []domain.TranscriptionSegment
	for _, paragraph := range paragraphs {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}

		match := timestampPrefix.FindStringSubmatch(paragraph)
		if match != nil {
			hours, _ := strconv.Atoi(match[1])
			minutes, _ := strconv.Atoi(match[2])
			seconds, _ := strconv.Atoi(match[3])
			start := float64(hours*3600 + minutes*60 + seconds)

			end := start + 5
			for _, anchor := range anchors {
				if diff := anchor.Start - start; diff < 2 && diff > -2 {
					end = anchor.End
					break
				}
			}

			if content := strings.TrimSpace(match[4]); content != "" {
				segments = append(segments, domain.TranscriptionSegment{
					Start:      start,
					End:        end,
					Text:       content,
					Confidence: 1.0,
				})
			}
			continue
		}

		if len(segments) > 0 {
			last := &segments[len(segments)-1]
			last.Text = last.Text + " " + paragraph
		} else if len(anchors) > 0 {
			segments = append(segments, domain.TranscriptionSegment{
				Start:      anchors[0].Start,
				End:        anchors[0].End,
				Text:       paragraph,
				Confidence: 1.0,
			})
		}
	}
	return segments
}
