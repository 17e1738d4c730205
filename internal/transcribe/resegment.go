package transcribe

import (
	"strings"

	"video-to-transcript/internal/domain"
)

// BySentence rebuilds sentence-level segments from word-level timing data.
//
// Words are walked in order; a sentence opens at the first non-blank word and
// closes at a word ending in sentence-terminal punctuation, taking that
// word's end time. Words that trim to empty are skipped and never count
// toward sentence boundaries. A trailing unterminated clause is flushed as a
// final segment ending at the last word's end. Pure function; the caller
// decides what to do with the result.
func BySentence(words []domain.WordTiming) []domain.TranscriptionSegment {
	var segments []domain.TranscriptionSegment
	var current []string
	var start float64
	var lastEnd float64

	for _, word := range words {
		text := strings.TrimSpace(word.Word)
		if text == "" {
			continue
		}

		if len(current) == 0 {
			start = word.Start
		}
		current = append(current, text)
		lastEnd = word.End

		if endsSentence(text) {
			segments = append(segments, domain.TranscriptionSegment{
				Start:      start,
				End:        word.End,
				Text:       strings.Join(current, " "),
				Confidence: 1.0,
			})
			current = nil
		}
	}

	if len(current) > 0 {
		segments = append(segments, domain.TranscriptionSegment{
			Start:      start,
			End:        lastEnd,
			Text:       strings.Join(current, " "),
			Confidence: 1.0,
		})
	}

	return segments
}

// endsSentence reports whether a trimmed word closes a sentence.
func endsSentence(word string) bool {
	return strings.HasSuffix(word, ".") ||
		strings.HasSuffix(word, "!") ||
		strings.HasSuffix(word, "?")
}
