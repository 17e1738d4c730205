package export

import (
	"fmt"
	"strings"

	"video-to-transcript/internal/domain"
)

// RenderVTT produces WebVTT output: the WEBVTT header, a blank line, then
// per segment a period-millisecond time range, the text, and a blank
// separator. WebVTT carries no sequence numbers.
func RenderVTT(item *domain.VideoItem) (string, error) {
	segments := exportable(item.Segments)
	if len(segments) == 0 {
		return "", ErrNoTranscript
	}

	lines := []string{"WEBVTT", ""}
	for _, segment := range segments {
		start := domain.FormatTimestamp(segment.Start, true, false)
		end := domain.FormatTimestamp(segment.End, true, false)
		lines = append(lines,
			fmt.Sprintf("%s --> %s", start, end),
			strings.TrimSpace(segment.Text),
			"",
		)
	}
	return strings.Join(lines, "\n"), nil
}
