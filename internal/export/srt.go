package export

import (
	"fmt"
	"strings"

	"video-to-transcript/internal/domain"
)

// RenderSRT produces SubRip output: a 1-based sequence number, a
// comma-millisecond time range, the text, and a blank separator per
// segment. Sequence numbers count only emitted segments, so skipping
// empty-text segments never leaves a gap.
func RenderSRT(item *domain.VideoItem) (string, error) {
	segments := exportable(item.Segments)
	if len(segments) == 0 {
		return "", ErrNoTranscript
	}

	var lines []string
	for i, segment := range segments {
		lines = append(lines,
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%s --> %s", segment.StartTimestamp(), segment.EndTimestamp()),
			strings.TrimSpace(segment.Text),
			"",
		)
	}
	return strings.Join(lines, "\n"), nil
}
