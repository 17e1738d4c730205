package export

import (
	"fmt"
	"strings"

	"video-to-transcript/internal/domain"
)

// RenderTXT joins segment texts with blank lines between paragraphs,
// optionally prefixing each with its start clock in brackets. This is also
// the editable display shape consumed by ReparseEdited.
func RenderTXT(item *domain.VideoItem, timestamps bool) (string, error) {
	segments := exportable(item.Segments)
	if len(segments) == 0 {
		return "", ErrNoTranscript
	}

	lines := make([]string, 0, len(segments))
	for _, segment := range segments {
		text := strings.TrimSpace(segment.Text)
		if timestamps {
			lines = append(lines, fmt.Sprintf("[%s] %s", segment.StartClock(), text))
		} else {
			lines = append(lines, text)
		}
	}
	return strings.Join(lines, "\n\n"), nil
}
