// Package export renders a transcribed item into plain-text, subtitle, and
// structured formats, and reverses the timestamped plain-text shape back
// into segments after manual edits.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"video-to-transcript/internal/domain"
)

// ErrNoTranscript is returned when an item has no exportable segments.
var ErrNoTranscript = errors.New("no transcript available")

// Format names a supported output format.
type Format string

const (
	FormatTXT  Format = "txt"
	FormatSRT  Format = "srt"
	FormatVTT  Format = "vtt"
	FormatJSON Format = "json"
)

// Formats lists all supported formats in presentation order.
func Formats() []Format {
	return []Format{FormatTXT, FormatSRT, FormatVTT, FormatJSON}
}

// ParseFormat resolves a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case FormatTXT:
		return FormatTXT, nil
	case FormatSRT:
		return FormatSRT, nil
	case FormatVTT:
		return FormatVTT, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown export format: %s (valid: txt, srt, vtt, json)", name)
}

// Ext returns the format's file extension including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// DefaultPath substitutes the format's extension onto the source path.
func DefaultPath(sourcePath string, format Format) string {
	ext := filepath.Ext(sourcePath)
	return sourcePath[:len(sourcePath)-len(ext)] + format.Ext()
}

// Render produces the artifact for the chosen format. The timestamps flag
// only affects the plain-text format; subtitle formats always carry
// timestamps and the structured format always carries metadata.
func Render(item *domain.VideoItem, format Format, timestamps bool) (string, error) {
	switch format {
	case FormatTXT:
		return RenderTXT(item, timestamps)
	case FormatSRT:
		return RenderSRT(item)
	case FormatVTT:
		return RenderVTT(item)
	case FormatJSON:
		return RenderJSON(item, true)
	}
	return "", fmt.Errorf("unknown export format: %s", format)
}

// Write renders the artifact and writes it as UTF-8 without a BOM. An empty
// outputPath defaults to the source path with the format's extension. The
// path written is returned.
func Write(item *domain.VideoItem, format Format, outputPath string, timestamps bool) (string, error) {
	content, err := Render(item, format, timestamps)
	if err != nil {
		return "", err
	}
	if outputPath == "" {
		outputPath = DefaultPath(item.Path, format)
	}
	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s export: %w", format, err)
	}
	return outputPath, nil
}

// exportable filters down to segments with non-empty trimmed text.
func exportable(segments []domain.TranscriptionSegment) []domain.TranscriptionSegment {
	var out []domain.TranscriptionSegment
	for _, segment := range segments {
		if strings.TrimSpace(segment.Text) != "" {
			out = append(out, segment)
		}
	}
	return out
}
