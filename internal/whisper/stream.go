package whisper

import (
	"encoding/json"
	"fmt"
	"io"
)

// jsonStream decodes engine output incrementally so the pipeline can
// interleave progress emission and cancellation checks between segments
// without buffering the whole transcript.
//
// Expected shape: a single object whose "segments" array comes after the
// scalar fields ("duration", "language"). readHeader consumes everything up
// to and including the opening of the segments array.
type jsonStream struct {
	dec      *json.Decoder
	body     io.ReadCloser
	finished bool
	onClose  func() error
}

// readHeader consumes top-level fields until the segments array opens and
// returns the collected media info.
func readHeader(dec *json.Decoder) (Info, error) {
	var info Info

	tok, err := dec.Token()
	if err != nil {
		return info, fmt.Errorf("read engine output: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return info, fmt.Errorf("engine output is not a JSON object")
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return info, fmt.Errorf("read engine output: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return info, fmt.Errorf("unexpected token in engine output: %v", keyTok)
		}

		switch key {
		case "duration":
			if err := dec.Decode(&info.Duration); err != nil {
				return info, fmt.Errorf("decode duration: %w", err)
			}
		case "language":
			if err := dec.Decode(&info.Language); err != nil {
				return info, fmt.Errorf("decode language: %w", err)
			}
		case "segments":
			openTok, err := dec.Token()
			if err != nil {
				return info, fmt.Errorf("read segments array: %w", err)
			}
			if delim, ok := openTok.(json.Delim); !ok || delim != '[' {
				return info, fmt.Errorf("segments field is not an array")
			}
			return info, nil
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return info, fmt.Errorf("decode %s: %w", key, err)
			}
		}
	}

	return info, fmt.Errorf("engine output has no segments array")
}

// Next decodes the following segment or returns io.EOF when exhausted.
func (s *jsonStream) Next() (RawSegment, error) {
	if s.finished {
		return RawSegment{}, io.EOF
	}
	if !s.dec.More() {
		s.finished = true
		return RawSegment{}, io.EOF
	}

	var seg RawSegment
	if err := s.dec.Decode(&seg); err != nil {
		s.finished = true
		return RawSegment{}, fmt.Errorf("decode segment: %w", err)
	}
	return seg, nil
}

// Close drains and releases the underlying source.
func (s *jsonStream) Close() error {
	s.finished = true
	if s.body != nil {
		_, _ = io.Copy(io.Discard, s.body)
		_ = s.body.Close()
		s.body = nil
	}
	if s.onClose != nil {
		fn := s.onClose
		s.onClose = nil
		return fn()
	}
	return nil
}
