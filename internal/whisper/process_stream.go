package whisper

import (
	"encoding/json"
	"io"
)

// newProcessStream wraps a process stdout pipe in a jsonStream, waiting for
// the process on Close.
func newProcessStream(body io.ReadCloser, wait func() error) *jsonStream {
	return &jsonStream{
		dec:     json.NewDecoder(body),
		body:    body,
		onClose: wait,
	}
}

// NewReaderStream builds a segment stream over pre-recorded engine output.
// The header is consumed immediately; used by tests and file replays.
func NewReaderStream(r io.Reader) (SegmentStream, Info, error) {
	dec := json.NewDecoder(r)
	info, err := readHeader(dec)
	if err != nil {
		return nil, Info{}, err
	}
	return &jsonStream{dec: dec}, info, nil
}
