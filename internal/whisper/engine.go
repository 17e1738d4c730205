// Package whisper drives an external speech-inference process and manages
// the single resident model instance.
package whisper

import "context"

// RawWord is one token with timing as decoded from engine output.
type RawWord struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Word  string  `json:"word"`
}

// RawSegment is one natural-pause speech unit as decoded from engine output.
type RawSegment struct {
	Start      float64  `json:"start"`
	End        float64  `json:"end"`
	Text       string   `json:"text"`
	AvgLogProb *float64  `json:"avg_logprob"`
	Words      []RawWord `json:"words"`
}

// Confidence returns the engine's log-probability score, defaulting to 1.0
// when the engine did not report one.
func (s RawSegment) Confidence() float64 {
	if s.AvgLogProb != nil {
		return *s.AvgLogProb
	}
	return 1.0
}

// Info describes the transcribed media as reported by the engine.
type Info struct {
	Duration float64 `json:"duration"`
	Language string  `json:"language"`
}

// SegmentStream is a lazy, ordered, finite, non-restartable sequence of raw
// segments. Next returns io.EOF after the last segment. Consumers must call
// Close exactly once.
type SegmentStream interface {
	Next() (RawSegment, error)
	Close() error
}

// TranscribeOptions configures one inference call.
type TranscribeOptions struct {
	Language       string
	WordTimestamps bool
	BeamSize       int
	VADFilter      bool
}

// Model is a loaded inference model handle.
type Model interface {
	Name() string
	Transcribe(ctx context.Context, audioPath string, opts TranscribeOptions) (SegmentStream, Info, error)
	Close() error
}

// Engine loads models by catalog name.
type Engine interface {
	Load(name string) (Model, error)
}
