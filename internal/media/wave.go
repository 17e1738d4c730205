package media

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

// validateWave checks the ffmpeg output is the mono 16 kHz WAV the inference
// engine expects. Catches silent ffmpeg misconfiguration before the expensive
// transcription step.
func validateWave(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	decoder.ReadInfo()
	if !decoder.IsValidFile() {
		return fmt.Errorf("not a valid wav file: %s", path)
	}
	if decoder.NumChans != 1 {
		return fmt.Errorf("expected mono audio, got %d channels", decoder.NumChans)
	}
	if decoder.SampleRate != 16000 {
		return fmt.Errorf("expected 16000 Hz sample rate, got %d", decoder.SampleRate)
	}
	return nil
}
