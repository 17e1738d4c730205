package whisper

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// CLIEngine runs inference through an external faster-whisper style command.
//
// The command must accept `--model NAME --model-dir DIR --output-format json
// --word-timestamps AUDIO` and write one JSON object to stdout with
// "duration" and "language" before a "segments" array; each segment carries
// start/end/text/avg_logprob and, when word timestamps are requested, a
// "words" array of start/end/word objects.
type CLIEngine struct {
	binary   string
	cacheDir string
}

// NewCLIEngine creates an engine invoking the given transcriber binary with
// models cached under cacheDir.
func NewCLIEngine(binary, cacheDir string) *CLIEngine {
	return &CLIEngine{binary: binary, cacheDir: cacheDir}
}

// Load validates the model name against the catalog and returns a handle.
// The external process resolves model weights itself, so loading is cheap;
// the expensive work happens per Transcribe call.
func (e *CLIEngine) Load(name string) (Model, error) {
	if _, ok := Lookup(name); !ok {
		return nil, fmt.Errorf("invalid model: %s. Valid models: %s", name, strings.Join(ModelIDs(), ", "))
	}
	if _, err := exec.LookPath(e.binary); err != nil {
		return nil, fmt.Errorf("transcriber binary not found: %s", e.binary)
	}
	return &cliModel{engine: e, name: name}, nil
}

// cliModel is a handle for one catalog model served by the CLI engine.
type cliModel struct {
	engine *CLIEngine
	name   string
}

// Name returns the catalog model name.
func (m *cliModel) Name() string {
	return m.name
}

// Close releases the handle. The external process holds no resident state.
func (m *cliModel) Close() error {
	return nil
}

// Transcribe starts the external process and returns a lazy segment stream.
func (m *cliModel) Transcribe(ctx context.Context, audioPath string, opts TranscribeOptions) (SegmentStream, Info, error) {
	args := buildTranscribeArgs(m.name, m.engine.cacheDir, audioPath, opts)

	cmd := exec.CommandContext(ctx, m.engine.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, Info{}, fmt.Errorf("open transcriber output: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, Info{}, fmt.Errorf("start transcriber: %w", err)
	}

	stream := newProcessStream(stdout, func() error { return cmd.Wait() })
	info, err := readHeader(stream.dec)
	if err != nil {
		_ = stream.Close()
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, Info{}, fmt.Errorf("transcription failed: %s", msg)
		}
		return nil, Info{}, err
	}

	return stream, info, nil
}

// buildTranscribeArgs builds the external transcriber invocation.
func buildTranscribeArgs(model, cacheDir, audioPath string, opts TranscribeOptions) []string {
	args := []string{
		"--model", model,
		"--output-format", "json",
	}
	if cacheDir != "" {
		args = append(args, "--model-dir", cacheDir)
	}
	if opts.WordTimestamps {
		args = append(args, "--word-timestamps")
	}
	if opts.BeamSize > 0 {
		args = append(args, "--beam-size", strconv.Itoa(opts.BeamSize))
	}
	if opts.VADFilter {
		args = append(args, "--vad-filter")
	}
	if lang := strings.TrimSpace(opts.Language); lang != "" && !strings.EqualFold(lang, "auto") {
		args = append(args, "--language", lang)
	}
	return append(args, audioPath)
}
