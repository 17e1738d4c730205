package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

var videoExtensions = map[string]bool{
	".mp4": true, ".mkv": true, ".avi": true, ".mov": true, ".wmv": true,
	".flv": true, ".webm": true, ".m4v": true, ".mpeg": true, ".mpg": true,
	".3gp": true, ".ogv": true,
}

var audioExtensions = map[string]bool{
	".mp3": true, ".wav": true, ".m4a": true, ".aac": true, ".ogg": true,
	".flac": true, ".wma": true,
}

// IsSupportedFile reports whether the path looks like transcodable media.
func IsSupportedFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return videoExtensions[ext] || audioExtensions[ext]
}

// IsAudioFile reports whether the path is an audio container. Audio files
// still pass through ffmpeg to normalize to mono 16 kHz PCM.
func IsAudioFile(path string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

// Extractor normalizes media to mono 16 kHz PCM WAV via ffmpeg and owns the
// temporary files it creates. One Extractor serves one pipeline run; the
// pipeline calls Cleanup on every exit path.
type Extractor struct {
	ffmpegPath  string
	ffprobePath string
	runner      CommandRunner
	mkdirTemp   func(dir, pattern string) (string, error)
	removeAll   func(path string) error
	stat        func(name string) (os.FileInfo, error)
	validate    func(path string) error

	tempDir string
}

// NewExtractor constructs an extractor with real OS dependencies.
func NewExtractor(ffmpegPath, ffprobePath string) *Extractor {
	return &Extractor{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		runner:      &ExecRunner{},
		mkdirTemp:   os.MkdirTemp,
		removeAll:   os.RemoveAll,
		stat:        os.Stat,
		validate:    validateWave,
	}
}

// Extract converts the source to a temp mono 16 kHz WAV and returns its path.
func (e *Extractor) Extract(ctx context.Context, sourcePath string) (string, error) {
	if _, err := e.stat(sourcePath); err != nil {
		return "", fmt.Errorf("media file not found: %s", sourcePath)
	}

	if e.tempDir == "" {
		dir, err := e.mkdirTemp("", "video-to-transcript-*")
		if err != nil {
			return "", fmt.Errorf("create temporary workspace: %w", err)
		}
		e.tempDir = dir
	}

	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	outPath := filepath.Join(e.tempDir, base+"_audio.wav")

	args := buildFFmpegArgs(sourcePath, outPath)
	result, err := e.runner.Run(ctx, e.ffmpegPath, args...)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		message := strings.TrimSpace(result.Stderr)
		if message == "" {
			message = err.Error()
		}
		return "", fmt.Errorf("ffmpeg error extracting audio: %s", message)
	}

	if _, err := e.stat(outPath); err != nil {
		return "", fmt.Errorf("failed to create audio file: %s", outPath)
	}

	if e.validate != nil {
		if err := e.validate(outPath); err != nil {
			return "", fmt.Errorf("extracted audio is not usable: %v", err)
		}
	}

	return outPath, nil
}

// ProbeDuration returns the media duration in seconds via ffprobe.
func (e *Extractor) ProbeDuration(ctx context.Context, sourcePath string) (float64, error) {
	if _, err := e.stat(sourcePath); err != nil {
		return 0, fmt.Errorf("media file not found: %s", sourcePath)
	}

	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		sourcePath,
	}
	result, err := e.runner.Run(ctx, e.ffprobePath, args...)
	if err != nil {
		message := strings.TrimSpace(result.Stderr)
		if message == "" {
			message = err.Error()
		}
		return 0, fmt.Errorf("ffprobe error getting duration: %s", message)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(result.Stdout), 64)
	if err != nil {
		return 0, fmt.Errorf("could not parse media duration: %v", err)
	}
	return duration, nil
}

// Cleanup removes the temp workspace. Errors are swallowed; cleanup must
// never surface as a pipeline failure.
func (e *Extractor) Cleanup() {
	if e.tempDir == "" {
		return
	}
	_ = e.removeAll(e.tempDir)
	e.tempDir = ""
}

// buildFFmpegArgs builds CLI args for mono 16k PCM WAV output.
func buildFFmpegArgs(inputPath, outPath string) []string {
	return []string{
		"-hide_banner",
		"-nostdin",
		"-y",
		"-i", inputPath,
		"-vn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		outPath,
	}
}

// NewExtractorForTests constructs an extractor with injectable dependencies.
func NewExtractorForTests(
	ffmpegPath string,
	ffprobePath string,
	runner CommandRunner,
	mkdirTemp func(dir, pattern string) (string, error),
	removeAll func(path string) error,
	stat func(name string) (os.FileInfo, error),
) *Extractor {
	return &Extractor{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		runner:      runner,
		mkdirTemp:   mkdirTemp,
		removeAll:   removeAll,
		stat:        stat,
	}
}
