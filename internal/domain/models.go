package domain

// ModelOption describes one downloadable whisper model preset.
type ModelOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	FileName    string `json:"fileName"`
	URL         string `json:"url"`
	SizeLabel   string `json:"sizeLabel,omitempty"`
	Description string `json:"description,omitempty"`
	Downloaded  bool   `json:"downloaded"`
	LocalPath   string `json:"localPath,omitempty"`
}

// Settings contains user-selectable runtime configuration.
type Settings struct {
	Model       string `yaml:"model"`
	Mode        string `yaml:"mode"`
	Language    string `yaml:"language"`
	OutputDir   string `yaml:"output_dir"`
	CacheDir    string `yaml:"cache_dir"`
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`
	WhisperPath string `yaml:"whisper_path"`
	Listen      string `yaml:"listen"`
}
