package config

import (
	"fmt"
	"time"
)

type Config struct {
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Paths       PathsConfig       `yaml:"paths"`
	Batch       BatchConfig       `yaml:"batch"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Transcribe  TranscribeConfig  `yaml:"transcribe"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
	Gemini      GeminiConfig      `yaml:"gemini"`
}

type FFmpegConfig struct {
	BinaryPath string        `yaml:"binary_path"`
	Timeout    time.Duration `yaml:"timeout"`
}

type PathsConfig struct {
	Output string `yaml:"output"`
	Temp   string `yaml:"temp"`
}

type BatchConfig struct {
	Recursive     bool `yaml:"recursive"`
	KeepStructure bool `yaml:"keep_structure"`
	NoOverwrite   bool `yaml:"no_overwrite"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	// MaxConcurrent of 0 means the default of 2 workers.
	MaxConcurrent int `yaml:"max_concurrent"`
}

type TranscribeConfig struct {
	Providers []string `yaml:"providers"`
	Language  string   `yaml:"language"`
	// MinChars is nil when unset; an explicit 0 disables the length check.
	MinChars  *int          `yaml:"min_chars"`
	Timeout   time.Duration `yaml:"timeout"`
	KeepAudio bool          `yaml:"keep_audio"`
	Docx      bool          `yaml:"docx"`
	// ChunkDuration bounds each piece of audio sent to a remote provider.
	ChunkDuration time.Duration `yaml:"chunk_duration"`
	// MaxUploadBytes is the largest file a remote provider receives whole.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type OpenAIConfig struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
}

// MinLength returns the effective min_chars threshold.
func (t TranscribeConfig) MinLength() int {
	if t.MinChars == nil {
		return DefaultMinChars
	}
	return *t.MinChars
}

// DefaultMinChars is the shortest transcript accepted when min_chars is unset.
const DefaultMinChars = 5

// Provider names accepted in transcribe.providers.
const (
	ProviderWhisper = "whisper"
	ProviderOpenAI  = "openai"
	ProviderGemini  = "gemini"
)

// Validate checks value ranges and fills defaults for unset fields.
func (c *Config) Validate() error {
	if c.Performance.MaxConcurrent < 0 {
		return fmt.Errorf("performance.max_concurrent must not be negative")
	}
	if c.Transcribe.MinChars != nil && *c.Transcribe.MinChars < 0 {
		return fmt.Errorf("transcribe.min_chars must not be negative")
	}
	if c.FFmpeg.Timeout < 0 || c.Transcribe.Timeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if c.Transcribe.ChunkDuration < 0 || c.Transcribe.MaxUploadBytes < 0 {
		return fmt.Errorf("transcribe chunking limits must not be negative")
	}
	if c.Transcribe.ChunkDuration > 0 && c.Transcribe.ChunkDuration < time.Second {
		return fmt.Errorf("transcribe.chunk_duration must be at least 1s")
	}
	for _, p := range c.Transcribe.Providers {
		switch p {
		case ProviderWhisper, ProviderOpenAI, ProviderGemini:
		default:
			return fmt.Errorf("transcribe.providers: unknown provider %q", p)
		}
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json")
	}

	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.Timeout == 0 {
		c.FFmpeg.Timeout = time.Hour
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if len(c.Transcribe.Providers) == 0 {
		c.Transcribe.Providers = []string{ProviderWhisper, ProviderOpenAI, ProviderGemini}
	}
	if c.Transcribe.Language == "" {
		c.Transcribe.Language = "zh"
	}
	if c.Transcribe.MinChars == nil {
		minChars := DefaultMinChars
		c.Transcribe.MinChars = &minChars
	}
	if c.Transcribe.Timeout == 0 {
		c.Transcribe.Timeout = 30 * time.Minute
	}
	if c.Transcribe.ChunkDuration == 0 {
		c.Transcribe.ChunkDuration = 5 * time.Minute
	}
	if c.Transcribe.MaxUploadBytes == 0 {
		c.Transcribe.MaxUploadBytes = 12 << 20
	}
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.ModelPath == "" {
		c.Whisper.ModelPath = "models/ggml-base.bin"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "whisper-1"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}

	return nil
}
