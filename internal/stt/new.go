package stt

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/media-batch/internal/config"
	"github.com/nguyentantai21042004/media-batch/internal/logger"
	"github.com/nguyentantai21042004/media-batch/internal/model"
	"github.com/nguyentantai21042004/media-batch/pkg/executor"
)

// New builds the providers named in cfg.Transcribe.Providers, in order.
// Remote providers are wrapped with Chunked.
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) ([]Provider, error) {
	chunks := ChunkOptions{
		Binary:   cfg.FFmpeg.BinaryPath,
		MaxBytes: cfg.Transcribe.MaxUploadBytes,
		Duration: cfg.Transcribe.ChunkDuration,
	}

	var providers []Provider
	for _, name := range cfg.Transcribe.Providers {
		switch name {
		case config.ProviderWhisper:
			providers = append(providers, NewWhisper(cfg.Whisper, exec))
		case config.ProviderOpenAI:
			providers = append(providers, Chunked(NewOpenAI(os.Getenv("OPENAI_API_KEY"), cfg.OpenAI), chunks, exec, log))
		case config.ProviderGemini:
			providers = append(providers, Chunked(NewGemini(KeysFromEnv(), cfg.Gemini.Model, log), chunks, exec, log))
		default:
			return nil, fmt.Errorf("unknown provider %q", name)
		}
	}
	return providers, nil
}

// Select returns the first available provider. The choice holds for the
// whole run; a provider failing mid-run does not fall through to the next.
func Select(ctx context.Context, log logger.Logger, providers ...Provider) (Provider, error) {
	var reasons []string
	for _, p := range providers {
		if err := p.Available(ctx); err != nil {
			log.Warn(ctx, "Provider %s unavailable: %v", p.Name(), err)
			reasons = append(reasons, p.Name()+": "+err.Error())
			continue
		}
		log.Info(ctx, "Using speech-to-text provider: %s", p.Name())
		return p, nil
	}
	if len(reasons) == 0 {
		return nil, fmt.Errorf("%w: none configured", model.ErrNoProvider)
	}
	return nil, fmt.Errorf("%w (%s)", model.ErrNoProvider, strings.Join(reasons, "; "))
}

// KeysFromEnv reads comma separated GEMINI_API_KEYS, falling back to
// GEMINI_API_KEY.
func KeysFromEnv() []string {
	var keys []string
	for _, k := range strings.Split(os.Getenv("GEMINI_API_KEYS"), ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		if k := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
