package stt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/media-batch/internal/config"
	"github.com/nguyentantai21042004/media-batch/pkg/executor"
)

type implWhisper struct {
	cfg      config.WhisperConfig
	executor executor.Executor
}

// NewWhisper returns a provider driving the local whisper.cpp CLI.
func NewWhisper(cfg config.WhisperConfig, exec executor.Executor) Provider {
	return &implWhisper{cfg: cfg, executor: exec}
}

func (w *implWhisper) Name() string { return config.ProviderWhisper }

func (w *implWhisper) Available(ctx context.Context) error {
	if _, err := w.executor.LookPath(w.cfg.BinaryPath); err != nil {
		return fmt.Errorf("binary %s: %w", w.cfg.BinaryPath, err)
	}
	if _, err := os.Stat(w.cfg.ModelPath); err != nil {
		return fmt.Errorf("model %s: %w", w.cfg.ModelPath, err)
	}
	return nil
}

// Transcribe runs whisper in the audio file's directory, which writes
// <audio>.txt next to it, then reads the text back and removes the file.
func (w *implWhisper) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	// relative paths would resolve against the audio directory
	audioPath, err := filepath.Abs(audioPath)
	if err != nil {
		return "", fmt.Errorf("audio path: %w", err)
	}
	modelPath, err := filepath.Abs(w.cfg.ModelPath)
	if err != nil {
		return "", fmt.Errorf("model path: %w", err)
	}
	prefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	binary := w.cfg.BinaryPath
	if strings.ContainsRune(binary, filepath.Separator) {
		if binary, err = filepath.Abs(binary); err != nil {
			return "", fmt.Errorf("binary path: %w", err)
		}
	}

	// -otxt: plain text output, -of: output file prefix
	args := []string{
		"-m", modelPath,
		"-f", audioPath,
		"-l", language,
		"-t", strconv.Itoa(w.cfg.Threads),
		"-otxt",
		"-of", prefix,
	}
	if w.cfg.Prompt != "" {
		args = append(args, "--prompt", w.cfg.Prompt)
	}

	if _, err := w.executor.ExecuteInDir(ctx, filepath.Dir(audioPath), binary, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	txtPath := prefix + ".txt"
	defer os.Remove(txtPath)

	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	kept := lines[:0]
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n"), nil
}
