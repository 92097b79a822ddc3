package stt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nguyentantai21042004/media-batch/internal/logger"
	"github.com/nguyentantai21042004/media-batch/pkg/executor"
)

// ChunkOptions controls how audio is split before upload.
type ChunkOptions struct {
	// Binary is the ffmpeg executable used for splitting.
	Binary   string
	MaxBytes int64
	Duration time.Duration
}

type implChunked struct {
	Provider
	opts     ChunkOptions
	executor executor.Executor
	logger   logger.Logger
}

// Chunked wraps a remote provider so audio larger than opts.MaxBytes is
// split into opts.Duration pieces, transcribed in order and joined.
func Chunked(p Provider, opts ChunkOptions, exec executor.Executor, log logger.Logger) Provider {
	return &implChunked{Provider: p, opts: opts, executor: exec, logger: log}
}

func (c *implChunked) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	info, err := os.Stat(audioPath)
	if err != nil {
		return "", fmt.Errorf("stat audio: %w", err)
	}
	if c.opts.MaxBytes <= 0 || info.Size() <= c.opts.MaxBytes {
		return c.Provider.Transcribe(ctx, audioPath, language)
	}

	dir, err := os.MkdirTemp(filepath.Dir(audioPath), ".chunks-*")
	if err != nil {
		return "", fmt.Errorf("create chunk dir: %w", err)
	}
	defer os.RemoveAll(dir)

	chunks, err := c.split(ctx, audioPath, dir)
	if err != nil {
		return "", err
	}
	c.logger.Info(ctx, "Split %s (%d bytes) into %d chunks for %s", filepath.Base(audioPath), info.Size(), len(chunks), c.Name())

	texts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		text, err := c.Provider.Transcribe(ctx, chunk, language)
		if err != nil {
			return "", fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		if text = strings.TrimSpace(text); text != "" {
			texts = append(texts, text)
		}
		os.Remove(chunk)
	}
	return strings.Join(texts, "\n"), nil
}

// split runs the ffmpeg segment muxer and returns the pieces in order.
func (c *implChunked) split(ctx context.Context, audioPath, dir string) ([]string, error) {
	ext := filepath.Ext(audioPath)
	seconds := strconv.FormatFloat(c.opts.Duration.Seconds(), 'f', -1, 64)

	args := []string{
		"-hide_banner", "-nostdin", "-y",
		"-i", audioPath,
		"-map", "0:a",
		"-f", "segment",
		"-segment_time", seconds,
		"-reset_timestamps", "1",
		"-c", "copy",
		"-loglevel", "error",
		filepath.Join(dir, "chunk_%04d"+ext),
	}
	if _, err := c.executor.Execute(ctx, c.opts.Binary, args...); err != nil {
		return nil, fmt.Errorf("split audio: %w", err)
	}

	chunks, err := filepath.Glob(filepath.Join(dir, "chunk_*"+ext))
	if err != nil {
		return nil, fmt.Errorf("list chunks: %w", err)
	}
	if len(chunks) == 0 {
		return nil, errors.New("split audio: no chunks produced")
	}
	sort.Strings(chunks)
	return chunks, nil
}
