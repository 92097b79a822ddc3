package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// stagingDir creates the per-job directory for intermediate artifacts.
func (p *implTranscoder) stagingDir() (string, error) {
	if p.tempDir != "" {
		if err := os.MkdirAll(p.tempDir, 0755); err != nil {
			return "", fmt.Errorf("create temp dir: %w", err)
		}
	}
	dir, err := os.MkdirTemp(p.tempDir, "mediabatch-*")
	if err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}
	return dir, nil
}

// stagingFile reserves a hidden file next to dst with the same extension so
// the encoder picks the right muxer.
func stagingFile(dst string) (string, error) {
	base := filepath.Base(dst)
	ext := filepath.Ext(base)
	f, err := os.CreateTemp(filepath.Dir(dst), "."+strings.TrimSuffix(base, ext)+".*.part"+ext)
	if err != nil {
		return "", err
	}
	name := f.Name()
	f.Close()
	return name, nil
}

// cleanupDir removes a staging directory, logs warning if fails
func (p *implTranscoder) cleanupDir(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup staging dir %s: %v", dir, err)
	}
}

// cleanupTempFile removes a temporary file if it is still there
func (p *implTranscoder) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		p.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
	}
}

// moveFile renames src to dst, copying when they are on different devices.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// copyFile copies a file from src to dst
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("write destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("write destination: %w", err)
	}
	return out.Close()
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
