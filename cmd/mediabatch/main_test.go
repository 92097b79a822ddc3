package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/media-batch/internal/config"
	"github.com/nguyentantai21042004/media-batch/internal/model"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInfoFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "list formats",
			args: []string{"extract", "--list-formats"},
			want: []string{"Supported video formats:", ".mkv", ".rmvb", ".divx"},
		},
		{
			name: "audio info",
			args: []string{"extract", "--audio-info"},
			want: []string{"MP3:", "codec:     libmp3lame", "bitrate:   192k", "AAC:", "extension: .m4a", "-compression_level 8"},
		},
		{
			name: "list tiers",
			args: []string{"compress-audio", "--list-tiers"},
			want: []string{"extreme", "Opus 6k", "MP3 16k", "(default)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestExtractMissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	_, err := run(t, "extract", missing)
	if !errors.Is(err, model.ErrDirectoryNotFound) {
		t.Errorf("error = %v, want ErrDirectoryNotFound", err)
	}
}

func TestInvalidOptions(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown format", args: []string{"extract", dir, "--format", "wma"}},
		{name: "quality on flac", args: []string{"extract", dir, "--format", "flac", "-q", "2"}},
		{name: "bad channels", args: []string{"extract", dir, "--channels", "5"}},
		{name: "unknown tier", args: []string{"compress-audio", dir, "--tier", "ultra"}},
		{name: "unknown preset", args: []string{"compress-video", dir, "--preset-name", "tiny"}},
		{name: "unknown provider", args: []string{"transcribe", dir, "--provider", "siri"}},
		{name: "bad log format", args: []string{"extract", dir, "--log-format", "xml"}},
		{name: "zero threads", args: []string{"extract", dir, "--threads", "0"}},
		{name: "negative min chars", args: []string{"transcribe", dir, "--min-chars", "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestOutputDir(t *testing.T) {
	a := &app{cfg: config.Default()}
	if got := a.outputDir("in", "audio_output"); got != filepath.Join("in", "audio_output") {
		t.Errorf("outputDir() default = %q", got)
	}

	a.cfg.Paths.Output = "/srv/audio"
	if got := a.outputDir("in", "audio_output"); got != "/srv/audio" {
		t.Errorf("outputDir() = %q, want configured path", got)
	}
}
