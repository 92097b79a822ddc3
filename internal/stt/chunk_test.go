package stt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/media-batch/internal/config"
	"github.com/nguyentantai21042004/media-batch/internal/logger"
)

// segmentFFmpeg imitates the ffmpeg segment muxer by writing pieces of at
// most size bytes to the output pattern.
func segmentFFmpeg(size int) func(name string, args []string) (string, error) {
	return func(name string, args []string) (string, error) {
		data, err := os.ReadFile(argAfter(args, "-i"))
		if err != nil {
			return "", err
		}
		pattern := args[len(args)-1]
		for i := 0; len(data) > 0; i++ {
			n := min(size, len(data))
			if err := os.WriteFile(fmt.Sprintf(pattern, i), data[:n], 0644); err != nil {
				return "", err
			}
			data = data[n:]
		}
		return "", nil
	}
}

// limitedTranscriptionServer rejects uploads over limit bytes the way the
// OpenAI endpoint does and otherwise echoes the first byte of the file.
type limitedTranscriptionServer struct {
	limit int64

	mu       sync.Mutex
	requests int
	largest  int64
}

func (s *limitedTranscriptionServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.requests++
	s.largest = max(s.largest, int64(len(body)))
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if int64(len(body)) > s.limit {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		fmt.Fprintf(w, `{"error":{"message":"Maximum content size limit (%d) exceeded","type":"invalid_request_error"}}`, s.limit)
		return
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	if err := r.ParseMultipartForm(s.limit); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer f.Close()
	first := make([]byte, 1)
	if _, err := f.Read(first); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	fmt.Fprintf(w, `{"text":"part %s"}`, first)
}

func (s *limitedTranscriptionServer) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests, s.largest = 0, 0
}

func (s *limitedTranscriptionServer) stats() (int, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests, s.largest
}

// writeStriped writes n bytes where each run of stripe bytes repeats the
// next letter, so every chunk starts with a distinct letter.
func writeStriped(t *testing.T, path string, n, stripe int) {
	t.Helper()
	data := make([]byte, n)
	for i := range data {
		data[i] = byte('a' + i/stripe)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestChunkedOpenAIOversizedAudio(t *testing.T) {
	const (
		limit = 4096
		chunk = 2500
	)
	srv := &limitedTranscriptionServer{limit: limit}
	ts := httptest.NewServer(srv)
	defer ts.Close()

	dir := t.TempDir()
	audio := filepath.Join(dir, "lecture.wav")
	writeStriped(t, audio, 4*chunk, chunk)

	openaiCfg := config.OpenAIConfig{Model: "whisper-1", BaseURL: ts.URL + "/v1"}

	// sent whole, the file is rejected
	if _, err := NewOpenAI("test-key", openaiCfg).Transcribe(context.Background(), audio, "en"); err == nil {
		t.Fatal("oversized upload should be rejected by the server")
	}

	srv.reset()
	exec := &fakeExecutor{execute: segmentFFmpeg(chunk)}
	p := Chunked(NewOpenAI("test-key", openaiCfg), ChunkOptions{
		Binary:   "ffmpeg",
		MaxBytes: 3000,
		Duration: 5 * time.Minute,
	}, exec, logger.Discard())

	got, err := p.Transcribe(context.Background(), audio, "en")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if want := "part a\npart b\npart c\npart d"; got != want {
		t.Errorf("Transcribe() = %q, want %q", got, want)
	}
	requests, largest := srv.stats()
	if requests != 4 {
		t.Errorf("requests = %d, want 4", requests)
	}
	if largest > limit {
		t.Errorf("largest request = %d bytes, over the %d limit", largest, limit)
	}

	if len(exec.calls) != 1 {
		t.Fatalf("ffmpeg calls = %d, want 1", len(exec.calls))
	}
	args := exec.calls[0]
	if args[0] != "ffmpeg" || argAfter(args, "-f") != "segment" || argAfter(args, "-segment_time") != "300" {
		t.Errorf("unexpected split args %v", args)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("chunk files left behind: %v", entries)
	}
}

type recordingProvider struct {
	name  string
	paths []string
	fail  map[int]error
}

func (r *recordingProvider) Name() string { return r.name }

func (r *recordingProvider) Available(context.Context) error { return nil }

func (r *recordingProvider) Transcribe(_ context.Context, audioPath, _ string) (string, error) {
	r.paths = append(r.paths, audioPath)
	if err := r.fail[len(r.paths)]; err != nil {
		return "", err
	}
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", err
	}
	return string(data[:1]), nil
}

func TestChunkedTranscribe(t *testing.T) {
	tests := []struct {
		name      string
		size      int
		maxBytes  int64
		fail      map[int]error
		splitErr  error
		want      string
		wantCalls int
		wantSplit bool
		wantErr   string
	}{
		{
			name:      "small file sent whole",
			size:      100,
			maxBytes:  1000,
			want:      "a",
			wantCalls: 1,
		},
		{
			name:      "limit disabled",
			size:      5000,
			maxBytes:  0,
			want:      "a",
			wantCalls: 1,
		},
		{
			name:      "large file split in order",
			size:      3000,
			maxBytes:  1000,
			want:      "a\nb\nc",
			wantCalls: 3,
			wantSplit: true,
		},
		{
			name:      "chunk failure names the chunk",
			size:      3000,
			maxBytes:  1000,
			fail:      map[int]error{2: errors.New("status code: 500")},
			wantCalls: 2,
			wantSplit: true,
			wantErr:   "chunk 2/3",
		},
		{
			name:      "split failure",
			size:      3000,
			maxBytes:  1000,
			splitErr:  errors.New("exit status 1"),
			wantSplit: true,
			wantErr:   "split audio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			audio := filepath.Join(t.TempDir(), "talk.wav")
			writeStriped(t, audio, tt.size, 1000)

			exec := &fakeExecutor{execute: func(name string, args []string) (string, error) {
				if tt.splitErr != nil {
					return "", tt.splitErr
				}
				return segmentFFmpeg(1000)(name, args)
			}}
			inner := &recordingProvider{name: config.ProviderGemini, fail: tt.fail}
			p := Chunked(inner, ChunkOptions{Binary: "ffmpeg", MaxBytes: tt.maxBytes, Duration: time.Minute}, exec, logger.Discard())

			if p.Name() != config.ProviderGemini {
				t.Errorf("Name() = %q, want the wrapped provider's name", p.Name())
			}

			got, err := p.Transcribe(context.Background(), audio, "zh")
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Transcribe() error = %v, want %q", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Transcribe() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Transcribe() = %q, want %q", got, tt.want)
			}
			if len(inner.paths) != tt.wantCalls {
				t.Errorf("provider calls = %d, want %d", len(inner.paths), tt.wantCalls)
			}
			if split := len(exec.calls) > 0; split != tt.wantSplit {
				t.Errorf("ffmpeg invoked = %v, want %v", split, tt.wantSplit)
			}
		})
	}
}

func TestNewWrapsRemoteProviders(t *testing.T) {
	cfg := config.Default()
	cfg.Transcribe.Providers = []string{config.ProviderWhisper, config.ProviderOpenAI, config.ProviderGemini}

	providers, err := New(cfg, &fakeExecutor{}, logger.Discard())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := providers[0].(*implChunked); ok {
		t.Error("whisper should not be chunked")
	}
	for _, p := range providers[1:] {
		c, ok := p.(*implChunked)
		if !ok {
			t.Errorf("%s is not chunked", p.Name())
			continue
		}
		if c.opts.MaxBytes != cfg.Transcribe.MaxUploadBytes || c.opts.Duration != cfg.Transcribe.ChunkDuration {
			t.Errorf("%s chunk options = %+v", p.Name(), c.opts)
		}
	}
}
