package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/media-batch/internal/logger"
	"github.com/nguyentantai21042004/media-batch/internal/model"
	"github.com/nguyentantai21042004/media-batch/internal/profile"
	"github.com/nguyentantai21042004/media-batch/internal/transcript"
)

type fakeProvider struct {
	text string
	err  error
	got  string
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Available(context.Context) error { return nil }

func (p *fakeProvider) Transcribe(_ context.Context, audioPath, _ string) (string, error) {
	p.got = audioPath
	return p.text, p.err
}

type fakeWriter struct {
	docs []transcript.Document
}

func (w *fakeWriter) Write(_ context.Context, doc transcript.Document, path string) error {
	w.docs = append(w.docs, doc)
	return os.WriteFile(path, []byte(doc.Text), 0644)
}

func transcribeJob(t *testing.T, f fixture) model.Job {
	job := f.job(t, "lesson.mp4", profile.Speech())
	job.Destination = filepath.Join(f.out, "lesson.md")
	return job
}

func TestTranscriber(t *testing.T) {
	tests := []struct {
		name        string
		provider    *fakeProvider
		wantOutcome model.Outcome
		wantErr     error
		wantDocs    int
	}{
		{
			name:        "success",
			provider:    &fakeProvider{text: "  大家好，今天我们讲音乐  "},
			wantOutcome: model.OutcomeSuccess,
			wantDocs:    1,
		},
		{
			name:        "too short",
			provider:    &fakeProvider{text: " 好的 "},
			wantOutcome: model.OutcomeFailure,
			wantErr:     model.ErrResultTooShort,
		},
		{
			name:        "provider error",
			provider:    &fakeProvider{err: errors.New("503 unavailable")},
			wantOutcome: model.OutcomeFailure,
			wantErr:     model.ErrJobFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			job := transcribeJob(t, f)
			w := &fakeWriter{}

			proc := NewTranscriber(f.cfg, &fakeFFmpeg{run: writeOutput("RIFF")}, tt.provider, w, logger.Discard())
			res := proc.Process(context.Background(), job)

			if res.Outcome != tt.wantOutcome {
				t.Errorf("outcome = %s (%s), want %s", res.Outcome, res.Message, tt.wantOutcome)
			}
			if tt.wantErr != nil && !errors.Is(res.Err, tt.wantErr) {
				t.Errorf("err = %v, want %v", res.Err, tt.wantErr)
			}
			if len(w.docs) != tt.wantDocs {
				t.Fatalf("docs written = %d, want %d", len(w.docs), tt.wantDocs)
			}
			if tt.wantDocs > 0 && w.docs[0].Text != "大家好，今天我们讲音乐" {
				t.Errorf("text not trimmed: %q", w.docs[0].Text)
			}
			if filepath.Ext(tt.provider.got) != ".wav" {
				t.Errorf("provider got %q, want staged wav", tt.provider.got)
			}
			assertClean(t, f, tt.wantDocs)
		})
	}
}

func TestTranscriberKeepAudio(t *testing.T) {
	f := newFixture(t)
	f.cfg.Transcribe.KeepAudio = true
	job := transcribeJob(t, f)

	proc := NewTranscriber(f.cfg, &fakeFFmpeg{run: writeOutput("RIFF")}, &fakeProvider{text: "hello everyone"}, &fakeWriter{}, logger.Discard())
	res := proc.Process(context.Background(), job)
	if res.Outcome != model.OutcomeSuccess {
		t.Fatalf("outcome = %s (%s)", res.Outcome, res.Message)
	}

	if _, err := os.Stat(filepath.Join(f.out, "audio", "lesson.wav")); err != nil {
		t.Errorf("kept audio missing: %v", err)
	}
}

func TestTranscriberNoAudioTrack(t *testing.T) {
	f := newFixture(t)
	job := transcribeJob(t, f)
	provider := &fakeProvider{text: "never called"}

	exec := &fakeFFmpeg{run: func(context.Context, string, string) error {
		return errNoStream
	}}
	res := NewTranscriber(f.cfg, exec, provider, &fakeWriter{}, logger.Discard()).Process(context.Background(), job)

	if res.Outcome != model.OutcomeNoTrack {
		t.Errorf("outcome = %s, want no-source-track", res.Outcome)
	}
	if provider.got != "" {
		t.Error("provider should not run without audio")
	}
}
