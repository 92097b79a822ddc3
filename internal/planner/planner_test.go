package planner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/media-batch/internal/profile"
)

func TestDestination(t *testing.T) {
	in := filepath.FromSlash("/data/in")
	out := filepath.FromSlash("/data/out")

	tests := []struct {
		name    string
		src     string
		keep    bool
		want    string
		wantErr bool
	}{
		{name: "flattened", src: "/data/in/a/b/clip.mkv", want: "/data/out/clip.mp3"},
		{name: "mirrored", src: "/data/in/a/b/clip.mkv", keep: true, want: "/data/out/a/b/clip.mp3"},
		{name: "mirrored at root", src: "/data/in/clip.mkv", keep: true, want: "/data/out/clip.mp3"},
		{name: "dots in name", src: "/data/in/my.talk.v2.mp4", want: "/data/out/my.talk.v2.mp3"},
		{name: "outside root", src: "/elsewhere/clip.mkv", keep: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Destination(in, filepath.FromSlash(tt.src), out, ".mp3", tt.keep)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Destination() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != filepath.FromSlash(tt.want) {
				t.Errorf("Destination() = %q, want %q", got, filepath.FromSlash(tt.want))
			}
		})
	}
}

func TestDestinationDeterministic(t *testing.T) {
	a, _ := Destination("/in", "/in/x/y.mp4", "/out", ".m4a", true)
	b, _ := Destination("/in", "/in/x/y.mp4", "/out", ".m4a", true)
	if a != b {
		t.Errorf("%q != %q", a, b)
	}
}

func TestPlan(t *testing.T) {
	root := t.TempDir()
	in := filepath.Join(root, "in")
	out := filepath.Join(root, "out")
	src := filepath.Join(in, "sub", "clip.mp4")

	p, err := profile.AudioFormat("mp3")
	if err != nil {
		t.Fatal(err)
	}

	b := Builder{InputRoot: in, OutputRoot: out, KeepStructure: true, Profile: p}

	job, skip, err := b.Plan(src)
	if err != nil {
		t.Fatal(err)
	}
	if skip {
		t.Fatal("fresh destination should not be skipped")
	}
	if _, err := uuid.Parse(job.ID); err != nil {
		t.Errorf("job ID %q is not a UUID", job.ID)
	}
	if want := filepath.Join(out, "sub", "clip.mp3"); job.Destination != want {
		t.Errorf("Destination = %q, want %q", job.Destination, want)
	}
	if _, err := os.Stat(filepath.Dir(job.Destination)); err != nil {
		t.Errorf("parent dir not created: %v", err)
	}

	// an empty leftover is redone
	if err := os.WriteFile(job.Destination, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, skip, _ := b.Plan(src); skip {
		t.Error("empty destination should not be skipped")
	}

	if err := os.WriteFile(job.Destination, []byte("audio"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, skip, _ := b.Plan(src); !skip {
		t.Error("existing destination should be skipped")
	}

	b.Overwrite = true
	if _, skip, _ := b.Plan(src); skip {
		t.Error("overwrite should never skip")
	}
}

func TestPlanExtOverride(t *testing.T) {
	root := t.TempDir()
	b := Builder{InputRoot: root, OutputRoot: root, Ext: ".md", Profile: profile.Speech()}

	job, _, err := b.Plan(filepath.Join(root, "talk.mp4"))
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Ext(job.Destination) != ".md" {
		t.Errorf("Destination = %q, want .md", job.Destination)
	}
}

func TestPlanRefusesToOverwriteSource(t *testing.T) {
	root := t.TempDir()
	vp, _ := profile.VideoPresetByName("default")
	b := Builder{InputRoot: root, OutputRoot: root, Profile: profile.Video(vp), Overwrite: true}

	if _, _, err := b.Plan(filepath.Join(root, "movie.mp4")); err == nil {
		t.Error("expected error when destination equals source")
	}
}
