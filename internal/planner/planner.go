// Package planner turns scanned source files into jobs.
package planner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/media-batch/internal/model"
	"github.com/nguyentantai21042004/media-batch/internal/profile"
)

// Destination maps src under inputRoot to its output path. It is pure: the
// same arguments always give the same path and nothing is touched on disk.
func Destination(inputRoot, src, outputRoot, ext string, keepStructure bool) (string, error) {
	base := filepath.Base(src)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ext

	if !keepStructure {
		return filepath.Join(outputRoot, name), nil
	}

	rel, err := filepath.Rel(inputRoot, filepath.Dir(src))
	if err != nil {
		return "", fmt.Errorf("relative path of %s: %w", src, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside %s", src, inputRoot)
	}
	return filepath.Join(outputRoot, rel, name), nil
}

// Builder plans jobs for one run. Its fields are fixed once the run starts.
type Builder struct {
	InputRoot     string
	OutputRoot    string
	Ext           string
	KeepStructure bool
	Overwrite     bool
	Profile       profile.Profile
}

// Plan builds the job for src. skip is true when the destination already
// holds a non-empty file and overwriting is disabled; a zero-length file is
// treated as a leftover from an interrupted run and redone.
func (b Builder) Plan(src string) (job model.Job, skip bool, err error) {
	ext := b.Ext
	if ext == "" {
		ext = b.Profile.Ext
	}

	dst, err := Destination(b.InputRoot, src, b.OutputRoot, ext, b.KeepStructure)
	if err != nil {
		return model.Job{}, false, err
	}

	if sameFile(src, dst) {
		return model.Job{}, false, fmt.Errorf("destination %s would overwrite its source", dst)
	}

	job = model.Job{
		ID:          uuid.NewString(),
		Source:      src,
		Destination: dst,
		Profile:     b.Profile,
	}

	if !b.Overwrite && exists(dst) {
		return job, true, nil
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return model.Job{}, false, fmt.Errorf("create output dir: %w", err)
	}
	return job, false, nil
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Size() > 0
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
