// Package scanner enumerates media files under an input directory.
package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/media-batch/internal/model"
)

// VideoExtensions are the container formats accepted for audio extraction
// and transcription.
var VideoExtensions = []string{
	".mp4", ".avi", ".mov", ".mkv", ".flv", ".wmv", ".webm", ".m4v", ".mpg", ".mpeg",
	".3gp", ".mts", ".m2ts", ".ts", ".rm", ".rmvb", ".asf", ".vob", ".ogv", ".divx",
}

// AudioExtensions are the formats accepted for audio compression.
var AudioExtensions = []string{
	".mp3", ".wav", ".flac", ".m4a", ".aac", ".ogg", ".opus", ".wma", ".amr", ".aiff", ".au",
}

// MP4Extensions are the inputs of video compression.
var MP4Extensions = []string{".mp4"}

// Options selects which files Scan yields.
type Options struct {
	Recursive  bool
	Extensions []string
	// Exclude lists directories that are never descended into, typically the
	// output directory when it lives under the input root.
	Exclude []string
}

// Scan returns a lazy sequence of matching files under root in lexical path
// order. A missing or non-directory root fails before iteration starts.
func Scan(root string, opts Options) (iter.Seq2[string, error], error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", model.ErrDirectoryNotFound, root)
		}
		return nil, fmt.Errorf("stat input: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", model.ErrDirectoryNotFound, root)
	}

	m := newMatcher(opts)
	if opts.Recursive {
		return walk(root, m), nil
	}
	return list(root, m), nil
}

// Collect drains seq into a slice, stopping at the first error.
func Collect(seq iter.Seq2[string, error]) ([]string, error) {
	var files []string
	for path, err := range seq {
		if err != nil {
			return files, err
		}
		files = append(files, path)
	}
	return files, nil
}

// Match reports whether path has one of exts, ignoring case and hidden files.
func Match(path string, exts []string) bool {
	return newMatcher(Options{Extensions: exts}).file(filepath.Base(path))
}

type matcher struct {
	exts    map[string]bool
	exclude map[string]bool
}

func newMatcher(opts Options) matcher {
	m := matcher{exts: make(map[string]bool), exclude: make(map[string]bool)}
	for _, e := range opts.Extensions {
		m.exts[strings.ToLower(e)] = true
	}
	for _, d := range opts.Exclude {
		if abs, err := filepath.Abs(d); err == nil {
			m.exclude[abs] = true
		}
	}
	return m
}

func (m matcher) file(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	return m.exts[strings.ToLower(filepath.Ext(name))]
}

func (m matcher) skipDir(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return true
	}
	abs, err := filepath.Abs(path)
	return err == nil && m.exclude[abs]
}

func walk(root string, m matcher) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if !yield("", fmt.Errorf("walk %s: %w", path, err)) {
					return filepath.SkipAll
				}
				return nil
			}
			if d.IsDir() {
				if path != root && m.skipDir(path) {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || !m.file(d.Name()) {
				return nil
			}
			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

func list(root string, m matcher) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		entries, err := os.ReadDir(root)
		if err != nil {
			yield("", fmt.Errorf("read dir: %w", err))
			return
		}

		var files []string
		for _, e := range entries {
			if e.Type().IsRegular() && m.file(e.Name()) {
				files = append(files, filepath.Join(root, e.Name()))
			}
		}
		sort.Strings(files)

		for _, f := range files {
			if !yield(f, nil) {
				return
			}
		}
	}
}
