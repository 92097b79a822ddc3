package model

import "errors"

// Run-level errors abort a batch before any job runs.
var (
	ErrDirectoryNotFound = errors.New("input directory not found")
	ErrToolUnavailable   = errors.New("external tool unavailable")
	ErrNoProvider        = errors.New("no speech-to-text provider available")
)

// Job-level errors are recorded on a Result and never abort the run.
var (
	ErrJobFailed      = errors.New("job failed")
	ErrTimeout        = errors.New("timeout")
	ErrEmptyOutput    = errors.New("empty or missing output")
	ErrResultTooShort = errors.New("result too short")
	ErrNoTrack        = errors.New("no source track")
)
