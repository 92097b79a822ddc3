package stt

import "context"

// Provider converts an audio file to text.
type Provider interface {
	Name() string
	// Available reports why the provider cannot be used, or nil.
	Available(ctx context.Context) error
	Transcribe(ctx context.Context, audioPath, language string) (string, error)
}
