package transcript

import (
	"context"
	"time"
)

// Document is one finished transcription.
type Document struct {
	Source   string
	Text     string
	Provider string
	Created  time.Time
}

// Writer persists a transcription as a markdown file, plus a .docx twin when
// enabled.
type Writer interface {
	Write(ctx context.Context, doc Document, path string) error
}
