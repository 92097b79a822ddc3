package transcript

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Write renders doc as markdown at path. The file appears only once fully
// written.
func (w *implWriter) Write(ctx context.Context, doc Document, path string) error {
	if doc.Created.IsZero() {
		doc.Created = time.Now()
	}
	language := w.detector.detect(doc.Text)

	md := Markdown(doc, language)
	if err := writeAtomic(path, func(tmp string) error {
		return os.WriteFile(tmp, []byte(md), 0644)
	}); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}

	if w.docx {
		docxPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".docx"
		title := strings.TrimSuffix(filepath.Base(doc.Source), filepath.Ext(doc.Source))
		if err := writeAtomic(docxPath, func(tmp string) error {
			return markdownToDocx(title, md, tmp)
		}); err != nil {
			// the markdown file is the primary artifact
			w.logger.Warn(ctx, "Failed to write %s: %v", docxPath, err)
		}
	}

	return nil
}

// Markdown renders the transcription document.
func Markdown(doc Document, language string) string {
	var b strings.Builder
	b.WriteString("# Transcription\n\n")
	b.WriteString("## Source\n\n")
	fmt.Fprintf(&b, "- **File**: %s\n", filepath.Base(doc.Source))
	fmt.Fprintf(&b, "- **Processed**: %s\n", doc.Created.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- **Provider**: %s\n", doc.Provider)
	fmt.Fprintf(&b, "- **Language**: %s\n\n", language)
	b.WriteString("## Text\n\n")
	b.WriteString(strings.TrimSpace(doc.Text))
	b.WriteString("\n")
	return b.String()
}

// writeAtomic calls write with a temp path in the destination directory and
// renames it over path on success.
func writeAtomic(path string, write func(tmp string) error) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*"+filepath.Ext(path))
	if err != nil {
		return err
	}
	tmp := f.Name()
	f.Close()
	defer os.Remove(tmp)

	if err := write(tmp); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
