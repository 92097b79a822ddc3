package transcript

import (
	"github.com/nguyentantai21042004/media-batch/internal/logger"
	"github.com/pemistahl/lingua-go"
)

type implWriter struct {
	docx     bool
	logger   logger.Logger
	detector *detector
}

// New creates a Writer. With docx set every markdown file gets a .docx
// sibling.
func New(docx bool, log logger.Logger) Writer {
	return &implWriter{
		docx:   docx,
		logger: log,
		detector: &detector{
			build: func() lingua.LanguageDetector {
				return lingua.NewLanguageDetectorBuilder().
					FromAllLanguages().
					WithLowAccuracyMode().
					Build()
			},
		},
	}
}
