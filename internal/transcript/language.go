package transcript

import (
	"sync"

	"github.com/pemistahl/lingua-go"
)

const unknownLanguage = "unknown"

// detector builds the lingua detector on first use and serializes calls.
type detector struct {
	once  sync.Once
	mu    sync.Mutex
	build func() lingua.LanguageDetector
	d     lingua.LanguageDetector
}

func (d *detector) detect(text string) string {
	d.once.Do(func() { d.d = d.build() })

	d.mu.Lock()
	defer d.mu.Unlock()

	language, ok := d.d.DetectLanguageOf(text)
	if !ok {
		return unknownLanguage
	}
	return language.String()
}
