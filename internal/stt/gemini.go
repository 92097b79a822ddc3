package stt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/media-batch/internal/config"
	"github.com/nguyentantai21042004/media-batch/internal/logger"
	"google.golang.org/genai"
)

const transcribePrompt = `Transcribe the speech in this audio verbatim in language code %q.
Return only the transcript text without timestamps, speaker labels or commentary.`

type generateFunc func(ctx context.Context, key, model string, contents []*genai.Content) (string, error)

type implGemini struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
	generate   generateFunc
}

// NewGemini returns a provider that sends inline audio to Gemini, rotating
// through apiKeys when a key is rate limited.
func NewGemini(apiKeys []string, model string, log logger.Logger) Provider {
	return &implGemini{
		apiKeys:  apiKeys,
		model:    model,
		logger:   log,
		generate: generateContent,
	}
}

func (g *implGemini) Name() string { return config.ProviderGemini }

func (g *implGemini) Available(ctx context.Context) error {
	if len(g.apiKeys) == 0 {
		return fmt.Errorf("GEMINI_API_KEYS environment variable is not set")
	}
	return nil
}

func (g *implGemini) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(fmt.Sprintf(transcribePrompt, language)),
			genai.NewPartFromBytes(data, "audio/wav"),
		}, genai.RoleUser),
	}

	var lastErr error
	for range len(g.apiKeys) {
		key, idx := g.key()

		text, err := g.generate(ctx, key, g.model, contents)
		if err == nil {
			return text, nil
		}
		if !isRateLimited(err) {
			return "", fmt.Errorf("generate content: %w", err)
		}

		g.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
		g.rotateKey(idx)
		lastErr = err
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *implGemini) key() (string, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey], g.currentKey
}

// rotateKey advances past idx unless another worker already did.
func (g *implGemini) rotateKey(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func generateContent(ctx context.Context, key, model string, contents []*genai.Content) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", err
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			text.WriteString(part.Text)
		}
		return text.String(), nil
	}

	return "", errors.New("empty response from Gemini")
}
