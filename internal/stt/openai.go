package stt

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/media-batch/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

type implOpenAI struct {
	apiKey string
	cfg    config.OpenAIConfig
	client *openai.Client
}

// NewOpenAI returns a provider for the OpenAI transcription endpoint. With a
// base URL set it also talks to compatible local servers, which usually do
// not need a key.
func NewOpenAI(apiKey string, cfg config.OpenAIConfig) Provider {
	clientCfg := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &implOpenAI{
		apiKey: apiKey,
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientCfg),
	}
}

func (o *implOpenAI) Name() string { return config.ProviderOpenAI }

func (o *implOpenAI) Available(ctx context.Context) error {
	if o.apiKey == "" && o.cfg.BaseURL == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}
	return nil
}

func (o *implOpenAI) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	req := openai.AudioRequest{
		Model:    o.cfg.Model,
		FilePath: audioPath,
		Language: language,
	}
	if req.Model == "" {
		req.Model = openai.Whisper1
	}

	resp, err := o.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("transcription error: %w", err)
	}
	return resp.Text, nil
}
