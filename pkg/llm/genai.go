package llm

import (
	"context"

	"github.com/cockroachdb/errors"
	"google.golang.org/genai"
)

// GenAI is a Transport backed by the official Google Gen AI SDK.
type GenAI struct {
	client *genai.Client
	model  string
}

func NewGenAI(ctx context.Context, apiKey string, model string) (*GenAI, error) {
	if apiKey == "" {
		return nil, errors.New("genai api key is empty")
	}

	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create genai client")
	}

	return &GenAI{
		client: client,
		model:  model,
	}, nil
}

func (g *GenAI) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.1),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", errors.Wrap(err, "generate content")
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("empty response from model")
	}

	return text, nil
}
