package llm

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/imroc/req/v3"
)

const (
	TransportHTTP  = "http"
	TransportGenAI = "genai"
)

type Config struct {
	ApiKey    string `env:"GEMINI_API_KEY"`
	Model     string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	BaseURL   string `env:"GEMINI_URL"`
	Transport string `env:"LLM_TRANSPORT" envDefault:"http"`
}

// NewTransport returns a nil Transport without error when no API key is configured.
func NewTransport(ctx context.Context, cfg Config, cl *req.Client) (Transport, error) {
	if cfg.ApiKey == "" {
		return nil, nil
	}

	switch cfg.Transport {
	case TransportHTTP, "":
		return NewGeminiHTTP(cfg.ApiKey, cfg.Model, cfg.BaseURL, cl)
	case TransportGenAI:
		return NewGenAI(ctx, cfg.ApiKey, cfg.Model)
	default:
		return nil, errors.Newf("unsupported llm transport: %s", cfg.Transport)
	}
}
