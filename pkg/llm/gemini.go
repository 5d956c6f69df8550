package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/imroc/req/v3"
)

const (
	DefaultGeminiURL   = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiModel = "gemini-2.0-flash"
)

// GeminiHTTP talks to the Gemini REST generateContent endpoint.
type GeminiHTTP struct {
	cl      *req.Client
	apiKey  string
	model   string
	baseURL string
}

func NewGeminiHTTP(
	apiKey string,
	model string,
	baseURL string,
	cl *req.Client,
) (*GeminiHTTP, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}

	if model == "" {
		model = DefaultGeminiModel
	}

	if baseURL == "" {
		baseURL = DefaultGeminiURL
	}

	return &GeminiHTTP{
		cl:      cl,
		apiKey:  apiKey,
		model:   model,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (g *GeminiHTTP) Generate(ctx context.Context, prompt string) (string, error) {
	var apiResp generateResponse

	resp, err := g.cl.R().
		SetContext(ctx).
		SetQueryParam("key", g.apiKey).
		SetBody(generateRequest{
			Contents: []content{
				{
					Role:  "user",
					Parts: []part{{Text: prompt}},
				},
			},
			GenerationConfig: generationConfig{
				Temperature:      0.1,
				ResponseMimeType: "application/json",
			},
		}).
		SetSuccessResult(&apiResp).
		Post(fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model))
	if err != nil {
		return "", errors.WithStack(err)
	}

	if resp.IsErrorState() {
		return "", errors.Newf("got error response: status=%d body=%s", resp.StatusCode, resp.String())
	}

	if len(apiResp.Candidates) == 0 || len(apiResp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned no candidates")
	}

	return apiResp.Candidates[0].Content.Parts[0].Text, nil
}
