package embedding

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// openAIProvider implements Provider against any OpenAI-compatible
// embeddings endpoint.
type openAIProvider struct {
	api   *openai.Client
	model openai.EmbeddingModel
	dims  int
}

func newOpenAIProvider(cfg *Config) *openAIProvider {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &openAIProvider{
		api:   openai.NewClientWithConfig(clientCfg),
		model: openai.EmbeddingModel(cfg.Model),
		dims:  cfg.Dimensions,
	}
}

// Embed generates the embedding for a single text using the
// /v1/embeddings endpoint.
func (p *openAIProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	req := openai.EmbeddingRequest{
		Input:          []string{text},
		Model:          p.model,
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	}
	if p.dims > 0 {
		req.Dimensions = p.dims
	}

	resp, err := p.api.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, parseAPIError(err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embedding: empty response from inference API")
	}

	return resp.Data[0].Embedding, nil
}

// parseAPIError extracts a human-readable error from the API response.
func parseAPIError(err error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("embedding: API error %d: %s", reqErr.HTTPStatusCode, string(reqErr.Body))
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("embedding: API error %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}

	return fmt.Errorf("embedding: request failed: %w", err)
}
