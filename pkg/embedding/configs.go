package embedding

import (
	"fmt"
)

// Config holds the embedding provider settings.
type Config struct {
	// APIKey authenticates against the inference service.
	APIKey string `yaml:"api_key" env:"EMBEDDING_API_KEY"`

	// BaseURL is the root of the OpenAI-compatible inference service.
	// Empty means the OpenAI default.
	BaseURL string `yaml:"base_url" env:"EMBEDDING_BASE_URL"`

	// Model is the embedding model identifier.
	Model string `yaml:"model" env:"EMBEDDING_MODEL"`

	// Dimensions optionally reduces the output dimension for models
	// that support it. Zero means the model default.
	Dimensions int `yaml:"dimensions" env:"EMBEDDING_DIMENSIONS"`
}

// DefaultConfig provides defaults for the common case.
func DefaultConfig() *Config {
	return &Config{
		Model: "text-embedding-3-small",
	}
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("embedding: missing API key")
	}
	if c.Model == "" {
		return fmt.Errorf("embedding: missing model")
	}
	return nil
}
