package factory

import (
	"fmt"

	"hr-assistant-be/pkg/embedding"
)

// NewEmbeddingProvider selects an embedding backend by name.
func NewEmbeddingProvider(providerType string, modelName string, baseURL string, apiKey string) (embedding.EmbeddingProvider, error) {
	switch providerType {
	case "gemini":
		return embedding.NewGeminiProvider(apiKey, modelName), nil
	case "ollama":
		return embedding.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", providerType)
	}
}
