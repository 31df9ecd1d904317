package embedding

import "fmt"

func NewProvider(providerType, apiKey, baseURL, model string) (EmbeddingProvider, error) {
	switch providerType {
	case "gemini":
		if apiKey == "" {
			return nil, fmt.Errorf("gemini embedding provider requires GOOGLE_GEMINI_API_KEY")
		}
		return NewGeminiProvider(apiKey), nil
	case "ollama":
		return NewOllamaProvider(baseURL, model), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", providerType)
	}
}
