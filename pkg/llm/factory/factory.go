package factory

import (
	"fmt"

	"aqua-support-be/pkg/llm"
	"aqua-support-be/pkg/llm/huggingface"
	"aqua-support-be/pkg/llm/ollama"
)

// NewLLMProvider selects the chat backend by name. Supported: "ollama", "huggingface".
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(apiKey, baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", providerType)
	}
}
