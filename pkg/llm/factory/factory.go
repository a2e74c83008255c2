package factory

import (
	"fmt"

	"agentcraft-be/internal/config"
	"agentcraft-be/pkg/llm"
	"agentcraft-be/pkg/llm/ollama"
	"agentcraft-be/pkg/llm/openai"
)

func NewLLMProvider(cfg config.AIConfig) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
		return openai.NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIModel), nil
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, cfg.OllamaModel), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
