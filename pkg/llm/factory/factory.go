package factory

import (
	"fmt"
	"time"

	"supercharged-notes-be/pkg/llm"
	"supercharged-notes-be/pkg/llm/ollama"
	"supercharged-notes-be/pkg/llm/openrouter"
)

type Params struct {
	Provider      string
	DefaultModel  string
	OllamaBaseURL string
	OpenRouterURL string
	OpenRouterKey string
	SiteURL       string
	SiteName      string
	Timeout       time.Duration
}

func NewLLMProvider(p Params) (llm.LLMProvider, error) {
	switch p.Provider {
	case "openrouter", "":
		if p.OpenRouterKey == "" {
			return nil, fmt.Errorf("openrouter provider requires OPENROUTER_API_KEY")
		}
		return openrouter.NewOpenRouterProvider(openrouter.Config{
			APIKey:   p.OpenRouterKey,
			BaseURL:  p.OpenRouterURL,
			Model:    p.DefaultModel,
			SiteURL:  p.SiteURL,
			SiteName: p.SiteName,
			Timeout:  p.Timeout,
		}), nil
	case "ollama":
		baseURL := p.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, p.DefaultModel, p.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", p.Provider)
	}
}
