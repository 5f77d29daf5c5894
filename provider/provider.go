package provider

import (
	"context"
	"errors"

	"github.com/trafikskolan/supportbot/config"
	"github.com/trafikskolan/supportbot/models"
	openai_provider "github.com/trafikskolan/supportbot/provider/openai"
)

// Client represents different LLM providers
type Client string

const (
	OpenAI    Client = "openai"
	Anthropic Client = "anthropic"
)

// Understander expands a free-text question into structured search intent.
type Understander interface {
	ExpandQuery(ctx context.Context, question string) (models.QueryIntent, error)
}

// Generator synthesizes the final answer from the retrieved context block.
// A resolved city/area is passed along so the prompt can pin the location.
type Generator interface {
	GenerateAnswer(ctx context.Context, question, contextBlock, city, area string) (string, error)
}

// Provider is the interface that all LLM implementations must satisfy
type Provider interface {
	Understander
	Generator
}

// NewProvider creates a new LLM client based on the provided configuration
func NewProvider(client Client, cfg config.OpenAIConfig) (Provider, error) {
	switch client {
	case OpenAI:
		if cfg.APIKey == "" {
			return nil, errors.New("openai api key not configured")
		}
		return openai_provider.NewOpenAIClient(
			cfg.APIKey,
			cfg.CompletionModel,
			cfg.Temperature,
			cfg.MaxTokens,
			cfg.Timeout,
		), nil
	case Anthropic:
		return nil, errors.New("anthropic client not implemented yet")
	default:
		return nil, errors.New("unsupported LLM provider")
	}
}
