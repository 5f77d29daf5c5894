package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the support bot.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Knowledge KnowledgeConfig `mapstructure:"knowledge"`
	Retrieval RetrievalConfig `mapstructure:"retrieval"`
	Providers ProvidersConfig `mapstructure:"providers"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Listen string `mapstructure:"listen"`
}

// KnowledgeConfig points at the knowledge base on disk.
type KnowledgeConfig struct {
	Dir string `mapstructure:"dir"`
	// ReloadCron is an optional cron expression; when set, the snapshot is
	// rebuilt on that schedule and swapped in atomically.
	ReloadCron string `mapstructure:"reload_cron"`
}

// RetrievalConfig contains the hand-tuned retrieval knobs. The alias and
// stop-word lists are deployment configuration, not code: they encode local
// knowledge about the catalog's cities and its Swedish domain vocabulary.
type RetrievalConfig struct {
	MaxContextChunks  int               `mapstructure:"max_context_chunks"`
	MaxInjectedChunks int               `mapstructure:"max_injected_chunks"`
	MaxCityDistance   int               `mapstructure:"max_city_distance"`
	CityAliases       map[string]string `mapstructure:"city_aliases"`
	StopWords         []string          `mapstructure:"stop_words"`
	VehicleKeywords   []string          `mapstructure:"vehicle_keywords"`
	ContentKeywords   []string          `mapstructure:"content_keywords"`
	VaguePhrases      []string          `mapstructure:"vague_phrases"`
}

// ProvidersConfig contains LLM provider configurations
type ProvidersConfig struct {
	OpenAI OpenAIConfig `mapstructure:"openai"`
}

// OpenAIConfig configures the chat-completions client used for both the NLU
// and the answer-generation calls.
type OpenAIConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	CompletionModel string        `mapstructure:"completion_model"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

func (s ServerConfig) Validate() error {
	if strings.TrimSpace(s.Listen) == "" {
		return fmt.Errorf("server.listen required")
	}
	return nil
}

func (k KnowledgeConfig) Validate() error {
	if strings.TrimSpace(k.Dir) == "" {
		return fmt.Errorf("knowledge.dir required")
	}
	return nil
}

func (r RetrievalConfig) Validate() error {
	if r.MaxContextChunks <= 0 {
		return fmt.Errorf("retrieval.max_context_chunks must be positive")
	}
	if r.MaxInjectedChunks < 0 {
		return fmt.Errorf("retrieval.max_injected_chunks must not be negative")
	}
	if r.MaxCityDistance < 0 {
		return fmt.Errorf("retrieval.max_city_distance must not be negative")
	}
	return nil
}

func (o OpenAIConfig) Validate() error {
	if strings.TrimSpace(o.APIKey) == "" {
		return fmt.Errorf("providers.openai.api_key required (or SUPPORTBOT_PROVIDERS_OPENAI_API_KEY)")
	}
	return nil
}

// LoadConfig loads config from file
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("json")

	viper.SetDefault("server.listen", ":3000")
	viper.SetDefault("knowledge.dir", "knowledge")
	viper.SetDefault("knowledge.reload_cron", "")
	viper.SetDefault("retrieval.max_context_chunks", 8)
	viper.SetDefault("retrieval.max_injected_chunks", 3)
	viper.SetDefault("retrieval.max_city_distance", 2)
	viper.SetDefault("retrieval.city_aliases", DefaultCityAliases)
	viper.SetDefault("retrieval.stop_words", DefaultStopWords)
	viper.SetDefault("retrieval.vehicle_keywords", DefaultVehicleKeywords)
	viper.SetDefault("retrieval.content_keywords", DefaultContentKeywords)
	viper.SetDefault("retrieval.vague_phrases", DefaultVaguePhrases)
	viper.SetDefault("providers.openai.completion_model", "gpt-4o-mini")
	viper.SetDefault("providers.openai.temperature", 0.2)
	viper.SetDefault("providers.openai.max_tokens", 1024)
	viper.SetDefault("providers.openai.timeout", 30*time.Second)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("SUPPORTBOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine: defaults plus env cover a full config.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	if err := config.Server.Validate(); err != nil {
		panic(err)
	}
	if err := config.Knowledge.Validate(); err != nil {
		panic(err)
	}
	if err := config.Retrieval.Validate(); err != nil {
		panic(err)
	}
	return &config
}
