// Package config loads council settings and provider credentials from the
// environment, with .env file support for local development.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Default council composition: the member models queried in parallel and the
// chairman that synthesizes their answers.
var defaultCouncilModels = []string{
	"openai/gpt-5.1",
	"google/gemini-3-pro-preview",
	"anthropic/claude-sonnet-4.5",
	"x-ai/grok-4",
}

const (
	defaultChairmanModel       = "google/gemini-3-pro-preview"
	defaultDataDir             = "data/conversations"
	defaultQueryTimeoutSeconds = 120
)

// Config holds everything the process reads from the environment. A missing
// credential disables that backend entirely.
type Config struct {
	OpenRouterAPIKey string
	DeepSeekAPIKey   string
	ZhipuAPIKey      string
	MoonshotAPIKey   string

	CouncilModels []string
	ChairmanModel string
	DataDir       string
	QueryTimeout  time.Duration
}

// Load reads configuration from the environment. A .env file is honored when
// present and silently skipped when not.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		zap.L().Debug("no .env file found, using system environment variables")
	}

	viper.SetDefault("council_models", defaultCouncilModels)
	viper.SetDefault("chairman_model", defaultChairmanModel)
	viper.SetDefault("data_dir", defaultDataDir)
	viper.SetDefault("query_timeout_seconds", defaultQueryTimeoutSeconds)
	viper.AutomaticEnv()

	// COUNCIL_MODELS is a comma-separated list in the environment.
	if models := os.Getenv("COUNCIL_MODELS"); models != "" {
		parts := strings.Split(models, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				cleaned = append(cleaned, p)
			}
		}
		viper.Set("council_models", cleaned)
	}

	cfg := &Config{
		OpenRouterAPIKey: viper.GetString("openrouter_api_key"),
		DeepSeekAPIKey:   viper.GetString("deepseek_api_key"),
		ZhipuAPIKey:      viper.GetString("zhipu_api_key"),
		MoonshotAPIKey:   viper.GetString("moonshot_api_key"),
		CouncilModels:    viper.GetStringSlice("council_models"),
		ChairmanModel:    viper.GetString("chairman_model"),
		DataDir:          viper.GetString("data_dir"),
		QueryTimeout:     time.Duration(viper.GetInt("query_timeout_seconds")) * time.Second,
	}

	if len(cfg.CouncilModels) == 0 {
		return nil, fmt.Errorf("COUNCIL_MODELS must name at least one model")
	}
	if cfg.QueryTimeout <= 0 {
		return nil, fmt.Errorf("QUERY_TIMEOUT_SECONDS must be a positive number of seconds")
	}

	return cfg, nil
}
