package config

import (
	"log"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv    = "DOCLENS_CONFIG"
	logLevelEnv      = "DOCLENS_LOG_LEVEL"
	judgeProviderEnv = "DOCLENS_JUDGE_PROVIDER"
	judgeURLEnv      = "DOCLENS_JUDGE_URL"
	openAIKeyEnv     = "OPENAI_API_KEY"
	openAIModelEnv   = "OPENAI_MODEL"
	openAIBaseURLEnv = "OPENAI_BASE_URL"
)

// Judge providers.
const (
	ProviderOpenAI = "openai"
	ProviderHTTP   = "http"
	ProviderNone   = "none"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/118.0.0.0 Safari/537.36"
	defaultAccept = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Fetcher FetcherConfig `yaml:"fetcher"`
	Judge   JudgeConfig   `yaml:"judge"`
	OpenAI  OpenAIConfig  `yaml:"openai"`
	Service ServiceConfig `yaml:"service"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// FetcherConfig describes the outbound document request.
type FetcherConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"userAgent"`
	Accept    string        `yaml:"accept"`
}

// JudgeConfig picks and bounds the judgment step.
type JudgeConfig struct {
	Provider          string        `yaml:"provider"`
	MaxDocumentTokens int           `yaml:"maxDocumentTokens"`
	Timeout           time.Duration `yaml:"timeout"`
}

// OpenAIConfig defines how to contact an OpenAI-compatible chat API.
type OpenAIConfig struct {
	BaseURL      string  `yaml:"baseUrl"`
	Model        string  `yaml:"model"`
	APIKey       string  `yaml:"apiKey"`
	SystemPrompt string  `yaml:"systemPrompt"`
	Temperature  float64 `yaml:"temperature"`
}

// ServiceConfig describes a self-hosted evaluation service.
type ServiceConfig struct {
	InferenceURL string `yaml:"inferenceUrl"`
	APIKey       string `yaml:"apiKey"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := Default()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindProvider()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(judgeProviderEnv); v != "" {
		c.Judge.Provider = v
	}

	if v := os.Getenv(judgeURLEnv); v != "" {
		c.Service.InferenceURL = v
	}

	if v := os.Getenv(openAIKeyEnv); v != "" {
		c.OpenAI.APIKey = v
	}

	if v := os.Getenv(openAIModelEnv); v != "" {
		c.OpenAI.Model = v
	}

	if v := os.Getenv(openAIBaseURLEnv); v != "" {
		c.OpenAI.BaseURL = v
	}
}

func (c *Config) bindProvider() {
	provider := strings.ToLower(strings.TrimSpace(c.Judge.Provider))
	switch provider {
	case ProviderOpenAI, ProviderHTTP, ProviderNone:
	case "":
		provider = ProviderOpenAI
	default:
		log.Printf("config: unknown judge provider %s, reverting to %s", provider, ProviderOpenAI)
		provider = ProviderOpenAI
	}
	c.Judge.Provider = provider
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Fetcher.Timeout > 0 {
		base.Fetcher.Timeout = override.Fetcher.Timeout
	}
	if override.Fetcher.UserAgent != "" {
		base.Fetcher.UserAgent = override.Fetcher.UserAgent
	}
	if override.Fetcher.Accept != "" {
		base.Fetcher.Accept = override.Fetcher.Accept
	}

	if override.Judge.Provider != "" {
		base.Judge.Provider = override.Judge.Provider
	}
	if override.Judge.MaxDocumentTokens != 0 {
		base.Judge.MaxDocumentTokens = override.Judge.MaxDocumentTokens
	}
	if override.Judge.Timeout > 0 {
		base.Judge.Timeout = override.Judge.Timeout
	}

	if override.OpenAI.BaseURL != "" {
		base.OpenAI.BaseURL = override.OpenAI.BaseURL
	}
	if override.OpenAI.Model != "" {
		base.OpenAI.Model = override.OpenAI.Model
	}
	if override.OpenAI.APIKey != "" {
		base.OpenAI.APIKey = override.OpenAI.APIKey
	}
	if override.OpenAI.SystemPrompt != "" {
		base.OpenAI.SystemPrompt = override.OpenAI.SystemPrompt
	}
	if override.OpenAI.Temperature != 0 {
		base.OpenAI.Temperature = override.OpenAI.Temperature
	}

	if override.Service.InferenceURL != "" {
		base.Service.InferenceURL = override.Service.InferenceURL
	}
	if override.Service.APIKey != "" {
		base.Service.APIKey = override.Service.APIKey
	}

	return base
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "debug"},
		Fetcher: FetcherConfig{
			Timeout:   15 * time.Second,
			UserAgent: defaultUserAgent,
			Accept:    defaultAccept,
		},
		Judge: JudgeConfig{
			Provider:          ProviderOpenAI,
			MaxDocumentTokens: 12000,
			Timeout:           2 * time.Minute,
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-5-mini",
			SystemPrompt: "You are a multi-disciplinary evaluator of governance proposals. " +
				"You detect AI-generated or copied content and assess structural quality and risk. " +
				"Answer with a single JSON object and nothing else.",
		},
		Service: ServiceConfig{InferenceURL: "http://localhost:8090"},
	}
}
