package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

type (
	Config struct {
		Language string `json:"language"`
		UseEmoji bool   `json:"use_emoji"`
		PathFile string `json:"path_file"`

		AIConfig    AIConfig                    `json:"ai_config"`
		AIProviders map[string]AIProviderConfig `json:"ai_providers"`
		VCS         VCSConfig                   `json:"vcs"`
	}

	AIConfig struct {
		ActiveAI        AI           `json:"active_ai"`
		Models          map[AI]Model `json:"models"`
		MaxOutputTokens int          `json:"max_output_tokens"`
		Temperature     float64      `json:"temperature"`
	}

	AIProviderConfig struct {
		APIKey string `json:"api_key,omitempty"`
	}

	VCSConfig struct {
		Provider string `json:"provider,omitempty"` // only "github" for now
		Owner    string `json:"owner,omitempty"`
		Repo     string `json:"repo,omitempty"`
		Token    string `json:"token,omitempty"`
		APIURL   string `json:"api_url,omitempty"` // custom base URL for GitHub-compatible trackers
	}
)

const (
	defaultLang            = "en"
	defaultUseEmoji        = true
	defaultMaxOutputTokens = 2000
	defaultTemperature     = 0.7
)

// Environment overrides, applied on every load. GEMINI_API_KEY and
// GITHUB_TOKEN fill missing credentials; the MATESTORY_* variables mirror
// the knobs the original GitHub Action exposed.
const (
	envGeminiAPIKey = "GEMINI_API_KEY"
	envGitHubToken  = "GITHUB_TOKEN"
	envModel        = "MATESTORY_MODEL"
	envMaxTokens    = "MATESTORY_MAX_TOKENS"
	envTemperature  = "MATESTORY_TEMPERATURE"
)

func LoadConfig(path string) (*Config, error) {
	var configPath string

	if filepath.Ext(path) == ".json" {
		configPath = path
	} else {
		configDir := filepath.Join(path, ".matestory")
		configPath = filepath.Join(configDir, "config.json")

		if _, err := os.Stat(configDir); os.IsNotExist(err) {
			if err := os.MkdirAll(configDir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create config directory: %w", err)
			}
		}
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg, err := createDefaultConfig(configPath)
		if err != nil {
			return nil, err
		}
		applyEnvOverrides(cfg)
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}
	config.PathFile = configPath

	applyEnvOverrides(&config)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("loaded configuration is not valid: %w", err)
	}

	return &config, nil
}

func createDefaultConfig(path string) (*Config, error) {
	config := &Config{
		Language: defaultLang,
		UseEmoji: defaultUseEmoji,
		PathFile: path,

		AIConfig: AIConfig{
			ActiveAI: AIGemini,
			Models: map[AI]Model{
				AIGemini: DefaultModelForAI(AIGemini),
			},
			MaxOutputTokens: defaultMaxOutputTokens,
			Temperature:     defaultTemperature,
		},
		AIProviders: map[string]AIProviderConfig{},
		VCS: VCSConfig{
			Provider: "github",
		},
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to save default config: %w", err)
	}

	return config, nil
}

func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration to save is not valid: %w", err)
	}

	if config.PathFile == "" {
		return errors.New("config file path is not defined")
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(config.PathFile, data, 0644); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

func applyEnvOverrides(config *Config) {
	if key := os.Getenv(envGeminiAPIKey); key != "" {
		if config.AIProviders == nil {
			config.AIProviders = map[string]AIProviderConfig{}
		}
		provider := config.AIProviders[string(AIGemini)]
		if provider.APIKey == "" {
			provider.APIKey = key
			config.AIProviders[string(AIGemini)] = provider
		}
	}

	if token := os.Getenv(envGitHubToken); token != "" && config.VCS.Token == "" {
		config.VCS.Token = token
	}

	if model := os.Getenv(envModel); model != "" {
		if config.AIConfig.Models == nil {
			config.AIConfig.Models = map[AI]Model{}
		}
		config.AIConfig.Models[AIGemini] = Model(model)
	}

	if raw := os.Getenv(envMaxTokens); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			config.AIConfig.MaxOutputTokens = v
		}
	}

	if raw := os.Getenv(envTemperature); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			config.AIConfig.Temperature = v
		}
	}
}

func validateConfig(config *Config) error {
	if config.Language == "" {
		return errors.New("language cannot be empty")
	}
	if config.AIConfig.MaxOutputTokens <= 0 {
		return errors.New("max_output_tokens must be greater than 0")
	}
	if config.AIConfig.Temperature < 0 || config.AIConfig.Temperature > 2 {
		return errors.New("temperature must be between 0 and 2")
	}
	if config.VCS.Provider != "" && config.VCS.Provider != "github" {
		return fmt.Errorf("unsupported VCS provider: %s", config.VCS.Provider)
	}
	return nil
}
