package configs

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Tokens to scan on startup
	Tokens []TokenConfig `json:"tokens" yaml:"tokens"`

	// FREE or PREMIUM; controls how much of the result is populated
	Plan string `json:"plan" yaml:"plan"`

	// Reuse a stored result younger than this instead of re-scanning
	ScanTTL string `json:"scan_ttl" yaml:"scan_ttl"`

	Proxy string `json:"proxy" yaml:"proxy"`

	Database  Database        `json:"database" yaml:"database"`
	Redis     Redis           `json:"redis" yaml:"redis"`
	LLM       LLMConfig       `json:"llm" yaml:"llm"`
	Providers ProvidersConfig `json:"providers" yaml:"providers"`
}

type TokenConfig struct {
	Symbol        string `json:"symbol" yaml:"symbol"`
	Name          string `json:"name" yaml:"name"`
	Address       string `json:"address" yaml:"address"`
	Chain         string `json:"chain" yaml:"chain"` // EVM, SOLANA, CARDANO
	TwitterHandle string `json:"twitter_handle" yaml:"twitter_handle"`

	// MEME_TOKEN or UTILITY_TOKEN to skip automatic classification
	ManualClassification string `json:"manual_classification" yaml:"manual_classification"`
}

type Database struct {
	ConnStr string `json:"conn_str" yaml:"conn_str"`
}

type Redis struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

type LLMConfig struct {
	APIKey  string `json:"api_key" yaml:"api_key"`
	BaseURL string `json:"base_url" yaml:"base_url"` // empty = Groq default
	Model   string `json:"model" yaml:"model"`
}

type ProvidersConfig struct {
	MobulaAPIKey       string `json:"mobula_api_key" yaml:"mobula_api_key"`
	HeliusAPIKey       string `json:"helius_api_key" yaml:"helius_api_key"`
	TwitterBearerToken string `json:"twitter_bearer_token" yaml:"twitter_bearer_token"`
	GoPlusChainID      string `json:"goplus_chain_id" yaml:"goplus_chain_id"`
	BinanceAPIKey      string `json:"binance_api_key" yaml:"binance_api_key"`
	BinanceSecretKey   string `json:"binance_secret_key" yaml:"binance_secret_key"`
}

// Load reads the JSON config file and overlays secrets from the
// environment. A .env file next to the process is folded into the
// environment first; a missing one is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := json.Unmarshal(raw, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnv()
	return config, nil
}

// applyEnv lets environment variables override file values so secrets
// never have to live in the config file.
func (c *Config) applyEnv() {
	overlay(&c.Database.ConnStr, "DATABASE_URL")
	overlay(&c.Redis.Addr, "REDIS_ADDR")
	overlay(&c.Redis.Password, "REDIS_PASSWORD")
	overlay(&c.LLM.APIKey, "LLM_API_KEY")
	overlay(&c.LLM.BaseURL, "LLM_BASE_URL")
	overlay(&c.LLM.Model, "LLM_MODEL")
	overlay(&c.Providers.MobulaAPIKey, "MOBULA_API_KEY")
	overlay(&c.Providers.HeliusAPIKey, "HELIUS_API_KEY")
	overlay(&c.Providers.TwitterBearerToken, "TWITTER_BEARER_TOKEN")
	overlay(&c.Providers.BinanceAPIKey, "BINANCE_API_KEY")
	overlay(&c.Providers.BinanceSecretKey, "BINANCE_SECRET_KEY")
	overlay(&c.Proxy, "HTTPS_PROXY")
}

func overlay(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
