package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName         string
	AppEnv          string
	AppPort         string
	DatabaseURL     string
	RedisURL        string
	NATSURL         string
	JWTSecret       string
	JWTExpiry       time.Duration
	OpenAIAPIKey    string
	OpenAIModel     string
	AnswerMaxTokens int
	UpstreamTimeout time.Duration
	InquiryCacheTTL time.Duration
	RevealMinDelay  time.Duration
	RevealMaxDelay  time.Duration
	ChatRateLimit   int
	ChatRateWindow  time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("QURANIQ")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "QuranIQ API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("jwt.expiry", "168h")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("answer.max_tokens", 1024)
	v.SetDefault("upstream.timeout", "15s")
	v.SetDefault("inquiry.cache_ttl", "5m")
	v.SetDefault("reveal.min_delay", "30ms")
	v.SetDefault("reveal.max_delay", "60ms")
	v.SetDefault("chat.rate_limit", 10)
	v.SetDefault("chat.rate_window", "1m")

	expiry, err := time.ParseDuration(v.GetString("jwt.expiry"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid jwt expiry: %w", err)
	}

	upstreamTimeout, err := time.ParseDuration(v.GetString("upstream.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid upstream timeout: %w", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("inquiry.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid inquiry cache ttl: %w", err)
	}

	minDelay, err := time.ParseDuration(v.GetString("reveal.min_delay"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid reveal min delay: %w", err)
	}

	maxDelay, err := time.ParseDuration(v.GetString("reveal.max_delay"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid reveal max delay: %w", err)
	}

	rateWindow, err := time.ParseDuration(v.GetString("chat.rate_window"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid chat rate window: %w", err)
	}

	cfg := Config{
		AppName:         v.GetString("app.name"),
		AppEnv:          v.GetString("app.env"),
		AppPort:         v.GetString("app.port"),
		DatabaseURL:     v.GetString("database.url"),
		RedisURL:        v.GetString("redis.url"),
		NATSURL:         v.GetString("nats.url"),
		JWTSecret:       v.GetString("jwt.secret"),
		JWTExpiry:       expiry,
		OpenAIAPIKey:    v.GetString("openai_api_key"),
		OpenAIModel:     v.GetString("openai.model"),
		AnswerMaxTokens: v.GetInt("answer.max_tokens"),
		UpstreamTimeout: upstreamTimeout,
		InquiryCacheTTL: cacheTTL,
		RevealMinDelay:  minDelay,
		RevealMaxDelay:  maxDelay,
		ChatRateLimit:   v.GetInt("chat.rate_limit"),
		ChatRateWindow:  rateWindow,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.AnswerMaxTokens <= 0 {
		cfg.AnswerMaxTokens = 1024
	}

	if cfg.RevealMaxDelay < cfg.RevealMinDelay {
		return Config{}, fmt.Errorf("reveal max delay must not be below min delay")
	}

	return cfg, nil
}
