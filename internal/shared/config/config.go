package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	DatabaseURL     string
	LogLevel        string
	CacheTTL        time.Duration
	MaxUploadBytes  int64
	SkillMatch      string
	RateLimitRPS    float64
	RateLimitBurst  int
	RecordAnalyses  bool
}

var defaults = map[string]any{
	"PORT":               "8080",
	"ENV":                "dev",
	"CORS_ALLOW_ORIGINS": "http://localhost:5173",
	"DATABASE_URL":       "",
	"LOG_LEVEL":          "info",
	"CACHE_TTL":          "10m",
	"MAX_UPLOAD_BYTES":   int64(5 << 20),
	"SKILL_MATCH":        "substring",
	"RATE_LIMIT_RPS":     5.0,
	"RATE_LIMIT_BURST":   10,
	"RECORD_ANALYSES":    true,
}

// Load reads configuration from defaults, then optional .env files, then environment variables.
func Load() (Config, error) {
	return load(".env", "cmd/.env")
}

func load(envFiles ...string) (Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.MergeInConfig(); err != nil {
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
	}
	v.AutomaticEnv()

	ttl, err := time.ParseDuration(v.GetString("CACHE_TTL"))
	if err != nil {
		return Config{}, fmt.Errorf("CACHE_TTL: %w", err)
	}

	cfg := Config{
		Port:            v.GetString("PORT"),
		Env:             normalizeEnv(v.GetString("ENV")),
		CORSAllowOrigin: splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		DatabaseURL:     strings.TrimSpace(v.GetString("DATABASE_URL")),
		LogLevel:        strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		CacheTTL:        ttl,
		MaxUploadBytes:  v.GetInt64("MAX_UPLOAD_BYTES"),
		SkillMatch:      strings.ToLower(strings.TrimSpace(v.GetString("SKILL_MATCH"))),
		RateLimitRPS:    v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:  v.GetInt("RATE_LIMIT_BURST"),
		RecordAnalyses:  v.GetBool("RECORD_ANALYSES"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the service cannot run with.
func (c Config) Validate() error {
	switch c.SkillMatch {
	case "substring", "word":
	default:
		return fmt.Errorf("SKILL_MATCH must be substring or word, got %q", c.SkillMatch)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("CACHE_TTL must not be negative")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit settings must not be negative")
	}
	if c.Env == "production" && c.DatabaseURL == "" && c.RecordAnalyses {
		return fmt.Errorf("DATABASE_URL is required in production when RECORD_ANALYSES is on")
	}
	return nil
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
