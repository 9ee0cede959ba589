package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/docfreq/internal/freq"
)

const defaultMaxUploadBytes = 52428800 // 50MB

type Config struct {
	Port string `yaml:"port"`

	// Auth. Empty disables bearer auth on /api.
	APIKey string `yaml:"api_key"`

	// Upload limits
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	// Analysis
	DefaultTopN int `yaml:"default_top_n"`

	// Rendering
	CloudWidth    int `yaml:"cloud_width"`
	CloudHeight   int `yaml:"cloud_height"`
	CloudMaxWords int `yaml:"cloud_max_words"`
	ChartWidth    int `yaml:"chart_width"`

	// PDF
	PDFFallbackPdftotext bool `yaml:"pdf_fallback_pdftotext"`

	// Rolling window for /api/stats
	StatsWindow time.Duration `yaml:"stats_window"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func defaults() Config {
	return Config{
		Port:                 "8090",
		MaxUploadBytes:       defaultMaxUploadBytes,
		DefaultTopN:          freq.DefaultTopN,
		CloudWidth:           800,
		CloudHeight:          400,
		CloudMaxWords:        200,
		ChartWidth:           800,
		PDFFallbackPdftotext: true,
		StatsWindow:          time.Hour,
		LogLevel:             "info",
		LogFormat:            "json",
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// DOCFREQ_CONFIG if set, then environment variables.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("DOCFREQ_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.Port = envOr("PORT", cfg.Port)
	cfg.APIKey = envOr("DOCFREQ_API_KEY", cfg.APIKey)
	cfg.MaxUploadBytes = envInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.DefaultTopN = envInt("DEFAULT_TOP_N", cfg.DefaultTopN)
	cfg.CloudWidth = envInt("CLOUD_WIDTH", cfg.CloudWidth)
	cfg.CloudHeight = envInt("CLOUD_HEIGHT", cfg.CloudHeight)
	cfg.CloudMaxWords = envInt("CLOUD_MAX_WORDS", cfg.CloudMaxWords)
	cfg.ChartWidth = envInt("CHART_WIDTH", cfg.ChartWidth)
	cfg.PDFFallbackPdftotext = envBool("PDF_FALLBACK_PDFTOTEXT", cfg.PDFFallbackPdftotext)
	cfg.StatsWindow = envDuration("STATS_WINDOW", cfg.StatsWindow)
	cfg.LogLevel = envOr("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envOr("LOG_FORMAT", cfg.LogFormat)

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyDefaults() {
	d := defaults()
	if c.Port == "" {
		c.Port = d.Port
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = d.MaxUploadBytes
	}
	if c.DefaultTopN == 0 {
		c.DefaultTopN = d.DefaultTopN
	}
	if c.CloudWidth <= 0 {
		c.CloudWidth = d.CloudWidth
	}
	if c.CloudHeight <= 0 {
		c.CloudHeight = d.CloudHeight
	}
	if c.CloudMaxWords <= 0 {
		c.CloudMaxWords = d.CloudMaxWords
	}
	if c.ChartWidth <= 0 {
		c.ChartWidth = d.ChartWidth
	}
	if c.StatsWindow <= 0 {
		c.StatsWindow = d.StatsWindow
	}
	if c.LogFormat == "" {
		c.LogFormat = d.LogFormat
	}
}

func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %q", c.Port)
	}
	if c.DefaultTopN < freq.MinTopN || c.DefaultTopN > freq.MaxTopN {
		return fmt.Errorf("DEFAULT_TOP_N must be between %d and %d, got %d", freq.MinTopN, freq.MaxTopN, c.DefaultTopN)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be \"json\" or \"text\", got %q", c.LogFormat)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
