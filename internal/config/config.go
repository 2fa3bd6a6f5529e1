// Package config loads runtime settings from defaults, an optional YAML file,
// an optional .env file and the process environment (in increasing priority).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var ErrMissingAPIKey = errors.New("NEWS_API_KEY is required when no RSS feeds are configured")

type Config struct {
	// News search settings
	NewsAPIKey  string
	NewsAPIURL  string
	NewsSource  string // top-headlines source used for an empty query
	NumArticles int

	// RSS fallback, used when NewsAPIKey is empty
	FeedsConfigPath string

	// Summary settings
	SummaryLength   int    // sentences per article summary
	SummaryLanguage string // "en" | "da"
	SummaryOrder    string // "score" | "document"

	// Gemini settings (optional AI summary next to the extractive one)
	GeminiAPIKey string
	GeminiModel  string

	// App settings
	Debug          bool
	HTTPAddr       string
	RequestTimeout time.Duration
	CacheTTL       time.Duration
}

// fileConfig mirrors the YAML layout of config.yaml.
type fileConfig struct {
	API struct {
		NewsAPI string `yaml:"news_api"`
		Gemini  string `yaml:"gemini"`
	} `yaml:"api"`
	News struct {
		URL         string `yaml:"url"`
		Source      string `yaml:"source"`
		NumArticles int    `yaml:"num_articles"`
		Feeds       string `yaml:"feeds"`
	} `yaml:"news"`
	Summary struct {
		Length   int    `yaml:"length"`
		Language string `yaml:"language"`
		Order    string `yaml:"order"`
	} `yaml:"summary"`
}

func defaults() *Config {
	return &Config{
		NewsAPIURL:      "https://newsapi.org",
		NewsSource:      "cnn",
		NumArticles:     10,
		SummaryLength:   50,
		SummaryLanguage: "en",
		SummaryOrder:    "score",
		GeminiModel:     "gemini-1.5-flash",
		HTTPAddr:        ":8080",
		RequestTimeout:  15 * time.Second,
		CacheTTL:        60 * time.Minute,
	}
}

func Load() (*Config, error) {
	cfg := defaults()

	// .env never overrides variables already present in the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	path := getEnvOrDefault("CONFIG_FILE", "config.yaml")
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.API.NewsAPI != "" {
		c.NewsAPIKey = fc.API.NewsAPI
	}
	if fc.API.Gemini != "" {
		c.GeminiAPIKey = fc.API.Gemini
	}
	if fc.News.URL != "" {
		c.NewsAPIURL = fc.News.URL
	}
	if fc.News.Source != "" {
		c.NewsSource = fc.News.Source
	}
	if fc.News.NumArticles > 0 {
		c.NumArticles = fc.News.NumArticles
	}
	if fc.News.Feeds != "" {
		c.FeedsConfigPath = fc.News.Feeds
	}
	if fc.Summary.Length > 0 {
		c.SummaryLength = fc.Summary.Length
	}
	if fc.Summary.Language != "" {
		c.SummaryLanguage = fc.Summary.Language
	}
	if fc.Summary.Order != "" {
		c.SummaryOrder = fc.Summary.Order
	}
	return nil
}

func (c *Config) applyEnv() {
	c.NewsAPIKey = getEnvOrDefault("NEWS_API_KEY", c.NewsAPIKey)
	c.NewsAPIURL = getEnvOrDefault("NEWS_API_URL", c.NewsAPIURL)
	c.NewsSource = getEnvOrDefault("NEWS_SOURCE", c.NewsSource)
	c.FeedsConfigPath = getEnvOrDefault("FEEDS_CONFIG_PATH", c.FeedsConfigPath)
	c.SummaryLanguage = getEnvOrDefault("SUMMARY_LANGUAGE", c.SummaryLanguage)
	c.SummaryOrder = getEnvOrDefault("SUMMARY_ORDER", c.SummaryOrder)
	c.SummaryLanguage = strings.ToLower(strings.TrimSpace(c.SummaryLanguage))
	c.SummaryOrder = strings.ToLower(strings.TrimSpace(c.SummaryOrder))
	c.GeminiAPIKey = getEnvOrDefault("GEMINI_API_KEY", c.GeminiAPIKey)
	c.GeminiModel = getEnvOrDefault("GEMINI_MODEL", c.GeminiModel)
	c.HTTPAddr = getEnvOrDefault("HTTP_ADDR", c.HTTPAddr)

	if v := getEnvIntOrDefault("NUM_ARTICLES", 0); v > 0 {
		c.NumArticles = v
	}
	if v := getEnvIntOrDefault("SUMMARY_LENGTH", 0); v > 0 {
		c.SummaryLength = v
	}
	if v := getEnvIntOrDefault("CACHE_TTL_MINUTES", 0); v > 0 {
		c.CacheTTL = time.Duration(v) * time.Minute
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.RequestTimeout = d
		}
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		c.Debug = true
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.NewsAPIKey == "" && c.FeedsConfigPath == "" {
		return ErrMissingAPIKey
	}
	if c.NumArticles <= 0 {
		return fmt.Errorf("NUM_ARTICLES must be positive")
	}
	if c.SummaryLength <= 0 {
		return fmt.Errorf("SUMMARY_LENGTH must be positive")
	}
	if c.SummaryLanguage != "en" && c.SummaryLanguage != "da" {
		return fmt.Errorf("SUMMARY_LANGUAGE must be 'en' or 'da'")
	}
	if c.SummaryOrder != "score" && c.SummaryOrder != "document" {
		return fmt.Errorf("SUMMARY_ORDER must be 'score' or 'document'")
	}
	return nil
}
