package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test inside an empty directory so no stray .env or
// config.yaml from the repo leaks in.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"NEWS_API_KEY", "NEWS_API_URL", "NEWS_SOURCE", "FEEDS_CONFIG_PATH",
		"SUMMARY_LANGUAGE", "SUMMARY_ORDER", "SUMMARY_LENGTH", "NUM_ARTICLES",
		"GEMINI_API_KEY", "GEMINI_MODEL", "HTTP_ADDR", "CACHE_TTL_MINUTES",
		"REQUEST_TIMEOUT", "DEBUG", "CONFIG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)
	t.Setenv("NEWS_API_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.NewsAPIKey)
	assert.Equal(t, "cnn", cfg.NewsSource)
	assert.Equal(t, 10, cfg.NumArticles)
	assert.Equal(t, 50, cfg.SummaryLength)
	assert.Equal(t, "en", cfg.SummaryLanguage)
	assert.Equal(t, "score", cfg.SummaryOrder)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
}

func TestLoad_MissingKeyAndFeeds(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoad_YAMLThenEnvOverride(t *testing.T) {
	dir := chdirTemp(t)
	clearEnv(t)

	yml := `
api:
  news_api: from-file
news:
  source: bbc-news
  num_articles: 4
summary:
  length: 3
  language: da
  order: document
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yml), 0o644))
	t.Setenv("NUM_ARTICLES", "6")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.NewsAPIKey)
	assert.Equal(t, "bbc-news", cfg.NewsSource)
	assert.Equal(t, 6, cfg.NumArticles)
	assert.Equal(t, 3, cfg.SummaryLength)
	assert.Equal(t, "da", cfg.SummaryLanguage)
	assert.Equal(t, "document", cfg.SummaryOrder)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdirTemp(t)
	clearEnv(t)
	require.NoError(t, os.Unsetenv("NEWS_API_KEY"))
	require.NoError(t, os.Unsetenv("REQUEST_TIMEOUT"))
	t.Cleanup(func() {
		_ = os.Unsetenv("NEWS_API_KEY")
		_ = os.Unsetenv("REQUEST_TIMEOUT")
	})

	env := "NEWS_API_KEY=dotenv-key\nREQUEST_TIMEOUT=3s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", cfg.NewsAPIKey)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestLoad_SummarySettingsCaseInsensitive(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)
	t.Setenv("NEWS_API_KEY", "k")
	t.Setenv("SUMMARY_LANGUAGE", "EN")
	t.Setenv("SUMMARY_ORDER", " Document ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.SummaryLanguage)
	assert.Equal(t, "document", cfg.SummaryOrder)
}

func TestLoad_BadYAML(t *testing.T) {
	dir := chdirTemp(t)
	clearEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api: [oops"), 0o644))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"feeds only", func(c *Config) { c.NewsAPIKey = ""; c.FeedsConfigPath = "feeds.yaml" }, false},
		{"bad language", func(c *Config) { c.SummaryLanguage = "fr" }, true},
		{"bad order", func(c *Config) { c.SummaryOrder = "random" }, true},
		{"zero length", func(c *Config) { c.SummaryLength = 0 }, true},
		{"zero articles", func(c *Config) { c.NumArticles = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			cfg.NewsAPIKey = "k"
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
