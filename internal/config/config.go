package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultModels is the model catalog offered by the comparison page when
// no catalog is configured.
var DefaultModels = []string{
	"qwen/qwen3-32b",
	"qwen/qwen3-14b",
	"anthropic/claude-3-haiku",
}

// ServerConfig holds configuration for the modelrace server.
type ServerConfig struct {
	Port           int           `yaml:"port"`
	MetricsAddr    string        `yaml:"metrics_addr"`
	LogLevel       string        `yaml:"log_level"`
	ConfigFile     string        `yaml:"-"`
	APIKey         string        `yaml:"api_key"`
	BaseURL        string        `yaml:"base_url"`
	Referer        string        `yaml:"referer"`
	Title          string        `yaml:"title"`
	RequestTimeout time.Duration `yaml:"-"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	Models         []string      `yaml:"models"`
	HistorySize    int           `yaml:"history_size"`
}

// BindFlags populates the struct with defaults from environment variables and
// binds command line flags so main can call flag.Parse().
func (c *ServerConfig) BindFlags() {
	c.ConfigFile = getEnv("CONFIG_FILE", "")
	c.LogLevel = getEnv("LOG_LEVEL", "info")

	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	c.Port = port
	mp := getEnv("METRICS_PORT", "")
	if mp == "" {
		c.MetricsAddr = fmt.Sprintf(":%d", port)
	} else if strings.Contains(mp, ":") {
		c.MetricsAddr = mp
	} else {
		c.MetricsAddr = ":" + mp
	}
	c.APIKey = getEnv("OPENROUTER_API_KEY", "")
	c.BaseURL = getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1")
	c.Referer = getEnv("OPENROUTER_REFERER", "https://comparemodel.streamlit.app/")
	c.Title = getEnv("OPENROUTER_TITLE", "AI Model Comparison Tool")
	if v, err := strconv.ParseFloat(getEnv("REQUEST_TIMEOUT", "60"), 64); err == nil {
		c.RequestTimeout = time.Duration(v * float64(time.Second))
	} else {
		c.RequestTimeout = 60 * time.Second
	}
	c.AllowedOrigins = splitComma(getEnv("ALLOWED_ORIGINS", ""))
	if m := getEnv("MODELS", ""); m != "" {
		c.Models = splitComma(m)
	} else {
		c.Models = append([]string(nil), DefaultModels...)
	}
	if v, err := strconv.Atoi(getEnv("HISTORY_SIZE", "50")); err == nil {
		c.HistorySize = v
	} else {
		c.HistorySize = 50
	}

	flag.StringVar(&c.ConfigFile, "config", c.ConfigFile, "server config file path")
	flag.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log verbosity (all, debug, info, warn, error, fatal, none)")
	flag.IntVar(&c.Port, "port", c.Port, "HTTP listen port for the web UI and API")
	flag.StringVar(&c.MetricsAddr, "metrics-port", c.MetricsAddr, "Prometheus metrics listen address or port; defaults to the value of --port")
	flag.StringVar(&c.APIKey, "api-key", c.APIKey, "default OpenRouter API key; the form may override it per request")
	flag.StringVar(&c.BaseURL, "base-url", c.BaseURL, "OpenRouter API base URL")
	flag.Func("request-timeout", "per-call timeout in seconds", func(v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		c.RequestTimeout = time.Duration(f * float64(time.Second))
		return nil
	})
	flag.Func("allowed-origins", "comma separated list of allowed CORS origins", func(v string) error {
		c.AllowedOrigins = splitComma(v)
		return nil
	})
	flag.Func("models", "comma separated model catalog offered by the pickers", func(v string) error {
		c.Models = splitComma(v)
		return nil
	})
	flag.IntVar(&c.HistorySize, "history-size", c.HistorySize, "number of recent runs kept in memory for /api/state")
}

// LoadFile populates the config from a YAML file.
func (c *ServerConfig) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, c)
}

func splitComma(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
