package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	gemini "github.com/reine-ai/gemini-go"
)

// Config holds CLI defaults loaded from a YAML file.
type Config struct {
	Model      string     `yaml:"model"`
	System     string     `yaml:"system"`
	Generation Generation `yaml:"generation"`
}

// Generation mirrors gemini.GenerationConfig with YAML field names.
type Generation struct {
	ResponseMimeType string   `yaml:"response_mime_type"`
	MaxOutputTokens  *int     `yaml:"max_output_tokens"`
	Temperature      *float64 `yaml:"temperature"`
	TopP             *float64 `yaml:"top_p"`
	TopK             *int     `yaml:"top_k"`
	StopSequences    []string `yaml:"stop_sequences"`
}

// GenerationConfig converts the YAML form into the request type.
func (g Generation) GenerationConfig() gemini.GenerationConfig {
	return gemini.GenerationConfig{
		ResponseMIMEType: g.ResponseMimeType,
		MaxOutputTokens:  g.MaxOutputTokens,
		Temperature:      g.Temperature,
		TopP:             g.TopP,
		TopK:             g.TopK,
		StopSequences:    g.StopSequences,
	}
}

// Load reads the YAML config at path. A missing file is not an error; it
// yields an empty config so flags and env provide everything.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// APIKey resolves the API key from the environment.
func APIKey() string {
	return getEnv("GEMINI_KEY", "")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
