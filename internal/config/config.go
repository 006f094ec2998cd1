// Package config loads the typed engine configuration: a YAML file with
// defaulted optional fields, validated once at load time, with credentials
// taken from the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type NewsFeed struct {
	Name   string  `yaml:"name" validate:"required"`
	URL    string  `yaml:"url" validate:"required,url"`
	Weight float64 `yaml:"weight" default:"1.0"`
}

type Config struct {
	Log struct {
		Level string `yaml:"level" default:"info"`
	} `yaml:"log"`

	Sources struct {
		FRED struct {
			APIKey string `yaml:"api_key"`
		} `yaml:"fred"`
		Reddit struct {
			Subreddits []string `yaml:"subreddits"`
		} `yaml:"reddit"`
		News   []NewsFeed `yaml:"news" validate:"dive"`
		Trends struct {
			BaseURL string `yaml:"base_url"`
			Term    string `yaml:"term" default:"inflation"`
		} `yaml:"trends"`
	} `yaml:"sources"`

	NLP struct {
		Decay struct {
			NewsHalfLifeHours float64 `yaml:"news_half_life_hours" default:"6.0" validate:"gt=0"`
		} `yaml:"decay"`
	} `yaml:"nlp"`

	Forecast struct {
		Strategy     string   `yaml:"strategy" default:"heuristic" validate:"oneof=heuristic model"`
		MoveScale    float64  `yaml:"move_scale" default:"0.6" validate:"gt=0"`
		P50HalfWidth float64  `yaml:"p50_half_width" default:"0.35" validate:"gt=0"`
		P80HalfWidth float64  `yaml:"p80_half_width" default:"0.8" validate:"gt=0"`
		Instruments  []string `yaml:"instruments"`
	} `yaml:"forecast"`

	Model struct {
		ArtifactPath string `yaml:"artifact_path" default:"models/model.json"`
	} `yaml:"model"`

	OpenAI struct {
		APIKey string `yaml:"-"`
		Model  string `yaml:"model" default:"gpt-4o-mini"`
	} `yaml:"openai"`

	Redis struct {
		URL string `yaml:"url"`
	} `yaml:"redis"`
}

// Load reads the YAML file at path, applies defaults, env overrides and
// validation. An empty path yields a pure default config: every source
// class then contributes only its fallback Signal.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("apply config defaults: %w", err)
	}
	if len(cfg.Forecast.Instruments) == 0 {
		cfg.Forecast.Instruments = []string{"SPY", "DIA"}
	}

	if v := strings.TrimSpace(os.Getenv("FRED_API_KEY")); v != "" {
		cfg.Sources.FRED.APIKey = v
	}
	cfg.OpenAI.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	if v := strings.TrimSpace(os.Getenv("REDIS_URL")); v != "" {
		cfg.Redis.URL = v
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}
