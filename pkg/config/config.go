package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	// External APIs
	CFBDAPIKey         string        `mapstructure:"CFBD_API_KEY"`
	OpenAIAPIKey       string        `mapstructure:"OPENAI_API_KEY"`
	CFBDRateLimit      int           `mapstructure:"CFBD_RATE_LIMIT"`
	ExternalAPITimeout time.Duration `mapstructure:"EXTERNAL_API_TIMEOUT"`

	// Narrative budget
	BudgetLimit     float64 `mapstructure:"BUDGET_LIMIT"`
	InputTokenRate  float64 `mapstructure:"INPUT_TOKEN_RATE"`
	OutputTokenRate float64 `mapstructure:"OUTPUT_TOKEN_RATE"`

	// Enrichment
	EnrichWorkers int `mapstructure:"ENRICH_WORKERS"`

	// Field rendering
	FieldImagePath string `mapstructure:"FIELD_IMAGE_PATH"`
	FieldPlotPath  string `mapstructure:"FIELD_PLOT_PATH"`
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("CFBD_API_KEY", "")
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("CFBD_RATE_LIMIT", 5)
	viper.SetDefault("EXTERNAL_API_TIMEOUT", "30s")
	viper.SetDefault("BUDGET_LIMIT", 5.00)
	viper.SetDefault("INPUT_TOKEN_RATE", 0.005)  // per 1000 prompt tokens
	viper.SetDefault("OUTPUT_TOKEN_RATE", 0.015) // per 1000 completion tokens
	viper.SetDefault("ENRICH_WORKERS", 5)
	viper.SetDefault("FIELD_IMAGE_PATH", "static/football.jpg")
	viper.SetDefault("FIELD_PLOT_PATH", "static/field_plot.png")

	viper.AutomaticEnv()

	// Reading the .env file is optional; environment variables alone are fine
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
