// Package config loads server settings from the environment and CLI
// settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/RMahshie/matchviz/internal/sweep"
)

// Config holds all configuration for the server
type Config struct {
	Server ServerConfig
	Plot   PlotConfig
	Sweep  SweepConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
	LogLevel       zerolog.Level
}

// PlotConfig holds the default image size for rendered charts
type PlotConfig struct {
	Width  int
	Height int
}

// SweepConfig holds the inductance grid, in nH
type SweepConfig struct {
	MinNH   float64
	MaxNH   float64
	Samples int
}

// Grid converts the configured range to a sweep grid in henries.
func (c SweepConfig) Grid() sweep.Grid {
	return sweep.Grid{
		StartHenries: c.MinNH * 1e-9,
		StopHenries:  c.MaxNH * 1e-9,
		Samples:      c.Samples,
	}
}

var keys = []string{
	"PORT",
	"ENVIRONMENT",
	"ALLOWED_ORIGINS",
	"LOG_LEVEL",
	"PLOT_WIDTH",
	"PLOT_HEIGHT",
	"SWEEP_L_MIN_NH",
	"SWEEP_L_MAX_NH",
	"SWEEP_SAMPLES",
}

// Load loads configuration from environment variables and .env files
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("PORT", "8050")
	v.SetDefault("ENVIRONMENT", "dev")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:8050,http://127.0.0.1:8050")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PLOT_WIDTH", 1024)
	v.SetDefault("PLOT_HEIGHT", 640)
	v.SetDefault("SWEEP_L_MIN_NH", sweep.DefaultStartHenries*1e9)
	v.SetDefault("SWEEP_L_MAX_NH", sweep.DefaultStopHenries*1e9)
	v.SetDefault("SWEEP_SAMPLES", sweep.DefaultSamples)

	// Bind specific environment variable names
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	// Read from .env files based on environment
	env := v.GetString("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}
	v.SetConfigName(".env." + env)
	v.SetConfigType("env")
	v.AddConfigPath(".")

	// Read .env file (ignore error if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read .env.%s: %w", env, err)
		}
	}

	// Environment variables override .env file values
	v.AutomaticEnv()

	level, err := zerolog.ParseLevel(strings.ToLower(v.GetString("LOG_LEVEL")))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	var config Config
	config.Server.Port = v.GetString("PORT")
	config.Server.Env = v.GetString("ENVIRONMENT")
	config.Server.AllowedOrigins = splitOrigins(v.GetString("ALLOWED_ORIGINS"))
	config.Server.LogLevel = level
	config.Plot.Width = v.GetInt("PLOT_WIDTH")
	config.Plot.Height = v.GetInt("PLOT_HEIGHT")
	config.Sweep.MinNH = v.GetFloat64("SWEEP_L_MIN_NH")
	config.Sweep.MaxNH = v.GetFloat64("SWEEP_L_MAX_NH")
	config.Sweep.Samples = v.GetInt("SWEEP_SAMPLES")

	if err := config.Sweep.Grid().Validate(); err != nil {
		return nil, fmt.Errorf("invalid sweep configuration: %w", err)
	}

	log.Debug().
		Str("env", config.Server.Env).
		Strs("allowed_origins", config.Server.AllowedOrigins).
		Float64("l_min_nh", config.Sweep.MinNH).
		Float64("l_max_nh", config.Sweep.MaxNH).
		Int("samples", config.Sweep.Samples).
		Msg("Configuration loaded")

	return &config, nil
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
