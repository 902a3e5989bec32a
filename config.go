package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envConfig holds overrides read from the environment. Flags given on the
// command line take precedence.
type envConfig struct {
	DataDir      string  `env:"ARENAREPLAY_DATA_DIR" envDefault:"data"`
	Battle       string  `env:"ARENAREPLAY_BATTLE"`
	Speed        float64 `env:"ARENAREPLAY_SPEED"`
	Debug        bool    `env:"ARENAREPLAY_DEBUG"`
	DiscordAppID string  `env:"ARENAREPLAY_DISCORD_APP_ID" envDefault:"1406171210240360508"`
	Workers      int     `env:"ARENAREPLAY_PRELOAD_WORKERS" envDefault:"4"`
}

func loadEnvConfig() (envConfig, error) {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return envConfig{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg, nil
}
