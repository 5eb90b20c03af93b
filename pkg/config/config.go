// Package config loads typed configuration from the environment and an optional .env file.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // Load environment variables from .env file

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and an optional .env file.
func Load[T any](cfg T) error {
	// A missing .env is fine, the process environment is used as is.
	_ = godotenv.Load()

	return env.Parse(cfg)
}

// LoadFile loads the configuration from the given env files, then the environment.
func LoadFile[T any](cfg T, filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil {
		return err
	}

	return env.Parse(cfg)
}
