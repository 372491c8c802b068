// Package config loads the bustubctl CLI's runtime configuration. The
// core library (replacer, cardinality) takes all of its parameters as
// explicit constructor arguments and never touches the environment —
// this package exists solely for the demo/benchmark CLI built on top
// of it.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Environment selects the logging profile: dev gets a human-readable
// zap.NewDevelopment logger, prod gets zap.NewProduction.
type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

func (e Environment) Validate() error {
	if e != EnvDev && e != EnvProd {
		return fmt.Errorf("environment must be %q or %q, got %q", EnvDev, EnvProd, e)
	}
	return nil
}

// Config is the bustubctl CLI's environment-driven configuration.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"dev"`

	NumFrames uint64 `envconfig:"NUM_FRAMES" default:"64"`
	K         int    `envconfig:"LRUK_K" default:"2"`

	HLLBits int `envconfig:"HLL_BITS" default:"14"`

	Concurrency int `envconfig:"CONCURRENCY" default:"8"`
}

// Load reads a .env file at envPath if present (a missing file is not
// an error — it just means defaults and real environment variables
// apply), then unmarshals BUSTUB_-prefixed environment variables into
// a Config.
func Load(envPath string) (Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("bustub", &cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Environment.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}
