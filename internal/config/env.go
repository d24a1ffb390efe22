package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds driver settings taken from the environment.
type Env struct {
	DataDir  string `env:"OCEANEBM_DATA" envDefault:".oceanebm"`
	LogLevel string `env:"OCEANEBM_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func LoadEnv() (Env, error) {
	var e Env
	err := ParseEnv(&e)
	return e, err
}
