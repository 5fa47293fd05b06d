package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig is the environment-variable DTO. Durations accept the usual
// time.ParseDuration forms.
type envConfig struct {
	ServiceURL     string        `env:"UNIVERSE_SERVICE_URL"`
	RequestTimeout time.Duration `env:"UNIVERSE_REQUEST_TIMEOUT"`
}

// parseEnv overlays cfg with values from the environment. Unset variables
// leave the corresponding field untouched.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		panic(err)
	}

	if ec.ServiceURL != "" {
		cfg.ServiceURL = ec.ServiceURL
	}
	if ec.RequestTimeout != 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
}
