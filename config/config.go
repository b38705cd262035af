// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Company struct {
		// Fallback identity used when a quote arrives without company data
		// and the user has no stored profile.
		Name string `envconfig:"PRESUPRO_COMPANY_NAME" default:"MI EMPRESA DE CONSTRUCCIÓN"`
		Logo string `envconfig:"PRESUPRO_COMPANY_LOGO" default:"https://via.placeholder.com/150x50?text=LOGO+AQUÍ"`
	}

	// KeepaliveURL, when set, is pinged every 5 minutes so free-tier hosts
	// don't put the instance to sleep.
	KeepaliveURL string `envconfig:"PRESUPRO_KEEPALIVE_URL"`

	// SeedDemo creates a small demo inventory on first start.
	SeedDemo bool `envconfig:"PRESUPRO_SEED_DEMO" default:"false"`

	// LogoTimeout bounds the fetch of a remote logo during PDF rendering.
	// A logo that doesn't load in time is skipped, not an error.
	LogoTimeout time.Duration `envconfig:"PRESUPRO_LOGO_TIMEOUT" default:"5s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
