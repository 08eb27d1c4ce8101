package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if PROGRESSION_CONFIG is set
//  3. env (prefix PROGRESSION_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("PROGRESSION_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// Map env keys like PROGRESSION_QUEUE_SIZE -> queue_size, preserving
	// underscores to match the koanf tags on the struct.
	envProvider := env.Provider("PROGRESSION_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "progression_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return ErrEmptyAddr
	}
	if c.DefaultIntervalMonths < 1 {
		return fmt.Errorf("%w: default_interval_months=%d", ErrInvalidValue, c.DefaultIntervalMonths)
	}
	if c.DefaultHorizonMonths < 1 {
		return fmt.Errorf("%w: default_horizon_months=%d", ErrInvalidValue, c.DefaultHorizonMonths)
	}
	if c.MaxHorizonMonths < c.DefaultHorizonMonths {
		return fmt.Errorf("%w: max_horizon_months=%d below default %d",
			ErrInvalidValue, c.MaxHorizonMonths, c.DefaultHorizonMonths)
	}
	return nil
}
