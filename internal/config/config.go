package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/vaultpass/passgen-go/internal/crypto"
)

var ErrTokenSecretRequired = errors.New("TOKEN_SECRET must be set in production environment")

type Config struct {
	Port           string        `env:"PORT"             envDefault:"8080"`
	Env            string        `env:"ENV"              envDefault:"development"`
	TokenSecret    string        `env:"TOKEN_SECRET"`
	TokenExpiry    time.Duration `env:"TOKEN_EXPIRY"     envDefault:"24h"`
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS"   envDefault:"5"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" envDefault:"10"`

	Generator Generator `envPrefix:"PASSGEN_"`
}

// Generator holds the defaults applied when a request leaves a field unset.
type Generator struct {
	Length       int  `env:"LENGTH"        envDefault:"12"`
	Uppercase    bool `env:"UPPERCASE"     envDefault:"true"`
	Numbers      bool `env:"NUMBERS"       envDefault:"true"`
	SpecialChars bool `env:"SPECIAL_CHARS" envDefault:"true"`
}

// Options converts the defaults into generator options.
func (g Generator) Options() crypto.Options {
	return crypto.Options{
		Length:       g.Length,
		Uppercase:    g.Uppercase,
		Numbers:      g.Numbers,
		SpecialChars: g.SpecialChars,
	}
}

// Load reads configuration from the environment. Call godotenv.Load first to pick up a .env file.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Env == "production" && cfg.TokenSecret == "" {
		return Config{}, ErrTokenSecretRequired
	}

	return cfg, nil
}
