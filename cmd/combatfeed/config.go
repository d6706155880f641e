package main

import (
	"crypto/rand"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/j3kstrum/runelite-bingo/internal/config"
)

type Config struct {
	Addr      string `env:"FEED_ADDR"       envDefault:":8090"`
	JWTSecret string `env:"FEED_JWT_SECRET"`
	// PasswordHash is a bcrypt hash. Password is hashed at startup when no
	// hash is given.
	PasswordHash string        `env:"FEED_PASSWORD_HASH"`
	Password     string        `env:"FEED_PASSWORD"`
	TokenTTL     time.Duration `env:"FEED_TOKEN_TTL"   envDefault:"24h"`
	Tick         time.Duration `env:"FEED_TICK"        envDefault:"2s"`
	MineRatio    float64       `env:"FEED_MINE_RATIO"  envDefault:"0.8"`
	Seed         int64         `env:"FEED_SEED"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Tick <= 0 {
		return Config{}, fmt.Errorf("%w: FEED_TICK must be positive", config.ErrInvalid)
	}
	if cfg.MineRatio < 0 || cfg.MineRatio > 1 {
		return Config{}, fmt.Errorf("%w: FEED_MINE_RATIO %v out of [0,1]", config.ErrInvalid, cfg.MineRatio)
	}
	return cfg, nil
}

// secret returns the signing key, a random one when none is configured.
func (c Config) secret() []byte {
	if c.JWTSecret != "" {
		return []byte(c.JWTSecret)
	}
	key := make([]byte, 32)
	_, _ = rand.Read(key)
	return key
}

// hash returns the bcrypt hash guarding /token, nil when tokens are disabled.
func (c Config) hash() ([]byte, error) {
	if c.PasswordHash != "" {
		return []byte(c.PasswordHash), nil
	}
	if c.Password == "" {
		return nil, nil
	}
	h, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return h, nil
}
