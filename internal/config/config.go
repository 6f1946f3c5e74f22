// Package config reads process settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"ctchen222/tictactoe/internal/bot"
	"ctchen222/tictactoe/internal/controller"
	"ctchen222/tictactoe/internal/validator"
)

// Config holds every setting used by the two binaries.
type Config struct {
	Mode         controller.Mode `validate:"oneof=pvp pvc"`
	Difficulty   bot.Difficulty  `validate:"oneof=easy medium hard"`
	ThinkDelay   time.Duration   `validate:"gte=0s,lte=1m"`
	Seed         uint64
	LogLevel     string `validate:"oneof=debug info warn error"`
	OTLPEndpoint string `validate:"omitempty,hostname_port"`
	Port         int    `validate:"min=1,max=65535"`
	RedisAddr    string `validate:"omitempty,hostname_port"`
	StaticDir    string `validate:"required"`
}

// Default returns the settings used when no variable is set.
func Default() Config {
	return Config{
		Mode:       controller.PvC,
		Difficulty: bot.Hard,
		ThinkDelay: controller.DefaultThinkDelay,
		LogLevel:   "info",
		Port:       3000,
		StaticDir:  "./public",
	}
}

// Load reads the process environment.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	var mode, difficulty string
	str("TTT_MODE", &mode)
	str("TTT_DIFFICULTY", &difficulty)
	if mode != "" {
		cfg.Mode = controller.Mode(strings.ToLower(mode))
	}
	if difficulty != "" {
		cfg.Difficulty = bot.Difficulty(strings.ToLower(difficulty))
	}
	str("LOG_LEVEL", &cfg.LogLevel)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	str("OTEL_EXPORTER_OTLP_ENDPOINT", &cfg.OTLPEndpoint)
	str("REDIS_CONNSTRING", &cfg.RedisAddr)
	str("RELAY_STATIC_DIR", &cfg.StaticDir)

	if v, ok := lookup("TTT_THINK_DELAY"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: TTT_THINK_DELAY: %w", err)
		}
		cfg.ThinkDelay = d
	}
	if v, ok := lookup("TTT_SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("config: TTT_SEED: %w", err)
		}
		cfg.Seed = seed
	}
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: PORT: %w", err)
		}
		cfg.Port = port
	}

	if err := validator.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Addr is the relay listen address.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
