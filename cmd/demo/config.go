package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// settings are read from the environment, optionally seeded from a .env file.
type settings struct {
	ConfigPath string `env:"FSM_CONFIG,required"`
	MachineID  string `env:"FSM_MACHINE_ID"`
	LogLevel   string `env:"FSM_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"FSM_LOG_FORMAT" envDefault:"text"`
}

func loadSettings(envFiles ...string) (settings, error) {
	var s settings
	// A missing .env file is fine.
	_ = godotenv.Load(envFiles...)
	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("parse environment: %w", err)
	}
	return s, nil
}

func newLogger(s settings, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return nil, fmt.Errorf("FSM_LOG_LEVEL: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(s.LogFormat) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, errors.New("FSM_LOG_FORMAT: must be text or json")
	}
}
