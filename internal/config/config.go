// Package config
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	SampleInterval time.Duration
	MaxCommands    int
	LogLevel       string
	LogFormat      string
}

const (
	DefaultSampleInterval = time.Second
	DefaultMaxCommands    = 4
)

func Load() *Config {
	godotenv.Load()

	interval := DefaultSampleInterval
	if raw := os.Getenv("HOSTPROBE_SAMPLE_INTERVAL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			interval = parsed
		}
	}

	maxCommands := DefaultMaxCommands
	if raw := os.Getenv("HOSTPROBE_MAX_COMMANDS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			maxCommands = parsed
		}
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "text"
	}

	return &Config{
		SampleInterval: interval,
		MaxCommands:    maxCommands,
		LogLevel:       logLevel,
		LogFormat:      logFormat,
	}
}
