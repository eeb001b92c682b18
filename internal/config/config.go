package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port      string `yaml:"port"`
		PublicURL string `yaml:"publicUrl"`
	} `yaml:"server"`
	Backend struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"backend"`
	Quiz struct {
		Source   string `yaml:"source"` // api or postgres
		Snapshot string `yaml:"snapshot"`
		TTL      string `yaml:"ttl"`
	} `yaml:"quiz"`
	Scoreboard struct {
		Interval string `yaml:"interval"`
	} `yaml:"scoreboard"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
		Key      string `yaml:"key"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Log struct {
		Level       string `yaml:"level"`
		Development bool   `yaml:"development"`
	} `yaml:"log"`
}

const (
	SourceAPI      = "api"
	SourcePostgres = "postgres"
)

// Default returns the settings used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.Backend.URL = "http://localhost:3000"
	cfg.Backend.Timeout = "5s"
	cfg.Quiz.Source = SourceAPI
	cfg.Quiz.Snapshot = "default"
	cfg.Scoreboard.Interval = "2s"
	cfg.Log.Level = "info"
	return cfg
}

// Load reads YAML config from path on top of Default. A missing file is not
// an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
