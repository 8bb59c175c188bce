package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API struct {
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"api"`
	Session struct {
		Backend string `yaml:"backend"` // memory, file or redis
		File    struct {
			Path string `yaml:"path"`
		} `yaml:"file"`
		Redis struct {
			Addr      string `yaml:"addr"`
			Password  string `yaml:"password"`
			DB        int    `yaml:"db"`
			TTL       string `yaml:"ttl"`
			Namespace string `yaml:"namespace"`
		} `yaml:"redis"`
	} `yaml:"session"`
	Quiz struct {
		PointsPerQuestion int `yaml:"points_per_question"`
		PassScore         int `yaml:"pass_score"`
		TotalQuestions    int `yaml:"total_questions"`
	} `yaml:"quiz"`
}

// Load reads YAML config from path. A missing file yields defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Default returns the config used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.API.BaseURL = "http://localhost:3000"
	cfg.Session.Backend = "file"
	cfg.Session.File.Path = defaultSessionPath()
	cfg.Session.Redis.Namespace = "lsm:session"
	cfg.Quiz.PointsPerQuestion = 10
	cfg.Quiz.PassScore = 60
	cfg.Quiz.TotalQuestions = 10
	return cfg
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(home, ".lsm", "session.json")
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
