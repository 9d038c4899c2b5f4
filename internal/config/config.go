package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultStorageKey is the durable key the leaderboard lives under when the
// config does not name one. It matches the key the original browser build
// used, so a migrated Redis dump keeps working.
const DefaultStorageKey = "a11y_game_leaderboard"

type Config struct {
	Env   string `yaml:"env"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Storage struct {
		Key string `yaml:"key"`
	} `yaml:"storage"`
	Game struct {
		QuestionsPerRound int `yaml:"questionsPerRound"`
	} `yaml:"game"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// StorageKey returns the configured leaderboard key or the default.
func (c Config) StorageKey() string {
	if c.Storage.Key != "" {
		return c.Storage.Key
	}
	return DefaultStorageKey
}
