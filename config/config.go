// Package config loads experiment configuration files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pallman14/MARL-QMIX-Warehouse-Robots/envs"
)

// Config is one experiment run: which environment to build, its arguments
// and the run parameters.
type Config struct {
	Env     string    `yaml:"env"`
	EnvArgs envs.Args `yaml:"env_args"`

	Episodes int    `yaml:"episodes"`
	Horizon  int    `yaml:"horizon"`
	SaveDir  string `yaml:"save_dir"`
	Seed     int64  `yaml:"seed"`
}

// Default returns the configuration used when no file is given: the
// in-process warehouse with team reward.
func Default() *Config {
	commonReward := true
	return &Config{
		Env: "warehouse-local",
		EnvArgs: envs.Args{
			CommonReward:        &commonReward,
			RewardScalarisation: "sum",
		},
		Episodes: 100,
		SaveDir:  "results",
	}
}

// Load reads a config file and applies defaults and environment variable
// overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.ApplyEnvOverrides()

	if cfg.Episodes <= 0 {
		return nil, fmt.Errorf("config: episodes must be positive, got %d", cfg.Episodes)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies environment variable overrides to config
func (c *Config) ApplyEnvOverrides() {
	if envPath := os.Getenv("WAREHOUSE_ENV_PATH"); envPath != "" {
		c.EnvArgs.EnvPath = envPath
	}
	if saveDir := os.Getenv("WAREHOUSE_SAVE_DIR"); saveDir != "" {
		c.SaveDir = saveDir
	}
}
