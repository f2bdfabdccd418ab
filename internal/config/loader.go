package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix = "INTAKE_"

	// EnvConfigFile names the variable holding an optional YAML config path.
	EnvConfigFile = envPrefix + "CONFIG"

	// EnvDotEnvFile overrides the location of the dotenv file.
	EnvDotEnvFile = envPrefix + "ENV_FILE"

	defaultDotEnv = ".env"
)

// Load builds a Config by layering, from low to high precedence:
//  1. defaults (New)
//  2. a dotenv file, if present
//  3. a YAML file if INTAKE_CONFIG is set
//  4. env (prefix INTAKE_)
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(".")

	if err := loadDotEnv(k); err != nil {
		return nil, fmt.Errorf("%w: dotenv: %w", ErrLoadConfig, err)
	}

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// INTAKE_QUEUE_SIZE -> queue_size. Keys are flat, so underscores stay.
	envProvider := env.Provider(envPrefix, ".", envKey)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotEnv reads INTAKE_* entries from the dotenv file into k without
// touching the process environment. A missing file is not an error.
func loadDotEnv(k *koanf.Koanf) error {
	path := os.Getenv(EnvDotEnvFile)
	if path == "" {
		path = defaultDotEnv
	}
	vars, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	for name, val := range vars {
		if !strings.HasPrefix(name, envPrefix) || name == EnvConfigFile || name == EnvDotEnvFile {
			continue
		}
		if err := k.Set(envKey(name), val); err != nil {
			return err
		}
	}
	return nil
}

func envKey(name string) string {
	return strings.ToLower(strings.TrimPrefix(name, envPrefix))
}
