package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "FSUBS_CONFIG"

// envPrefix is stripped from environment variables before they are mapped
// onto config keys: FSUBS_APP_JWT_SECRET -> app.jwt_secret.
const envPrefix = "FSUBS_"

var defaultConfigPaths = []string{
	"fsubs.yaml",
	"/etc/fsubs/fsubs.yaml",
}

type Config struct {
	App AppConfig `koanf:"app"`
	DB  DBConfig  `koanf:"db"`
}

type AppConfig struct {
	Addr            string   `koanf:"addr"`
	BaseURL         string   `koanf:"base_url"`
	LogLevel        string   `koanf:"log_level"`
	JWTSecret       string   `koanf:"jwt_secret"`
	JWTExpiresHours int      `koanf:"jwt_expires_hours"`
	CORSOrigins     []string `koanf:"cors_origins"`
}

type DBConfig struct {
	DataDir string `koanf:"data_dir"`
}

func defaults() *Config {
	return &Config{
		App: AppConfig{
			Addr:            ":8080",
			BaseURL:         "http://localhost:8080",
			LogLevel:        "info",
			JWTSecret:       "change-me-in-production-32-bytes!",
			JWTExpiresHours: 24,
			CORSOrigins:     []string{"http://localhost:4200"},
		},
		DB: DBConfig{
			DataDir: "./data",
		},
	}
}

// Load builds the config from struct defaults, an optional YAML file, and
// FSUBS_-prefixed environment variables, in that order of priority.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envToKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	// Env vars carry slices as comma-separated strings.
	if v := k.String("app.cors_origins"); v != "" && strings.Contains(v, ",") {
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if err := k.Set("app.cors_origins", parts); err != nil {
			return nil, fmt.Errorf("set cors origins: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// envToKey maps FSUBS_APP_JWT_SECRET to app.jwt_secret: the first segment
// selects the section, the remainder is the key.
func envToKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	section, key, found := strings.Cut(s, "_")
	if !found {
		return s
	}
	return section + "." + key
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range defaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
