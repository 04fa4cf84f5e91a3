// Package config loads the daemon configuration from an optional YAML file
// with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so configs can say "30m" or "1h".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type Config struct {
	Dialect       string `yaml:"dialect"`
	MinTypoLength int    `yaml:"min_typo_length"`
	CodeDelimiter string `yaml:"code_delimiter"`

	// ArtifactPath points at a dictgen-generated base table. Empty means
	// the table embedded in the binary.
	ArtifactPath string `yaml:"artifact_path"`

	// PersonalPath is an on-disk personal rules file to watch. Empty
	// disables the watcher; personal rules then come from Redis only.
	PersonalPath string `yaml:"personal_rules_path"`

	RemoteURL      string   `yaml:"remote_url"`
	RemoteInterval Duration `yaml:"remote_interval"`
	CacheDir       string   `yaml:"cache_dir"`

	HTTPAddr      string `yaml:"http_addr"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
}

func Default() Config {
	return Config{
		Dialect:        "british",
		MinTypoLength:  5,
		CodeDelimiter:  "`",
		RemoteInterval: Duration(time.Hour),
		HTTPAddr:       ":8080",
		RedisAddr:      "localhost:6379",
	}
}

// Load reads path over the defaults. An empty path returns the defaults;
// a missing file is an error so a typoed CONFIG_PATH does not silently run
// with defaults. Env overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.Dialect = getenv("TYPOFIX_DIALECT", cfg.Dialect)
	cfg.ArtifactPath = getenv("TYPOFIX_ARTIFACT", cfg.ArtifactPath)
	cfg.PersonalPath = getenv("TYPOFIX_PERSONAL_RULES", cfg.PersonalPath)
	cfg.RemoteURL = getenv("TYPOFIX_REMOTE_URL", cfg.RemoteURL)
	cfg.CacheDir = getenv("TYPOFIX_CACHE_DIR", cfg.CacheDir)
	cfg.HTTPAddr = getenv("HTTP_ADDR", cfg.HTTPAddr)
	cfg.RedisAddr = getenv("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = getenv("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = getenvInt("REDIS_DB", cfg.RedisDB)
	return cfg, nil
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}
