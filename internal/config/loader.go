// Package config loads the application configuration and the book selection store.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/unalkalkan/ChapterMark/internal/splitter"
	"github.com/unalkalkan/ChapterMark/internal/storage"
	"github.com/unalkalkan/ChapterMark/pkg/types"
)

// EnvPrefix prefixes every environment override, e.g. CM_STORAGE_ADAPTER
const EnvPrefix = "CM_"

// DefaultSelectionKey is the selection store property naming the active book
const DefaultSelectionKey = "BOOK_PATH"

// Load reads and parses the configuration file on top of the defaults.
// Environment variables with the CM_ prefix override file values.
func Load(configPath string) (*types.Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := GetDefault()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return finish(cfg)
}

// LoadOrDefault behaves like Load but falls back to the defaults when the file does not exist
func LoadOrDefault(configPath string) (*types.Config, error) {
	if configPath != "" {
		cfg, err := Load(configPath)
		if !errors.Is(err, fs.ErrNotExist) {
			return cfg, err
		}
	}
	return finish(GetDefault())
}

// LoadDotEnv loads KEY=VALUE files into the process environment. Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

func finish(cfg *types.Config) (*types.Config, error) {
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid and fills derived defaults
func Validate(cfg *types.Config) error {
	cfg.Storage.Adapter = storage.NormalizeAdapter(cfg.Storage.Adapter)
	switch cfg.Storage.Adapter {
	case storage.AdapterLocal:
		if cfg.Storage.Local.BasePath == "" {
			return fmt.Errorf("local storage base_path is required")
		}
	case storage.AdapterS3:
		if cfg.Storage.S3.Bucket == "" {
			return fmt.Errorf("s3 bucket is required")
		}
		if cfg.Storage.S3.Region == "" {
			return fmt.Errorf("s3 region is required")
		}
	case storage.AdapterSQLite:
		if cfg.Storage.SQLite.Path == "" {
			return fmt.Errorf("sqlite path is required")
		}
	default:
		return fmt.Errorf("invalid storage adapter: %s (must be 'local', 's3' or 'sqlite')", cfg.Storage.Adapter)
	}

	if cfg.Shelf.SelectionPath == "" {
		return fmt.Errorf("shelf selection_path is required")
	}
	if cfg.Shelf.SelectionKey == "" {
		cfg.Shelf.SelectionKey = DefaultSelectionKey
	}

	if _, err := splitter.Resolve(cfg.Splitter.Pattern, cfg.Splitter.Expr); err != nil {
		return err
	}

	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", cfg.Log.Level)
	}
	switch strings.ToLower(cfg.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", cfg.Log.Format)
	}

	return nil
}

func applyEnvOverrides(cfg *types.Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return nil
}

// GetDefault returns a default configuration rooted in the user data directory
func GetDefault() *types.Config {
	dir := DataDir()
	return &types.Config{
		Storage: types.StorageConfig{
			Adapter: storage.AdapterLocal,
			Local: types.LocalStorageOpts{
				BasePath: filepath.Join(dir, "library"),
			},
			SQLite: types.SQLiteStorageOpts{
				Path: filepath.Join(dir, "chaptermark.db"),
			},
		},
		Shelf: types.ShelfConfig{
			SelectionPath: filepath.Join(dir, "config.json"),
			SelectionKey:  DefaultSelectionKey,
		},
		Splitter: types.SplitterConfig{
			Pattern:  splitter.PatternChapter,
			Encoding: "auto",
		},
		Log: types.LogConfig{
			Level:      "info",
			Format:     "text",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// DataDir returns XDG_DATA_HOME/chaptermark or ~/.local/share/chaptermark
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "chaptermark")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".chaptermark"
	}
	return filepath.Join(home, ".local", "share", "chaptermark")
}
