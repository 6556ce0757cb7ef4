// Package config loads server and CLI settings from a YAML file, a .env file
// and the environment, in that order of increasing precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	imagepkg "github.com/youruser/collageapp/internal/image"
	"github.com/youruser/collageapp/internal/params"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Addr        string `yaml:"addr"`
	Development bool   `yaml:"development"`
	LogFile     string `yaml:"log_file"`

	// MaxUploadMB caps the request body of upload endpoints.
	MaxUploadMB int64 `yaml:"max_upload_mb"`
	// MaxImages caps how many files one request may carry.
	MaxImages int `yaml:"max_images"`
	// MaxPixels caps the declared width*height of any single input image.
	MaxPixels int `yaml:"max_pixels"`

	CacheSize       int           `yaml:"cache_size"`
	Workers         int           `yaml:"workers"`
	DownloadTimeout time.Duration `yaml:"download_timeout"`

	// Defaults fill in any collage parameter a request leaves out.
	Defaults params.Params `yaml:"defaults"`
}

func Default() Config {
	return Config{
		Addr:            ":8080",
		MaxUploadMB:     64,
		MaxImages:       400,
		MaxPixels:       50_000_000,
		CacheSize:       16,
		Workers:         4,
		DownloadTimeout: 10 * time.Second,
		Defaults:        params.Default(),
	}
}

// Load builds a Config from defaults, the optional YAML file at path, an
// optional .env file in the working directory and COLLAGE_* variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	cfg.Addr = getEnvOrDefault("COLLAGE_ADDR", cfg.Addr)
	cfg.LogFile = getEnvOrDefault("COLLAGE_LOG_FILE", cfg.LogFile)
	cfg.Development = parseBoolEnv("COLLAGE_DEV", cfg.Development)
	cfg.MaxUploadMB = int64(parseIntEnv("COLLAGE_MAX_UPLOAD_MB", int(cfg.MaxUploadMB)))
	cfg.MaxImages = parseIntEnv("COLLAGE_MAX_IMAGES", cfg.MaxImages)
	cfg.MaxPixels = parseIntEnv("COLLAGE_MAX_PIXELS", cfg.MaxPixels)
	cfg.CacheSize = parseIntEnv("COLLAGE_CACHE_SIZE", cfg.CacheSize)
	cfg.Workers = parseIntEnv("COLLAGE_WORKERS", cfg.Workers)
	cfg.DownloadTimeout = parseDurationEnv("COLLAGE_DOWNLOAD_TIMEOUT", cfg.DownloadTimeout)
}

func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr is empty", ErrInvalidConfig)
	case c.MaxUploadMB <= 0:
		return fmt.Errorf("%w: max_upload_mb must be positive", ErrInvalidConfig)
	case c.MaxImages <= 0:
		return fmt.Errorf("%w: max_images must be positive", ErrInvalidConfig)
	case c.MaxPixels <= 0:
		return fmt.Errorf("%w: max_pixels must be positive", ErrInvalidConfig)
	case c.CacheSize < 0:
		return fmt.Errorf("%w: cache_size must not be negative", ErrInvalidConfig)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1", ErrInvalidConfig)
	case c.DownloadTimeout <= 0:
		return fmt.Errorf("%w: download_timeout must be positive", ErrInvalidConfig)
	}
	if err := c.Defaults.Validate(); err != nil {
		return fmt.Errorf("%w: defaults: %v", ErrInvalidConfig, err)
	}
	return nil
}

// DecodeLimits bounds each decoded input by MaxPixels and each download
// by the upload size cap.
func (c Config) DecodeLimits() imagepkg.Limits {
	return imagepkg.Limits{MaxPixels: c.MaxPixels, MaxBytes: c.MaxUploadMB << 20}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	}
	return defaultValue
}

func parseDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
