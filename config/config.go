package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the shared configuration for the download and extract commands.
// It is loaded once at startup and passed explicitly to each component.
type Config struct {
	DownloadSettings DownloadSettings `mapstructure:"download_settings" json:"download_settings"`
	DownloadOptions  DownloadOptions  `mapstructure:"download_options" json:"download_options"`
	ExtractSettings  ExtractSettings  `mapstructure:"extract_settings" json:"extract_settings"`
	Log              LogConfig        `mapstructure:"log" json:"log"`
}

type DownloadSettings struct {
	OutputDir  string `mapstructure:"output_dir" json:"output_dir"`
	CookieFile string `mapstructure:"cookie_file" json:"cookie_file"`
	Timeout    int    `mapstructure:"timeout" json:"timeout"` // seconds, per HTTP request
	MaxRetries int    `mapstructure:"max_retries" json:"max_retries"`
	MaxWorkers int    `mapstructure:"max_workers" json:"max_workers"`
}

type DownloadOptions struct {
	BodyModel string   `mapstructure:"body_model" json:"body_model"`
	Gender    string   `mapstructure:"gender" json:"gender"`
	Datasets  []string `mapstructure:"datasets" json:"datasets"`
}

type ExtractSettings struct {
	OutputDir          string `mapstructure:"output_dir" json:"output_dir"`
	MaxWorkers         int    `mapstructure:"max_workers" json:"max_workers"`
	DeleteAfterExtract bool   `mapstructure:"delete_after_extract" json:"delete_after_extract"`
}

type LogConfig struct {
	Level string `mapstructure:"level" json:"level"`
}

// RequestTimeout returns the per-request HTTP timeout.
func (s DownloadSettings) RequestTimeout() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

// ExtractOutputDir resolves the extraction target directory: the configured
// value when set, otherwise an "extracted" subdirectory of the download dir.
func (c *Config) ExtractOutputDir() string {
	if c.ExtractSettings.OutputDir != "" {
		return c.ExtractSettings.OutputDir
	}
	return filepath.Join(c.DownloadSettings.OutputDir, "extracted")
}

// Load reads the JSON config file at path and returns the parsed config.
// Missing file or malformed JSON is fatal for both commands.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix("AMASSGET")
	// Nested keys use dots internally; env vars use underscores.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("download_settings.output_dir", "amass_data")
	v.SetDefault("download_settings.cookie_file", "cookies.txt")
	v.SetDefault("download_settings.timeout", 300)
	v.SetDefault("download_settings.max_retries", 3)
	v.SetDefault("download_settings.max_workers", 4)
	v.SetDefault("download_options.body_model", "SMPL-H")
	v.SetDefault("download_options.gender", "neutral")
	v.SetDefault("extract_settings.max_workers", 1)
	v.SetDefault("log.level", "info")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DownloadSettings.OutputDir == "" {
		return fmt.Errorf("download_settings.output_dir must not be empty")
	}
	if c.DownloadSettings.MaxWorkers < 1 {
		return fmt.Errorf("download_settings.max_workers must be >= 1, got %d", c.DownloadSettings.MaxWorkers)
	}
	if c.DownloadSettings.MaxRetries < 1 {
		return fmt.Errorf("download_settings.max_retries must be >= 1, got %d", c.DownloadSettings.MaxRetries)
	}
	if c.DownloadSettings.Timeout < 1 {
		return fmt.Errorf("download_settings.timeout must be >= 1, got %d", c.DownloadSettings.Timeout)
	}
	if c.ExtractSettings.MaxWorkers < 1 {
		return fmt.Errorf("extract_settings.max_workers must be >= 1, got %d", c.ExtractSettings.MaxWorkers)
	}
	return nil
}
