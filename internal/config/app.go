package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config file and environment naming
const (
	ConfigName = "upscaler"
	ConfigType = "yaml"
	EnvPrefix  = "UPSCALER"
	EnvFile    = ".env"
)

// Default values
const (
	DefaultServerURL        = "http://localhost:5000"
	DefaultRequestTimeout   = 60 * time.Second
	DefaultCountdownSeconds = 5
	DefaultLanguage         = "en"
	DefaultListenAddr       = ":5000"
	DefaultUploadDir        = "uploads"
	DefaultProcessedDir     = "processed"
	DefaultRetention        = 10 * time.Minute
	DefaultCleanupInterval  = time.Minute
	DefaultMaxUploadBytes   = 32 << 20
)

// AppConfig holds the process-level configuration for both the desktop
// client and the companion server
type AppConfig struct {
	ServerURL        string        `mapstructure:"server_url"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
	CountdownSeconds int           `mapstructure:"countdown_seconds"`
	Language         string        `mapstructure:"language"`
	Debug            bool          `mapstructure:"debug"`

	ListenAddr      string        `mapstructure:"listen_addr"`
	UploadDir       string        `mapstructure:"upload_dir"`
	ProcessedDir    string        `mapstructure:"processed_dir"`
	Retention       time.Duration `mapstructure:"retention"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

// Load reads configuration from dir/.env, dir/upscaler.yaml and UPSCALER_*
// environment variables, in increasing order of precedence. Missing files
// are not an error.
func Load(dir string) (*AppConfig, error) {
	if err := godotenv.Load(filepath.Join(dir, EnvFile)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", EnvFile, err)
	}

	v := viper.New()
	v.SetConfigName(ConfigName)
	v.SetConfigType(ConfigType)
	v.AddConfigPath(dir)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_url", DefaultServerURL)
	v.SetDefault("request_timeout", DefaultRequestTimeout)
	v.SetDefault("countdown_seconds", DefaultCountdownSeconds)
	v.SetDefault("language", DefaultLanguage)
	v.SetDefault("debug", false)
	v.SetDefault("listen_addr", DefaultListenAddr)
	v.SetDefault("upload_dir", DefaultUploadDir)
	v.SetDefault("processed_dir", DefaultProcessedDir)
	v.SetDefault("retention", DefaultRetention)
	v.SetDefault("cleanup_interval", DefaultCleanupInterval)
	v.SetDefault("max_upload_bytes", DefaultMaxUploadBytes)
}

// Validate checks the loaded values
func (c *AppConfig) Validate() error {
	parsedURL, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server_url: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("server_url must start with http:// or https://")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	if c.CountdownSeconds < 1 {
		return fmt.Errorf("countdown_seconds must be at least 1")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive")
	}
	if c.Retention <= 0 || c.CleanupInterval <= 0 {
		return fmt.Errorf("retention and cleanup_interval must be positive")
	}
	return nil
}
