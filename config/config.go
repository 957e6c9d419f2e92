// Package config loads the browse configuration from file, environment and
// defaults through viper.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. BROWSE_BROWSER_HEADLESS.
const EnvPrefix = "BROWSE"

type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Bridge  BridgeConfig  `mapstructure:"bridge" yaml:"bridge"`
	Browser BrowserConfig `mapstructure:"browser" yaml:"browser"`
}

type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

type BridgeConfig struct {
	// MaxConcurrentSteps bounds backend calls in flight across the process.
	MaxConcurrentSteps int `mapstructure:"max_concurrent_steps" yaml:"max_concurrent_steps"`
}

type BrowserConfig struct {
	Headless                 bool          `mapstructure:"headless" yaml:"headless"`
	DisableAutomationMessage bool          `mapstructure:"disable_automation_message" yaml:"disable_automation_message"`
	Screenshots              bool          `mapstructure:"screenshots" yaml:"screenshots"`
	MaxTextTokens            int           `mapstructure:"max_text_tokens" yaml:"max_text_tokens"`
	SettleTime               time.Duration `mapstructure:"settle_time" yaml:"settle_time"`
}

func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "browse")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Bridge --
	v.SetDefault("bridge.max_concurrent_steps", 8)

	// -- Browser --
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.disable_automation_message", false)
	v.SetDefault("browser.screenshots", false)
	v.SetDefault("browser.max_text_tokens", 0)
	v.SetDefault("browser.settle_time", "1s")
}

// NewConfigFromViper unmarshals and validates the configuration held by v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format)
	}
	if c.Bridge.MaxConcurrentSteps <= 0 {
		return fmt.Errorf("bridge.max_concurrent_steps must be a positive integer")
	}
	if c.Browser.MaxTextTokens < 0 {
		return fmt.Errorf("browser.max_text_tokens must not be negative")
	}
	if c.Browser.SettleTime < 0 {
		return fmt.Errorf("browser.settle_time must not be negative")
	}
	return nil
}
