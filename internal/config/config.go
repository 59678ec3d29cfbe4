package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format"`
	Quiet   bool   `mapstructure:"quiet"`
	Verbose bool   `mapstructure:"verbose"`

	// Default values for commands
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

// DefaultsConfig holds default values for the buzz/stop/ui commands
type DefaultsConfig struct {
	// Preset used when buzz is run without a pattern; empty means the
	// plain default duration
	Pattern string `mapstructure:"pattern"`

	// Fallback single-vibration duration in milliseconds
	DurationMs int `mapstructure:"duration_ms"`

	// Sysfs directory of the timed-output vibrator
	DeviceDir string `mapstructure:"device_dir"`

	// Maximum time buzz waits for the active flag to clear
	WaitTimeout string `mapstructure:"wait_timeout"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:  "text",
		Quiet:   false,
		Verbose: false,
		Defaults: DefaultsConfig{
			DurationMs:  200,
			DeviceDir:   "/sys/class/timed_output/vibrator",
			WaitTimeout: "10s",
		},
	}
}

// Load loads configuration from files and environment
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("hapt")
	v.SetConfigType("yaml")

	// Config paths in order of precedence, lowest first
	v.AddConfigPath("/etc/hapt/")
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "hapt"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.SetConfigName(".hapt")
	}
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("HAPT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.BindEnv("format", "HAPT_FORMAT")
	v.BindEnv("quiet", "HAPT_QUIET")
	v.BindEnv("verbose", "HAPT_VERBOSE")
	v.BindEnv("defaults.pattern", "HAPT_PATTERN")
	v.BindEnv("defaults.device_dir", "HAPT_DEVICE_DIR")

	// Set defaults
	cfg := Default()
	v.SetDefault("format", cfg.Format)
	v.SetDefault("quiet", cfg.Quiet)
	v.SetDefault("verbose", cfg.Verbose)
	v.SetDefault("defaults.duration_ms", cfg.Defaults.DurationMs)
	v.SetDefault("defaults.device_dir", cfg.Defaults.DeviceDir)
	v.SetDefault("defaults.wait_timeout", cfg.Defaults.WaitTimeout)

	// Try to read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the path to the config file that was loaded
func ConfigFile() string {
	v := viper.New()

	v.SetConfigName("hapt")
	v.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err == nil {
		return v.ConfigFileUsed()
	}

	v.SetConfigName(".hapt")
	if err := v.ReadInConfig(); err == nil {
		return v.ConfigFileUsed()
	}

	return ""
}
