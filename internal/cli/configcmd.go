package cli

import (
	"encoding/json"
	"fmt"

	"github.com/mkrall/hapt/internal/config"
)

// ConfigCmd groups configuration inspection subcommands.
type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"1" help:"Show the effective configuration"`
	Path     ConfigPathCmd     `cmd:"" help:"Show which config file is in use"`
	Generate ConfigGenerateCmd `cmd:"" help:"Print a sample configuration file"`
}

// ConfigShowCmd prints the effective configuration.
type ConfigShowCmd struct{}

// Run executes the config show command
func (c *ConfigShowCmd) Run(globals *Globals) error {
	cfg := globals.Config

	if globals.Format == "ndjson" {
		payload := map[string]interface{}{
			"type":    "config",
			"format":  cfg.Format,
			"quiet":   cfg.Quiet,
			"verbose": cfg.Verbose,
			"defaults": map[string]interface{}{
				"pattern":      cfg.Defaults.Pattern,
				"duration_ms":  cfg.Defaults.DurationMs,
				"device_dir":   cfg.Defaults.DeviceDir,
				"wait_timeout": cfg.Defaults.WaitTimeout,
			},
		}
		return json.NewEncoder(globals.Stdout).Encode(payload)
	}

	fmt.Fprintln(globals.Stdout, "Current Configuration:")
	fmt.Fprintf(globals.Stdout, "  format: %s\n", cfg.Format)
	fmt.Fprintf(globals.Stdout, "  quiet: %t\n", cfg.Quiet)
	fmt.Fprintf(globals.Stdout, "  verbose: %t\n", cfg.Verbose)
	fmt.Fprintln(globals.Stdout, "  Defaults:")
	fmt.Fprintf(globals.Stdout, "    pattern: %s\n", cfg.Defaults.Pattern)
	fmt.Fprintf(globals.Stdout, "    duration_ms: %d\n", cfg.Defaults.DurationMs)
	fmt.Fprintf(globals.Stdout, "    device_dir: %s\n", cfg.Defaults.DeviceDir)
	fmt.Fprintf(globals.Stdout, "    wait_timeout: %s\n", cfg.Defaults.WaitTimeout)
	return nil
}

// ConfigPathCmd shows which config file is in use.
type ConfigPathCmd struct{}

// Run executes the config path command
func (c *ConfigPathCmd) Run(globals *Globals) error {
	path := config.ConfigFile()

	if globals.Format == "ndjson" {
		payload := map[string]interface{}{
			"type": "config_path",
			"path": path,
		}
		return json.NewEncoder(globals.Stdout).Encode(payload)
	}

	if path == "" {
		fmt.Fprintln(globals.Stdout, "No configuration file found (using defaults)")
	} else {
		fmt.Fprintf(globals.Stdout, "Config file: %s\n", path)
	}
	return nil
}

// ConfigGenerateCmd prints a sample configuration file.
type ConfigGenerateCmd struct{}

const sampleConfig = `# hapt configuration file
# Place in ~/.hapt.yaml, ~/.config/hapt/hapt.yaml, or ./hapt.yaml

# Output format: auto, text, or ndjson
format: text

# Suppress non-essential output
quiet: false

# Verbose debug logging
verbose: false

defaults:
  # Preset fired by a bare 'haptctl buzz' (empty = plain duration)
  pattern: ""

  # Fallback vibration duration in milliseconds
  duration_ms: 200

  # Sysfs directory of the timed-output vibrator
  device_dir: /sys/class/timed_output/vibrator

  # Maximum time buzz waits for the vibration to finish
  wait_timeout: 10s
`

// Run executes the config generate command
func (c *ConfigGenerateCmd) Run(globals *Globals) error {
	fmt.Fprint(globals.Stdout, sampleConfig)
	return nil
}
