package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/mkrall/hapt/internal/cli"
	"github.com/mkrall/hapt/internal/config"
)

const quickStart = `haptctl - drive a device vibration motor from the terminal

Quick start:
  haptctl patterns                      List preset patterns
  haptctl buzz success                  Fire the success preset
  haptctl buzz 100,50,200               Fire a raw sequence
  haptctl stop                          Cancel a running vibration
  haptctl ui                            Interactive session view

For help:
  haptctl --help                        All commands and flags
`

func main() {
	// Show quick start if no args provided
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	// Load configuration from files/environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Apply config defaults before parsing; CLI flags override them
	vars := kong.Vars{
		"config_format":       configFormat(cfg),
		"config_device":       cfg.Defaults.DeviceDir,
		"config_wait_timeout": cfg.Defaults.WaitTimeout,
	}

	ctx := kong.Parse(&c,
		kong.Name("haptctl"),
		kong.Description("Drive a device vibration motor: presets, raw patterns, live session state"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	globals := cli.NewGlobalsWithConfig(&c, cfg)
	err = ctx.Run(globals)
	if err != nil {
		os.Exit(1)
	}
}

// configFormat maps config values onto the flag enum; anything odd
// falls back to auto-detection.
func configFormat(cfg *config.Config) string {
	switch cfg.Format {
	case "text", "ndjson", "auto":
		return cfg.Format
	default:
		return "auto"
	}
}
