package cli

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/mkrall/hapt/device"
	"github.com/mkrall/hapt/internal/config"
	"github.com/mkrall/hapt/pattern"
	"github.com/mkrall/hapt/session"
)

// CLI is the top-level command structure parsed by kong.
type CLI struct {
	Format  string `help:"Output format (auto, text, ndjson)" enum:"auto,text,ndjson" default:"${config_format}"`
	Verbose bool   `short:"v" help:"Enable verbose debug logging"`
	Quiet   bool   `short:"q" help:"Suppress non-essential output"`
	Device  string `help:"Sysfs directory of the timed-output vibrator" default:"${config_device}"`

	Buzz     BuzzCmd     `cmd:"" help:"Trigger a vibration pattern"`
	Stop     StopCmd     `cmd:"" help:"Cancel any in-progress vibration"`
	Patterns PatternsCmd `cmd:"" help:"List the preset pattern table"`
	UI       UICmd       `cmd:"" help:"Interactive session view"`
	Config   ConfigCmd   `cmd:"" help:"Inspect and generate configuration"`
}

// Globals carries resolved flags and IO streams into every command.
// Stdout/Stderr are injectable so tests can capture output.
type Globals struct {
	Format    string
	Quiet     bool
	Verbose   bool
	DeviceDir string
	Stdout    io.Writer
	Stderr    io.Writer
	Config    *config.Config

	logger *debugLogger
}

// NewGlobalsWithConfig resolves CLI flags against loaded configuration.
func NewGlobalsWithConfig(c *CLI, cfg *config.Config) *Globals {
	g := &Globals{
		Format:    c.Format,
		Quiet:     c.Quiet,
		Verbose:   c.Verbose,
		DeviceDir: c.Device,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Config:    cfg,
	}
	if g.Config == nil {
		g.Config = config.Default()
	}
	if g.DeviceDir == "" {
		g.DeviceDir = g.Config.Defaults.DeviceDir
	}
	g.Format = resolveFormat(g.Format)
	g.logger = newDebugLogger(g)
	return g
}

// resolveFormat turns "auto" into a concrete format: text on a
// terminal, ndjson when piped.
func resolveFormat(format string) string {
	if format != "auto" && format != "" {
		return format
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return "text"
	}
	return "ndjson"
}

// Debug logs a verbose-mode message.
func (g *Globals) Debug(format string, args ...interface{}) {
	if g.logger != nil {
		g.logger.Debug(format, args...)
	}
}

// newController opens the configured device and builds a session
// controller around it, with zap as the driver-error sink.
func (g *Globals) newController() *session.Controller {
	drv := device.NewSysfs(g.DeviceDir)
	opts := []session.Option{session.WithLogger(newSinkLogger(g.Verbose))}
	if p, ok := g.defaultPattern(); ok {
		opts = append(opts, session.WithDefault(p))
	}
	return session.New(drv, opts...)
}

// defaultPattern derives the configured fallback trigger pattern.
func (g *Globals) defaultPattern() (pattern.Pattern, bool) {
	if name := g.Config.Defaults.Pattern; name != "" {
		if p, ok := pattern.Named(name); ok {
			return p, true
		}
	}
	if ms := g.Config.Defaults.DurationMs; ms > 0 && ms != pattern.Default.Duration() {
		return pattern.Millis(ms), true
	}
	return pattern.Pattern{}, false
}
