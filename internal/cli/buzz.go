package cli

import (
	"fmt"
	"time"

	"github.com/mkrall/hapt/internal/output"
	"github.com/mkrall/hapt/pattern"
	"github.com/mkrall/hapt/session"
)

// BuzzCmd triggers a vibration and, by default, waits for it to finish.
type BuzzCmd struct {
	Pattern string `arg:"" optional:"" help:"Preset name, duration (300 or 300ms), or sequence (100,50,200). Empty uses the configured default."`
	NoWait  bool   `help:"Return immediately instead of waiting for the vibration to finish"`
	Timeout string `default:"${config_wait_timeout}" help:"Maximum time to wait for the active flag to clear"`
}

// Run executes the buzz command
func (c *BuzzCmd) Run(globals *Globals) error {
	timeout, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return outputErrorCommon(globals, "INVALID_TIMEOUT", fmt.Sprintf("invalid timeout: %s", err))
	}

	var p pattern.Pattern
	havePattern := c.Pattern != ""
	if havePattern {
		p, err = resolvePattern(c.Pattern)
		if err != nil {
			return outputErrorCommon(globals, "BAD_PATTERN", err.Error(),
				"use a preset name ('haptctl patterns'), a duration like 300ms, or a sequence like 100,50,200")
		}
	}

	ctrl := globals.newController()
	writer := output.NewNDJSONWriter(globals.Stdout)

	if globals.Format == "ndjson" {
		writer.WriteReady(ctrl.Supported(), globals.DeviceDir)
	}

	if !ctrl.Supported() {
		// Not an error: unsupported hosts degrade to no-ops.
		if globals.Format == "ndjson" {
			writer.WriteDone("unsupported")
		} else if !globals.Quiet {
			fmt.Fprintf(globals.Stdout, "No vibration device at %s; nothing to do\n", globals.DeviceDir)
		}
		return nil
	}

	done := make(chan struct{}, 1)
	cancel := ctrl.Subscribe(func(s session.State) {
		if globals.Format == "ndjson" {
			writer.WriteState(s.Supported, s.Active)
		}
		if !s.Active {
			select {
			case done <- struct{}{}:
			default:
			}
		}
	})
	defer cancel()

	if havePattern {
		globals.Debug("triggering %s", p.String())
		ctrl.Trigger(p)
	} else {
		globals.Debug("triggering default pattern")
		ctrl.Trigger()
	}

	if globals.Format == "text" && !globals.Quiet {
		if havePattern {
			fmt.Fprintf(globals.Stdout, "Buzzing %s (%s total)\n", p.String(), p.Total())
		} else {
			fmt.Fprintln(globals.Stdout, "Buzzing default pattern")
		}
	}

	reason := waitForIdle(ctrl, c.NoWait, havePattern, p, done, timeout)

	if globals.Format == "ndjson" {
		writer.WriteDone(reason)
	} else if !globals.Quiet && reason == "timeout" {
		fmt.Fprintln(globals.Stderr, "Timed out waiting for the vibration to finish")
	}
	return nil
}

// waitForIdle blocks until the controller goes idle, unless waiting makes
// no sense: --no-wait, a rejected trigger, or a zero-duration pattern
// that schedules no reset.
func waitForIdle(ctrl *session.Controller, noWait, havePattern bool, p pattern.Pattern, done <-chan struct{}, timeout time.Duration) string {
	if noWait {
		return "no_wait"
	}
	if !ctrl.Active() {
		return "completed"
	}
	if havePattern && p.IsZero() {
		return "completed"
	}
	select {
	case <-done:
		return "completed"
	case <-time.After(timeout):
		return "timeout"
	}
}

// resolvePattern maps a CLI argument to a pattern: preset names win,
// everything else must parse as a duration or sequence.
func resolvePattern(s string) (pattern.Pattern, error) {
	if p, ok := pattern.Named(s); ok {
		return p, nil
	}
	return pattern.Parse(s)
}
