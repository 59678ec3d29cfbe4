package cli

import (
	"fmt"

	"github.com/mkrall/hapt/internal/output"
)

// StopCmd cancels any in-progress vibration.
type StopCmd struct{}

// Run executes the stop command
func (c *StopCmd) Run(globals *Globals) error {
	ctrl := globals.newController()
	writer := output.NewNDJSONWriter(globals.Stdout)

	if globals.Format == "ndjson" {
		writer.WriteReady(ctrl.Supported(), globals.DeviceDir)
	}

	if !ctrl.Supported() {
		if globals.Format == "ndjson" {
			writer.WriteDone("unsupported")
		} else if !globals.Quiet {
			fmt.Fprintf(globals.Stdout, "No vibration device at %s; nothing to do\n", globals.DeviceDir)
		}
		return nil
	}

	globals.Debug("sending cancel sentinel")
	ctrl.Stop()

	if globals.Format == "ndjson" {
		state := ctrl.State()
		writer.WriteState(state.Supported, state.Active)
		writer.WriteDone("stopped")
	} else if !globals.Quiet {
		fmt.Fprintln(globals.Stdout, "Stopped")
	}
	return nil
}
