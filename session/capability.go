package session

import "github.com/mkrall/hapt/pattern"

// Capability is the host vibration primitive the controller drives.
// Implementations live in the device package; tests supply fakes.
//
// Vibrate reports whether the host accepted the request. A false return
// with a nil error means the request was rejected (the motor did not
// start); a non-nil error means the driver itself failed. By convention
// vibrating for 0 ms cancels any in-progress vibration.
type Capability interface {
	Supported() bool
	Vibrate(p pattern.Pattern) (accepted bool, err error)
}
