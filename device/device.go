// Package device provides concrete vibration capabilities for the
// session controller: a null device for hosts with no motor, a function
// adapter for bridging, and a sysfs driver for Android-style
// timed-output vibrators.
package device

import "github.com/mkrall/hapt/pattern"

// Null returns a capability that reports unsupported. Every controller
// built on it degrades to no-ops, which is the right behavior for
// headless and motorless hosts.
func Null() NullDevice { return NullDevice{} }

// NullDevice is the always-unsupported capability.
type NullDevice struct{}

func (NullDevice) Supported() bool { return false }

func (NullDevice) Vibrate(pattern.Pattern) (bool, error) { return false, nil }

// Func adapts a plain function into a supported capability. Useful for
// bridging to an existing haptics stack without a full driver.
func Func(fn func(p pattern.Pattern) (bool, error)) FuncDevice {
	return FuncDevice{fn: fn}
}

// FuncDevice wraps a vibrate function.
type FuncDevice struct {
	fn func(p pattern.Pattern) (bool, error)
}

func (d FuncDevice) Supported() bool { return d.fn != nil }

func (d FuncDevice) Vibrate(p pattern.Pattern) (bool, error) {
	if d.fn == nil {
		return false, nil
	}
	return d.fn(p)
}
