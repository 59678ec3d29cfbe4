package device

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mkrall/hapt/pattern"
)

// DefaultSysfsDir is where Android-derived kernels expose the timed
// output vibrator.
const DefaultSysfsDir = "/sys/class/timed_output/vibrator"

// Sysfs drives a timed-output vibrator through its sysfs `enable`
// attribute: writing N starts an N-millisecond vibration, writing 0
// cancels it. Sequences are played by a background goroutine that
// writes each active segment and sleeps through the pauses.
type Sysfs struct {
	enablePath string

	mu  sync.Mutex
	gen atomic.Uint64 // bumps on every request; stops a running player
}

// NewSysfs opens a driver rooted at dir. An empty dir uses
// DefaultSysfsDir. Construction never fails; a missing attribute just
// makes the driver report unsupported.
func NewSysfs(dir string) *Sysfs {
	if dir == "" {
		dir = DefaultSysfsDir
	}
	return &Sysfs{enablePath: filepath.Join(dir, "enable")}
}

// Supported probes for a writable enable attribute. Called once by the
// controller at construction.
func (d *Sysfs) Supported() bool {
	f, err := os.OpenFile(d.enablePath, os.O_WRONLY, 0)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// Vibrate starts the pattern. The zero pattern cancels: it interrupts
// any in-flight sequence player and writes 0 to the attribute.
func (d *Sysfs) Vibrate(p pattern.Pattern) (bool, error) {
	gen := d.gen.Add(1)

	if p.IsZero() {
		return d.write(0)
	}
	if !p.IsSequence() {
		return d.write(p.Duration())
	}

	// First active segment synchronously so acceptance reflects a real
	// write; the rest plays in the background.
	segments := p.Segments()
	accepted, err := d.write(segments[0])
	if err != nil || !accepted {
		return accepted, err
	}
	if len(segments) > 1 {
		go d.play(segments, gen)
	}
	return true, nil
}

// play walks the remaining segments: sleep through segment 0 (already
// vibrating) and every pause, write every later active segment. A newer
// request aborts playback.
func (d *Sysfs) play(segments []int, gen uint64) {
	for i, ms := range segments {
		if i > 0 && i%2 == 0 {
			if d.gen.Load() != gen {
				return
			}
			if accepted, err := d.write(ms); err != nil || !accepted {
				return
			}
		}
		time.Sleep(time.Duration(ms) * time.Millisecond)
	}
}

// write puts a millisecond count into the enable attribute. A missing
// or unwritable attribute is a rejection, not an error; anything else
// that fails mid-write is a driver error.
func (d *Sysfs) write(ms int) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	f, err := os.OpenFile(d.enablePath, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return false, nil
	}
	defer f.Close()

	if _, err := f.WriteString(strconv.Itoa(ms)); err != nil {
		return false, fmt.Errorf("write %s: %w", d.enablePath, err)
	}
	return true, nil
}
