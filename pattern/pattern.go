package pattern

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Pattern describes a haptic feedback request: either a single vibration
// duration, or an alternating sequence of durations where even positions
// (0-indexed) are active phases and odd positions are pauses. All values
// are milliseconds.
type Pattern struct {
	sequence bool
	millis   int
	segments []int
}

// Default is the pattern used when a trigger gives no explicit one.
var Default = Millis(200)

// Stop is the cancel sentinel: vibrating for 0 ms stops any in-progress
// vibration on every driver we know of.
var Stop = Millis(0)

// Millis builds a single-duration pattern. Negative durations clamp to 0.
func Millis(ms int) Pattern {
	if ms < 0 {
		ms = 0
	}
	return Pattern{millis: ms}
}

// Sequence builds an alternating active/pause pattern. Negative segments
// clamp to 0. A sequence of one element is kept as a sequence so drivers
// see exactly what the caller built.
func Sequence(ms ...int) Pattern {
	segs := make([]int, len(ms))
	for i, v := range ms {
		if v < 0 {
			v = 0
		}
		segs[i] = v
	}
	return Pattern{sequence: true, segments: segs}
}

// IsSequence reports whether p carries segment data rather than a single
// duration.
func (p Pattern) IsSequence() bool { return p.sequence }

// Duration returns the single duration in milliseconds. Zero for
// sequences.
func (p Pattern) Duration() int {
	if p.sequence {
		return 0
	}
	return p.millis
}

// Segments returns a copy of the sequence segments, or nil for a single
// duration.
func (p Pattern) Segments() []int {
	if !p.sequence {
		return nil
	}
	out := make([]int, len(p.segments))
	copy(out, p.segments)
	return out
}

// Total is the expected wall-clock time of the whole pattern: the single
// duration, or the sum of all segments, active and pause phases alike.
func (p Pattern) Total() time.Duration {
	ms := p.millis
	if p.sequence {
		ms = lo.Sum(p.segments)
	}
	return time.Duration(ms) * time.Millisecond
}

// IsZero reports whether the pattern requests no vibration time at all.
func (p Pattern) IsZero() bool { return p.Total() == 0 }

// String renders the pattern the way a caller would write it.
func (p Pattern) String() string {
	if !p.sequence {
		return fmt.Sprintf("%dms", p.millis)
	}
	parts := lo.Map(p.segments, func(ms int, _ int) string {
		return strconv.Itoa(ms)
	})
	return "[" + strings.Join(parts, ",") + "]"
}

// Parse reads a pattern from its CLI form: a bare integer ("300"), an
// integer with a ms suffix ("300ms"), or a comma-separated sequence
// ("100,50,200").
func Parse(s string) (Pattern, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Pattern{}, fmt.Errorf("empty pattern")
	}
	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		segs := make([]int, 0, len(parts))
		for _, part := range parts {
			ms, err := parseMillis(part)
			if err != nil {
				return Pattern{}, fmt.Errorf("invalid pattern segment %q: %w", strings.TrimSpace(part), err)
			}
			segs = append(segs, ms)
		}
		return Sequence(segs...), nil
	}
	ms, err := parseMillis(s)
	if err != nil {
		return Pattern{}, fmt.Errorf("invalid pattern %q: %w", s, err)
	}
	return Millis(ms), nil
}

func parseMillis(s string) (int, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "ms"))
	ms, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if ms < 0 {
		return 0, fmt.Errorf("negative duration")
	}
	return ms, nil
}
