package pattern

import (
	"sort"

	"github.com/samber/lo"
)

// Preset patterns consumers can reference by name. Values are fixed;
// downstream tooling matches on them.
var presets = map[string]Pattern{
	"tap":          Millis(100),
	"double":       Sequence(100, 30, 100),
	"success":      Sequence(100, 50, 200),
	"warning":      Sequence(200, 100, 200),
	"error":        Sequence(300, 100, 500),
	"notification": Sequence(200, 100, 200, 100, 200),
	"heartbeat":    Sequence(100, 30, 100, 400),
	"sos": Sequence(
		100, 30, 100, 30, 100, 200, // S
		200, 30, 200, 30, 200, 200, // O
		100, 30, 100, 30, 100, // S
	),
}

// Named looks up a preset pattern by name.
func Named(name string) (Pattern, bool) {
	p, ok := presets[name]
	return p, ok
}

// Names returns all preset names, sorted.
func Names() []string {
	names := lo.Keys(presets)
	sort.Strings(names)
	return names
}
