package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrall/hapt/internal/config"
)

// testGlobals creates a Globals struct with captured stdout/stderr
func testGlobals(format string) (*Globals, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &Globals{
		Format: format,
		Quiet:  false,
		Stdout: stdout,
		Stderr: stderr,
		Config: config.Default(),
	}, stdout, stderr
}

// fakeVibrator lays out a writable timed-output directory and points
// globals at it.
func fakeVibrator(t *testing.T, globals *Globals) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "enable"), []byte("0"), 0o644))
	globals.DeviceDir = dir
	return dir
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	dec := json.NewDecoder(buf)
	for dec.More() {
		var m map[string]interface{}
		require.NoError(t, dec.Decode(&m))
		out = append(out, m)
	}
	return out
}

// --- Buzz Command Tests ---

func TestBuzzCmd_Run(t *testing.T) {
	t.Run("fires a preset and waits for idle", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		fakeVibrator(t, globals)

		cmd := &BuzzCmd{Pattern: "double", Timeout: "5s"}
		require.NoError(t, cmd.Run(globals))

		events := decodeLines(t, stdout)
		require.NotEmpty(t, events)
		assert.Equal(t, "ready", events[0]["type"])
		assert.Equal(t, true, events[0]["supported"])
		last := events[len(events)-1]
		assert.Equal(t, "done", last["type"])
		assert.Equal(t, "completed", last["reason"])
	})

	t.Run("reports state transitions", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		fakeVibrator(t, globals)

		cmd := &BuzzCmd{Pattern: "40", Timeout: "5s"}
		require.NoError(t, cmd.Run(globals))

		var states []bool
		for _, e := range decodeLines(t, stdout) {
			if e["type"] == "state" {
				states = append(states, e["active"].(bool))
			}
		}
		assert.Equal(t, []bool{true, false}, states)
	})

	t.Run("no-wait returns immediately", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		fakeVibrator(t, globals)

		cmd := &BuzzCmd{Pattern: "5000", NoWait: true, Timeout: "5s"}
		require.NoError(t, cmd.Run(globals))

		events := decodeLines(t, stdout)
		last := events[len(events)-1]
		assert.Equal(t, "done", last["type"])
		assert.Equal(t, "no_wait", last["reason"])
	})

	t.Run("missing device is not an error", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		globals.DeviceDir = t.TempDir() // no enable attribute

		cmd := &BuzzCmd{Pattern: "success", Timeout: "5s"}
		require.NoError(t, cmd.Run(globals))

		events := decodeLines(t, stdout)
		assert.Equal(t, "ready", events[0]["type"])
		assert.Equal(t, false, events[0]["supported"])
		assert.Equal(t, "unsupported", events[len(events)-1]["reason"])
	})

	t.Run("rejects an unparseable pattern", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		fakeVibrator(t, globals)

		cmd := &BuzzCmd{Pattern: "not-a-pattern", Timeout: "5s"}
		err := cmd.Run(globals)
		require.Error(t, err)

		events := decodeLines(t, stdout)
		require.Len(t, events, 1)
		assert.Equal(t, "error", events[0]["type"])
		assert.Equal(t, "BAD_PATTERN", events[0]["code"])
		assert.NotEmpty(t, events[0]["hint"])
	})

	t.Run("rejects an invalid timeout", func(t *testing.T) {
		globals, _, stderr := testGlobals("text")
		fakeVibrator(t, globals)

		cmd := &BuzzCmd{Pattern: "tap", Timeout: "never"}
		err := cmd.Run(globals)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "INVALID_TIMEOUT")
	})

	t.Run("text format reports the pattern", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		fakeVibrator(t, globals)

		cmd := &BuzzCmd{Pattern: "success", Timeout: "5s"}
		require.NoError(t, cmd.Run(globals))
		assert.Contains(t, stdout.String(), "[100,50,200]")
	})
}

// --- Stop Command Tests ---

func TestStopCmd_Run(t *testing.T) {
	t.Run("writes the cancel sentinel", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		dir := fakeVibrator(t, globals)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "enable"), []byte("500"), 0o644))

		cmd := &StopCmd{}
		require.NoError(t, cmd.Run(globals))

		data, err := os.ReadFile(filepath.Join(dir, "enable"))
		require.NoError(t, err)
		assert.Equal(t, "0", string(data))

		events := decodeLines(t, stdout)
		last := events[len(events)-1]
		assert.Equal(t, "stopped", last["reason"])
	})

	t.Run("missing device is not an error", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		globals.DeviceDir = t.TempDir()

		cmd := &StopCmd{}
		require.NoError(t, cmd.Run(globals))
		assert.Contains(t, stdout.String(), "nothing to do")
	})
}

// --- Patterns Command Tests ---

func TestPatternsCmd_Run(t *testing.T) {
	t.Run("lists every preset once in ndjson", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")

		cmd := &PatternsCmd{}
		require.NoError(t, cmd.Run(globals))

		events := decodeLines(t, stdout)
		var names []string
		for _, e := range events {
			require.Equal(t, "pattern", e["type"])
			names = append(names, e["name"].(string))
		}
		assert.Equal(t, []string{
			"double", "error", "heartbeat", "notification",
			"sos", "success", "tap", "warning",
		}, names)
	})

	t.Run("carries exact segment values", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")

		cmd := &PatternsCmd{}
		require.NoError(t, cmd.Run(globals))

		for _, e := range decodeLines(t, stdout) {
			if e["name"] == "error" {
				segs := e["segments"].([]interface{})
				require.Len(t, segs, 3)
				assert.EqualValues(t, 300, segs[0])
				assert.EqualValues(t, 100, segs[1])
				assert.EqualValues(t, 500, segs[2])
			}
		}
	})

	t.Run("renders a table in text format", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")

		cmd := &PatternsCmd{}
		require.NoError(t, cmd.Run(globals))

		out := stdout.String()
		assert.Contains(t, out, "success")
		assert.Contains(t, out, "[100,50,200]")
		assert.Contains(t, out, "350ms")
	})
}

// --- Config Command Tests ---

func TestConfigShowCmd_Run(t *testing.T) {
	t.Run("outputs config in text format", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		cmd := &ConfigShowCmd{}

		err := cmd.Run(globals)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "Current Configuration:")
		assert.Contains(t, output, "format:")
		assert.Contains(t, output, "Defaults:")
		assert.Contains(t, output, "device_dir:")
	})

	t.Run("outputs config in NDJSON format", func(t *testing.T) {
		globals, stdout, _ := testGlobals("ndjson")
		cmd := &ConfigShowCmd{}

		err := cmd.Run(globals)
		require.NoError(t, err)

		var result map[string]interface{}
		err = json.Unmarshal(stdout.Bytes(), &result)
		require.NoError(t, err)

		assert.Equal(t, "config", result["type"])
		assert.Contains(t, result, "format")
		assert.Contains(t, result, "defaults")
	})
}

func TestConfigPathCmd_Run(t *testing.T) {
	t.Run("outputs path info in text format when no config", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		cmd := &ConfigPathCmd{}

		err := cmd.Run(globals)
		require.NoError(t, err)

		output := stdout.String()
		assert.True(t, strings.Contains(output, "Config file:") || strings.Contains(output, "No configuration file found"))
	})
}

func TestConfigGenerateCmd_Run(t *testing.T) {
	t.Run("outputs sample config YAML", func(t *testing.T) {
		globals, stdout, _ := testGlobals("text")
		cmd := &ConfigGenerateCmd{}

		err := cmd.Run(globals)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "# hapt configuration file")
		assert.Contains(t, output, "duration_ms: 200")
		assert.Contains(t, output, "device_dir: /sys/class/timed_output/vibrator")
	})
}

// --- Globals Tests ---

func TestNewGlobalsWithConfig(t *testing.T) {
	t.Run("falls back to config device dir", func(t *testing.T) {
		cfg := config.Default()
		cfg.Defaults.DeviceDir = "/tmp/vib"
		g := NewGlobalsWithConfig(&CLI{Format: "text"}, cfg)
		assert.Equal(t, "/tmp/vib", g.DeviceDir)
	})

	t.Run("flag overrides config device dir", func(t *testing.T) {
		cfg := config.Default()
		g := NewGlobalsWithConfig(&CLI{Format: "text", Device: "/dev/custom"}, cfg)
		assert.Equal(t, "/dev/custom", g.DeviceDir)
	})

	t.Run("nil config gets defaults", func(t *testing.T) {
		g := NewGlobalsWithConfig(&CLI{Format: "ndjson"}, nil)
		require.NotNil(t, g.Config)
		assert.Equal(t, "ndjson", g.Format)
	})
}

func TestResolveFormat(t *testing.T) {
	assert.Equal(t, "text", resolveFormat("text"))
	assert.Equal(t, "ndjson", resolveFormat("ndjson"))
	// auto resolves to one of the two depending on the test terminal
	resolved := resolveFormat("auto")
	assert.Contains(t, []string{"text", "ndjson"}, resolved)
}

func TestOutputErrorCommon(t *testing.T) {
	t.Run("ndjson goes to stdout", func(t *testing.T) {
		globals, stdout, stderr := testGlobals("ndjson")
		err := outputErrorCommon(globals, "SOME_CODE", "it broke", "try again")
		require.Error(t, err)
		assert.Empty(t, stderr.String())

		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &m))
		assert.Equal(t, "SOME_CODE", m["code"])
	})

	t.Run("text goes to stderr with hint", func(t *testing.T) {
		globals, stdout, stderr := testGlobals("text")
		err := outputErrorCommon(globals, "SOME_CODE", "it broke", "try again")
		require.Error(t, err)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "Error [SOME_CODE]: it broke")
		assert.Contains(t, stderr.String(), "hint: try again")
	})
}
