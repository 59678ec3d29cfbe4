package cli

import "go.uber.org/zap"

// debugLogger wraps zap for verbose debug output with device context.
type debugLogger struct {
	sugared   *zap.SugaredLogger
	deviceDir string
}

func newDebugLogger(globals *Globals) *debugLogger {
	if globals == nil || !globals.Verbose {
		return &debugLogger{}
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.Encoding = "json"
	logger, _ := cfg.Build()
	return &debugLogger{
		sugared:   logger.Sugar(),
		deviceDir: globals.DeviceDir,
	}
}

func (l *debugLogger) Debug(format string, args ...interface{}) {
	if l.sugared == nil {
		return
	}
	l.sugared.With("device_dir", l.deviceDir).Debugf(format, args...)
}

// newSinkLogger builds the observability sink handed to the session
// controller. Driver failures surface here and nowhere else.
func newSinkLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
