// Package logs records editor events as JSON lines. Logging is off unless
// TERMEDIT_LOG or TERMEDIT_LOG_FILE is set, so a session leaves no trace on
// disk by default.
package logs

import (
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger writes one JSON object per event with "time" and "event" keys
// followed by the event's fields. A nil or disabled Logger drops events.
type Logger struct {
	z *zap.Logger
	f *os.File
}

// NewFromEnv returns a logger if TERMEDIT_LOG is set to a truthy value
// or if TERMEDIT_LOG_FILE is provided. Otherwise it returns a disabled logger.
// When enabled and no file is specified, it writes to ./termedit.log.
func NewFromEnv() *Logger {
	lf := os.Getenv("TERMEDIT_LOG_FILE")
	enabled := lf != ""
	if v := os.Getenv("TERMEDIT_LOG"); v != "" && v != "0" && v != "false" {
		enabled = true
	}
	if !enabled {
		return &Logger{}
	}
	if lf == "" {
		lf = filepath.Join(".", "termedit.log")
	}
	l, err := Open(lf)
	if err != nil {
		// The terminal belongs to the editor; there is nowhere to report this.
		return &Logger{}
	}
	return l
}

// Open appends events to the file at path, creating it if needed.
func Open(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &Logger{z: zap.New(newCore(zapcore.AddSync(f))), f: f}, nil
}

// New writes events to w. The caller owns w.
func New(w zapcore.WriteSyncer) *Logger {
	return &Logger{z: zap.New(newCore(w))}
}

func newCore(w zapcore.WriteSyncer) zapcore.Core {
	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "time",
		MessageKey:     "event",
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		LineEnding:     zapcore.DefaultLineEnding,
	})
	return zapcore.NewCore(enc, w, zapcore.DebugLevel)
}

// Enabled reports whether events are written anywhere.
func (l *Logger) Enabled() bool {
	return l != nil && l.z != nil
}

// Close flushes and closes the underlying file if enabled.
func (l *Logger) Close() {
	if !l.Enabled() {
		return
	}
	_ = l.z.Sync()
	if l.f != nil {
		_ = l.f.Close()
	}
	l.z = nil
}

// Event writes a JSON line with the event name and fields.
// Common fields: key, rune, modifiers, action, cursor, lines, file, error.
func (l *Logger) Event(event string, fields map[string]any) {
	if !l.Enabled() {
		return
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	zf := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		zf = append(zf, zap.Any(k, fields[k]))
	}
	l.z.Info(event, zf...)
}
