// Package debuglog writes structured JSON-lines debug events to a file.
package debuglog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// DefaultPath is the fixed path for debug logs.
const DefaultPath = "hoarding-debug.log"

// Logger logs overlay lifecycle events, keystrokes, and errors.
type Logger struct {
	mu      sync.Mutex
	out     io.WriteCloser
	enabled bool
	seq     int
}

// Global logger instance. Nil and disabled loggers drop every event.
var std *Logger

// Init enables logging to path when enabled is true.
func Init(enabled bool, path string) error {
	if !enabled {
		std = &Logger{enabled: false}
		return nil
	}
	if path == "" {
		path = DefaultPath
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating debug log: %w", err)
	}

	std = New(f)
	std.log("DEBUG_START", map[string]any{
		"log_file": path,
		"time":     time.Now().Format(time.RFC3339),
	})
	return nil
}

// New returns an enabled logger writing to out. Mostly useful in tests.
func New(out io.WriteCloser) *Logger {
	return &Logger{out: out, enabled: true}
}

// SetDefault replaces the global logger and returns the previous one.
func SetDefault(l *Logger) *Logger {
	prev := std
	std = l
	return prev
}

// Close flushes the end marker and closes the log file.
func Close() {
	if std != nil && std.out != nil {
		std.log("DEBUG_END", map[string]any{
			"time": time.Now().Format(time.RFC3339),
		})
		_ = std.out.Close()
	}
}

// Enabled reports whether events are being recorded.
func Enabled() bool {
	return std != nil && std.enabled
}

func (l *Logger) log(event string, data map[string]any) {
	if l == nil || !l.enabled || l.out == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	entry := map[string]any{
		"seq":   l.seq,
		"ts":    time.Now().Format("15:04:05.000"),
		"event": event,
	}
	for k, v := range data {
		entry[k] = v
	}

	b, _ := json.Marshal(entry)
	_, _ = fmt.Fprintf(l.out, "%s\n", b)
}

// Event records an arbitrary event with fields.
func Event(name string, fields map[string]any) {
	if !Enabled() {
		return
	}
	std.log(name, fields)
}

// LogShow logs an overlay being shown.
func LogShow(title string, elements []string, hasCallback bool) {
	if !Enabled() {
		return
	}
	std.log("OVERLAY_SHOW", map[string]any{
		"title":        truncate(title, 40),
		"elements":     elements,
		"has_callback": hasCallback,
	})
}

// LogRemove logs an overlay being removed.
func LogRemove(wasShown bool) {
	if !Enabled() {
		return
	}
	std.log("OVERLAY_REMOVE", map[string]any{
		"was_shown": wasShown,
	})
}

// LogTap logs a button activation.
func LogTap(source string, fired bool) {
	if !Enabled() {
		return
	}
	std.log("BUTTON_TAP", map[string]any{
		"source": source,
		"fired":  fired,
	})
}

// LogKeyPress logs a key press event.
func LogKeyPress(key string) {
	if !Enabled() {
		return
	}
	std.log("KEY_PRESS", map[string]any{
		"key": key,
	})
}

// LogError logs an error.
func LogError(context string, err error) {
	if !Enabled() || err == nil {
		return
	}
	std.log("ERROR", map[string]any{
		"context": context,
		"error":   err.Error(),
	})
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
