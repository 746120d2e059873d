// Package logger es un logger con niveles y salida text o json, sin deps
// externas. Suficiente para un servicio de este tamaño.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

type Logger struct {
	mu    *sync.Mutex
	out   io.Writer
	level Level
	json  bool
	base  map[string]any
}

func New(out io.Writer, level Level, jsonFormat bool) *Logger {
	if out == nil {
		out = os.Stdout
	}
	return &Logger{
		mu:    &sync.Mutex{},
		out:   out,
		level: level,
		json:  jsonFormat,
		base:  map[string]any{},
	}
}

// NewFromEnv lee LOG_LEVEL (debug|info|warn|error), LOG_FORMAT (text|json)
// y APP_NAME.
func NewFromEnv() *Logger {
	l := New(os.Stdout, ParseLevel(os.Getenv("LOG_LEVEL")),
		strings.EqualFold(strings.TrimSpace(os.Getenv("LOG_FORMAT")), "json"))
	if app := strings.TrimSpace(os.Getenv("APP_NAME")); app != "" {
		l.base["app"] = app
	}
	return l
}

// With devuelve un logger que agrega fields a cada entrada.
// Comparte salida y nivel con el original.
func (l *Logger) With(fields map[string]any) *Logger {
	if len(fields) == 0 {
		return l
	}

	merged := make(map[string]any, len(l.base)+len(fields))
	for k, v := range l.base {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	return &Logger{
		mu:    l.mu,
		out:   l.out,
		level: l.level,
		json:  l.json,
		base:  merged,
	}
}

func (l *Logger) Debug(msg string, fields map[string]any) { l.log(Debug, msg, fields) }
func (l *Logger) Info(msg string, fields map[string]any)  { l.log(Info, msg, fields) }
func (l *Logger) Warn(msg string, fields map[string]any)  { l.log(Warn, msg, fields) }
func (l *Logger) Error(msg string, fields map[string]any) { l.log(Error, msg, fields) }

func (l *Logger) log(lvl Level, msg string, fields map[string]any) {
	if lvl < l.level {
		return
	}

	entry := map[string]any{
		"ts":    time.Now().Format(time.RFC3339Nano),
		"level": lvl.String(),
		"msg":   msg,
	}
	for k, v := range l.base {
		entry[k] = v
	}
	for k, v := range fields {
		entry[k] = v
	}

	var line string
	if l.json {
		b, _ := json.Marshal(entry)
		line = string(b)
	} else {
		line = formatText(entry)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintln(l.out, line)
}

// formatText ordena las keys para salida estable (útil en tests/logs).
func formatText(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, m[k]))
	}
	return strings.Join(parts, " ")
}
