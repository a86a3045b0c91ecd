// Package log is a small leveled wrapper over the standard logger.
package log

import (
	"io"
	stdlog "log"
	"os"
	"strings"
	"sync/atomic"
)

type Level int32

const (
	Debug Level = iota
	Info
	Warn
	Error
)

// EnvLevel overrides the configured level when set.
const EnvLevel = "TASKTRACK_LOG_LEVEL"

var current atomic.Int32

func init() {
	current.Store(int32(Info))
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

func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug
	case "info", "":
		return Info
	case "warn", "warning":
		return Warn
	case "err", "error":
		return Error
	default:
		return Info
	}
}

func SetLevel(l Level) { current.Store(int32(l)) }

func CurrentLevel() Level { return Level(current.Load()) }

// SetOutput redirects log lines, mostly for tests.
func SetOutput(w io.Writer) { stdlog.SetOutput(w) }

func enabled(l Level) bool { return CurrentLevel() <= l }

func Debugf(format string, v ...any) {
	if enabled(Debug) {
		stdlog.Printf("[DEBUG] "+format, v...)
	}
}

func Infof(format string, v ...any) {
	if enabled(Info) {
		stdlog.Printf("[INFO] "+format, v...)
	}
}

func Warnf(format string, v ...any) {
	if enabled(Warn) {
		stdlog.Printf("[WARN] "+format, v...)
	}
}

func Errorf(format string, v ...any) {
	if enabled(Error) {
		stdlog.Printf("[ERROR] "+format, v...)
	}
}

// InitFromEnvFallback sets the level from the environment, falling back to
// level when the variable is unset.
func InitFromEnvFallback(level string) {
	if env := os.Getenv(EnvLevel); env != "" {
		level = env
	}
	SetLevel(ParseLevel(level))
}
