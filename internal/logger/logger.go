// Package logger is a lightweight leveled logging facility over the standard
// log package. Verbosity is set once at startup (typically from config or a
// flag); call sites use Errorf/Infof/Debugf/Tracef and never check levels.
package logger

import (
	"log"
	"os"
)

// Level represents a logging verbosity level. Higher is chattier.
type Level int

const (
	Error Level = iota
	Info
	Debug
	Trace
)

// current holds the active verbosity level; only messages with
// level <= current are logged.
var current Level = Info

func init() {
	// Logs go to stderr so normal program output stays clean for pipelines.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}

// SetVerbosity sets the global logging verbosity.
func SetVerbosity(v int) {
	current = Level(v)
}

func logf(l Level, prefix, format string, args ...any) {
	if current >= l {
		log.Printf(prefix+format, args...)
	}
}

// Errorf logs a critical failure.
func Errorf(format string, args ...any) {
	logf(Error, "[ERROR] ", format, args...)
}

// Infof logs a major lifecycle event.
func Infof(format string, args ...any) {
	logf(Info, "[INFO]  ", format, args...)
}

// Debugf logs diagnostic detail.
func Debugf(format string, args ...any) {
	logf(Debug, "[DEBUG] ", format, args...)
}

// Tracef logs very fine-grained execution detail.
func Tracef(format string, args ...any) {
	logf(Trace, "[TRACE] ", format, args...)
}
