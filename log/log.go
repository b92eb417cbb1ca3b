// Package log is a small leveled logger used to trace the codec.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	BOLD = "\033[1m"
	DIM  = "\033[2m"

	FG_BLACK = "\033[30m"
	FG_WHITE = "\033[97m"

	BG_DGRAY  = "\033[100m"
	BG_RED    = "\033[41m"
	BG_GREEN  = "\033[42m"
	BG_YELLOW = "\033[43m"

	RESET = "\033[0m"
)

// log level constants
const (
	DEBUG = iota
	INFO
	WARNING
	ERROR
)

var (
	WithColors = true
	DateFormat = "2006-01-02 15:04:05"

	mutex            = &sync.RWMutex{}
	output io.Writer = os.Stderr
	minLevel         = INFO
	labels           = map[int]string{
		DEBUG:   "DBG",
		INFO:    "INF",
		WARNING: "WAR",
		ERROR:   "ERR",
	}
	colors = map[int]string{
		DEBUG:   DIM + FG_BLACK + BG_DGRAY,
		INFO:    FG_WHITE + BG_GREEN,
		WARNING: FG_WHITE + BG_YELLOW,
		ERROR:   FG_WHITE + BG_RED,
	}
)

// Wrap wraps a text with effects
func Wrap(s, effect string) string {
	if WithColors {
		s = effect + s + RESET
	}
	return s
}

// SetOutput redirects the log lines to w.
func SetOutput(w io.Writer) {
	mutex.Lock()
	defer mutex.Unlock()
	output = w
}

// SetLogLevel sets the log level
func SetLogLevel(newLevel int) {
	mutex.Lock()
	defer mutex.Unlock()
	minLevel = newLevel
}

// GetLogLevel returns the current log level configured.
func GetLogLevel() int {
	mutex.RLock()
	defer mutex.RUnlock()
	return minLevel
}

// Enabled reports whether a line of the given level would be written.
// Callers use it to skip formatting expensive arguments.
func Enabled(level int) bool {
	return level >= GetLogLevel()
}

// Log prints out a text with the given color and format
func Log(level int, format string, args ...interface{}) {
	mutex.Lock()
	defer mutex.Unlock()
	if level < minLevel {
		return
	}

	what := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(what, "\n") {
		what += "\n"
	}
	when := time.Now().UTC().Format(DateFormat)

	l := Wrap("[%s]", DIM)
	r := Wrap(" %s ", colors[level]) + " %s"
	fmt.Fprintf(output, l+" "+r, when, labels[level], what)
}

// Debug is the log level for debugging purposes
func Debug(format string, args ...interface{}) {
	Log(DEBUG, format, args...)
}

// Info is the log level for informative messages
func Info(format string, args ...interface{}) {
	Log(INFO, format, args...)
}

// Warning is the log level for non-critical errors
func Warning(format string, args ...interface{}) {
	Log(WARNING, format, args...)
}

// Error is the log level for errors that should be corrected
func Error(format string, args ...interface{}) {
	Log(ERROR, format, args...)
}
