// Package logx is a small leveled wrapper over the standard library's
// "log" package — the corpus-wide norm (ek-roj's now-removed consensus
// and transport code logged via bracket-tagged stdlib log.Printf calls
// like "[INFO] ...", "[WARN] ..."; no structured-logging library
// appears anywhere in the retrieval pack). Adds one thing the original
// C++ didn't need: a per-frame correlation id, so every line emitted
// while processing frame N can be grepped out of a long run.
package logx

import (
	"log"
	"os"

	"github.com/google/uuid"
)

// Logger tags every line with a bracketed level and the current
// frame's correlation id.
type Logger struct {
	base    *log.Logger
	frameID string
}

// New builds a Logger writing to stderr (stdout is reserved for the
// frame protocol, spec §6).
func New() *Logger {
	return &Logger{base: log.New(os.Stderr, "", log.LstdFlags)}
}

// BeginFrame mints a fresh correlation id for the frame about to run.
func (l *Logger) BeginFrame(frame int) {
	l.frameID = uuid.NewString()
	l.base.Printf("[INFO] frame=%d cid=%s begin", frame, l.frameID)
}

func (l *Logger) Infof(format string, args ...any) {
	l.printf("INFO", format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.printf("WARN", format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.printf("ERROR", format, args...)
}

func (l *Logger) Debugf(format string, args ...any) {
	l.printf("DEBUG", format, args...)
}

func (l *Logger) printf(level, format string, args ...any) {
	l.base.Printf("[%s] cid=%s "+format, append([]any{level, l.frameID}, args...)...)
}
