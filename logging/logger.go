package logging

import (
	"sync"
)

// Logger is a type that is responsible for storing and logging output from the
// engine as necessary
type Logger struct {
	errorCount int // Total encountered errors
	LogLevel   int

	// warnings is a list of all warnings to be logged when the engine finishes
	warnings []LogMessage

	// rootPath is used to shorten display paths in messages
	rootPath string

	// m is the mutex used to synchonize the printing of messages: loading can
	// happen on any engine thread
	m *sync.Mutex
}

// Enumeration of the different log levels
const (
	LogLevelSilent  = iota // no output at all
	LogLevelError          // only errors and the closing notification (success/fail)
	LogLevelWarning        // errors, warnings, and closing message
	LogLevelVerbose        // errors, warnings, version, load progress and closing message (DEFAULT)
)

// newLogger creates a new logger struct
func newLogger(rootPath string, loglevel int) Logger {
	return Logger{
		rootPath: rootPath,
		LogLevel: loglevel,
		m:        &sync.Mutex{},
	}
}

// handleMsg prompts to logger to process a message -- this message could be
// coming in concurrently and so we need to make sure we are not printing multiple
// things at the same time so we there is a mutex in place for this function
func (l *Logger) handleMsg(lm LogMessage) {
	l.m.Lock()
	defer l.m.Unlock()

	if lm.isError() {
		l.errorCount++

		if l.LogLevel > LogLevelSilent {
			displayEndPhase(false)
			lm.display()
		}
	} else if l.LogLevel >= LogLevelWarning {
		l.warnings = append(l.warnings, lm)
	}
}

// flushWarnings displays and clears all deferred warnings.
func (l *Logger) flushWarnings() int {
	l.m.Lock()
	defer l.m.Unlock()

	count := len(l.warnings)
	for _, w := range l.warnings {
		w.display()
	}

	l.warnings = nil
	return count
}
