package logging

// logger is a global reference to a shared Logger (created/initialized with the
// engine, but separated for general usage).  It is silent until initialized.
var logger = newLogger("", LogLevelSilent)

// Initialize initializes the global logger with the provided log level
func Initialize(rootPath string, loglevelname string) {
	logger = newLogger(rootPath, ParseLogLevel(loglevelname))
}

// ParseLogLevel converts a log level name into a log level
func ParseLogLevel(loglevelname string) int {
	switch loglevelname {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarning
	// everything else (including invalid log levels) should default to verbose
	default:
		return LogLevelVerbose
	}
}

// Level returns the current log level
func Level() int {
	return logger.LogLevel
}

// ShouldProceed indicates whether or not the log module has encountered an errors.
func ShouldProceed() bool {
	return ErrorCount() == 0
}

// ErrorCount returns the number of errors logged so far
func ErrorCount() int {
	logger.m.Lock()
	defer logger.m.Unlock()

	return logger.errorCount
}

// -----------------------------------------------------------------------------
// NOTE: All log functions will only display if the appropriate log level is
// set.  Most log functions will simply fail silently if below their appropriate
// log level.

// LogRuntimeError logs an error raised while loading types or resolving names
func LogRuntimeError(origin, message string, kind int) {
	logger.handleMsg(&RuntimeMessage{
		Message: message,
		Kind:    kind,
		Origin:  origin,
		IsError: true,
	})
}

// LogRuntimeWarning logs a non-fatal problem found while loading or resolving
func LogRuntimeWarning(origin, message string, kind int) {
	logger.handleMsg(&RuntimeMessage{
		Message: message,
		Kind:    kind,
		Origin:  origin,
		IsError: false,
	})
}

// LogConfigError logs an error related to the engine or module configuration
func LogConfigError(kind, message string) {
	logger.handleMsg(&ConfigError{Kind: kind, Message: message})
}

// LogConfigWarning logs a warning related to engine or module configuration
func LogConfigWarning(kind, message string) {
	logger.handleMsg(&ConfigWarning{Kind: kind, Message: message})
}

// Trace displays a progress line when the logger is verbose
func Trace(tag, message string) {
	if logger.LogLevel < LogLevelVerbose {
		return
	}

	logger.m.Lock()
	defer logger.m.Unlock()

	PrintInfoMessage(tag, message)
}

// BeginPhase starts a spinner for a named phase of work
func BeginPhase(phase string) {
	if logger.LogLevel == LogLevelVerbose {
		displayBeginPhase(phase)
	}
}

// EndPhase stops the current phase spinner
func EndPhase() {
	if logger.LogLevel == LogLevelVerbose {
		displayEndPhase(ShouldProceed())
	}
}

// Finish displays all deferred warnings and the closing message
func Finish() bool {
	warningCount := logger.flushWarnings()
	errorCount := ErrorCount()

	if logger.LogLevel > LogLevelSilent {
		displayFinished(errorCount == 0, errorCount, warningCount)
	}

	return errorCount == 0
}
