package logging

import (
	"svcore/diag"
	"svcore/source"
)

// logger is a global reference to a shared Logger (created/initialized at
// startup, but separated for general usage)
var logger Logger

// Initialize initializes the global logger with the provided log level
func Initialize(loglevelname string) {
	var loglevel int
	switch loglevelname {
	case "silent":
		loglevel = LogLevelSilent
	case "error":
		loglevel = LogLevelError
	case "warning":
		loglevel = LogLevelWarning
	// everything else (including invalid log levels) should default to verbose
	default:
		loglevel = LogLevelVerbose
	}

	logger = newLogger(loglevel)
}

// ShouldProceed indicates whether or not the log has encountered any errors.
func ShouldProceed() bool {
	return logger.errorCount == 0
}

// LocationResolver translates a diagnostic's opaque source.Location into a
// display file path and a printable line/column range, the way the
// teacher's Scanner/LogContext pair did for its own source positions. The
// elaboration core doesn't own a source manager itself (spec.md names it as
// an external collaborator), so the caller supplies one at log time.
type LocationResolver interface {
	Resolve(loc source.Location) (filePath string, pos *Position, ok bool)
}

// -----------------------------------------------------------------------------
// NOTE: All log functions will only display if the appropriate log level is
// set.  Most log functions will simply fail silently if below their appropriate
// log level.

// LogDiagnostic logs one elaboration diagnostic (error or warning),
// resolving its location through resolver if one is supplied.
func LogDiagnostic(resolver LocationResolver, d diag.Diagnostic) {
	var filePath string
	var pos *Position
	if resolver != nil {
		filePath, pos, _ = resolver.Resolve(d.Location)
	}

	logger.handleMsg(&CompileMessage{Diag: d, FilePath: filePath, Position: pos})
}

// LogConfigError logs an error related to project configuration
func LogConfigError(kind, message string) {
	logger.handleMsg(&ConfigError{Kind: kind, Message: message})
}

// LogFatal logs a fatal error that was not expected: ie. the elaborator did
// something it wasn't supposed to.
func LogFatal(message string) {
	displayFatalError(message)
}

// -----------------------------------------------------------------------------
// Below are the "aesthetic" logging functions that only run at LogLevelVerbose.
// They report on the progress of elaboration rather than its correctness.

// LogCompileHeader logs the pre-elaboration header: target and version.
func LogCompileHeader(target string) {
	if logger.LogLevel == LogLevelVerbose {
		displayCompileHeader(target)
	}
}

// LogBeginPhase logs the beginning of an elaboration phase.
func LogBeginPhase(phase string) {
	if logger.LogLevel == LogLevelVerbose {
		displayBeginPhase(phase)
	}
}

// LogEndPhase logs the end of the current elaboration phase.
func LogEndPhase(success bool) {
	if logger.LogLevel == LogLevelVerbose {
		displayEndPhase(success)
	}
}

// LogCompilationFinished logs the closing summary: all queued warnings,
// then (at verbose level) the pass/fail line with error and warning counts.
func LogCompilationFinished() {
	if logger.LogLevel >= LogLevelWarning {
		for _, warning := range logger.warnings {
			warning.display()
		}
	}

	if logger.LogLevel == LogLevelVerbose {
		displayCompilationFinished(ShouldProceed(), logger.errorCount, len(logger.warnings))
	}
}
