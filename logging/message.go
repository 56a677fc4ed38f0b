package logging

import "svcore/diag"

// LogMessage is anything the logger can queue and eventually display: either
// immediately (errors) or batched until the end of elaboration (warnings).
// Grounded on the teacher's own (unnamed, implicit) LogMessage interface
// that CompileMessage/ConfigError both satisfy.
type LogMessage interface {
	isError() bool
	display()
}

// CompileMessage wraps one elaboration diagnostic with the file path and
// resolved line/column position needed to render it, resolved once in
// LogDiagnostic rather than carried unresolved through the Diagnostic
// itself (Diagnostic only carries the opaque source.Location).
type CompileMessage struct {
	Diag     diag.Diagnostic
	FilePath string
	Position *Position
}

// Position is the resolved line/column range logging renders, a type of
// this package's own rather than source.TextPosition.
type Position struct {
	StartLn, StartCol int
	EndLn, EndCol     int
}

func (cm *CompileMessage) isError() bool { return cm.Diag.IsError() }

// ConfigError is an error in project configuration (sv.toml), reported
// outside of any source file. Grounded on the teacher's own ConfigError.
type ConfigError struct {
	Kind    string
	Message string
}

func (ce *ConfigError) isError() bool { return true }
