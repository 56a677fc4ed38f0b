// Package source defines the external collaborators the compilation core
// consumes but does not implement: source text identity, positions, and the
// minimal source-manager contract spec.md places out of scope.
package source

import "fmt"

// TextPosition is a half-open span of lines/columns inside a single file.
// Columns count tabs as four columns, matching chai's logging.TextPosition.
type TextPosition struct {
	StartLn, StartCol int
	EndLn, EndCol     int
}

func (p TextPosition) String() string {
	return fmt.Sprintf("%d:%d", p.StartLn, p.StartCol)
}

// Span returns the position that borders two positions occurring in order.
func Span(start, end TextPosition) TextPosition {
	return TextPosition{StartLn: start.StartLn, StartCol: start.StartCol, EndLn: end.EndLn, EndCol: end.EndCol}
}

// Manager is the external source-manager collaborator (spec.md §6):
// identity is by pointer/interface value, it can sort diagnostics by
// location, and it can register a literal string as a source buffer for the
// preprocessor/parser collaborator.
type Manager interface {
	// AssignText registers text as an anonymous buffer and returns its Buffer
	// handle, for use by the preprocessor/parser collaborator.
	AssignText(text string) Buffer

	// FilePath returns the display path of a buffer, used when rendering
	// diagnostics.
	FilePath(buf Buffer) string

	// Less orders two locations for deterministic diagnostic sort.
	Less(a, b Location) bool
}

// Buffer is an opaque handle to a registered chunk of source text.
type Buffer struct {
	id uint32
}

// NewBuffer wraps a raw buffer id. Only source-manager implementations
// should call this.
func NewBuffer(id uint32) Buffer { return Buffer{id: id} }

// Location identifies a single point within a managed buffer.
type Location struct {
	Buf    Buffer
	Offset int
}

// Assert panics with msg if cond is false. Reserved for the small set of
// conditions spec.md §7 calls "usage errors" — caller bugs, not diagnostics.
func Assert(cond bool, msg string) {
	if !cond {
		panic("assertion failed: " + msg)
	}
}

// Unreachable panics; used where a switch over a closed kind set has no
// default case left to take.
func Unreachable(where string) {
	panic("unreachable: " + where)
}
