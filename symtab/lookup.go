package symtab

import "math"

// RefPoint identifies a point within a scope's member order that a lookup
// is not allowed to see past — the "declared before use" rule. Grounded on
// LookupRefPoint in Scope.cpp: comparison is by index only, and a ref point
// carries the scope it was taken in purely as documentation (two ref points
// are only ever compared within the same scope, during the direct-name-map
// check).
type RefPoint struct {
	inScope *Scope
	index   uint32
}

// MaxRefPoint permits seeing every member of a scope, for lookups whose
// name kind doesn't care about declaration order (Callable lookups). A
// zero-valued Result's ReferencePoint has index 0, like MinRefPoint.
var MaxRefPoint = RefPoint{index: math.MaxUint32}

// MinRefPoint permits seeing no member of a scope; unused directly but kept
// symmetrical with the original's LookupRefPoint::min.
var MinRefPoint = RefPoint{index: 0}

// Before returns the ref point that sees everything up to but not including
// sym.
func Before(sym *Symbol) RefPoint {
	return RefPoint{inScope: sym.parentScope, index: uint32(sym.indexInScope)}
}

// After returns the ref point that sees everything up to and including sym.
func After(sym *Symbol) RefPoint {
	return RefPoint{inScope: sym.parentScope, index: uint32(sym.indexInScope) + 1}
}

// StartOfScope returns the ref point that sees nothing in scope.
func StartOfScope(scope *Scope) RefPoint { return RefPoint{inScope: scope, index: 0} }

// EndOfScope returns the ref point that sees everything in scope.
func EndOfScope(scope *Scope) RefPoint { return RefPoint{inScope: scope, index: math.MaxUint32} }

// Less orders two ref points by index, matching LookupRefPoint::operator<.
func (p RefPoint) Less(other RefPoint) bool { return p.index < other.index }

// NameKind selects how strictly a lookup enforces declared-before-use.
// Grounded on LookupNameKind.
type NameKind uint8

const (
	// Local is an unqualified name lookup from within a scope: subject to
	// declared-before-use.
	Local NameKind = iota
	// Scoped is a `pkg::name`-qualified lookup: also subject to
	// declared-before-use, but additionally falls back to the
	// compilation's package namespace at the root scope.
	Scoped
	// Callable is a subroutine-call lookup: declaration order does not
	// matter, since a function can call another declared later in the
	// same scope.
	Callable
)

// ResultKind classifies how a Lookup call resolved.
type ResultKind uint8

const (
	NotFound ResultKind = iota
	Found
	AmbiguousImport
)

// Result accumulates one Lookup call's outcome, reused across the scope
// chain the way the original reuses a single LookupResult by reference.
type Result struct {
	NameKind       NameKind
	ReferencePoint RefPoint
	ResultKind     ResultKind
	Symbol         *Symbol
	WasImported    bool
	Candidates     []*Symbol // every wildcard-import hit; more than one means AmbiguousImport
}

// Clear resets a Result to its zero state with the given name kind and
// starting reference point, mirroring LookupResult::clear plus the
// constructor arguments the original passes at each call site.
func (r *Result) Clear(nameKind NameKind, refPoint RefPoint) {
	r.NameKind = nameKind
	r.ReferencePoint = refPoint
	r.ResultKind = NotFound
	r.WasImported = false
	r.Symbol = nil
	r.Candidates = nil
}

// referencePointMatters reports whether declaration order should gate this
// lookup's direct-name-map hit.
func (r *Result) referencePointMatters() bool {
	return r.NameKind != Callable
}

func (r *Result) setSymbol(sym *Symbol, wasImported bool) {
	r.Symbol = sym
	r.WasImported = wasImported
	r.ResultKind = Found
}

func (r *Result) addPotentialImport(sym *Symbol) {
	if len(r.Candidates) > 0 {
		r.ResultKind = AmbiguousImport
	}
	r.Candidates = append(r.Candidates, sym)
}
