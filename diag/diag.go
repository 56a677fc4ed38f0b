// Package diag implements the diagnostic store: coalescing by (code,
// location), generate-block suppression, and the two-phase render used to
// produce the final semantic diagnostic list. Grounded on addDiag and
// getSemanticDiagnostics in the collaborator this core's domain description
// names as its compiler prototype.
package diag

import (
	"sort"

	"svcore/source"
	"svcore/symtab"
)

// Code is a diagnostic's identity, independent of where it occurred.
type Code uint32

// Severity distinguishes errors (which count against the error limit) from
// warnings and notes.
type Severity uint8

const (
	Note Severity = iota
	Warning
	Error
)

// Diagnostic is one reported problem, anchored to the symbol whose
// elaboration produced it (for suppression/coalescing) and a source
// location (for sorting and display).
type Diagnostic struct {
	Code     Code
	Severity Severity
	Location source.Location
	Symbol   *symtab.Symbol
	Message  string
	Args     []any

	// CoalesceCount is set by Store.Render to the number of instances the
	// diagnostic occurred in, when a representative instance is named
	// because fewer than all instances of its definition carry it.
	CoalesceCount int
}

func (d Diagnostic) IsError() bool { return d.Severity == Error }

type diagGroup struct {
	list         []Diagnostic
	defIndex     int // index into list of the definition-scoped occurrence, or -1
}

// Store accumulates diagnostics during elaboration and renders the
// deduplicated result on demand. One Store is owned per compilation.
type Store struct {
	manager source.Manager

	groups map[groupKey][]int // key -> indices into order, in insertion order
	order  []groupKey
	byKey  map[groupKey]*diagGroup

	numErrors int

	cachedSemantic []Diagnostic
	semanticValid  bool
}

type groupKey struct {
	code Code
	loc  source.Location
}

// NewStore creates an empty diagnostic store. manager may be nil, in which
// case rendered diagnostics are not sorted by location.
func NewStore(manager source.Manager) *Store {
	return &Store{
		manager: manager,
		byKey:   make(map[groupKey]*diagGroup),
	}
}

// getInstanceOrDef walks up from symbol to find the nearest Instance or
// Definition ancestor, matching getInstanceOrDef's walk.
func getInstanceOrDef(sym *symtab.Symbol) *symtab.Symbol {
	for sym != nil {
		if sym.Kind == symtab.KindInstance || sym.Kind == symtab.KindDefinition {
			return sym
		}
		scope := sym.Scope()
		if scope == nil {
			return nil
		}
		sym = scope.ThisSym()
	}
	return nil
}

// isSuppressed reports whether diag.Symbol (or any ancestor) is an
// uninstantiated generate block, matching addDiag's isSuppressed lambda.
func isSuppressed(sym *symtab.Symbol) bool {
	for sym != nil {
		if sym.Kind == symtab.KindGenerateBlock && !sym.IsInstantiated {
			return true
		}
		scope := sym.Scope()
		if scope == nil {
			return false
		}
		sym = scope.ThisSym()
	}
	return false
}

// isInsideDefinition reports whether sym's ancestor chain includes a
// Definition, matching getSemanticDiagnostics' isInsideDef lambda.
func isInsideDefinition(sym *symtab.Symbol) bool {
	for sym != nil {
		if sym.Kind == symtab.KindDefinition {
			return true
		}
		scope := sym.Scope()
		if scope == nil {
			return false
		}
		sym = scope.ThisSym()
	}
	return false
}

// AddDiag records a diagnostic, suppressing it if it originated inside an
// uninstantiated generate block and coalescing it with any prior diagnostic
// at the same (code, location). Grounded verbatim on Compilation::addDiag.
func (s *Store) AddDiag(d Diagnostic) {
	if isSuppressed(d.Symbol) {
		return
	}
	s.semanticValid = false

	inst := getInstanceOrDef(d.Symbol)
	key := groupKey{code: d.Code, loc: d.Location}

	if g, ok := s.byKey[key]; ok {
		g.list = append(g.list, d)
		if inst != nil && inst.Kind == symtab.KindDefinition {
			g.defIndex = len(g.list) - 1
		}
		return
	}

	if d.IsError() {
		s.numErrors++
	}

	g := &diagGroup{list: []Diagnostic{d}, defIndex: -1}
	if inst != nil && inst.Kind == symtab.KindDefinition {
		g.defIndex = 0
	}
	s.byKey[key] = g
	s.order = append(s.order, key)
}

// NumErrors returns the number of distinct error-severity diagnostic
// groups recorded so far, the quantity an error limit is checked against.
func (s *Store) NumErrors() int { return s.numErrors }

// instanceCounter supplies, for a given definition, how many instances of
// it exist — needed to decide whether a coalesced diagnostic occurred in
// every instance (in which case hierarchy info is omitted) or only some
// (in which case one representative instance is named).
type instanceCounter interface {
	InstanceCount(def *symtab.Definition) int
}

// Render produces the deduplicated diagnostic list, picking one diagnostic
// per (code, location) group: the definition-scoped occurrence if one
// exists, else a representative instance occurrence annotated with a
// coalesce count, else simply the first recorded occurrence. Grounded on
// Compilation::getSemanticDiagnostics's post-visit reduction.
func (s *Store) Render(counts instanceCounter) []Diagnostic {
	if s.semanticValid {
		return s.cachedSemantic
	}

	var results []Diagnostic
	for _, key := range s.order {
		g := s.byKey[key]
		if g.defIndex >= 0 {
			results = append(results, g.list[g.defIndex])
			continue
		}

		var found *Diagnostic
		var foundInst *symtab.Symbol
		count := 0
		for i := range g.list {
			d := &g.list[i]
			sym := getInstanceOrDef(d.Symbol)
			if sym == nil || sym.Scope() == nil {
				continue
			}
			if isInsideDefinition(sym) {
				continue
			}
			count++
			parent := sym.Scope().ThisSym()
			if parent.Kind != symtab.KindRoot && parent.Kind != symtab.KindCompilationUnit {
				found = d
				foundInst = sym
			}
		}

		if found != nil && foundInst != nil && foundInst.InstanceDef != nil &&
			counts != nil && counts.InstanceCount(foundInst.InstanceDef) > count {
			out := *found
			out.Symbol = getInstanceOrDef(foundInst)
			out.CoalesceCount = count
			results = append(results, out)
		} else {
			results = append(results, g.list[0])
		}
	}

	if s.manager != nil {
		sort.SliceStable(results, func(i, j int) bool {
			return s.manager.Less(results[i].Location, results[j].Location)
		})
	}

	s.cachedSemantic = results
	s.semanticValid = true
	return results
}
