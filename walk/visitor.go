// Package walk implements the diagnostic-forcing AST visitor: the pass that
// touches every symbol reachable from the root exactly once so that lazily
// resolved fields are realized and every diagnostic they would produce has
// been recorded, before the diagnostic store is asked to render its final
// list. Grounded on DiagnosticVisitor in the collaborator this core's
// domain description names as its compiler prototype.
package walk

import (
	"svcore/compilation"
	"svcore/diag"
	"svcore/source"
	"svcore/symtab"
)

// diagCode values this visitor itself can produce, as opposed to ones
// recorded earlier during member materialization.
const (
	CodeUnresolvedWildcardImport diag.Code = 1001
	CodeUnresolvedExplicitImport diag.Code = 1002
)

// Visitor walks the symbol tree rooted at a compilation's root symbol,
// resolving every wildcard/explicit import it finds, matching
// DiagnosticVisitor's handle overloads. It does not count instances: the
// compilation counts each Instance as it creates it (see
// compilation.Compilation.InstanceCount). Resolved imports are cached on
// the Symbol itself (see symtab.Symbol.ResolvedImport), so a second Visit
// does not resolve them again; an unresolved import is looked up and
// reported again on every Visit, and the repeat coalesces into the same
// (code, location) group, so it adds no new error group.
type Visitor struct {
	comp         *compilation.Compilation
	errorLimit   int
	inDefinition bool
	inInstance   bool
}

// NewVisitor builds a visitor bound to comp, stopping early once comp's
// diagnostic store records more errors than errorLimit (matching the
// original's numErrors > errorLimit short-circuit in every handler).
func NewVisitor(comp *compilation.Compilation, errorLimit int) *Visitor {
	return &Visitor{comp: comp, errorLimit: errorLimit}
}

// Visit force-resolves every symbol reachable from root. Call it once
// after Compilation.GetRoot before asking the diagnostic store to render
// its final list, the way getSemanticDiagnostics runs DiagnosticVisitor
// over getRoot() first.
func (v *Visitor) Visit(root *symtab.Symbol) {
	v.visitSymbol(root)
}

func (v *Visitor) overLimit() bool {
	return v.comp.Diagnostics().NumErrors() > v.errorLimit
}

// visitSymbol dispatches on kind, matching the original's handle overload
// set: most kinds fall through to visitDefault (recurse into any owned
// scope), a handful do extra work first.
func (v *Visitor) visitSymbol(sym *symtab.Symbol) {
	if sym == nil || v.overLimit() {
		return
	}

	switch sym.Kind {
	case symtab.KindWildcardImport:
		v.resolveWildcardImport(sym)
	case symtab.KindExplicitImport:
		v.resolveExplicitImport(sym)
	case symtab.KindDefinition:
		saved := v.inDefinition
		v.inDefinition = true
		v.visitScopeMembers(sym)
		v.inDefinition = saved
		return
	case symtab.KindInstance:
		// Every instance owns its own scope, independently elaborated from
		// its definition's members (compilation.elaborateInstanceBody), so
		// visiting it here forces imports and other lazily-resolved fields
		// declared inside that specific instance's body, attributing any
		// diagnostic to this instance rather than to a scope shared with
		// its siblings. v.inDefinition/v.inInstance both guard against
		// expanding further: this core elaborates one level of top-level
		// instantiation, not a full instance tree, so an instance reached
		// from inside a definition's own body or another instance's body is
		// not itself descended into.
		if v.inDefinition || v.inInstance {
			return
		}
		v.inInstance = true
		v.visitScopeMembers(sym)
		v.inInstance = false
		return
	case symtab.KindGenerateBlock:
		if !sym.IsInstantiated {
			return
		}
	}

	v.visitScopeMembers(sym)
}

// visitScopeMembers recurses into whatever scope sym owns, if any.
func (v *Visitor) visitScopeMembers(sym *symtab.Symbol) {
	scope := sym.AsScope()
	if scope == nil {
		return
	}
	for _, member := range scope.Members() {
		v.visitSymbol(member)
	}
}

// resolveWildcardImport looks up the imported package by name, caching the
// result on the symbol and reporting a diagnostic if the package doesn't
// exist. Matches handle(WildcardImportSymbol)'s symbol.getPackage() call.
func (v *Visitor) resolveWildcardImport(sym *symtab.Symbol) {
	if sym.ResolvedImport() != nil {
		return
	}
	pkg := v.comp.GetPackage(sym.PackageName)
	if pkg == nil {
		v.comp.Diagnostics().AddDiag(diag.Diagnostic{
			Code:     CodeUnresolvedWildcardImport,
			Severity: diag.Error,
			Location: source.Location{},
			Symbol:   sym,
			Message:  "unknown package '" + sym.PackageName + "' in wildcard import",
		})
		return
	}
	sym.SetResolvedImport(pkg)
}

// resolveExplicitImport looks up the imported name within the referenced
// package, caching the result and reporting a diagnostic if either the
// package or the name inside it doesn't exist. Matches
// handle(ExplicitImportSymbol)'s symbol.importedSymbol() call.
func (v *Visitor) resolveExplicitImport(sym *symtab.Symbol) {
	if sym.ResolvedExplicitImport() != nil {
		return
	}
	pkg := v.comp.GetPackage(sym.ImportPackageName)
	if pkg == nil {
		v.comp.Diagnostics().AddDiag(diag.Diagnostic{
			Code:     CodeUnresolvedExplicitImport,
			Severity: diag.Error,
			Location: source.Location{},
			Symbol:   sym,
			Message:  "unknown package '" + sym.ImportPackageName + "' in import",
		})
		return
	}
	target := pkg.AsScope().LookupDirect(sym.ImportedName)
	if target == nil {
		v.comp.Diagnostics().AddDiag(diag.Diagnostic{
			Code:     CodeUnresolvedExplicitImport,
			Severity: diag.Error,
			Location: source.Location{},
			Symbol:   sym,
			Message:  "'" + sym.ImportedName + "' is not a member of package '" + sym.ImportPackageName + "'",
		})
		return
	}
	sym.SetResolvedExplicitImport(target)
}
