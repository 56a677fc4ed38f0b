package symtab

import "svcore/syntax"

// Host is the callback surface a Scope needs from its owning compilation
// manager, grounded on the methods Scope.cpp calls on its `compilation`
// field (addDefinition, addPackage, emplace<T>, trackImport, queryImports).
// It exists so symtab never imports the compilation package: compilation
// imports symtab and implements Host, breaking what would otherwise be an
// import cycle between "the scope tree" and "the thing that owns it".
type Host interface {
	// AddDefinition registers a module/interface/program declaration as a
	// Definition reachable by name from the given lexical scope.
	AddDefinition(decl *syntax.ModuleDeclarationNode, lexicalScope *Scope)

	// AddPackage registers a fully-built package symbol in the
	// compilation-wide package namespace.
	AddPackage(pkg *Symbol)

	// GetPackage looks up a package by name in the compilation-wide
	// namespace; returns nil if none exists (yet).
	GetPackage(name string) *Symbol

	// CreateSubroutine builds a Subroutine symbol from a function/task
	// declaration.
	CreateSubroutine(decl *syntax.FunctionDeclarationNode, scope *Scope) *Symbol

	// CreateVariables builds one Variable symbol per name in a data
	// declaration.
	CreateVariables(decl *syntax.DataDeclarationNode, scope *Scope) []*Symbol

	// CreateParameters builds one Parameter symbol per entry in a
	// parameter declaration statement.
	CreateParameters(decl *syntax.ParameterDeclarationStatementNode, scope *Scope) []*Symbol

	// CreateInstances builds one Instance symbol per instance name in a
	// hierarchy instantiation, resolving decl.ModuleName against the
	// definition table.
	CreateInstances(decl *syntax.HierarchyInstantiationNode, scope *Scope) []*Symbol

	// CreateGenerateBlock evaluates an if-generate's already-computed
	// condition and builds the taken branch's GenerateBlock symbol, or nil
	// if neither branch is taken.
	CreateGenerateBlock(decl *syntax.IfGenerateNode, scope *Scope) *Symbol

	// CreateGenerateBlockArray builds a GenerateBlockArray symbol that owns
	// one GenerateBlock instance per loop iteration.
	CreateGenerateBlockArray(decl *syntax.LoopGenerateNode, scope *Scope) *Symbol

	// CreateProceduralBlock builds a ProceduralBlock symbol of the given
	// kind.
	CreateProceduralBlock(kind syntax.Kind, loc syntax.Node) *Symbol

	// NewSymbol allocates a zero-valued Symbol from the compilation's
	// symbol arena.
	NewSymbol() *Symbol

	// NewScope allocates a zero-valued Scope from the compilation's scope
	// arena.
	NewScope() *Scope
}
