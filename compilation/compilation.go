// Package compilation implements the compilation manager: the owner of
// every symbol/scope arena, the built-in type/net-type registry, the
// definition and package namespaces, the diagnostic store, and the
// finalization state machine that turns a set of syntax trees into a root
// scope with top-level modules instantiated. Grounded on the Compilation
// class in the collaborator this core's domain description names as its
// compiler prototype.
package compilation

import (
	"errors"
	"sort"

	"svcore/diag"
	"svcore/source"
	"svcore/symtab"
	"svcore/syntax"
	"svcore/types"
)

// Options configures error-limit and default-timing behavior, decoded from
// a project's configuration file.
type Options struct {
	ErrorLimit int

	// DefaultTimeScale overrides the registry's built-in 1ns/1ns default
	// when its UnitMagnitude is non-zero (a zero UnitMagnitude means "use
	// the built-in default"), matching a project's
	// `timeunit`/`timeprecision` setting.
	DefaultTimeScale syntax.TimeScale
}

// finalState is the Fresh -> Finalizing -> Finalized progression that
// guards GetRoot against re-entrancy and guards AddSyntaxTree against
// running after finalization, matching the `finalizing`/`finalized` bools
// on the original Compilation.
type finalState uint8

const (
	stateFresh finalState = iota
	stateFinalizing
	stateFinalized
)

// definitionKey identifies one entry of the definition table: a name
// together with the lexical scope it was declared in (with compilation
// units re-keyed to the root scope so sibling units can see each other's
// top-level declarations).
type definitionKey struct {
	name  string
	scope *symtab.Scope
}

// Compilation owns every long-lived structure an elaboration needs and
// implements symtab.Host so Scope can call back into it without symtab
// importing this package.
type Compilation struct {
	options Options

	symbols symtab.Arena[symtab.Symbol]
	scopes  symtab.Arena[symtab.Scope]

	Types *types.Registry

	root              *symtab.Symbol
	rootScope         *symtab.Scope
	compilationUnits  []*symtab.Symbol
	syntaxTrees       []*syntax.Tree
	sourceManager     source.Manager

	definitions          map[definitionKey]*symtab.Definition
	globalInstantiations map[string]struct{}
	packages             map[string]*symtab.Symbol

	instanceCounts map[*symtab.Definition]int

	systemSubroutines map[string]*SystemSubroutine
	systemMethods     map[systemMethodKey]*SystemSubroutine

	diags *diag.Store

	state finalState

	cachedParseValid bool
	cachedParse      []diag.Diagnostic
	cachedAllValid   bool
	cachedAll        []diag.Diagnostic
}

// New builds a fresh Compilation with every built-in singleton constructed,
// matching the original constructor's eager built-in setup.
func New(options Options, sourceManager source.Manager) *Compilation {
	c := &Compilation{
		options:              options,
		Types:                types.NewRegistry(),
		sourceManager:        sourceManager,
		definitions:          make(map[definitionKey]*symtab.Definition),
		globalInstantiations: make(map[string]struct{}),
		packages:             make(map[string]*symtab.Symbol),
		instanceCounts:       make(map[*symtab.Definition]int),
		systemSubroutines:    make(map[string]*SystemSubroutine),
		systemMethods:        make(map[systemMethodKey]*SystemSubroutine),
	}
	c.diags = diag.NewStore(sourceManager)

	if options.DefaultTimeScale.UnitMagnitude != 0 {
		c.Types.DefaultTimeScale = options.DefaultTimeScale
	}

	c.root = c.NewSymbol()
	c.root.Kind = symtab.KindRoot
	c.root.Name = ""
	c.rootScope = c.NewScope()
	c.rootScope.Init(c, c.root)
	c.root.SetOwnedScope(c.rootScope)

	registerBuiltins(c)

	return c
}

// errAlreadyFinalized is returned by AddSyntaxTree once GetRoot has run.
var errAlreadyFinalized = errors.New("compilation: already finalized")

// errSourceManagerMismatch is returned when syntax trees from different
// source managers are added to the same compilation.
var errSourceManagerMismatch = errors.New("compilation: all syntax trees must share a source manager")

// AddSyntaxTree absorbs one parsed tree: it creates a CompilationUnit
// symbol, materializes the tree's members into it, records the tree's
// per-declaration metadata (default net type, unconnected drive, time
// scale) and global-instantiation names, and invalidates the cached parse
// diagnostics list. Grounded on Compilation::addSyntaxTree.
func (c *Compilation) AddSyntaxTree(tree *syntax.Tree) error {
	if c.state == stateFinalized {
		return errAlreadyFinalized
	}
	if c.sourceManager == nil {
		c.sourceManager = tree.Source
	} else if tree.Source != nil && tree.Source != c.sourceManager {
		return errSourceManagerMismatch
	}

	unit := c.NewSymbol()
	unit.Kind = symtab.KindCompilationUnit
	unitScope := c.NewScope()
	unitScope.Init(c, unit)
	unit.SetOwnedScope(unitScope)
	c.rootScope.AddMember(unit)
	c.compilationUnits = append(c.compilationUnits, unit)

	for _, name := range tree.GlobalInstantiations {
		c.globalInstantiations[name] = struct{}{}
	}

	// Register the tree before materializing its members: AddMembers
	// recurses into AddDefinition, which looks tree.Metadata up by scanning
	// c.syntaxTrees for the declaration it was just handed. If tree isn't
	// registered yet, every declaration in it would find no metadata.
	c.syntaxTrees = append(c.syntaxTrees, tree)
	c.cachedParseValid = false

	if root, ok := tree.Root.(*syntax.CompilationUnitNode); ok {
		for _, m := range root.Members {
			unitScope.AddMembers(m)
		}
	} else if tree.Root != nil {
		unitScope.AddMembers(tree.Root)
	}

	return nil
}

// GetRoot finalizes the compilation: it computes which definitions are
// eligible to be automatically instantiated as top-level modules (module
// kind, declared directly in a compilation unit, not instantiated
// anywhere, every parameter defaulted), sorts them by name for determinism,
// instantiates them, and freezes the compilation against further
// AddSyntaxTree calls. Grounded on Compilation::getRoot.
func (c *Compilation) GetRoot() *symtab.Symbol {
	if c.state == stateFinalized {
		return c.root
	}
	if c.state == stateFinalizing {
		panic("compilation: GetRoot called re-entrantly")
	}
	c.state = stateFinalizing
	defer func() {
		if c.state == stateFinalizing {
			c.state = stateFresh
		}
	}()

	var topDefs []*symtab.Definition
	for key, def := range c.definitions {
		if key.scope != c.rootScope {
			continue
		}
		if def.Which != syntax.ModuleDeclaration {
			continue
		}
		if _, global := c.globalInstantiations[def.Name]; global {
			continue
		}
		if !def.AllParametersHaveDefaults() {
			continue
		}
		topDefs = append(topDefs, def)
	}

	sort.Slice(topDefs, func(i, j int) bool { return topDefs[i].Name < topDefs[j].Name })

	for _, def := range topDefs {
		inst := c.instantiateTop(def)
		c.rootScope.AddMember(inst)
	}

	c.state = stateFinalized
	return c.root
}

// instantiateTop builds a top-level Instance symbol for def, counting it
// for InstanceCount bookkeeping. Actual port/parameter binding is the
// elaborator's job beyond what this core performs; the instance's own
// scope is a fresh copy of the definition's member list.
func (c *Compilation) instantiateTop(def *symtab.Definition) *symtab.Symbol {
	inst := c.NewSymbol()
	inst.Kind = symtab.KindInstance
	inst.Name = def.Name
	inst.InstanceDef = def
	c.instanceCounts[def]++
	c.elaborateInstanceBody(inst, def)
	return inst
}

// elaborateInstanceBody gives inst its own scope, independently materialized
// from def's syntax rather than pointing every instance of def at one
// shared scope. Each instance getting its own scope (with inst itself, not
// a synthetic definition-owner, as that scope's ThisSym) is what lets
// diag.getInstanceOrDef land on a real per-instance symbol instead of
// always resolving to the shared definition — the mechanism
// diag.Store.Render's representative-instance/CoalesceCount branch needs to
// ever fire for distinct instances of the same module.
func (c *Compilation) elaborateInstanceBody(inst *symtab.Symbol, def *symtab.Definition) {
	if def == nil || def.Syntax == nil {
		return
	}
	instScope := c.NewScope()
	instScope.Init(c, inst)
	inst.SetOwnedScope(instScope)
	for _, m := range def.Syntax.Members {
		instScope.AddMembers(m)
	}
}

// InstanceCount implements diag.instanceCounter.
func (c *Compilation) InstanceCount(def *symtab.Definition) int {
	return c.instanceCounts[def]
}

// AddDefinition registers a module/interface/program declaration as a
// Definition, re-keying compilation-unit-scoped declarations to the root
// scope so sibling compilation units can see them. Grounded on
// Compilation::addDefinition / createDefinition.
func (c *Compilation) AddDefinition(decl *syntax.ModuleDeclarationNode, lexicalScope *symtab.Scope) {
	targetScope := lexicalScope
	if lexicalScope.ThisSym().Kind == symtab.KindCompilationUnit {
		targetScope = c.rootScope
	}

	def := &symtab.Definition{
		Name:         decl.Name,
		Which:        decl.Which,
		Syntax:       decl,
		LexicalScope: lexicalScope,
	}

	var meta *syntax.TreeMetadata
	for _, t := range c.syntaxTrees {
		if m, ok := t.Metadata[decl]; ok {
			meta = m
			break
		}
	}
	if meta != nil {
		def.DefaultNetType = meta.DefaultNetType
		def.UnconnectedDrive = meta.UnconnectedDrive
		def.TimeScale = meta.TimeScale
	}

	def.Scope = c.NewScope()
	owner := c.memberScopeOwner(def, lexicalScope)
	owner.SetOwnedScope(def.Scope)
	def.Scope.Init(c, owner)
	for _, m := range decl.Members {
		def.Scope.AddMembers(m)
	}

	c.definitions[definitionKey{name: decl.Name, scope: targetScope}] = def
}

// memberScopeOwner builds the symbol a definition's own member scope is
// attached to. It is not inserted into any scope's member list — a
// definition is reachable only through the definition table, matching how
// the original never adds a DefinitionSymbol as a Scope member — but it
// still needs a lexical parent so that Lookup climbing out of a module body
// (and diag's ancestor walks) reach whatever textually encloses it, instead
// of dead-ending at an unrooted scope.
func (c *Compilation) memberScopeOwner(def *symtab.Definition, lexicalScope *symtab.Scope) *symtab.Symbol {
	owner := c.NewSymbol()
	owner.Kind = symtab.KindDefinition
	owner.Name = def.Name
	owner.SetLexicalParent(lexicalScope)
	return owner
}

// GetDefinition looks up a definition by name, climbing lexical scopes up
// to the root the way Compilation::getDefinition does.
func (c *Compilation) GetDefinition(name string, scope *symtab.Scope) *symtab.Definition {
	search := scope
	for search != nil {
		if def, ok := c.definitions[definitionKey{name: name, scope: search}]; ok {
			return def
		}
		if search.ThisSym().Kind == symtab.KindRoot {
			return nil
		}
		owner := search.ThisSym()
		lex := owner.Scope()
		if lex == nil {
			return nil
		}
		search = lex
	}
	return nil
}

// AddPackage registers pkg in the compilation-wide package namespace.
func (c *Compilation) AddPackage(pkg *symtab.Symbol) { c.packages[pkg.Name] = pkg }

// GetPackage looks up a package by name.
func (c *Compilation) GetPackage(name string) *symtab.Symbol { return c.packages[name] }

// CreateScriptScope creates a standalone CompilationUnit symbol added
// directly as a root member, with no syntax attached — used for
// interactive/one-off expression evaluation contexts. Grounded verbatim on
// Compilation::createScriptScope.
func (c *Compilation) CreateScriptScope() *symtab.Symbol {
	unit := c.NewSymbol()
	unit.Kind = symtab.KindCompilationUnit
	unitScope := c.NewScope()
	unitScope.Init(c, unit)
	unit.SetOwnedScope(unitScope)
	c.rootScope.AddMember(unit)
	return unit
}

// NewSymbol implements symtab.Host.
func (c *Compilation) NewSymbol() *symtab.Symbol { return c.symbols.New() }

// NewScope implements symtab.Host.
func (c *Compilation) NewScope() *symtab.Scope { return c.scopes.New() }

// Diagnostics exposes the diagnostic store for callers building the
// elaboration visitor (package walk) and for the logging package.
func (c *Compilation) Diagnostics() *diag.Store { return c.diags }

// GetParseDiagnostics concatenates every syntax tree's parse diagnostics,
// sorting them by location if a source manager is present. Grounded on
// Compilation::getParseDiagnostics.
func (c *Compilation) GetParseDiagnostics() []diag.Diagnostic {
	if c.cachedParseValid {
		return c.cachedParse
	}
	var out []diag.Diagnostic
	for _, tree := range c.syntaxTrees {
		for _, d := range tree.Diagnostics {
			out = append(out, diag.Diagnostic{
				Code:     diag.Code(d.Code),
				Severity: diag.Error,
				Location: d.Location,
				Message:  d.Message,
			})
		}
	}
	if c.sourceManager != nil {
		sort.SliceStable(out, func(i, j int) bool {
			return c.sourceManager.Less(out[i].Location, out[j].Location)
		})
	}
	c.cachedParse = out
	c.cachedParseValid = true
	return c.cachedParse
}

// GetSemanticDiagnostics renders the diagnostic store's coalesced result.
// The visitor that forces lazy elaboration across the whole symbol tree
// before rendering lives in package walk; callers run it before calling
// this method, matching how the original's getSemanticDiagnostics runs its
// DiagnosticVisitor over getRoot() first.
func (c *Compilation) GetSemanticDiagnostics() []diag.Diagnostic {
	return c.diags.Render(c)
}

// GetAllDiagnostics concatenates parse and semantic diagnostics, sorted by
// location if a source manager is present. Grounded on
// Compilation::getAllDiagnostics.
func (c *Compilation) GetAllDiagnostics() []diag.Diagnostic {
	if c.cachedAllValid {
		return c.cachedAll
	}
	out := append([]diag.Diagnostic{}, c.GetParseDiagnostics()...)
	out = append(out, c.GetSemanticDiagnostics()...)
	if c.sourceManager != nil {
		sort.SliceStable(out, func(i, j int) bool {
			return c.sourceManager.Less(out[i].Location, out[j].Location)
		})
	}
	c.cachedAll = out
	c.cachedAllValid = true
	return c.cachedAll
}

// ErrorLimit returns the configured error limit, or the maximum possible
// value when unset, matching `options.errorLimit == 0 ? UINT32_MAX : ...`.
func (c *Compilation) ErrorLimit() int {
	if c.options.ErrorLimit <= 0 {
		return int(^uint(0) >> 1)
	}
	return c.options.ErrorLimit
}
