package symtab

import "svcore/syntax"

// Definition is a module/interface/program declaration's entry in the
// compilation's definition table. It is deliberately not a Scope member:
// looking up a definition by name and instantiating it are two different
// operations, so a definition lives in its own compilation-wide map keyed
// by (name, lexical scope), grounded on Compilation::addDefinition.
type Definition struct {
	Name         string
	Which        syntax.Kind // ModuleDeclaration | InterfaceDeclaration | ProgramDeclaration
	Syntax       *syntax.ModuleDeclarationNode
	LexicalScope *Scope

	DefaultNetType   syntax.NetTypeKeyword
	UnconnectedDrive syntax.UnconnectedDrive
	TimeScale        *syntax.TimeScale

	// Scope is this definition's own member scope (ports, internal
	// declarations), distinct from LexicalScope, which is where the
	// declaration textually appears.
	Scope *Scope
}

// AllParametersHaveDefaults reports whether every one of the definition's
// port parameters has a default value — the condition the root-symbol
// construction uses to decide whether a module can be automatically
// instantiated as a top-level module.
func (d *Definition) AllParametersHaveDefaults() bool {
	for _, p := range d.Syntax.Parameters {
		if !p.HasDefault {
			return false
		}
	}
	return true
}
