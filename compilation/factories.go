package compilation

import (
	"svcore/symtab"
	"svcore/syntax"
)

// resolveType returns the KindEnumType symbol a TypeSyntax should trigger a
// transparent splice for, and true, when the type is an inline enum; for
// any other type it returns nil and false. The *types.Type itself comes
// from typeFromSyntax.
func (c *Compilation) resolveType(scope *symtab.Scope, t syntax.TypeSyntax) (*symtab.Symbol, bool) {
	if t.Enum == nil {
		return nil, false
	}
	// An inline `enum {...}` type: build (or find) its EnumType symbol so
	// its values can be spliced in as transparent members of whatever
	// declaration uses it.
	enumSym := c.buildEnumType(scope, t.Enum)
	return enumSym, true
}

// buildEnumType materializes an EnumType symbol and its EnumValue members
// from inline enum syntax. It is not itself inserted into scope — only
// the declaration that references it is; the enum type lives purely to
// anchor the transparent splice.
func (c *Compilation) buildEnumType(scope *symtab.Scope, syn *syntax.EnumTypeSyntax) *symtab.Symbol {
	base := c.typeFromSyntax(syn.BaseType)
	enumSym := c.NewSymbol()
	enumSym.Kind = symtab.KindEnumType
	enumSym.EnumBase = base
	for _, name := range syn.Values {
		v := c.NewSymbol()
		v.Kind = symtab.KindEnumValue
		v.Name = name
		v.EnumValueType = base
		enumSym.EnumValues = append(enumSym.EnumValues, v)
	}
	return enumSym
}

// CreateSubroutine builds a Subroutine symbol for a function/task
// declaration. Grounded on SubroutineSymbol::fromSyntax's shape, minus the
// statement-body binding: no body is bound, here or in package walk.
func (c *Compilation) CreateSubroutine(decl *syntax.FunctionDeclarationNode, scope *symtab.Scope) *symtab.Symbol {
	sub := c.NewSymbol()
	sub.Kind = symtab.KindSubroutine
	sub.Name = decl.Name
	sub.Loc = decl.Pos()
	sub.ReturnType = c.typeFromSyntax(decl.ReturnType)
	if enumSym, ok := c.resolveType(scope, decl.ReturnType); ok {
		sub.EnumTypeSym = enumSym
	}

	subScope := c.NewScope()
	subScope.Init(c, sub)
	sub.SetOwnedScope(subScope)
	for _, arg := range decl.Arguments {
		a := c.NewSymbol()
		a.Kind = symtab.KindFormalArgument
		a.Name = arg.Name
		a.Loc = arg.Pos
		a.VarType = c.typeFromSyntax(arg.Type)
		if enumSym, ok := c.resolveType(scope, arg.Type); ok {
			a.EnumTypeSym = enumSym
		}
		subScope.AddMember(a)
	}
	return sub
}

// CreateVariables builds one Variable symbol per name in a data
// declaration. Grounded on VariableSymbol::fromSyntax.
func (c *Compilation) CreateVariables(decl *syntax.DataDeclarationNode, scope *symtab.Scope) []*symtab.Symbol {
	enumSym, hasEnum := c.resolveType(scope, decl.Type)
	varType := c.typeFromSyntax(decl.Type)

	out := make([]*symtab.Symbol, 0, len(decl.Names))
	for _, name := range decl.Names {
		v := c.NewSymbol()
		v.Kind = symtab.KindVariable
		v.Name = name
		v.Loc = decl.Pos()
		v.VarType = varType
		if hasEnum {
			v.EnumTypeSym = enumSym
		}
		out = append(out, v)
	}
	return out
}

// CreateParameters builds one Parameter symbol per entry in a parameter
// declaration statement. Grounded on ParameterSymbol::fromSyntax.
func (c *Compilation) CreateParameters(decl *syntax.ParameterDeclarationStatementNode, scope *symtab.Scope) []*symtab.Symbol {
	out := make([]*symtab.Symbol, 0, len(decl.Parameters))
	for _, p := range decl.Parameters {
		sym := c.NewSymbol()
		sym.Kind = symtab.KindParameter
		sym.Name = p.Name
		sym.Loc = p.Pos
		sym.HasDefault = p.HasDefault
		sym.VarType = c.typeFromSyntax(p.Type)
		if enumSym, ok := c.resolveType(scope, p.Type); ok {
			sym.EnumTypeSym = enumSym
		}
		out = append(out, sym)
	}
	return out
}

// CreateInstances builds one Instance symbol per instance name in a
// hierarchy instantiation, resolving the referenced module against the
// definition table visible from scope. An unresolved module name still
// yields one Instance symbol per name, with a nil InstanceDef and no body
// scope; no diagnostic is recorded for the unresolved name.
func (c *Compilation) CreateInstances(decl *syntax.HierarchyInstantiationNode, scope *symtab.Scope) []*symtab.Symbol {
	def := c.GetDefinition(decl.ModuleName, scope)
	out := make([]*symtab.Symbol, 0, len(decl.Instances))
	for _, inst := range decl.Instances {
		sym := c.NewSymbol()
		sym.Kind = symtab.KindInstance
		sym.Name = inst.Name
		sym.Loc = inst.Pos
		sym.InstanceDef = def
		if def != nil {
			c.instanceCounts[def]++
			c.elaborateInstanceBody(sym, def)
		}
		out = append(out, sym)
	}
	return out
}

// CreateGenerateBlock evaluates an if-generate's pre-computed condition and
// builds the taken branch's GenerateBlock symbol. The untaken branch (or
// a taken branch with no body) yields no symbol at all, matching
// GenerateBlockSymbol::fromSyntax returning nullptr when neither branch
// fires.
func (c *Compilation) CreateGenerateBlock(decl *syntax.IfGenerateNode, scope *symtab.Scope) *symtab.Symbol {
	var body syntax.Node
	if decl.Condition {
		body = decl.Body
	} else {
		body = decl.ElseBody
	}
	if body == nil {
		return nil
	}
	return c.instantiateGenerateBlock(body, true)
}

// CreateGenerateBlockArray builds a GenerateBlockArray symbol owning one
// GenerateBlock per loop iteration. Grounded on
// GenerateBlockArraySymbol::fromSyntax, simplified: the iteration count is
// already evaluated by the (external) expression evaluator, so this core
// only has to fan out that many instantiated blocks.
func (c *Compilation) CreateGenerateBlockArray(decl *syntax.LoopGenerateNode, scope *symtab.Scope) *symtab.Symbol {
	arr := c.NewSymbol()
	arr.Kind = symtab.KindGenerateBlockArray
	arr.Name = decl.GenvarName
	arr.Loc = decl.Pos()
	arr.IsInstantiated = decl.Count > 0

	arrScope := c.NewScope()
	arrScope.Init(c, arr)
	arr.SetOwnedScope(arrScope)
	for i := 0; i < decl.Count; i++ {
		block := c.instantiateGenerateBlock(decl.Body, true)
		arrScope.AddMember(block)
	}
	return arr
}

// instantiateGenerateBlock builds a GenerateBlock symbol whose own scope
// contains body's members, materialized immediately rather than deferred
// again (the deferred-member pass has already decided this block is taken).
func (c *Compilation) instantiateGenerateBlock(body syntax.Node, instantiated bool) *symtab.Symbol {
	block := c.NewSymbol()
	block.Kind = symtab.KindGenerateBlock
	block.IsInstantiated = instantiated

	blockScope := c.NewScope()
	blockScope.Init(c, block)
	block.SetOwnedScope(blockScope)

	if gb, ok := body.(*syntax.GenerateBlockNode); ok {
		block.Name = gb.Label
		block.Loc = gb.Pos()
		for _, m := range gb.Members {
			blockScope.AddMembers(m)
		}
	} else if body != nil {
		block.Loc = body.Pos()
		blockScope.AddMembers(body)
	}
	return block
}

// CreateProceduralBlock builds a ProceduralBlock symbol of the given kind.
// Grounded on the always/initial/final case of Scope::addMembers.
func (c *Compilation) CreateProceduralBlock(kind syntax.Kind, node syntax.Node) *symtab.Symbol {
	p := c.NewSymbol()
	p.Kind = symtab.KindProceduralBlock
	p.ProcKind = kind
	if node != nil {
		p.Loc = node.Pos()
	}
	return p
}
