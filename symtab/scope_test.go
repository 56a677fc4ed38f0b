package symtab

import (
	"testing"

	"svcore/syntax"
)

// fakeHost is a minimal symtab.Host good enough to drive Scope in isolation,
// without a real compilation manager. It hands out plain heap-allocated
// Symbols/Scopes rather than arena slots, and its Create* methods build just
// enough of a symbol to exercise the caller's dispatch.
type fakeHost struct {
	packages map[string]*Symbol
	insts    map[string]*Symbol // instance name -> pre-built symbol to return from CreateInstances
}

func newFakeHost() *fakeHost {
	return &fakeHost{packages: make(map[string]*Symbol)}
}

func (h *fakeHost) AddDefinition(decl *syntax.ModuleDeclarationNode, lexicalScope *Scope) {}

func (h *fakeHost) AddPackage(pkg *Symbol) { h.packages[pkg.Name] = pkg }

func (h *fakeHost) GetPackage(name string) *Symbol { return h.packages[name] }

func (h *fakeHost) CreateSubroutine(decl *syntax.FunctionDeclarationNode, scope *Scope) *Symbol {
	return &Symbol{Kind: KindSubroutine, Name: decl.Name}
}

func (h *fakeHost) CreateVariables(decl *syntax.DataDeclarationNode, scope *Scope) []*Symbol {
	var out []*Symbol
	for _, name := range decl.Names {
		out = append(out, &Symbol{Kind: KindVariable, Name: name})
	}
	return out
}

func (h *fakeHost) CreateParameters(decl *syntax.ParameterDeclarationStatementNode, scope *Scope) []*Symbol {
	var out []*Symbol
	for _, p := range decl.Parameters {
		out = append(out, &Symbol{Kind: KindParameter, Name: p.Name, HasDefault: p.HasDefault})
	}
	return out
}

func (h *fakeHost) CreateInstances(decl *syntax.HierarchyInstantiationNode, scope *Scope) []*Symbol {
	var out []*Symbol
	for _, in := range decl.Instances {
		out = append(out, &Symbol{Kind: KindInstance, Name: in.Name})
	}
	return out
}

func (h *fakeHost) CreateGenerateBlock(decl *syntax.IfGenerateNode, scope *Scope) *Symbol {
	if !decl.Condition {
		return nil
	}
	blk := &Symbol{Kind: KindGenerateBlock, IsInstantiated: true}
	blk.ownedScope = h.NewScope()
	blk.ownedScope.Init(h, blk)
	return blk
}

func (h *fakeHost) CreateGenerateBlockArray(decl *syntax.LoopGenerateNode, scope *Scope) *Symbol {
	arr := &Symbol{Kind: KindGenerateBlockArray, IsInstantiated: decl.Count > 0}
	arr.ownedScope = h.NewScope()
	arr.ownedScope.Init(h, arr)
	return arr
}

func (h *fakeHost) CreateProceduralBlock(kind syntax.Kind, loc syntax.Node) *Symbol {
	return &Symbol{Kind: KindProceduralBlock, ProcKind: kind}
}

func (h *fakeHost) NewSymbol() *Symbol { return &Symbol{} }

func (h *fakeHost) NewScope() *Scope { return &Scope{} }

func newRootScope(h Host) *Scope {
	root := &Symbol{Kind: KindRoot}
	s := NewScope(h, root)
	root.ownedScope = s
	return s
}

func TestInsertMemberIndexRule(t *testing.T) {
	h := newFakeHost()
	s := newRootScope(h)

	a := &Symbol{Kind: KindVariable, Name: "a"}
	b := &Symbol{Kind: KindVariable, Name: "b"}
	c := &Symbol{Kind: KindVariable, Name: "c"}

	s.AddMember(a)
	if a.Index() != 1 {
		t.Fatalf("first member into an empty scope must get index 1, got %d", a.Index())
	}

	s.AddMember(b)
	if b.Index() != 2 {
		t.Fatalf("tail append must bump the index, got %d", b.Index())
	}

	// A non-tail splice (insertMember at an anchor that isn't lastMember)
	// shares its anchor's index rather than bumping.
	s.insertMember(c, a)
	if c.Index() != a.Index() {
		t.Fatalf("non-tail splice must share its anchor's index: anchor=%d splice=%d", a.Index(), c.Index())
	}
}

func TestLookupDeclaredBeforeUse(t *testing.T) {
	h := newFakeHost()
	s := newRootScope(h)

	first := &Symbol{Kind: KindVariable, Name: "x"}
	s.AddMember(first)

	var beforeFirst Result
	beforeFirst.Clear(Local, StartOfScope(s))
	s.Lookup("x", &beforeFirst)
	if beforeFirst.ResultKind != NotFound {
		t.Fatalf("lookup from before x's declaration must not see it, got %v", beforeFirst.ResultKind)
	}

	var afterFirst Result
	afterFirst.Clear(Local, After(first))
	s.Lookup("x", &afterFirst)
	if afterFirst.ResultKind != Found || afterFirst.Symbol != first {
		t.Fatalf("lookup from after x's declaration must find it, got %v", afterFirst.ResultKind)
	}

	// A Callable lookup ignores declaration order entirely.
	var callable Result
	callable.Clear(Callable, StartOfScope(s))
	s.Lookup("x", &callable)
	if callable.ResultKind != Found {
		t.Fatalf("callable lookups must ignore declared-before-use, got %v", callable.ResultKind)
	}
}

func TestLookupWildcardImportAmbiguity(t *testing.T) {
	h := newFakeHost()
	root := newRootScope(h)

	pkgA := &Symbol{Kind: KindPackage, Name: "pkg_a"}
	pkgA.ownedScope = h.NewScope()
	pkgA.ownedScope.Init(h, pkgA)
	pkgA.ownedScope.AddMember(&Symbol{Kind: KindVariable, Name: "shared"})
	h.AddPackage(pkgA)

	pkgB := &Symbol{Kind: KindPackage, Name: "pkg_b"}
	pkgB.ownedScope = h.NewScope()
	pkgB.ownedScope.Init(h, pkgB)
	pkgB.ownedScope.AddMember(&Symbol{Kind: KindVariable, Name: "shared"})
	h.AddPackage(pkgB)

	impA := &Symbol{Kind: KindWildcardImport, Name: "pkg_a", PackageName: "pkg_a"}
	impA.SetResolvedImport(pkgA)
	root.AddMember(impA)
	root.wildcardImports = append(root.wildcardImports, impA)

	impB := &Symbol{Kind: KindWildcardImport, Name: "pkg_b", PackageName: "pkg_b"}
	impB.SetResolvedImport(pkgB)
	root.AddMember(impB)
	root.wildcardImports = append(root.wildcardImports, impB)

	var result Result
	result.Clear(Local, EndOfScope(root))
	root.Lookup("shared", &result)

	if result.ResultKind != AmbiguousImport {
		t.Fatalf("two wildcard imports exporting the same name must be ambiguous, got %v", result.ResultKind)
	}
	if len(result.Candidates) != 2 {
		t.Fatalf("expected 2 ambiguous candidates, got %d", len(result.Candidates))
	}
}

func TestLookupSingleWildcardImportResolves(t *testing.T) {
	h := newFakeHost()
	root := newRootScope(h)

	pkg := &Symbol{Kind: KindPackage, Name: "pkg_a"}
	pkg.ownedScope = h.NewScope()
	pkg.ownedScope.Init(h, pkg)
	target := &Symbol{Kind: KindVariable, Name: "only"}
	pkg.ownedScope.AddMember(target)
	h.AddPackage(pkg)

	imp := &Symbol{Kind: KindWildcardImport, Name: "pkg_a", PackageName: "pkg_a"}
	imp.SetResolvedImport(pkg)
	root.AddMember(imp)
	root.wildcardImports = append(root.wildcardImports, imp)

	var result Result
	result.Clear(Local, EndOfScope(root))
	root.Lookup("only", &result)

	if result.ResultKind != Found || result.Symbol != target || !result.WasImported {
		t.Fatalf("single wildcard import must resolve unambiguously, got kind=%v sym=%v imported=%v",
			result.ResultKind, result.Symbol, result.WasImported)
	}
}

func TestTransparentEnumValueSplice(t *testing.T) {
	h := newFakeHost()
	s := newRootScope(h)

	enumSym := &Symbol{Kind: KindEnumType, Name: "color_e"}
	red := &Symbol{Kind: KindEnumValue, Name: "RED"}
	green := &Symbol{Kind: KindEnumValue, Name: "GREEN"}
	enumSym.EnumValues = []*Symbol{red, green}
	s.AddMember(enumSym)

	v := &Symbol{Kind: KindVariable, Name: "c", EnumTypeSym: enumSym}
	s.AddMember(v)

	members := s.Members()

	var names []string
	for _, m := range members {
		names = append(names, m.Name)
	}
	// RED and GREEN must appear immediately after the variable they were
	// spliced in for, as TransparentMember wrappers.
	if len(names) != 4 || names[0] != "color_e" || names[1] != "c" || names[2] != "RED" || names[3] != "GREEN" {
		t.Fatalf("unexpected member order after transparent splice: %v", names)
	}

	for _, m := range members[2:] {
		if m.Kind != KindTransparentMember {
			t.Fatalf("spliced enum value %q must be a TransparentMember wrapper, got kind %v", m.Name, m.Kind)
		}
	}

	// A direct name-map lookup of the enum value resolves through the
	// wrapper to the real EnumValue symbol.
	var result Result
	result.Clear(Local, EndOfScope(s))
	s.Lookup("RED", &result)
	if result.ResultKind != Found || result.Symbol != red {
		t.Fatalf("looking up a transparently-spliced enum value must resolve to the wrapped symbol, got %v", result.Symbol)
	}
}

func TestLookupClimbsToParentScope(t *testing.T) {
	h := newFakeHost()
	root := newRootScope(h)

	outer := &Symbol{Kind: KindVariable, Name: "outer_var"}
	root.AddMember(outer)

	child := &Symbol{Kind: KindGenerateBlock, IsInstantiated: true}
	root.AddMember(child)
	child.ownedScope = h.NewScope()
	child.ownedScope.Init(h, child)

	var result Result
	result.Clear(Local, EndOfScope(child.ownedScope))
	child.ownedScope.Lookup("outer_var", &result)

	if result.ResultKind != Found || result.Symbol != outer {
		t.Fatalf("lookup must climb to the parent scope when not found locally, got %v", result.ResultKind)
	}
}

func TestScopedLookupFallsBackToPackageNamespace(t *testing.T) {
	h := newFakeHost()
	root := newRootScope(h)

	pkg := &Symbol{Kind: KindPackage, Name: "util"}
	pkg.ownedScope = h.NewScope()
	pkg.ownedScope.Init(h, pkg)
	h.AddPackage(pkg)

	var result Result
	result.Clear(Scoped, EndOfScope(root))
	root.Lookup("util", &result)

	if result.ResultKind != Found || result.Symbol != pkg {
		t.Fatalf("a Scoped lookup at the root must fall back to the package namespace, got %v", result.ResultKind)
	}

	var localResult Result
	localResult.Clear(Local, EndOfScope(root))
	root.Lookup("util", &localResult)
	if localResult.ResultKind != NotFound {
		t.Fatalf("a Local lookup must not fall back to the package namespace, got %v", localResult.ResultKind)
	}
}
