package compilation

import (
	"testing"

	"svcore/diag"
	"svcore/source"
	"svcore/symtab"
	"svcore/syntax"
)

func moduleDecl(name string, params []syntax.ParameterDecl) *syntax.ModuleDeclarationNode {
	return &syntax.ModuleDeclarationNode{
		Which:      syntax.ModuleDeclaration,
		Name:       name,
		Parameters: params,
	}
}

func treeOf(decls ...syntax.Node) *syntax.Tree {
	return &syntax.Tree{Root: &syntax.CompilationUnitNode{Members: decls}}
}

func TestGetRootAutoInstantiatesDefaultedTopModules(t *testing.T) {
	c := New(Options{}, nil)
	if err := c.AddSyntaxTree(treeOf(moduleDecl("top", nil))); err != nil {
		t.Fatalf("AddSyntaxTree: %v", err)
	}

	root := c.GetRoot()
	names := memberNames(root)
	if len(names) != 1 || names[0] != "top" {
		t.Fatalf("expected root to auto-instantiate defaulted module 'top', got %v", names)
	}
}

func TestGetRootSkipsModulesWithUndefaultedParameters(t *testing.T) {
	c := New(Options{}, nil)
	params := []syntax.ParameterDecl{{Name: "WIDTH", HasDefault: false}}
	if err := c.AddSyntaxTree(treeOf(moduleDecl("needs_param", params))); err != nil {
		t.Fatalf("AddSyntaxTree: %v", err)
	}

	root := c.GetRoot()
	if names := memberNames(root); len(names) != 0 {
		t.Fatalf("a module with an undefaulted parameter must not be auto-instantiated, got %v", names)
	}
}

func TestGetRootSkipsGloballyInstantiatedModules(t *testing.T) {
	c := New(Options{}, nil)
	tree := treeOf(moduleDecl("leaf", nil))
	tree.GlobalInstantiations = []string{"leaf"}
	if err := c.AddSyntaxTree(tree); err != nil {
		t.Fatalf("AddSyntaxTree: %v", err)
	}

	root := c.GetRoot()
	if names := memberNames(root); len(names) != 0 {
		t.Fatalf("a module named in GlobalInstantiations must not be auto-instantiated at top level, got %v", names)
	}
}

func TestGetRootSortsTopModulesByName(t *testing.T) {
	c := New(Options{}, nil)
	if err := c.AddSyntaxTree(treeOf(
		moduleDecl("zeta", nil),
		moduleDecl("alpha", nil),
		moduleDecl("mu", nil),
	)); err != nil {
		t.Fatalf("AddSyntaxTree: %v", err)
	}

	root := c.GetRoot()
	names := memberNames(root)
	want := []string{"alpha", "mu", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected sorted top modules %v, got %v", want, names)
		}
	}
}

func TestGetRootIsIdempotent(t *testing.T) {
	c := New(Options{}, nil)
	if err := c.AddSyntaxTree(treeOf(moduleDecl("top", nil))); err != nil {
		t.Fatalf("AddSyntaxTree: %v", err)
	}

	first := c.GetRoot()
	second := c.GetRoot()
	if first != second {
		t.Fatalf("GetRoot must return the same root symbol on repeat calls")
	}

	def := c.GetDefinition("top", c.rootScope)
	if got := c.InstanceCount(def); got != 1 {
		t.Fatalf("repeat GetRoot calls must not re-instantiate top modules, InstanceCount=%d", got)
	}
}

func TestAddSyntaxTreeRejectedAfterFinalization(t *testing.T) {
	c := New(Options{}, nil)
	if err := c.AddSyntaxTree(treeOf(moduleDecl("top", nil))); err != nil {
		t.Fatalf("AddSyntaxTree: %v", err)
	}
	c.GetRoot()

	if err := c.AddSyntaxTree(treeOf(moduleDecl("late", nil))); err != errAlreadyFinalized {
		t.Fatalf("expected errAlreadyFinalized after GetRoot, got %v", err)
	}
}

type fakeManager struct{}

func (fakeManager) AssignText(text string) source.Buffer   { return source.NewBuffer(0) }
func (fakeManager) FilePath(buf source.Buffer) string      { return "" }
func (fakeManager) Less(a, b source.Location) bool         { return a.Offset < b.Offset }

func TestAddSyntaxTreeRejectsMismatchedSourceManager(t *testing.T) {
	c := New(Options{}, fakeManager{})
	tree := treeOf(moduleDecl("m", nil))
	tree.Source = fakeManager2{}

	if err := c.AddSyntaxTree(tree); err != errSourceManagerMismatch {
		t.Fatalf("expected errSourceManagerMismatch, got %v", err)
	}
}

type fakeManager2 struct{}

func (fakeManager2) AssignText(text string) source.Buffer { return source.NewBuffer(0) }
func (fakeManager2) FilePath(buf source.Buffer) string     { return "" }
func (fakeManager2) Less(a, b source.Location) bool        { return a.Offset < b.Offset }

func TestErrorLimitDefaultsToMaxWhenUnset(t *testing.T) {
	c := New(Options{}, nil)
	if c.ErrorLimit() <= 0 {
		t.Fatalf("expected a positive default error limit, got %d", c.ErrorLimit())
	}

	c2 := New(Options{ErrorLimit: 5}, nil)
	if c2.ErrorLimit() != 5 {
		t.Fatalf("expected configured error limit 5, got %d", c2.ErrorLimit())
	}
}

func TestDefaultTimeScaleOverride(t *testing.T) {
	custom := syntax.TimeScale{UnitMagnitude: 10, UnitExponent: -12, PrecisionMagnitude: 1, PrecisionExponent: -12}
	c := New(Options{DefaultTimeScale: custom}, nil)
	if c.Types.DefaultTimeScale != custom {
		t.Fatalf("expected registry default time scale to be overridden to %v, got %v", custom, c.Types.DefaultTimeScale)
	}

	c2 := New(Options{}, nil)
	if c2.Types.DefaultTimeScale.UnitMagnitude == 0 {
		t.Fatalf("expected a non-zero built-in default time scale when Options leaves it unset")
	}
}

func TestNestedInstanceResolvesSiblingTopLevelModule(t *testing.T) {
	c := New(Options{}, nil)
	leaf := moduleDecl("leaf", nil)
	inst := &syntax.HierarchyInstantiationNode{
		ModuleName: "leaf",
		Instances:  []syntax.InstanceName{{Name: "u_leaf"}},
	}
	top := &syntax.ModuleDeclarationNode{
		Which:   syntax.ModuleDeclaration,
		Name:    "top",
		Members: []syntax.Node{inst},
	}
	tree := treeOf(leaf, top)
	tree.GlobalInstantiations = []string{"leaf"}
	if err := c.AddSyntaxTree(tree); err != nil {
		t.Fatalf("AddSyntaxTree: %v", err)
	}

	c.GetRoot()
	topDef := c.GetDefinition("top", c.rootScope)
	if topDef == nil {
		t.Fatalf("expected to find definition 'top'")
	}

	members := topDef.Scope.Members()
	if len(members) != 1 || members[0].Name != "u_leaf" {
		t.Fatalf("expected top's body to contain instance u_leaf, got %v", memberNames(topDef.Scope.ThisSym()))
	}
	if members[0].InstanceDef == nil || members[0].InstanceDef.Name != "leaf" {
		t.Fatalf("u_leaf must resolve to the sibling top-level definition 'leaf' via the lexical-parent climb, got %v", members[0].InstanceDef)
	}
}

func TestAddDefinitionExtractsTreeMetadata(t *testing.T) {
	c := New(Options{}, nil)
	decl := moduleDecl("top", nil)
	tree := treeOf(decl)
	tree.Metadata = map[syntax.Node]*syntax.TreeMetadata{
		decl: {
			DefaultNetType:   syntax.Tri,
			UnconnectedDrive: syntax.DrivePull1,
			TimeScale:        &syntax.TimeScale{UnitMagnitude: 1, UnitExponent: -12, PrecisionMagnitude: 1, PrecisionExponent: -12},
		},
	}
	if err := c.AddSyntaxTree(tree); err != nil {
		t.Fatalf("AddSyntaxTree: %v", err)
	}

	def := c.GetDefinition("top", c.rootScope)
	if def == nil {
		t.Fatalf("expected to find definition 'top'")
	}
	if def.DefaultNetType != syntax.Tri {
		t.Fatalf("expected DefaultNetType to be extracted from tree metadata, got %v", def.DefaultNetType)
	}
	if def.UnconnectedDrive != syntax.DrivePull1 {
		t.Fatalf("expected UnconnectedDrive to be extracted from tree metadata, got %v", def.UnconnectedDrive)
	}
	if def.TimeScale == nil || def.TimeScale.UnitExponent != -12 {
		t.Fatalf("expected TimeScale to be extracted from tree metadata, got %v", def.TimeScale)
	}
}

func TestSiblingInstancesGetIndependentBodyScopes(t *testing.T) {
	c := New(Options{}, nil)
	leaf := moduleDecl("leaf", nil)
	tb := &syntax.ModuleDeclarationNode{
		Which: syntax.ModuleDeclaration,
		Name:  "tb",
		Members: []syntax.Node{
			&syntax.HierarchyInstantiationNode{
				ModuleName: "leaf",
				Instances:  []syntax.InstanceName{{Name: "m1"}, {Name: "m2"}, {Name: "m3"}},
			},
		},
	}
	tree := treeOf(leaf, tb)
	tree.GlobalInstantiations = []string{"leaf"}
	if err := c.AddSyntaxTree(tree); err != nil {
		t.Fatalf("AddSyntaxTree: %v", err)
	}

	root := c.GetRoot()
	var tbInst *symtab.Symbol
	for _, m := range root.AsScope().Members() {
		if m.Name == "tb" {
			tbInst = m
		}
	}
	if tbInst == nil {
		t.Fatalf("expected an auto-instantiated 'tb' at root")
	}

	members := tbInst.AsScope().Members()
	if len(members) != 3 {
		t.Fatalf("expected 3 instances of 'leaf' inside tb's body, got %d", len(members))
	}
	seen := make(map[*symtab.Scope]bool)
	for _, m := range members {
		if m.InstanceDef == nil || m.InstanceDef.Name != "leaf" {
			t.Fatalf("expected each member to resolve to 'leaf', got %v", m.InstanceDef)
		}
		if m.AsScope() == nil {
			t.Fatalf("expected instance %q to own its own elaborated body scope", m.Name)
		}
		if seen[m.AsScope()] {
			t.Fatalf("instance %q shares a body scope with a sibling instance", m.Name)
		}
		seen[m.AsScope()] = true
	}
}

// TestCrossInstanceDiagnosticCoalescing exercises scenario 5 of spec.md
// §4.4/§4.5 end to end: three instances of the same definition, two of which
// carry an identical diagnostic. Because the instances live inside "tb"'s
// own body (an Instance, not Root or CompilationUnit), one of them is
// eligible to become the representative instance a hierarchy note is
// attached to.
func TestCrossInstanceDiagnosticCoalescing(t *testing.T) {
	c := New(Options{}, nil)
	leaf := moduleDecl("leaf", nil)
	tb := &syntax.ModuleDeclarationNode{
		Which: syntax.ModuleDeclaration,
		Name:  "tb",
		Members: []syntax.Node{
			&syntax.HierarchyInstantiationNode{
				ModuleName: "leaf",
				Instances:  []syntax.InstanceName{{Name: "m1"}, {Name: "m2"}, {Name: "m3"}},
			},
		},
	}
	tree := treeOf(leaf, tb)
	tree.GlobalInstantiations = []string{"leaf"}
	if err := c.AddSyntaxTree(tree); err != nil {
		t.Fatalf("AddSyntaxTree: %v", err)
	}

	root := c.GetRoot()
	var tbInst *symtab.Symbol
	for _, m := range root.AsScope().Members() {
		if m.Name == "tb" {
			tbInst = m
		}
	}
	if tbInst == nil {
		t.Fatalf("expected an auto-instantiated 'tb' at root")
	}
	instances := tbInst.AsScope().Members()
	if len(instances) != 3 {
		t.Fatalf("expected 3 instances of 'leaf', got %d", len(instances))
	}

	loc := source.Location{Offset: 100}
	c.Diagnostics().AddDiag(diag.Diagnostic{Code: 99, Severity: diag.Error, Location: loc, Symbol: instances[0], Message: "width mismatch"})
	c.Diagnostics().AddDiag(diag.Diagnostic{Code: 99, Severity: diag.Error, Location: loc, Symbol: instances[1], Message: "width mismatch"})

	results := c.GetSemanticDiagnostics()
	if len(results) != 1 {
		t.Fatalf("expected one coalesced diagnostic, got %d", len(results))
	}
	if results[0].CoalesceCount != 2 {
		t.Fatalf("expected a coalesce count of 2 (3 instances, only 2 affected), got %d", results[0].CoalesceCount)
	}
	if results[0].Symbol != instances[1] {
		t.Fatalf("expected the representative instance to be the last matching occurrence, got %v", results[0].Symbol)
	}
}

func TestCreateScriptScopeAddsRootMember(t *testing.T) {
	c := New(Options{}, nil)
	c.CreateScriptScope()

	if got := len(memberNames(c.GetRoot())); got != 1 {
		t.Fatalf("expected CreateScriptScope to add exactly one root member, got %d", got)
	}
}

func memberNames(root *symtab.Symbol) []string {
	var names []string
	for _, m := range root.AsScope().Members() {
		names = append(names, m.Name)
	}
	return names
}
