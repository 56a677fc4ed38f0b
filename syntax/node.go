package syntax

import "svcore/source"

// Node is the external syntax-tree contract (spec.md §6): a kind tag, a
// parent link, and a position. Concrete shapes beyond that are named types
// below, cut down to exactly what member-materialization dispatches on.
type Node interface {
	Kind() Kind
	Parent() Node
	Pos() source.TextPosition
}

// base is embedded by every concrete node below to provide Parent/Pos without
// repeating the bookkeeping on each type.
type base struct {
	parent Node
	pos    source.TextPosition
}

func (b *base) Parent() Node              { return b.parent }
func (b *base) Pos() source.TextPosition  { return b.pos }
func (b *base) SetParent(p Node)          { b.parent = p }

// CompilationUnitNode is the synthetic top of a syntax tree when the parser
// wraps top-level members in an explicit compilation-unit node; a bare
// top-level node (no wrapper) is also a legal tree root.
type CompilationUnitNode struct {
	base
	Members []Node
}

func (n *CompilationUnitNode) Kind() Kind { return CompilationUnit }

// ModuleDeclarationNode covers module/interface/program declarations; Which
// distinguishes the three (they share shape apart from the keyword).
type ModuleDeclarationNode struct {
	base
	Which      Kind // ModuleDeclaration | InterfaceDeclaration | ProgramDeclaration
	Name       string
	Parameters []ParameterDecl
	Members    []Node
}

func (n *ModuleDeclarationNode) Kind() Kind { return n.Which }

// ParameterDecl is the minimal shape of a single parameter port needed to
// decide top-level-instantiation eligibility (spec.md §4.1).
type ParameterDecl struct {
	Name       string
	HasDefault bool
	Type       TypeSyntax
	Pos        source.TextPosition
}

// PackageDeclarationNode is a `package ... endpackage` block.
type PackageDeclarationNode struct {
	base
	Name    string
	Members []Node
}

func (n *PackageDeclarationNode) Kind() Kind { return PackageDeclaration }

// ImportItem is one entry of a `import p::foo, q::*;` statement.
type ImportItem struct {
	Package    string
	Item       string // identifier, or "*" for a wildcard import
	IsWildcard bool
	Pos        source.TextPosition
}

// PackageImportDeclarationNode is a `import ...;` statement.
type PackageImportDeclarationNode struct {
	base
	Items []ImportItem
}

func (n *PackageImportDeclarationNode) Kind() Kind { return PackageImportDeclaration }

// HierarchyInstantiationNode is `Module #(...) inst1(...), inst2(...);`.
type HierarchyInstantiationNode struct {
	base
	ModuleName string
	Instances  []InstanceName
}

// InstanceName is one instance name within a hierarchy instantiation.
type InstanceName struct {
	Name string
	Pos  source.TextPosition
}

func (n *HierarchyInstantiationNode) Kind() Kind { return HierarchyInstantiation }

// IfGenerateNode is `if (cond) generate-block [else generate-block]`.
// Condition evaluation is the out-of-scope expression evaluator's job; the
// core only consumes the already-evaluated boolean, matching spec.md §1's
// "expression evaluator" exclusion.
type IfGenerateNode struct {
	base
	Condition bool
	Body      Node
	ElseBody  Node // nil if no else clause
}

func (n *IfGenerateNode) Kind() Kind { return IfGenerate }

// LoopGenerateNode is `for (genvar i = 0; i < Count; i++) generate-block`.
// Like IfGenerateNode, the loop bound is pre-evaluated by the (external)
// expression evaluator.
type LoopGenerateNode struct {
	base
	GenvarName string
	Count      int
	Body       Node
}

func (n *LoopGenerateNode) Kind() Kind { return LoopGenerate }

// GenerateBlockNode is a `begin ... end` block inside a conditional or loop
// generate construct.
type GenerateBlockNode struct {
	base
	Label   string
	Members []Node
}

func (n *GenerateBlockNode) Kind() Kind { return GenerateBlock }

// DataDeclarationNode covers `TypeSyntax name1, name2;` variable decls.
type DataDeclarationNode struct {
	base
	Type  TypeSyntax
	Names []string
}

func (n *DataDeclarationNode) Kind() Kind { return DataDeclaration }

// ParameterDeclarationStatementNode covers `parameter ... ;` at module/package
// scope (as opposed to a module's port-list parameters, see ParameterDecl).
type ParameterDeclarationStatementNode struct {
	base
	Parameters []ParameterDecl
}

func (n *ParameterDeclarationStatementNode) Kind() Kind { return ParameterDeclarationStatement }

// FunctionDeclarationNode covers `function`/`task` declarations.
type FunctionDeclarationNode struct {
	base
	Which      Kind // FunctionDeclaration | TaskDeclaration
	Name       string
	ReturnType TypeSyntax
	Arguments  []ParameterDecl
}

func (n *FunctionDeclarationNode) Kind() Kind { return n.Which }

// ProceduralBlockNode covers always/always_comb/always_latch/always_ff,
// initial, and final blocks.
type ProceduralBlockNode struct {
	base
	Which Kind
}

func (n *ProceduralBlockNode) Kind() Kind { return n.Which }

// TypeSyntax is the minimal external contract for a data-type reference: a
// built-in kind, or a reference to a locally-declared enum type. The type
// evaluator (Type::fromSyntax in the original) is treated as a named
// collaborator; compilation's typeFromSyntax implements it for this closed set.
type TypeSyntax struct {
	Builtin BuiltinKind
	Width   int  // only meaningful when Builtin == VectorType
	Signed  bool // only meaningful for integral builtins
	Enum    *EnumTypeSyntax
}

// EnumTypeSyntax is `typedef enum {A, B, C} name;`'s type part.
type EnumTypeSyntax struct {
	base
	BaseType TypeSyntax
	Values   []string
}

func (n *EnumTypeSyntax) Kind() Kind { return EnumType }

// BuiltinKind enumerates the closed set of built-in type keywords the
// registry must singleton-ize (spec.md §4.6).
type BuiltinKind uint8

const (
	NoBuiltin BuiltinKind = iota
	VectorType            // packed vector, interned by (width, flags)
	ShortIntType
	IntType
	LongIntType
	ByteType
	BitType
	LogicType
	RegType
	IntegerType
	TimeType
	RealType
	RealTimeType
	ShortRealType
	StringType
	CHandleType
	VoidType
	NullType
	EventType
)

// NetTypeKeyword enumerates the closed set of net-type keywords spec.md
// §4.6 requires singletons for.
type NetTypeKeyword uint8

const (
	NoNetType NetTypeKeyword = iota
	Wire
	WAnd
	WOr
	Tri
	TriAnd
	TriOr
	Tri0
	Tri1
	TriReg
	Supply0
	Supply1
	UWire
)

// TreeMetadata is the per-declaration metadata an external parser attaches
// to a syntax tree (spec.md §6): default net type, unconnected drive, and
// time scale, keyed by the declaration they annotate.
type TreeMetadata struct {
	DefaultNetType   NetTypeKeyword
	UnconnectedDrive UnconnectedDrive
	TimeScale        *TimeScale
}

// UnconnectedDrive mirrors the three-way enum spec.md §3 assigns to a
// Definition.
type UnconnectedDrive uint8

const (
	DriveNone UnconnectedDrive = iota
	DrivePull0
	DrivePull1
)

// TimeScale is the unit/precision pair a `timeunit`/`timeprecision`
// directive assigns to a declaration.
type TimeScale struct {
	UnitMagnitude      int // 1, 10, or 100
	UnitExponent       int // power of ten, e.g. -9 for nanoseconds
	PrecisionMagnitude int
	PrecisionExponent  int
}

// ParseDiagnostic is a diagnostic an external lexer/preprocessor/parser
// attached to a tree while building it — e.g. an unterminated string or an
// unexpected token. It carries no owning symbol, unlike the core's own
// diag.Diagnostic, since parsing happens before any symbol exists.
type ParseDiagnostic struct {
	Code     uint32
	Location source.Location
	Message  string
}

// Tree is a parsed syntax tree plus the metadata an external parser
// extracted while building it (spec.md §6).
type Tree struct {
	Root                 Node
	Metadata             map[Node]*TreeMetadata // keyed by the declaration node it describes
	GlobalInstantiations []string
	Diagnostics          []ParseDiagnostic
	Source               source.Manager
	Buffer               source.Buffer
}
