package syntax

// Kind is the closed set of syntax-node shapes the compilation core's
// member-materialization dispatch needs to recognize. The concrete grammar
// behind these kinds — lexing, preprocessing, parsing — is an external
// collaborator (spec.md §1); this package only names the contract.
type Kind uint8

const (
	Unknown Kind = iota

	CompilationUnit

	ModuleDeclaration
	InterfaceDeclaration
	ProgramDeclaration
	PackageDeclaration
	PackageImportDeclaration
	ModportDeclaration

	HierarchyInstantiation
	IfGenerate
	LoopGenerate
	GenerateBlock

	FunctionDeclaration
	TaskDeclaration
	DataDeclaration
	ParameterDeclarationStatement

	AlwaysBlock
	AlwaysCombBlock
	AlwaysLatchBlock
	AlwaysFFBlock
	InitialBlock
	FinalBlock

	ContinuousAssign
	PortDeclaration

	EnumType
)

func (k Kind) String() string {
	switch k {
	case CompilationUnit:
		return "CompilationUnit"
	case ModuleDeclaration:
		return "ModuleDeclaration"
	case InterfaceDeclaration:
		return "InterfaceDeclaration"
	case ProgramDeclaration:
		return "ProgramDeclaration"
	case PackageDeclaration:
		return "PackageDeclaration"
	case PackageImportDeclaration:
		return "PackageImportDeclaration"
	case ModportDeclaration:
		return "ModportDeclaration"
	case HierarchyInstantiation:
		return "HierarchyInstantiation"
	case IfGenerate:
		return "IfGenerate"
	case LoopGenerate:
		return "LoopGenerate"
	case GenerateBlock:
		return "GenerateBlock"
	case FunctionDeclaration:
		return "FunctionDeclaration"
	case TaskDeclaration:
		return "TaskDeclaration"
	case DataDeclaration:
		return "DataDeclaration"
	case ParameterDeclarationStatement:
		return "ParameterDeclarationStatement"
	case AlwaysBlock, AlwaysCombBlock, AlwaysLatchBlock, AlwaysFFBlock:
		return "ProceduralBlock"
	case InitialBlock:
		return "InitialBlock"
	case FinalBlock:
		return "FinalBlock"
	case ContinuousAssign:
		return "ContinuousAssign"
	case PortDeclaration:
		return "PortDeclaration"
	case EnumType:
		return "EnumType"
	default:
		return "Unknown"
	}
}
