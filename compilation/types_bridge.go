package compilation

import (
	"svcore/syntax"
	"svcore/types"
)

// typeFromSyntax resolves a TypeSyntax against the built-in registry,
// the Go-idiomatic replacement for the original's Type::fromSyntax: a
// switch over a closed set of builtin kinds rather than a dispatch through
// a SyntaxKind-to-factory table, since this core's TypeSyntax already
// collapses the full grammar down to that closed set.
func (c *Compilation) typeFromSyntax(t syntax.TypeSyntax) *types.Type {
	if t.Enum != nil {
		return c.typeFromSyntax(t.Enum.BaseType)
	}

	switch t.Builtin {
	case syntax.VectorType:
		flags := types.Flags(0)
		if t.Signed {
			flags |= types.FlagSigned
		}
		width := t.Width
		if width <= 0 {
			width = 1
		}
		return c.Types.GetVectorType(width, flags)
	case syntax.ShortIntType:
		return c.Types.ShortInt
	case syntax.IntType:
		return c.Types.Int
	case syntax.LongIntType:
		return c.Types.LongInt
	case syntax.ByteType:
		return c.Types.Byte
	case syntax.BitType:
		return c.Types.GetScalarType(syntax.BitType, t.Signed)
	case syntax.LogicType:
		return c.Types.GetScalarType(syntax.LogicType, t.Signed)
	case syntax.RegType:
		return c.Types.GetScalarType(syntax.RegType, t.Signed)
	case syntax.IntegerType:
		return c.Types.Integer
	case syntax.TimeType:
		return c.Types.Time
	case syntax.RealType:
		return c.Types.Real
	case syntax.RealTimeType:
		return c.Types.RealTime
	case syntax.ShortRealType:
		return c.Types.ShortReal
	case syntax.StringType:
		return c.Types.String
	case syntax.CHandleType:
		return c.Types.CHandle
	case syntax.VoidType:
		return c.Types.Void
	case syntax.NullType:
		return c.Types.Null
	case syntax.EventType:
		return c.Types.Event
	default:
		return c.Types.Error
	}
}
