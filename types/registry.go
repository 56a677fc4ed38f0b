// Package types implements the closed set of built-in data types and net
// types the compilation core singleton-izes, plus the packed-vector-type
// intern table. Grounded on the built-in construction block of
// Compilation's constructor and on getType/getScalarType/getNetType in
// the collaborator this core's domain description names as its compiler
// prototype.
package types

import (
	"fmt"

	"fortio.org/safecast"

	"svcore/syntax"
)

// Kind is the closed set of type categories a Type value can carry.
type Kind uint8

const (
	KindError Kind = iota
	KindVoid
	KindNull
	KindCHandle
	KindEvent
	KindString
	KindScalar // bit/logic/reg, width-1, signing tracked on the Type
	KindVector // packed [N-1:0] vector
	KindPredefinedInteger
	KindFloating
)

// Flags captures the signed/four-state bits the original packs alongside a
// vector's width.
type Flags uint8

const (
	FlagSigned Flags = 1 << iota
	FlagFourState
)

// Type is a singleton value: two Types describing the same shape are always
// the same *Type, so identity comparison (==) is valid type equality.
type Type struct {
	Kind    Kind
	Name    string
	Width   int
	Flags   Flags
	Builtin syntax.BuiltinKind // 0 for vector types, which have no single builtin kind
}

func (t *Type) String() string { return t.Name }

// IsIntegral reports whether values of this type participate in integer
// arithmetic (vectors, scalars, and the predefined integer family).
func (t *Type) IsIntegral() bool {
	switch t.Kind {
	case KindScalar, KindVector, KindPredefinedInteger:
		return true
	default:
		return false
	}
}

// NetType is a singleton describing one of the twelve net-type keywords.
type NetType struct {
	Name    string
	Keyword syntax.NetTypeKeyword
}

func (n *NetType) String() string { return n.Name }

// Registry owns every built-in Type/NetType singleton plus the
// packed-vector-type intern table. One Registry is owned per compilation
// (the domain description's "compilation manager" component), matching the
// original's per-Compilation built-in construction.
type Registry struct {
	Error    *Type
	Void     *Type
	Null     *Type
	CHandle  *Type
	Event    *Type
	String   *Type

	ShortInt  *Type
	Int       *Type
	LongInt   *Type
	Byte      *Type
	Integer   *Type
	Time      *Type
	Real      *Type
	RealTime  *Type
	ShortReal *Type

	// Bit, Logic, and Reg are each singletons in signed and unsigned form,
	// matching the six scalar types the original constructs by name
	// (bitType/signedBitType/logicType/signedLogicType/regType/signedRegType).
	Bit         *Type
	SignedBit   *Type
	Logic       *Type
	SignedLogic *Type
	Reg         *Type
	SignedReg   *Type

	// scalarTypes maps a (builtin, signed) pair to its singleton, the
	// Go-idiomatic replacement for the original's bit-packed
	// scalarTypeTable[flags.bits()&0x7] lookup.
	scalarTypes map[scalarKey]*Type

	// netTypes is keyed by keyword; there are exactly twelve.
	netTypes map[syntax.NetTypeKeyword]*NetType

	// vectorTypes interns packed vector types by (width, flags), matching
	// the original's cache key width | flags<<bitwidthBits.
	vectorTypes map[uint64]*Type

	DefaultTimeScale syntax.TimeScale
}

// bitwidthBits is the number of low key bits reserved for the width when
// composing a vector-type cache key (Flags sit above them), the role the
// original's BITWIDTH_BITS constant plays. It covers the full uint32 width
// range, so no two distinct (width, flags) pairs share a key.
const bitwidthBits = 32

// scalarKey indexes the Bit/Logic/Reg singleton set by builtin kind and
// signedness.
type scalarKey struct {
	builtin syntax.BuiltinKind
	signed  bool
}

// NewRegistry builds every built-in singleton up front, the way the
// original's Compilation constructor does.
func NewRegistry() *Registry {
	r := &Registry{
		Error:   &Type{Kind: KindError, Name: "<error>"},
		Void:    &Type{Kind: KindVoid, Name: "void"},
		Null:    &Type{Kind: KindNull, Name: "null"},
		CHandle: &Type{Kind: KindCHandle, Name: "chandle"},
		Event:   &Type{Kind: KindEvent, Name: "event"},
		String:  &Type{Kind: KindString, Name: "string"},

		ShortInt:  &Type{Kind: KindPredefinedInteger, Name: "shortint", Width: 16, Flags: FlagSigned, Builtin: syntax.ShortIntType},
		Int:       &Type{Kind: KindPredefinedInteger, Name: "int", Width: 32, Flags: FlagSigned, Builtin: syntax.IntType},
		LongInt:   &Type{Kind: KindPredefinedInteger, Name: "longint", Width: 64, Flags: FlagSigned, Builtin: syntax.LongIntType},
		Byte:      &Type{Kind: KindPredefinedInteger, Name: "byte", Width: 8, Flags: FlagSigned, Builtin: syntax.ByteType},
		Integer:   &Type{Kind: KindPredefinedInteger, Name: "integer", Width: 32, Flags: FlagSigned | FlagFourState, Builtin: syntax.IntegerType},
		Time:      &Type{Kind: KindPredefinedInteger, Name: "time", Width: 64, Flags: FlagFourState, Builtin: syntax.TimeType},
		Real:      &Type{Kind: KindFloating, Name: "real", Width: 64, Builtin: syntax.RealType},
		RealTime:  &Type{Kind: KindFloating, Name: "realtime", Width: 64, Builtin: syntax.RealTimeType},
		ShortReal: &Type{Kind: KindFloating, Name: "shortreal", Width: 32, Builtin: syntax.ShortRealType},

		netTypes:    make(map[syntax.NetTypeKeyword]*NetType, 12),
		vectorTypes: make(map[uint64]*Type, 64),
		scalarTypes: make(map[scalarKey]*Type, 6),

		DefaultTimeScale: syntax.TimeScale{UnitMagnitude: 1, UnitExponent: -9, PrecisionMagnitude: 1, PrecisionExponent: -9},
	}

	r.Bit = &Type{Kind: KindScalar, Name: "bit", Width: 1, Builtin: syntax.BitType}
	r.SignedBit = &Type{Kind: KindScalar, Name: "signed bit", Width: 1, Flags: FlagSigned, Builtin: syntax.BitType}
	r.Logic = &Type{Kind: KindScalar, Name: "logic", Width: 1, Flags: FlagFourState, Builtin: syntax.LogicType}
	r.SignedLogic = &Type{Kind: KindScalar, Name: "signed logic", Width: 1, Flags: FlagSigned | FlagFourState, Builtin: syntax.LogicType}
	r.Reg = &Type{Kind: KindScalar, Name: "reg", Width: 1, Flags: FlagFourState, Builtin: syntax.RegType}
	r.SignedReg = &Type{Kind: KindScalar, Name: "signed reg", Width: 1, Flags: FlagSigned | FlagFourState, Builtin: syntax.RegType}

	r.scalarTypes[scalarKey{syntax.BitType, false}] = r.Bit
	r.scalarTypes[scalarKey{syntax.BitType, true}] = r.SignedBit
	r.scalarTypes[scalarKey{syntax.LogicType, false}] = r.Logic
	r.scalarTypes[scalarKey{syntax.LogicType, true}] = r.SignedLogic
	r.scalarTypes[scalarKey{syntax.RegType, false}] = r.Reg
	r.scalarTypes[scalarKey{syntax.RegType, true}] = r.SignedReg

	for kw, name := range map[syntax.NetTypeKeyword]string{
		syntax.Wire: "wire", syntax.WAnd: "wand", syntax.WOr: "wor",
		syntax.Tri: "tri", syntax.TriAnd: "triand", syntax.TriOr: "trior",
		syntax.Tri0: "tri0", syntax.Tri1: "tri1", syntax.TriReg: "trireg",
		syntax.Supply0: "supply0", syntax.Supply1: "supply1", syntax.UWire: "uwire",
	} {
		r.netTypes[kw] = &NetType{Name: name, Keyword: kw}
	}

	return r
}

// GetScalarType returns the singleton bit/logic/reg type for the given
// builtin kind and signedness, the Go-idiomatic replacement for the
// original's flags.bits()&0x7 table lookup.
func (r *Registry) GetScalarType(builtin syntax.BuiltinKind, signed bool) *Type {
	if t, ok := r.scalarTypes[scalarKey{builtin, signed}]; ok {
		return t
	}
	return r.Error
}

// GetNetType returns the singleton for a net-type keyword, or nil if the
// keyword names no net type (e.g. "none").
func (r *Registry) GetNetType(kw syntax.NetTypeKeyword) *NetType {
	return r.netTypes[kw]
}

// GetVectorType interns a packed [width-1:0] vector type by (width, flags),
// returning the existing singleton on a repeat request. Matches getType's
// vector-type cache keyed by width | flags<<BITWIDTH_BITS.
func (r *Registry) GetVectorType(width int, flags Flags) *Type {
	w, err := safecast.Conv[uint32](width)
	if err != nil {
		panic(fmt.Errorf("vector width overflow: %w", err))
	}
	key := uint64(w) | uint64(flags)<<bitwidthBits
	if t, ok := r.vectorTypes[key]; ok {
		return t
	}
	name := fmt.Sprintf("[%d:0]", width-1)
	if flags&FlagSigned != 0 {
		name = "signed " + name
	}
	t := &Type{Kind: KindVector, Name: name, Width: width, Flags: flags}
	r.vectorTypes[key] = t
	return t
}
