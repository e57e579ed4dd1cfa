package ir

import "strconv"

// ObjectType tags an allocation for type-based alias analysis.
// TypeUnknown is the conservative default for values whose provenance is not
// a typed allocation.
type ObjectType uint8

const (
	TypeUnknown ObjectType = iota
	TypeArray
	TypeHash
	TypeString
	TypeInteger
	TypeFloat
	TypeSymbol
	TypeRange
	TypeRegexp
)

// String returns the lower-case name used in textual listings.
func (t ObjectType) String() string {
	switch t {
	case TypeUnknown:
		return "unknown"
	case TypeArray:
		return "array"
	case TypeHash:
		return "hash"
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeFloat:
		return "float"
	case TypeSymbol:
		return "symbol"
	case TypeRange:
		return "range"
	case TypeRegexp:
		return "regexp"
	}
	return "invalid"
}

// ValueKind discriminates instruction references from constants.
type ValueKind uint8

const (
	ValueInvalid ValueKind = iota
	ValueInstr
	ValueConst
)

// LiteralKind discriminates constant payloads.
type LiteralKind uint8

const (
	LiteralInt LiteralKind = iota
	LiteralString
)

// Literal is the payload of a constant Value.
type Literal struct {
	Str  string
	Int  int64
	Kind LiteralKind
}

// String renders the literal the way listings print it: integers bare,
// strings quoted.
func (l Literal) String() string {
	if l.Kind == LiteralString {
		return strconv.Quote(l.Str)
	}
	return strconv.FormatInt(l.Int, 10)
}

// Value is the result identity of an instruction, or an immediate constant.
//
// Instruction references compare by identity: the owning block plus the
// instruction's arena index, so two references are equal exactly when they
// name the same instruction. Constants compare by value, so two Const(42)
// are interchangeable. Plain == implements both rules, which also makes
// Value usable as a map key.
//
// The zero Value is invalid and rejected as an operand.
type Value struct {
	block *Block
	lit   Literal
	index int
	kind  ValueKind
}

// Const returns an integer constant Value.
func Const(n int64) Value {
	return Value{kind: ValueConst, lit: Literal{Kind: LiteralInt, Int: n}}
}

// ConstString returns a string constant Value.
func ConstString(s string) Value {
	return Value{kind: ValueConst, lit: Literal{Kind: LiteralString, Str: s}}
}

// Kind reports whether the value is an instruction reference or a constant.
func (v Value) Kind() ValueKind { return v.kind }

// IsConst reports whether the value is an immediate constant.
func (v Value) IsConst() bool { return v.kind == ValueConst }

// Literal returns the payload of a constant Value. It is meaningful only
// when IsConst reports true.
func (v Value) Literal() Literal { return v.lit }

// String renders the value for diagnostics: constants as their literal,
// instruction references as vN where N is the arena index.
func (v Value) String() string {
	switch v.kind {
	case ValueConst:
		return v.lit.String()
	case ValueInstr:
		return "v" + strconv.Itoa(v.index)
	}
	return "<invalid>"
}
