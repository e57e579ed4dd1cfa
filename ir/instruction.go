package ir

import "fmt"

// Opcode identifies an instruction variant. The set is closed: anything else
// is rejected as an unknown opcode at build and optimize time.
type Opcode uint8

const (
	OpInvalid Opcode = iota
	OpAllocObject
	OpGetArg
	OpLoad
	OpStore
	OpEscape
	OpAdd
	OpMul
)

// String returns the mnemonic used in textual listings. AllocObject renders
// generically; use Instruction.Mnemonic for the typed alloc_* spelling.
func (op Opcode) String() string {
	switch op {
	case OpAllocObject:
		return "alloc"
	case OpGetArg:
		return "getarg"
	case OpLoad:
		return "load"
	case OpStore:
		return "store"
	case OpEscape:
		return "escape"
	case OpAdd:
		return "add"
	case OpMul:
		return "mul"
	}
	return fmt.Sprintf("unknown(%d)", uint8(op))
}

// HasResult reports whether the opcode produces a value later instructions
// can reference. Stores and escapes occupy a slot for sequencing but their
// result is never referenced.
func (op Opcode) HasResult() bool {
	switch op {
	case OpAllocObject, OpGetArg, OpLoad, OpAdd, OpMul:
		return true
	default:
		return false
	}
}

// Instruction is a tagged variant over the closed opcode set. Which fields
// are meaningful depends on Op:
//
//	AllocObject  Type
//	GetArg       Input
//	Load         Object, Offset
//	Store        Object, Offset, Val
//	Escape       Val
//	Add, Mul     LHS, RHS
type Instruction struct {
	Object Value
	Val    Value
	LHS    Value
	RHS    Value
	Offset int64
	Input  int
	Op     Opcode
	Type   ObjectType
}

// Mnemonic returns the listing spelling of the instruction: typed
// allocations as alloc_array, alloc_hash, ..., untyped allocation as alloc,
// everything else as the opcode name.
func (in Instruction) Mnemonic() string {
	if in.Op == OpAllocObject && in.Type != TypeUnknown {
		return "alloc_" + in.Type.String()
	}
	return in.Op.String()
}

// AllocTypeNamed maps a typed allocation mnemonic back to its object type.
// The generic "alloc" maps to TypeUnknown.
func AllocTypeNamed(mnemonic string) (ObjectType, bool) {
	switch mnemonic {
	case "alloc":
		return TypeUnknown, true
	case "alloc_array":
		return TypeArray, true
	case "alloc_hash":
		return TypeHash, true
	case "alloc_string":
		return TypeString, true
	case "alloc_integer":
		return TypeInteger, true
	case "alloc_float":
		return TypeFloat, true
	case "alloc_symbol":
		return TypeSymbol, true
	case "alloc_range":
		return TypeRange, true
	case "alloc_regexp":
		return TypeRegexp, true
	}
	return TypeUnknown, false
}
