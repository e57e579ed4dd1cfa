package ir

import "github.com/wippyai/lsopt/errors"

// Block is an ordered sequence of instructions in a single straight-line
// region: no branches, loops, or merges. Instructions live in an arena slice;
// a Value referencing an instruction is the block pointer plus the arena
// index, so identity is stable and never recycled.
//
// Block is not safe for concurrent mutation. Independent blocks can be built
// and optimized concurrently.
type Block struct {
	instrs []Instruction
}

// NewBlock returns an empty block.
func NewBlock() *Block {
	return &Block{instrs: make([]Instruction, 0, 16)}
}

// Len returns the number of instructions in the block.
func (b *Block) Len() int { return len(b.instrs) }

// Instr returns a copy of the instruction at arena index i.
func (b *Block) Instr(i int) Instruction { return b.instrs[i] }

// ValueAt returns the result identity of the instruction at arena index i.
// Every instruction has one, including stores and escapes; whether later
// instructions may reference it is a property of the opcode, not the Value.
func (b *Block) ValueAt(i int) Value {
	if i < 0 || i >= len(b.instrs) {
		panic("ir: ValueAt index out of range")
	}
	return Value{kind: ValueInstr, block: b, index: i}
}

// Append validates the instruction's operands and adds it to the block,
// returning its result Value. Operands must be constants or references to
// instructions already present in this block; offsets are opaque and never
// range-checked. Appending preserves program order.
func (b *Block) Append(in Instruction) (Value, error) {
	switch in.Op {
	case OpAllocObject, OpGetArg:
		return b.push(in)
	case OpLoad:
		return b.push(in, in.Object)
	case OpStore:
		return b.push(in, in.Object, in.Val)
	case OpEscape:
		return b.push(in, in.Val)
	case OpAdd, OpMul:
		return b.push(in, in.LHS, in.RHS)
	default:
		return Value{}, errors.UnknownOpcode(errors.PhaseBuild, in.Op.String(), len(b.instrs))
	}
}

func (b *Block) push(in Instruction, operands ...Value) (Value, error) {
	for _, v := range operands {
		if err := b.checkOperand(in.Op, v); err != nil {
			return Value{}, err
		}
	}
	b.instrs = append(b.instrs, in)
	return Value{kind: ValueInstr, block: b, index: len(b.instrs) - 1}, nil
}

func (b *Block) checkOperand(op Opcode, v Value) error {
	switch v.kind {
	case ValueConst:
		return nil
	case ValueInstr:
		if v.block != b {
			return errors.ForeignValue(errors.PhaseBuild, op.String(), len(b.instrs))
		}
		if v.index < 0 || v.index >= len(b.instrs) {
			return errors.DanglingReference(errors.PhaseBuild, op.String(), len(b.instrs))
		}
		return nil
	default:
		return errors.InvalidInput(errors.PhaseBuild, "zero Value used as %s operand", op)
	}
}

// AllocObject appends an allocation of a fresh object tagged with t.
func (b *Block) AllocObject(t ObjectType) (Value, error) {
	return b.Append(Instruction{Op: OpAllocObject, Type: t})
}

// Typed allocation sugar over AllocObject.

func (b *Block) AllocArray() (Value, error)   { return b.AllocObject(TypeArray) }
func (b *Block) AllocHash() (Value, error)    { return b.AllocObject(TypeHash) }
func (b *Block) AllocString() (Value, error)  { return b.AllocObject(TypeString) }
func (b *Block) AllocInteger() (Value, error) { return b.AllocObject(TypeInteger) }
func (b *Block) AllocFloat() (Value, error)   { return b.AllocObject(TypeFloat) }
func (b *Block) AllocSymbol() (Value, error)  { return b.AllocObject(TypeSymbol) }
func (b *Block) AllocRange() (Value, error)   { return b.AllocObject(TypeRange) }
func (b *Block) AllocRegexp() (Value, error)  { return b.AllocObject(TypeRegexp) }

// GetArg appends an opaque block input. Its provenance is unknown, so it is
// TypeUnknown for alias analysis.
func (b *Block) GetArg(n int) (Value, error) {
	if n < 0 {
		return Value{}, errors.InvalidInput(errors.PhaseBuild, "negative input index %d", n)
	}
	return b.Append(Instruction{Op: OpGetArg, Input: n})
}

// Load appends a load of the field slot (obj, offset).
func (b *Block) Load(obj Value, offset int64) (Value, error) {
	return b.Append(Instruction{Op: OpLoad, Object: obj, Offset: offset})
}

// Store appends a store of val into the field slot (obj, offset). Stores
// produce no usable result.
func (b *Block) Store(obj Value, offset int64, val Value) error {
	_, err := b.Append(Instruction{Op: OpStore, Object: obj, Offset: offset, Val: val})
	return err
}

// Escape appends a marker that val is observable outside the block. Escapes
// are never removed by optimization.
func (b *Block) Escape(val Value) error {
	_, err := b.Append(Instruction{Op: OpEscape, Val: val})
	return err
}

// Add appends an integer addition.
func (b *Block) Add(x, y Value) (Value, error) {
	return b.Append(Instruction{Op: OpAdd, LHS: x, RHS: y})
}

// Mul appends an integer multiplication.
func (b *Block) Mul(x, y Value) (Value, error) {
	return b.Append(Instruction{Op: OpMul, LHS: x, RHS: y})
}
