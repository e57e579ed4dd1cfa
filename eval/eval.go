package eval

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"github.com/wippyai/lsopt/errors"
	"github.com/wippyai/lsopt/ir"
)

// WordKind discriminates runtime word variants.
type WordKind uint8

const (
	WordInt WordKind = iota
	WordString
	WordObject
	WordFresh
)

// Word is a concrete runtime value produced by executing a block: an integer
// or string literal, an object reference, or the unknown contents of a
// memory cell that was never written. Words are comparable; object identity
// is the allocation ordinal, which the optimizer preserves because
// allocations are never removed or reordered.
type Word struct {
	Str  string
	Num  int64
	Kind WordKind
}

// Int returns an integer word.
func Int(n int64) Word { return Word{Kind: WordInt, Num: n} }

// Str returns a string word.
func Str(s string) Word { return Word{Kind: WordString, Str: s} }

// String renders the word for diagnostics.
func (w Word) String() string {
	switch w.Kind {
	case WordInt:
		return fmt.Sprintf("%d", w.Num)
	case WordString:
		return fmt.Sprintf("%q", w.Str)
	case WordObject:
		return fmt.Sprintf("obj%d", w.Num)
	case WordFresh:
		return fmt.Sprintf("mem%x", uint64(w.Num))
	}
	return "<invalid>"
}

// cell is one concrete memory slot.
type cell struct {
	base Word
	off  int64
}

// Result holds the observable outcome of executing a block.
type Result struct {
	// Escaped lists the escaped words in program order. Two blocks are
	// observationally equivalent exactly when these lists are equal for all
	// inputs.
	Escaped []Word
}

// InputCount returns how many input words a block consumes: one past the
// highest getarg index, or zero if the block takes no inputs.
func InputCount(b *ir.Block) int {
	max := -1
	for i := 0; i < b.Len(); i++ {
		in := b.Instr(i)
		if in.Op == ir.OpGetArg && in.Input > max {
			max = in.Input
		}
	}
	return max + 1
}

// Run executes a block against a concrete memory model and records the
// escaped values. args supplies the block's getarg inputs and must cover
// InputCount(b).
//
// A load from a cell that was never written yields a word derived
// deterministically from the cell, so executing a block and its optimized
// form observes the same uninitialized memory.
func Run(b *ir.Block, args []Word) (Result, error) {
	words := make(map[ir.Value]Word, b.Len())
	memory := make(map[cell]Word)
	var escaped []Word
	objects := int64(0)

	operand := func(v ir.Value, op ir.Opcode, i int) (Word, error) {
		if v.IsConst() {
			lit := v.Literal()
			if lit.Kind == ir.LiteralString {
				return Str(lit.Str), nil
			}
			return Int(lit.Int), nil
		}
		if w, ok := words[v]; ok {
			return w, nil
		}
		return Word{}, errors.DanglingReference(errors.PhaseEval, op.String(), i)
	}

	for i := 0; i < b.Len(); i++ {
		in := b.Instr(i)

		switch in.Op {
		case ir.OpAllocObject:
			objects++
			words[b.ValueAt(i)] = Word{Kind: WordObject, Num: objects}

		case ir.OpGetArg:
			if in.Input >= len(args) {
				return Result{}, errors.MissingArgument(in.Input)
			}
			words[b.ValueAt(i)] = args[in.Input]

		case ir.OpAdd, ir.OpMul:
			x, err := operand(in.LHS, in.Op, i)
			if err != nil {
				return Result{}, err
			}
			y, err := operand(in.RHS, in.Op, i)
			if err != nil {
				return Result{}, err
			}
			if x.Kind != WordInt || y.Kind != WordInt {
				return Result{}, errors.InvalidInput(errors.PhaseEval, "%s requires integer operands at instruction %d", in.Op, i)
			}
			n := x.Num + y.Num
			if in.Op == ir.OpMul {
				n = x.Num * y.Num
			}
			words[b.ValueAt(i)] = Int(n)

		case ir.OpLoad:
			base, err := operand(in.Object, in.Op, i)
			if err != nil {
				return Result{}, err
			}
			c := cell{base: base, off: in.Offset}
			w, ok := memory[c]
			if !ok {
				w = freshWord(c)
				memory[c] = w
			}
			words[b.ValueAt(i)] = w

		case ir.OpStore:
			base, err := operand(in.Object, in.Op, i)
			if err != nil {
				return Result{}, err
			}
			val, err := operand(in.Val, in.Op, i)
			if err != nil {
				return Result{}, err
			}
			memory[cell{base: base, off: in.Offset}] = val

		case ir.OpEscape:
			w, err := operand(in.Val, in.Op, i)
			if err != nil {
				return Result{}, err
			}
			escaped = append(escaped, w)

		default:
			return Result{}, errors.UnknownOpcode(errors.PhaseEval, in.Op.String(), i)
		}
	}

	return Result{Escaped: escaped}, nil
}

// freshWord derives the contents of an unwritten cell from the cell itself.
func freshWord(c cell) Word {
	h := fnv.New64a()
	h.Write([]byte{byte(c.base.Kind)})
	h.Write([]byte(c.base.Str))
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(c.base.Num))
	binary.LittleEndian.PutUint64(buf[8:], uint64(c.off))
	h.Write(buf[:])
	return Word{Kind: WordFresh, Num: int64(h.Sum64())}
}
