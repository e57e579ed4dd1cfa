package opt

import (
	"go.uber.org/zap"

	"github.com/wippyai/lsopt/errors"
	"github.com/wippyai/lsopt/ir"
)

// memoryKey identifies one abstract heap slot: a base object and an opaque
// field offset. Two keys name the same slot only when the objects are
// identity-equal.
type memoryKey struct {
	obj ir.Value
	off int64
}

// Optimize runs redundant-load elimination, store-to-load forwarding, and
// dead-store elimination over a single straight-line block, using type-based
// alias analysis to keep loads alive across stores that provably cannot
// touch them.
//
// The input block is treated as read-only; a new block is returned. The pass
// walks the instructions exactly once in program order, is deterministic,
// and keeps all state local to the call, so independent blocks can be
// optimized concurrently.
//
// Feeding an instruction that references a value not defined earlier in the
// block, or an opcode outside the closed set, is a precondition violation
// and returns a structured error.
func Optimize(b *ir.Block) (*ir.Block, error) {
	out := ir.NewBlock()

	// heap is the compile-time view of memory: the value known to live at
	// each slot at this point in the walk. Keys and values reference the
	// output block.
	heap := make(map[memoryKey]ir.Value)
	// types records the static type of every allocation emitted so far.
	types := make(map[ir.Value]ir.ObjectType)
	// env maps each input value to its replacement in the output block.
	env := make(map[ir.Value]ir.Value, b.Len())

	log := Logger()

	for i := 0; i < b.Len(); i++ {
		in := b.Instr(i)

		switch in.Op {
		case ir.OpAllocObject:
			v, err := out.Append(in)
			if err != nil {
				return nil, err
			}
			types[v] = in.Type
			env[b.ValueAt(i)] = v

		case ir.OpGetArg:
			v, err := out.Append(in)
			if err != nil {
				return nil, err
			}
			env[b.ValueAt(i)] = v

		case ir.OpAdd, ir.OpMul:
			lhs, err := resolve(env, in.LHS, in.Op, i)
			if err != nil {
				return nil, err
			}
			rhs, err := resolve(env, in.RHS, in.Op, i)
			if err != nil {
				return nil, err
			}
			in.LHS, in.RHS = lhs, rhs
			v, err := out.Append(in)
			if err != nil {
				return nil, err
			}
			env[b.ValueAt(i)] = v

		case ir.OpLoad:
			obj, err := resolve(env, in.Object, in.Op, i)
			if err != nil {
				return nil, err
			}
			key := memoryKey{obj: obj, off: in.Offset}
			// Exact-key hits take priority over alias reasoning: only a key
			// whose object is identity-equal counts.
			if known, ok := heap[key]; ok {
				env[b.ValueAt(i)] = known
				log.Debug("load forwarded",
					zap.Int("index", i),
					zap.Stringer("object", obj),
					zap.Int64("offset", in.Offset),
					zap.Stringer("value", known))
				continue
			}
			in.Object = obj
			v, err := out.Append(in)
			if err != nil {
				return nil, err
			}
			heap[key] = v
			env[b.ValueAt(i)] = v

		case ir.OpStore:
			obj, err := resolve(env, in.Object, in.Op, i)
			if err != nil {
				return nil, err
			}
			val, err := resolve(env, in.Val, in.Op, i)
			if err != nil {
				return nil, err
			}
			key := memoryKey{obj: obj, off: in.Offset}
			// Dead store: memory already holds this value at this slot.
			if known, ok := heap[key]; ok && known == val {
				log.Debug("dead store elided",
					zap.Int("index", i),
					zap.Stringer("object", obj),
					zap.Int64("offset", in.Offset))
				continue
			}
			// Invalidate every entry the store may clobber. The slot being
			// written survives; it is overwritten below, not invalidated.
			loc := Location{Object: obj, Offset: in.Offset, Type: typeOf(types, obj)}
			for k := range heap {
				if k == key {
					continue
				}
				if MayAlias(Location{Object: k.obj, Offset: k.off, Type: typeOf(types, k.obj)}, loc) {
					delete(heap, k)
				}
			}
			in.Object, in.Val = obj, val
			if _, err := out.Append(in); err != nil {
				return nil, err
			}
			heap[key] = val

		case ir.OpEscape:
			val, err := resolve(env, in.Val, in.Op, i)
			if err != nil {
				return nil, err
			}
			in.Val = val
			if _, err := out.Append(in); err != nil {
				return nil, err
			}

		default:
			return nil, errors.UnknownOpcode(errors.PhaseOptimize, in.Op.String(), i)
		}
	}

	return out, nil
}

// resolve maps an input operand to its output-block replacement. Constants
// pass through unchanged; an instruction reference with no recorded
// replacement was never defined in this block.
func resolve(env map[ir.Value]ir.Value, v ir.Value, op ir.Opcode, index int) (ir.Value, error) {
	switch v.Kind() {
	case ir.ValueConst:
		return v, nil
	case ir.ValueInstr:
		if r, ok := env[v]; ok {
			return r, nil
		}
		return ir.Value{}, errors.DanglingReference(errors.PhaseOptimize, op.String(), index)
	default:
		return ir.Value{}, errors.InvalidInput(errors.PhaseOptimize, "zero Value used as %s operand at instruction %d", op, index)
	}
}

func typeOf(types map[ir.Value]ir.ObjectType, v ir.Value) ir.ObjectType {
	if t, ok := types[v]; ok {
		return t
	}
	return ir.TypeUnknown
}
