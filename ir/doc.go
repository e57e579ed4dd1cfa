// Package ir models a single straight-line block of memory operations on
// heap-allocated objects.
//
// A Block is an append-only arena of instructions. Construction methods
// return the new instruction's result Value, which later instructions use as
// operands:
//
//	b := ir.NewBlock()
//	arr, _ := b.AllocArray()
//	v, _ := b.Load(arr, 0)
//	_ = b.Store(arr, 4, ir.Const(5))
//	_ = b.Escape(v)
//
// Values referencing instructions compare by identity; constants compare by
// value. Offsets are opaque integers identifying a field slot, never byte
// ranges, so the model has no overlap reasoning below field granularity.
//
// Operands are validated on append: referencing a value not yet defined in
// the same block is a dangling_reference error, and the instruction is not
// added. There is no other well-formedness condition; any offset and any
// constant are legal.
package ir
