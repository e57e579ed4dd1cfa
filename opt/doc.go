// Package opt implements a single-pass local optimizer for straight-line IR
// blocks: redundant-load elimination, store-to-load forwarding, and
// dead-store elimination, sharpened by type-based alias analysis (TBAA).
//
// The pass maintains a compile-time view of the heap, keyed by (object,
// offset) slots. A load whose slot is already known is removed and its uses
// redirected to the known value; a store of a value already resident at its
// slot is removed; any other store invalidates exactly the slots it may
// alias:
//
//   - the same object at a different offset is never invalidated;
//   - an object of a different concrete type is never invalidated;
//   - everything else is invalidated conservatively.
//
// Escape markers are never removed, so the observable outputs of a block are
// preserved exactly. Optimize is a pure function from block to block: the
// input is read-only, all state is local to one call, and optimizing an
// already-optimized block changes nothing.
package opt
