package opt

import "github.com/wippyai/lsopt/ir"

// Location identifies one abstract memory slot together with the static type
// of its base object. Type is TypeUnknown unless the object is a typed
// allocation from the same block.
type Location struct {
	Object ir.Value
	Offset int64
	Type   ir.ObjectType
}

// MayAlias reports whether two abstract memory slots can refer to the same
// storage. It is symmetric, has no side effects, and performs no allocation.
//
// The decision table, in order:
//  1. Identical base objects alias exactly when the offsets are equal; the
//     same object at different offsets is provably distinct slots.
//  2. Two distinct concrete types never alias, regardless of offset.
//  3. Everything else (distinct objects with the same concrete type, or with
//     TypeUnknown on either side) is conservatively treated as aliasing.
func MayAlias(a, b Location) bool {
	if a.Object == b.Object {
		return a.Offset == b.Offset
	}
	if a.Type != ir.TypeUnknown && b.Type != ir.TypeUnknown && a.Type != b.Type {
		return false
	}
	return true
}
