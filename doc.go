// Package lsopt provides a local load/store optimizer for straight-line IR
// blocks, using type-based alias analysis (TBAA) to prove that memory
// operations on differently-typed heap objects cannot interfere.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	lsopt/               Root package, documentation only
//	├── ir/              Block model: instructions, values, typed allocations
//	├── opt/             The optimization pass and the MayAlias predicate
//	├── irtext/          Textual listing format: Format and Parse
//	├── eval/            Reference evaluator for checking observable outputs
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Build a block, optimize it, print the result:
//
//	b := ir.NewBlock()
//	arr, _ := b.AllocArray()
//	h, _ := b.AllocHash()
//	v1, _ := b.Load(arr, 0)
//	_ = b.Store(h, 0, ir.Const(42)) // cannot touch the array load
//	v2, _ := b.Load(arr, 0)         // forwarded to v1
//	_ = b.Escape(v1)
//	_ = b.Escape(v2)
//
//	out, err := opt.Optimize(b)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(irtext.Format(out))
//
// # What the Optimizer Does
//
// Walking a block once in program order, it removes loads whose slot
// contents are already known (forwarding their uses to the known value) and
// stores whose value is already resident at the target slot. A store
// invalidates only the slots it may alias: the same object at another
// offset, or an object of a different concrete type, is provably untouched.
//
// # Scope
//
// The input is one straight-line block: no branches, loops, merges, or
// interprocedural reasoning. Offsets are opaque field identifiers, never
// byte ranges, so there is no overlap reasoning below field granularity.
//
// # Thread Safety
//
// An optimize call owns all of its state. Independent blocks can be built
// and optimized concurrently; a single Block must not be mutated from
// multiple goroutines.
package lsopt
