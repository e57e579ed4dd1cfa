// Package irtext provides the textual listing format for IR blocks.
//
// Format renders one instruction per line with stable, zero-based varN
// numbering of result-bearing instructions; Parse reads the same format back
// into a block, which keeps test fixtures and demo scenarios human-readable:
//
//	var0 = alloc_array()
//	var1 = alloc_hash()
//	var2 = load(var0, 0)      ; survives the store below
//	store(var1, 0, 42)
//	escape(var2)
//
// The format is diagnostic: nothing in the core consumes it, and no
// compatibility is promised beyond Parse(Format(b)) reproducing b's
// instruction sequence.
package irtext
