// Package eval executes IR blocks against a concrete memory model.
//
// It is the reference semantics the optimizer is checked against: a block
// and its optimized form must escape identical word sequences for every
// choice of inputs. Loads from never-written cells yield words derived
// deterministically from the cell, so "uninitialized" memory is observed
// consistently across the two runs.
//
// The evaluator is intentionally naive - a map from cells to words walked in
// program order - and performs no optimization of its own.
package eval
