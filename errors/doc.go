// Package errors provides structured error types for the lsopt library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes the offending opcode, instruction index
// or source line, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseOptimize, errors.KindDanglingReference).
//		Op("store").
//		Index(4).
//		Detail("value operand is undefined").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.DanglingReference(errors.PhaseBuild, "load", 2)
//	err := errors.Syntax(7, "expected ')' after arguments")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
