package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseBuild    Phase = "build"    // block construction
	PhaseOptimize Phase = "optimize" // optimization pass
	PhaseParse    Phase = "parse"    // textual IR parsing
	PhaseEval     Phase = "eval"     // reference evaluation
)

// Kind categorizes the error
type Kind string

const (
	KindDanglingReference Kind = "dangling_reference"
	KindForeignValue      Kind = "foreign_value"
	KindUnknownOpcode     Kind = "unknown_opcode"
	KindSyntax            Kind = "syntax"
	KindInvalidInput      Kind = "invalid_input"
	KindMissingArgument   Kind = "missing_argument"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string
	Detail string
	Index  int // instruction index, -1 when not applicable
	Line   int // source line for parse errors, 0 when not applicable
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}
	if e.Index >= 0 {
		fmt.Fprintf(&b, " at instruction %d", e.Index)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
			Index: -1,
		},
	}
}

// Op sets the opcode name the error refers to
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Index sets the instruction index the error refers to
func (b *Builder) Index(i int) *Builder {
	b.err.Index = i
	return b
}

// Line sets the source line for parse errors
func (b *Builder) Line(n int) *Builder {
	b.err.Line = n
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// DanglingReference creates an error for an operand that names a value not
// defined earlier in the same block
func DanglingReference(phase Phase, op string, index int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDanglingReference,
		Op:     op,
		Index:  index,
		Detail: "operand references a value not yet defined in this block",
	}
}

// ForeignValue creates an error for an operand owned by a different block
func ForeignValue(phase Phase, op string, index int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindForeignValue,
		Op:     op,
		Index:  index,
		Detail: "operand references a value owned by another block",
	}
}

// UnknownOpcode creates an error for an instruction outside the closed opcode set
func UnknownOpcode(phase Phase, op string, index int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownOpcode,
		Op:     op,
		Index:  index,
		Detail: "opcode is not part of the instruction set",
	}
}

// Syntax creates a parse error at a source line
func Syntax(line int, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindSyntax,
		Index:  -1,
		Line:   line,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Index:  -1,
		Detail: detail,
	}
}

// MissingArgument creates an error for an evaluation input that was not supplied
func MissingArgument(n int) *Error {
	return &Error{
		Phase:  PhaseEval,
		Kind:   KindMissingArgument,
		Index:  -1,
		Detail: fmt.Sprintf("no value supplied for block input %d", n),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Index:  -1,
		Detail: detail,
		Cause:  cause,
	}
}
