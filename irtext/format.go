package irtext

import (
	"strconv"
	"strings"

	"github.com/wippyai/lsopt/ir"
)

// Format renders a block as one instruction per line. Result-bearing
// instructions are assigned varN names, zero-based in render order, so an
// eliminated instruction produces no line and consumes no number. Stores and
// escapes render without a result variable:
//
//	var0 = alloc_array()
//	var1 = load(var0, 0)
//	store(var1, 4, "x")
//	escape(var1)
//
// The listing is deterministic and diagnostic only; Parse accepts it back.
func Format(b *ir.Block) string {
	names := make(map[ir.Value]string, b.Len())
	lines := make([]string, 0, b.Len())
	next := 0

	for i := 0; i < b.Len(); i++ {
		in := b.Instr(i)
		var sb strings.Builder

		if in.Op.HasResult() {
			name := "var" + strconv.Itoa(next)
			next++
			names[b.ValueAt(i)] = name
			sb.WriteString(name)
			sb.WriteString(" = ")
		}

		sb.WriteString(in.Mnemonic())
		sb.WriteByte('(')
		sb.WriteString(strings.Join(operands(in, names), ", "))
		sb.WriteByte(')')
		lines = append(lines, sb.String())
	}

	return strings.Join(lines, "\n")
}

func operands(in ir.Instruction, names map[ir.Value]string) []string {
	switch in.Op {
	case ir.OpAllocObject:
		return nil
	case ir.OpGetArg:
		return []string{strconv.Itoa(in.Input)}
	case ir.OpLoad:
		return []string{operand(in.Object, names), strconv.FormatInt(in.Offset, 10)}
	case ir.OpStore:
		return []string{operand(in.Object, names), strconv.FormatInt(in.Offset, 10), operand(in.Val, names)}
	case ir.OpEscape:
		return []string{operand(in.Val, names)}
	case ir.OpAdd, ir.OpMul:
		return []string{operand(in.LHS, names), operand(in.RHS, names)}
	}
	return nil
}

func operand(v ir.Value, names map[ir.Value]string) string {
	if v.IsConst() {
		return v.Literal().String()
	}
	if name, ok := names[v]; ok {
		return name
	}
	return "?"
}
