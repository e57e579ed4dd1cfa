package irtext

import (
	"strconv"
	"strings"

	"github.com/wippyai/lsopt/errors"
	"github.com/wippyai/lsopt/ir"
)

// Parse builds a block from the listing format produced by Format. Blank
// lines are skipped and everything after ';' is a comment. Each remaining
// line is either
//
//	name = op(args...)
//
// for a result-bearing op, or op(args...) for store and escape. Arguments
// are integer literals, quoted string literals, or previously defined names.
func Parse(src string) (*ir.Block, error) {
	b := ir.NewBlock()
	defs := make(map[string]ir.Value)

	for n, raw := range strings.Split(src, "\n") {
		line := raw
		if i := strings.IndexByte(line, ';'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := parseLine(b, defs, line, n+1); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func parseLine(b *ir.Block, defs map[string]ir.Value, line string, lineNo int) error {
	open := strings.IndexByte(line, '(')
	if open < 0 {
		return errors.Syntax(lineNo, "expected '(' after operation name")
	}
	if !strings.HasSuffix(line, ")") {
		return errors.Syntax(lineNo, "expected ')' at end of line")
	}

	head := line[:open]
	result := ""
	if eq := strings.IndexByte(head, '='); eq >= 0 {
		result = strings.TrimSpace(head[:eq])
		head = head[eq+1:]
		if result == "" {
			return errors.Syntax(lineNo, "empty result name before '='")
		}
		if _, dup := defs[result]; dup {
			return errors.Syntax(lineNo, "result name %q already defined", result)
		}
	}
	op := strings.TrimSpace(head)
	if op == "" {
		return errors.Syntax(lineNo, "missing operation name")
	}

	args, err := splitArgs(line[open+1:len(line)-1], lineNo)
	if err != nil {
		return err
	}

	v, err := appendOp(b, defs, op, args, lineNo)
	if err != nil {
		return err
	}

	if result != "" {
		if v.Kind() != ir.ValueInstr {
			return errors.Syntax(lineNo, "%s does not produce a result", op)
		}
		defs[result] = v
	}
	return nil
}

func appendOp(b *ir.Block, defs map[string]ir.Value, op string, args []string, lineNo int) (ir.Value, error) {
	if t, ok := ir.AllocTypeNamed(op); ok {
		if len(args) != 0 {
			return ir.Value{}, errors.Syntax(lineNo, "%s takes no arguments", op)
		}
		return b.AllocObject(t)
	}

	switch op {
	case "getarg":
		if len(args) != 1 {
			return ir.Value{}, errors.Syntax(lineNo, "getarg takes exactly one argument")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return ir.Value{}, errors.Syntax(lineNo, "getarg index must be an integer, got %q", args[0])
		}
		return b.GetArg(n)

	case "load":
		if len(args) != 2 {
			return ir.Value{}, errors.Syntax(lineNo, "load takes an object and an offset")
		}
		obj, err := resolveArg(defs, args[0], lineNo)
		if err != nil {
			return ir.Value{}, err
		}
		off, err := parseOffset(args[1], lineNo)
		if err != nil {
			return ir.Value{}, err
		}
		return b.Load(obj, off)

	case "store":
		if len(args) != 3 {
			return ir.Value{}, errors.Syntax(lineNo, "store takes an object, an offset, and a value")
		}
		obj, err := resolveArg(defs, args[0], lineNo)
		if err != nil {
			return ir.Value{}, err
		}
		off, err := parseOffset(args[1], lineNo)
		if err != nil {
			return ir.Value{}, err
		}
		val, err := resolveArg(defs, args[2], lineNo)
		if err != nil {
			return ir.Value{}, err
		}
		return ir.Value{}, b.Store(obj, off, val)

	case "escape":
		if len(args) != 1 {
			return ir.Value{}, errors.Syntax(lineNo, "escape takes exactly one argument")
		}
		val, err := resolveArg(defs, args[0], lineNo)
		if err != nil {
			return ir.Value{}, err
		}
		return ir.Value{}, b.Escape(val)

	case "add", "mul":
		if len(args) != 2 {
			return ir.Value{}, errors.Syntax(lineNo, "%s takes exactly two arguments", op)
		}
		x, err := resolveArg(defs, args[0], lineNo)
		if err != nil {
			return ir.Value{}, err
		}
		y, err := resolveArg(defs, args[1], lineNo)
		if err != nil {
			return ir.Value{}, err
		}
		if op == "add" {
			return b.Add(x, y)
		}
		return b.Mul(x, y)

	default:
		return ir.Value{}, errors.New(errors.PhaseParse, errors.KindUnknownOpcode).
			Op(op).
			Line(lineNo).
			Detail("operation is not part of the instruction set").
			Build()
	}
}

// resolveArg classifies one argument: quoted string constant, integer
// constant, or a reference to a previously defined name.
func resolveArg(defs map[string]ir.Value, arg string, lineNo int) (ir.Value, error) {
	if strings.HasPrefix(arg, `"`) {
		s, err := strconv.Unquote(arg)
		if err != nil {
			return ir.Value{}, errors.Syntax(lineNo, "malformed string literal %s", arg)
		}
		return ir.ConstString(s), nil
	}
	if n, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return ir.Const(n), nil
	}
	if v, ok := defs[arg]; ok {
		return v, nil
	}
	return ir.Value{}, errors.New(errors.PhaseParse, errors.KindDanglingReference).
		Line(lineNo).
		Detail("%q is not defined earlier in the block", arg).
		Build()
}

func parseOffset(arg string, lineNo int) (int64, error) {
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, errors.Syntax(lineNo, "offset must be an integer, got %q", arg)
	}
	return n, nil
}

// splitArgs splits a comma-separated argument list, honoring quoted strings.
func splitArgs(src string, lineNo int) ([]string, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, nil
	}

	var args []string
	var cur strings.Builder
	inString := false

	for i := 0; i < len(src); i++ {
		c := src[i]
		switch {
		case inString:
			cur.WriteByte(c)
			if c == '\\' && i+1 < len(src) {
				i++
				cur.WriteByte(src[i])
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
			cur.WriteByte(c)
		case c == ',':
			args = append(args, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if inString {
		return nil, errors.Syntax(lineNo, "unterminated string literal")
	}
	args = append(args, strings.TrimSpace(cur.String()))

	for _, a := range args {
		if a == "" {
			return nil, errors.Syntax(lineNo, "empty argument")
		}
	}
	return args, nil
}
