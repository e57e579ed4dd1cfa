package eval

import (
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/lsopt/errors"
	"github.com/wippyai/lsopt/ir"
)

func TestRun_StoreThenLoad(t *testing.T) {
	b := ir.NewBlock()
	h, _ := b.AllocHash()
	_ = b.Store(h, 0, ir.Const(100))
	v, _ := b.Load(h, 0)
	_ = b.Escape(v)
	_ = b.Escape(ir.ConstString("done"))

	res, err := Run(b, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := []Word{Int(100), Str("done")}
	if diff := cmp.Diff(want, res.Escaped); diff != "" {
		t.Errorf("escaped mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_DistinctAllocationsDistinctCells(t *testing.T) {
	b := ir.NewBlock()
	a1, _ := b.AllocArray()
	a2, _ := b.AllocArray()
	_ = b.Store(a1, 0, ir.Const(1))
	_ = b.Store(a2, 0, ir.Const(2))
	v1, _ := b.Load(a1, 0)
	v2, _ := b.Load(a2, 0)
	_ = b.Escape(v1)
	_ = b.Escape(v2)

	res, err := Run(b, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := []Word{Int(1), Int(2)}
	if diff := cmp.Diff(want, res.Escaped); diff != "" {
		t.Errorf("escaped mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_FreshLoadsAreDeterministic(t *testing.T) {
	build := func() *ir.Block {
		b := ir.NewBlock()
		arr, _ := b.AllocArray()
		v1, _ := b.Load(arr, 0)
		v2, _ := b.Load(arr, 0)
		v3, _ := b.Load(arr, 4)
		_ = b.Escape(v1)
		_ = b.Escape(v2)
		_ = b.Escape(v3)
		return b
	}

	r1, err := Run(build(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	r2, err := Run(build(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if diff := cmp.Diff(r1.Escaped, r2.Escaped); diff != "" {
		t.Errorf("two runs observed different uninitialized memory:\n%s", diff)
	}
	if r1.Escaped[0] != r1.Escaped[1] {
		t.Error("two loads of the same unwritten cell returned different words")
	}
	if r1.Escaped[0] == r1.Escaped[2] {
		t.Error("loads of different offsets returned the same fresh word")
	}
	if r1.Escaped[0].Kind != WordFresh {
		t.Errorf("unwritten cell kind = %v, want WordFresh", r1.Escaped[0].Kind)
	}
}

func TestRun_Arithmetic(t *testing.T) {
	b := ir.NewBlock()
	x, _ := b.GetArg(0)
	y, _ := b.GetArg(1)
	sum, _ := b.Add(x, y)
	prod, _ := b.Mul(sum, ir.Const(3))
	_ = b.Escape(prod)

	res, err := Run(b, []Word{Int(4), Int(5)})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	want := []Word{Int(27)}
	if diff := cmp.Diff(want, res.Escaped); diff != "" {
		t.Errorf("escaped mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_ArithmeticRejectsNonIntegers(t *testing.T) {
	b := ir.NewBlock()
	s, _ := b.AllocString()
	v, _ := b.Add(s, ir.Const(1))
	_ = b.Escape(v)

	_, err := Run(b, nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEval, Kind: errors.KindInvalidInput}) {
		t.Errorf("error = %v, want invalid_input", err)
	}
}

func TestRun_MissingArgument(t *testing.T) {
	b := ir.NewBlock()
	g, _ := b.GetArg(2)
	_ = b.Escape(g)

	_, err := Run(b, []Word{Int(1), Int(2)})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseEval, Kind: errors.KindMissingArgument}) {
		t.Errorf("error = %v, want missing_argument", err)
	}
}

func TestInputCount(t *testing.T) {
	tests := []struct {
		name  string
		build func() *ir.Block
		want  int
	}{
		{
			name:  "no inputs",
			build: func() *ir.Block { return ir.NewBlock() },
			want:  0,
		},
		{
			name: "single input",
			build: func() *ir.Block {
				b := ir.NewBlock()
				_, _ = b.GetArg(0)
				return b
			},
			want: 1,
		},
		{
			name: "sparse indices",
			build: func() *ir.Block {
				b := ir.NewBlock()
				_, _ = b.GetArg(3)
				_, _ = b.GetArg(1)
				return b
			},
			want: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InputCount(tt.build()); got != tt.want {
				t.Errorf("InputCount = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWord_String(t *testing.T) {
	tests := []struct {
		w    Word
		want string
	}{
		{Int(42), "42"},
		{Str("hi"), `"hi"`},
		{Word{Kind: WordObject, Num: 3}, "obj3"},
	}

	for _, tt := range tests {
		if got := tt.w.String(); got != tt.want {
			t.Errorf("String(%#v) = %q, want %q", tt.w, got, tt.want)
		}
	}
}
