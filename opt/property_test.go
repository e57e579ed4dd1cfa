package opt

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/lsopt/eval"
	"github.com/wippyai/lsopt/ir"
	"github.com/wippyai/lsopt/irtext"
)

// randomBlock builds a well-formed block of memory traffic: a few inputs and
// typed allocations up front, then a shuffle of loads, stores, and escapes
// over random objects, offsets, and values.
func randomBlock(t *testing.T, rng *rand.Rand) *ir.Block {
	t.Helper()

	must := func(v ir.Value, err error) ir.Value {
		t.Helper()
		if err != nil {
			t.Fatalf("building random block: %v", err)
		}
		return v
	}

	b := ir.NewBlock()

	objTypes := []ir.ObjectType{
		ir.TypeUnknown, ir.TypeArray, ir.TypeHash, ir.TypeString,
		ir.TypeInteger, ir.TypeFloat, ir.TypeSymbol, ir.TypeRange, ir.TypeRegexp,
	}

	var objects []ir.Value
	for i := 0; i < 2+rng.Intn(2); i++ {
		objects = append(objects, must(b.GetArg(i)))
	}
	for i := 0; i < 2+rng.Intn(4); i++ {
		objects = append(objects, must(b.AllocObject(objTypes[rng.Intn(len(objTypes))])))
	}

	values := []ir.Value{ir.Const(0)}
	randObj := func() ir.Value { return objects[rng.Intn(len(objects))] }
	randOff := func() int64 { return int64(rng.Intn(3)) }
	randVal := func() ir.Value {
		if rng.Intn(3) == 0 {
			return ir.Const(int64(rng.Intn(8)))
		}
		return values[rng.Intn(len(values))]
	}

	for i := 0; i < 10+rng.Intn(30); i++ {
		switch rng.Intn(10) {
		case 0, 1, 2, 3:
			values = append(values, must(b.Load(randObj(), randOff())))
		case 4, 5, 6:
			if err := b.Store(randObj(), randOff(), randVal()); err != nil {
				t.Fatalf("building random block: %v", err)
			}
		case 7:
			x, y := ir.Const(int64(rng.Intn(5))), ir.Const(int64(rng.Intn(5)))
			values = append(values, must(b.Add(x, y)))
		default:
			if err := b.Escape(randVal()); err != nil {
				t.Fatalf("building random block: %v", err)
			}
		}
	}
	// Anchor every tracked value so eliminations are observable.
	for _, v := range values {
		if err := b.Escape(v); err != nil {
			t.Fatalf("building random block: %v", err)
		}
	}
	return b
}

func TestOptimize_RandomBlocksStaySound(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		rng := rand.New(rand.NewSource(seed))
		b := randomBlock(t, rng)

		out, err := Optimize(b)
		if err != nil {
			t.Fatalf("seed %d: Optimize failed: %v\n%s", seed, err, irtext.Format(b))
		}

		args := make([]eval.Word, eval.InputCount(b))
		for i := range args {
			// Duplicate input words stress aliasing of distinct getargs.
			args[i] = eval.Int(int64(100 + i%2))
		}

		orig, err := eval.Run(b, args)
		if err != nil {
			t.Fatalf("seed %d: Run(original) failed: %v", seed, err)
		}
		opti, err := eval.Run(out, args)
		if err != nil {
			t.Fatalf("seed %d: Run(optimized) failed: %v", seed, err)
		}
		if diff := cmp.Diff(orig.Escaped, opti.Escaped); diff != "" {
			t.Errorf("seed %d: escaped values changed (-original +optimized):\n%s\noriginal:\n%s\noptimized:\n%s",
				seed, diff, irtext.Format(b), irtext.Format(out))
		}
	}
}

func TestOptimize_RandomBlocksReachFixpoint(t *testing.T) {
	for seed := int64(0); seed < 100; seed++ {
		rng := rand.New(rand.NewSource(seed))
		b := randomBlock(t, rng)

		once, err := Optimize(b)
		if err != nil {
			t.Fatalf("seed %d: first Optimize failed: %v", seed, err)
		}
		twice, err := Optimize(once)
		if err != nil {
			t.Fatalf("seed %d: second Optimize failed: %v", seed, err)
		}
		if diff := cmp.Diff(irtext.Format(once), irtext.Format(twice)); diff != "" {
			t.Errorf("seed %d: not idempotent (-once +twice):\n%s", seed, diff)
		}
		if once.Len() > b.Len() {
			t.Errorf("seed %d: block grew from %d to %d instructions", seed, b.Len(), once.Len())
		}
	}
}
