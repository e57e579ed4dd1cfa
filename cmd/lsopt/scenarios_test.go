package main

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/lsopt/errors"
	"github.com/wippyai/lsopt/eval"
	"github.com/wippyai/lsopt/irtext"
	"github.com/wippyai/lsopt/opt"
)

func TestBuiltinScenarios(t *testing.T) {
	seen := make(map[string]bool)
	for _, sc := range builtinScenarios {
		sc := sc
		t.Run(sc.Name, func(t *testing.T) {
			if seen[sc.Name] {
				t.Fatalf("duplicate scenario name %q", sc.Name)
			}
			seen[sc.Name] = true

			blk, err := irtext.Parse(sc.Source)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			out, err := opt.Optimize(blk)
			if err != nil {
				t.Fatalf("Optimize() error = %v", err)
			}
			if out.Len() >= blk.Len() {
				t.Errorf("Optimize() removed nothing: %d -> %d instructions", blk.Len(), out.Len())
			}

			args := scenarioInputs(blk, sc.Args)
			orig, err := eval.Run(blk, args)
			if err != nil {
				t.Fatalf("Run(original) error = %v", err)
			}
			opti, err := eval.Run(out, args)
			if err != nil {
				t.Fatalf("Run(optimized) error = %v", err)
			}
			if diff := cmp.Diff(orig.Escaped, opti.Escaped); diff != "" {
				t.Errorf("escaped values diverge (-original +optimized):\n%s", diff)
			}
		})
	}
}

func TestLoadScenarios(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenarios.toml")
	src := `[[scenario]]
name = "forwarded store"
note = "the load reuses the stored value"
args = [5]

source = """
var0 = getarg(0)
var1 = alloc_array()
store(var1, 0, var0)
var2 = load(var1, 0)
escape(var2)
"""

[[scenario]]
name = "plain escape"
source = """
var0 = getarg(0)
escape(var0)
"""
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	scenarios, err := loadScenarios(path)
	if err != nil {
		t.Fatalf("loadScenarios() error = %v", err)
	}
	if len(scenarios) != 2 {
		t.Fatalf("loadScenarios() returned %d scenarios, want 2", len(scenarios))
	}
	if scenarios[0].Name != "forwarded store" || scenarios[1].Name != "plain escape" {
		t.Errorf("scenario names = %q, %q", scenarios[0].Name, scenarios[1].Name)
	}
	if got, want := scenarios[0].Args, []int64{5}; !cmp.Equal(got, want) {
		t.Errorf("Args = %v, want %v", got, want)
	}

	// Each loaded scenario must survive the full pipeline.
	for _, sc := range scenarios {
		blk, err := irtext.Parse(sc.Source)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", sc.Name, err)
		}
		if _, err := opt.Optimize(blk); err != nil {
			t.Fatalf("Optimize(%q) error = %v", sc.Name, err)
		}
	}
}

func TestLoadScenarios_Errors(t *testing.T) {
	dir := t.TempDir()
	writeFile := func(name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		name string
		path string
	}{
		{
			name: "missing file",
			path: filepath.Join(dir, "absent.toml"),
		},
		{
			name: "invalid toml",
			path: writeFile("bad.toml", "[[scenario\nname ="),
		},
		{
			name: "no scenarios",
			path: writeFile("empty.toml", "# nothing here\n"),
		},
		{
			name: "unnamed scenario",
			path: writeFile("unnamed.toml", "[[scenario]]\nsource = \"escape(1)\"\n"),
		},
		{
			name: "missing source",
			path: writeFile("nosource.toml", "[[scenario]]\nname = \"empty\"\n"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadScenarios(tt.path); err == nil {
				t.Fatal("loadScenarios() error = nil, want error")
			}
		})
	}
}

func TestLoadScenarios_ErrorKinds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unnamed.toml")
	if err := os.WriteFile(path, []byte("[[scenario]]\nsource = \"escape(1)\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := loadScenarios(path)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseParse, Kind: errors.KindInvalidInput}) {
		t.Errorf("loadScenarios() error = %v, want parse/invalid_input", err)
	}
}

func TestFindScenario(t *testing.T) {
	sc, ok := findScenario(builtinScenarios, "redundant load")
	if !ok {
		t.Fatal("findScenario(redundant load) not found")
	}
	if sc.Name != "redundant load" {
		t.Errorf("Name = %q, want %q", sc.Name, "redundant load")
	}
	if _, ok := findScenario(builtinScenarios, "no such demo"); ok {
		t.Error("findScenario(no such demo) found = true, want false")
	}
}
