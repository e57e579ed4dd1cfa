package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/wippyai/lsopt/errors"
)

// Scenario is one demo: a named IR listing plus the inputs to run it with.
type Scenario struct {
	Name   string  `toml:"name"`
	Note   string  `toml:"note"`
	Args   []int64 `toml:"args"`
	Source string  `toml:"source"`
}

type scenarioFile struct {
	Scenario []Scenario `toml:"scenario"`
}

// loadScenarios reads a TOML file of [[scenario]] tables.
func loadScenarios(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenarios: %w", err)
	}
	var f scenarioFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidInput, err, "decode scenario file")
	}
	if len(f.Scenario) == 0 {
		return nil, errors.InvalidInput(errors.PhaseParse, "no [[scenario]] entries in %s", path)
	}
	for i, sc := range f.Scenario {
		if sc.Name == "" {
			return nil, errors.InvalidInput(errors.PhaseParse, "scenario %d has no name", i)
		}
		if sc.Source == "" {
			return nil, errors.InvalidInput(errors.PhaseParse, "scenario %q has no source", sc.Name)
		}
	}
	return f.Scenario, nil
}

// builtinScenarios are the stock demonstrations shown when no scenario file
// is given.
var builtinScenarios = []Scenario{
	{
		Name: "redundant load",
		Note: "Two loads from the same slot: the second is eliminated and reuses the first.",
		Args: []int64{7},
		Source: `var0 = getarg(0)
var1 = load(var0, 0)
var2 = load(var0, 0)
escape(var1)
escape(var2)`,
	},
	{
		Name: "tbaa: different types never alias",
		Note: "A store to a Hash cannot touch an Array load, even at the same offset, so the re-load is eliminated.",
		Source: `var0 = alloc_array()
var1 = alloc_hash()
var2 = load(var0, 0)
store(var1, 0, 42)
var3 = load(var0, 0)
escape(var2)
escape(var3)`,
	},
	{
		Name: "tbaa: same type stays conservative",
		Note: "Two Arrays might be the same object, so the store invalidates the load and the re-load survives.",
		Source: `var0 = alloc_array()
var1 = alloc_array()
var2 = load(var0, 0)
store(var1, 0, 42)
var3 = load(var0, 0)
escape(var2)
escape(var3)`,
	},
	{
		Name: "tbaa: many types, one store",
		Note: "Stores to Hash, String, and Symbol leave the Array load intact; the final re-load is eliminated.",
		Source: `var0 = alloc_array()
var1 = alloc_hash()
var2 = alloc_string()
var3 = alloc_symbol()
var4 = load(var0, 0)
store(var1, 0, 1)
store(var2, 0, 2)
store(var3, 0, 3)
var5 = load(var0, 0)
escape(var5)`,
	},
	{
		Name: "store-to-load forwarding",
		Note: "Both loads are replaced by the stored constants; stores to different types don't interfere.",
		Source: `var0 = alloc_string()
var1 = alloc_integer()
store(var0, 0, "hello")
store(var1, 0, 42)
var2 = load(var0, 0)
var3 = load(var1, 0)
escape(var2)
escape(var3)`,
	},
	{
		Name: "offset independence",
		Note: "A store at offset 4 never touches offset 0 of the same object, so the re-load at 0 is eliminated.",
		Source: `var0 = alloc_hash()
var1 = load(var0, 0)
store(var0, 4, 99)
var2 = load(var0, 0)
escape(var1)
escape(var2)`,
	},
}

func findScenario(scenarios []Scenario, name string) (Scenario, bool) {
	for _, sc := range scenarios {
		if sc.Name == name {
			return sc, true
		}
	}
	return Scenario{}, false
}
