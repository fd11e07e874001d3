package gp

import (
	"fmt"
	"math"
	"math/rand"
)

// Primitive is a named operator usable as an interior tree node. Arity is
// fixed at registration and never changes.
type Primitive struct {
	Name  string
	Arity int
	Fn    func(args []float64) float64
}

// Terminal is a named leaf source: either an input resolved by name at
// evaluation time, or an ephemeral constant sampled once per construction
// site and bound into the node.
type Terminal struct {
	Name   string
	Input  bool
	Sample func(rng *rand.Rand) float64
}

// SetOptions gates the optional primitive sets on top of the core
// arithmetic set.
type SetOptions struct {
	IfElse     bool
	Relational bool
	Trig       bool
}

// Registry catalogs every primitive and terminal a tree may be built from.
// The evaluator consults it by primitive name.
type Registry struct {
	functions []Primitive
	byName    map[string]Primitive
	terminals []Terminal
}

// NewRegistry builds a registry over the given input names with the core
// set: add, sub, mul, neg, max, min, protected div, plus integer and float
// ephemeral constants. Optional sets are added per opts.
func NewRegistry(inputs []string, opts SetOptions) *Registry {
	r := &Registry{byName: make(map[string]Primitive)}

	r.addFunction("add", 2, func(a []float64) float64 { return a[0] + a[1] })
	r.addFunction("sub", 2, func(a []float64) float64 { return a[0] - a[1] })
	r.addFunction("mul", 2, func(a []float64) float64 { return a[0] * a[1] })
	r.addFunction("neg", 1, func(a []float64) float64 { return -a[0] })
	r.addFunction("max", 2, func(a []float64) float64 { return math.Max(a[0], a[1]) })
	r.addFunction("min", 2, func(a []float64) float64 { return math.Min(a[0], a[1]) })
	r.addFunction("div", 2, protectedDiv)

	for _, name := range inputs {
		r.terminals = append(r.terminals, Terminal{Name: name, Input: true})
	}
	r.addEphemeral("rand_int", func(rng *rand.Rand) float64 {
		return float64(rng.Intn(11))
	})
	r.addEphemeral("rand_float", func(rng *rand.Rand) float64 {
		return rng.Float64()*2 - 1
	})

	if opts.IfElse {
		r.addFunction("if_then_else", 3, func(a []float64) float64 {
			if a[0] != 0 {
				return a[1]
			}
			return a[2]
		})
	}
	if opts.Relational {
		r.addFunction("gt", 2, func(a []float64) float64 {
			if a[0] > a[1] {
				return 1.0
			}
			return 0.0
		})
		r.addFunction("lt", 2, func(a []float64) float64 {
			if a[0] < a[1] {
				return 1.0
			}
			return 0.0
		})
	}
	if opts.Trig {
		r.addFunction("sin", 1, func(a []float64) float64 { return math.Sin(a[0]) })
		r.addFunction("cos", 1, func(a []float64) float64 { return math.Cos(a[0]) })
		r.addEphemeral("rand_angle", func(rng *rand.Rand) float64 {
			return rng.Float64()*6.28 - 3.14
		})
	}

	return r
}

// protectedDiv masks division by an exactly-zero divisor with a fixed
// fallback of 1 instead of propagating a failure.
func protectedDiv(a []float64) float64 {
	if a[1] == 0 {
		return 1
	}
	return a[0] / a[1]
}

func (r *Registry) addFunction(name string, arity int, fn func([]float64) float64) {
	prim := Primitive{Name: name, Arity: arity, Fn: fn}
	r.functions = append(r.functions, prim)
	r.byName[name] = prim
}

func (r *Registry) addEphemeral(name string, sample func(*rand.Rand) float64) {
	r.terminals = append(r.terminals, Terminal{Name: name, Sample: sample})
}

// RegisterFunction adds a caller-supplied function primitive.
func (r *Registry) RegisterFunction(name string, arity int, fn func([]float64) float64) error {
	if name == "" {
		return fmt.Errorf("primitive name is required")
	}
	if arity <= 0 {
		return fmt.Errorf("primitive arity must be > 0, got %d", arity)
	}
	if fn == nil {
		return fmt.Errorf("primitive function is required")
	}
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("primitive already registered: %s", name)
	}
	r.addFunction(name, arity, fn)
	return nil
}

// RegisterInput adds a terminal bound to a named input.
func (r *Registry) RegisterInput(name string) error {
	if name == "" {
		return fmt.Errorf("input name is required")
	}
	for _, t := range r.terminals {
		if t.Name == name {
			return fmt.Errorf("terminal already registered: %s", name)
		}
	}
	r.terminals = append(r.terminals, Terminal{Name: name, Input: true})
	return nil
}

// RegisterEphemeral adds an ephemeral-constant generator invoked once per
// tree-construction site.
func (r *Registry) RegisterEphemeral(name string, sample func(*rand.Rand) float64) error {
	if name == "" {
		return fmt.Errorf("ephemeral name is required")
	}
	if sample == nil {
		return fmt.Errorf("ephemeral sampler is required")
	}
	for _, t := range r.terminals {
		if t.Name == name {
			return fmt.Errorf("terminal already registered: %s", name)
		}
	}
	r.addEphemeral(name, sample)
	return nil
}

// Lookup returns the function primitive registered under name.
func (r *Registry) Lookup(name string) (Primitive, bool) {
	prim, ok := r.byName[name]
	return prim, ok
}

// FunctionCount reports the size of the function set.
func (r *Registry) FunctionCount() int { return len(r.functions) }

// TerminalCount reports the size of the terminal set, ephemerals included.
func (r *Registry) TerminalCount() int { return len(r.terminals) }
