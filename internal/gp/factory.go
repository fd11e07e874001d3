package gp

import (
	"fmt"
	"math/rand"
)

// Factory builds random trees over a registry using ramped half-and-half:
// a target depth drawn uniformly from [MinDepth, MaxDepth] and a coin flip
// between the full and grow methods.
type Factory struct {
	registry *Registry
	minDepth int
	maxDepth int
}

func NewFactory(registry *Registry, minDepth, maxDepth int) (*Factory, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if registry.FunctionCount() == 0 {
		return nil, fmt.Errorf("registry has no function primitives")
	}
	if registry.TerminalCount() == 0 {
		return nil, fmt.Errorf("registry has no terminals")
	}
	if minDepth < 0 {
		return nil, fmt.Errorf("min depth must be >= 0, got %d", minDepth)
	}
	if maxDepth < minDepth {
		return nil, fmt.Errorf("max depth must be >= min depth: min=%d max=%d", minDepth, maxDepth)
	}
	return &Factory{registry: registry, minDepth: minDepth, maxDepth: maxDepth}, nil
}

// Tree generates one tree by ramped half-and-half.
func (f *Factory) Tree(rng *rand.Rand) *Tree {
	depth := f.minDepth + rng.Intn(f.maxDepth-f.minDepth+1)
	if rng.Intn(2) == 0 {
		return &Tree{Root: f.full(rng, depth)}
	}
	return &Tree{Root: f.grow(rng, depth)}
}

// FullSubtree generates a subtree by the full method with a target depth
// drawn uniformly from [minDepth, maxDepth]. Mutation uses this with a
// shallow range.
func (f *Factory) FullSubtree(rng *rand.Rand, minDepth, maxDepth int) *Node {
	depth := minDepth + rng.Intn(maxDepth-minDepth+1)
	return f.full(rng, depth)
}

// full forces every path to reach exactly the target depth: functions at
// every interior node, terminals only at the bottom.
func (f *Factory) full(rng *rand.Rand, depth int) *Node {
	if depth <= 0 {
		return f.terminal(rng)
	}
	return f.function(rng, depth, f.full)
}

// grow flips between terminal and function at every node above the target
// depth, then forces a terminal.
func (f *Factory) grow(rng *rand.Rand, depth int) *Node {
	if depth <= 0 || rng.Intn(2) == 0 {
		return f.terminal(rng)
	}
	return f.function(rng, depth, f.grow)
}

func (f *Factory) function(rng *rand.Rand, depth int, child func(*rand.Rand, int) *Node) *Node {
	prim := f.registry.functions[rng.Intn(len(f.registry.functions))]
	node := &Node{Op: prim.Name, Children: make([]*Node, prim.Arity)}
	for i := range node.Children {
		node.Children[i] = child(rng, depth-1)
	}
	return node
}

func (f *Factory) terminal(rng *rand.Rand) *Node {
	t := f.registry.terminals[rng.Intn(len(f.registry.terminals))]
	if t.Input {
		return &Node{Input: t.Name}
	}
	return &Node{Const: t.Sample(rng)}
}
