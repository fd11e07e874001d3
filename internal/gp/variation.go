package gp

import "math/rand"

// slots collects the address of every node position in the tree, root
// first, so a uniformly chosen subtree can be swapped or replaced in
// place.
func slots(t *Tree) []**Node {
	out := []**Node{&t.Root}
	var walk func(n *Node)
	walk = func(n *Node) {
		for i := range n.Children {
			out = append(out, &n.Children[i])
			walk(n.Children[i])
		}
	}
	walk(t.Root)
	return out
}

// Crossover swaps uniformly chosen subtrees between consecutive pool pairs
// (positions (0,1), (2,3), ...) with probability Prob per pair. Modified
// individuals become unevaluated. Offspring sizes are unbounded; bloat is
// expected.
type Crossover struct {
	Prob float64
}

func (c Crossover) Apply(rng *rand.Rand, pool []*Individual) {
	for i := 0; i+1 < len(pool); i += 2 {
		if rng.Float64() >= c.Prob {
			continue
		}
		a, b := pool[i], pool[i+1]
		slotsA := slots(a.Tree)
		slotsB := slots(b.Tree)
		pa := slotsA[rng.Intn(len(slotsA))]
		pb := slotsB[rng.Intn(len(slotsB))]
		*pa, *pb = *pb, *pa
		a.Invalidate()
		b.Invalidate()
	}
}

// Mutator replaces a uniformly chosen node's subtree with a freshly
// full-grown subtree of depth drawn from [MinDepth, MaxDepth], with
// probability Prob per individual. Mutated individuals become unevaluated.
type Mutator struct {
	Factory  *Factory
	Prob     float64
	MinDepth int
	MaxDepth int
}

func (m Mutator) Apply(rng *rand.Rand, pool []*Individual) {
	for _, ind := range pool {
		if rng.Float64() >= m.Prob {
			continue
		}
		points := slots(ind.Tree)
		*points[rng.Intn(len(points))] = m.Factory.FullSubtree(rng, m.MinDepth, m.MaxDepth)
		ind.Invalidate()
	}
}
