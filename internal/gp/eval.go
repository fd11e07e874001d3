package gp

// Inputs binds input names to values for one evaluation.
type Inputs map[string]float64

// Eval interprets the subtree rooted at n: a terminal resolves to its
// bound constant or the caller-supplied value for its input name, a
// function evaluates all children first and then applies the primitive.
// Pure and reentrant; identical tree and inputs give identical results.
// Unknown input names and unregistered primitives resolve to 0.
func (r *Registry) Eval(n *Node, in Inputs) float64 {
	if n.IsTerminal() {
		if n.Input != "" {
			return in[n.Input]
		}
		return n.Const
	}
	prim, ok := r.byName[n.Op]
	if !ok {
		return 0
	}
	args := make([]float64, len(n.Children))
	for i, c := range n.Children {
		args[i] = r.Eval(c, in)
	}
	return prim.Fn(args)
}
