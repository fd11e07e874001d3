package gp

// Graph is the renderer-facing view of a tree: numeric node ids with
// display labels and parent→child edges. Node ids are assigned in
// preorder. Drawing and file output are the consumer's responsibility.
type Graph struct {
	Labels map[int]string
	Edges  [][2]int
}

// Graph converts the tree into its node-id→label mapping and edge list.
func (t *Tree) Graph() Graph {
	g := Graph{Labels: make(map[int]string)}
	next := 0
	var walk func(n *Node)
	walk = func(n *Node) {
		id := next
		next++
		g.Labels[id] = n.Label()
		for _, c := range n.Children {
			g.Edges = append(g.Edges, [2]int{id, next})
			walk(c)
		}
	}
	if t.Root != nil {
		walk(t.Root)
	}
	return g
}
