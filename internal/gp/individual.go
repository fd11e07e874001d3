package gp

// Fitness is the two-state evaluation result of an Individual. Score is a
// win count accumulated over one round robin and is only meaningful when
// Valid is set. Structural change resets the state to invalid.
type Fitness struct {
	Score int
	Valid bool
}

// Individual pairs an expression tree with its fitness state.
type Individual struct {
	Tree    *Tree
	Fitness Fitness
}

// Clone deep-copies the individual, fitness state included.
func (ind *Individual) Clone() *Individual {
	return &Individual{Tree: ind.Tree.Clone(), Fitness: ind.Fitness}
}

// Invalidate marks the individual unevaluated. Every operator that changes
// the tree calls this.
func (ind *Individual) Invalidate() {
	ind.Fitness = Fitness{}
}
