package flow

// Edge is a directed connection from an output port on one node to an
// input port on another. Edges carry no identity of their own and are
// destroyed with either endpoint node.
type Edge struct {
	From   NodeID `json:"from"`   // node owning the output port
	Output int    `json:"output"` // output port index on From
	To     NodeID `json:"to"`     // node owning the input port
	Input  int    `json:"input"`  // input port index on To
}

// Graph is a mutable directed multigraph of nodes and connections.
// Nodes live in a dense arena; NodeIDs are index+generation pairs, so
// edges store IDs rather than pointers and node removal cannot dangle.
// The graph is pure storage: it performs no hit-testing or geometry.
//
// Graph is not safe for concurrent use. Xylem's event handling is
// single-threaded; see package store for the write discipline.
type Graph struct {
	slots []slot
	free  []int // indices of vacant slots, reused LIFO
	edges []Edge
}

type slot struct {
	gen  uint32
	node *Node // nil while the slot is free
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{}
}

// AddNode inserts the node into the arena and assigns it a fresh stable
// ID, which is also written to n.ID. The ID stays valid across all
// mutations except removal of this node, and is never reissued.
func (g *Graph) AddNode(n *Node) NodeID {
	var idx int
	if k := len(g.free); k > 0 {
		idx = g.free[k-1]
		g.free = g.free[:k-1]
	} else {
		g.slots = append(g.slots, slot{})
		idx = len(g.slots) - 1
	}
	s := &g.slots[idx]
	s.gen++ // first occupancy is generation 1
	s.node = n
	n.ID = NodeID{Index: idx, Gen: s.gen}
	return n.ID
}

// Node returns the node with the given ID, or nil when the ID is zero,
// stale, or was never issued.
func (g *Graph) Node(id NodeID) *Node {
	if id.IsZero() || id.Index < 0 || id.Index >= len(g.slots) {
		return nil
	}
	s := g.slots[id.Index]
	if s.node == nil || s.gen != id.Gen {
		return nil
	}
	return s.node
}

// AddEdge inserts a directed connection from output port `output` on
// `from` to input port `input` on `to`. Duplicates are permitted; the
// graph is a multigraph. Port indices are not range-checked here: callers
// derive them from a live enumeration of the endpoint's ports.
func (g *Graph) AddEdge(from NodeID, output int, to NodeID, input int) {
	g.edges = append(g.edges, Edge{From: from, Output: output, To: to, Input: input})
}

// RemoveNode deletes the node and every edge touching it. Removing an
// unknown or stale ID is a no-op.
func (g *Graph) RemoveNode(id NodeID) {
	if g.Node(id) == nil {
		return
	}
	kept := g.edges[:0]
	for _, e := range g.edges {
		if e.From != id && e.To != id {
			kept = append(kept, e)
		}
	}
	g.edges = kept

	g.slots[id.Index].node = nil
	g.free = append(g.free, id.Index)
}

// Nodes returns all live nodes in arena order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.slots)-len(g.free))
	for _, s := range g.slots {
		if s.node != nil {
			nodes = append(nodes, s.node)
		}
	}
	return nodes
}

// Edges returns every connection in insertion order. The slice is the
// graph's own storage; callers must not mutate it.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// EdgesOf returns the edges touching the given node, in either direction.
func (g *Graph) EdgesOf(id NodeID) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.From == id || e.To == id {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of live nodes.
func (g *Graph) Len() int {
	return len(g.slots) - len(g.free)
}
