package flow

import "fmt"

// NodeID identifies a node in the graph arena. It is an arena index plus
// a generation counter: the index addresses a dense slot, and the
// generation guards against a removed node's slot being reused under a
// stale ID. Generations start at 1, so the zero NodeID never refers to a
// live node.
type NodeID struct {
	Index int    `json:"index"`
	Gen   uint32 `json:"gen"`
}

// IsZero reports whether the ID is the zero value, which is never issued
// for a live node.
func (id NodeID) IsZero() bool {
	return id.Gen == 0
}

func (id NodeID) String() string {
	return fmt.Sprintf("n%d.%d", id.Index, id.Gen)
}

// Node is a placed compute unit on the canvas: a positioned, sized box
// with ordered input and output ports. The Unit field names the compute
// collaborator's definition; the core never interprets it.
type Node struct {
	ID       NodeID     `json:"id"`
	Unit     string     `json:"unit"`
	Position Point      `json:"position"` // top-left anchor
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
	Inputs   []PortSpec `json:"inputs"`
	Outputs  []PortSpec `json:"outputs"`

	// Transient execution status, owned by the compute collaborator.
	// Excluded from persistence; always reset on load.
	Running bool   `json:"-"`
	Queued  bool   `json:"-"`
	Err     string `json:"-"`
}

// InputPosition returns the canvas position of input port i: one pixel
// outside the node's left edge, with ports evenly spaced along the height
// so that no port sits on the exact top or bottom edge. Positions are
// computed from the node's current geometry on every call, never cached.
func (n *Node) InputPosition(i int) Point {
	return Point{
		X: n.Position.X - 1,
		Y: n.Position.Y + float64(i+1)*n.Height/float64(len(n.Inputs)+1),
	}
}

// OutputPosition returns the canvas position of output port i, one pixel
// inside the node's right edge, spaced like InputPosition.
func (n *Node) OutputPosition(i int) Point {
	return Point{
		X: n.Position.X + n.Width - 1,
		Y: n.Position.Y + float64(i+1)*n.Height/float64(len(n.Outputs)+1),
	}
}

// PortPosition resolves a PortRef against the node's current geometry.
func (n *Node) PortPosition(ref PortRef) Point {
	if ref.Dir == DirInput {
		return n.InputPosition(ref.Index)
	}
	return n.OutputPosition(ref.Index)
}

// PortCount returns the number of ports in the given direction.
func (n *Node) PortCount(dir PortDir) int {
	if dir == DirInput {
		return len(n.Inputs)
	}
	return len(n.Outputs)
}
