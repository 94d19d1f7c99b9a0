package flow

// Canvas couples the graph with the single active drag gesture. It is the
// write target of the event router; rendering reads it through the scene
// views in scene.go.
type Canvas struct {
	Graph    *Graph
	Dragging DragState // nil when no gesture is in progress
}

// NewCanvas returns a Canvas with an empty graph and no active gesture.
func NewCanvas() *Canvas {
	return &Canvas{Graph: New()}
}

// ClearDragging ends any in-progress gesture. It is idempotent: callable
// from any state, it always leaves the canvas idle and never errors.
func (c *Canvas) ClearDragging() {
	c.Dragging = nil
}

// StartNodeDrag begins moving a node. grabOffset is the pointer's offset
// from the node's origin at grab time. A stale node reference is a no-op;
// gestures must be safe to abandon at any point.
func (c *Canvas) StartNodeDrag(id NodeID, grabOffset Point) {
	if c.Graph.Node(id) == nil {
		return
	}
	c.Dragging = &NodeDrag{Node: id, GrabOffset: grabOffset}
}

// StartConnectionDrag begins drawing a connection from the given port.
// Stale node references and out-of-range indices are no-ops.
func (c *Canvas) StartConnectionDrag(id NodeID, port PortRef, cursor Point) {
	n := c.Graph.Node(id)
	if n == nil || port.Index < 0 || port.Index >= n.PortCount(port.Dir) {
		return
	}
	c.Dragging = &ConnectionDrag{From: id, Port: port, Cursor: cursor}
}

// UpdatePointer advances the active gesture to the new pointer position:
// a node drag keeps the node at pointer minus the frozen grab offset, a
// connection drag moves the live cursor, and with no gesture it is a
// no-op.
func (c *Canvas) UpdatePointer(p Point) {
	switch d := c.Dragging.(type) {
	case *NodeDrag:
		if n := c.Graph.Node(d.Node); n != nil {
			n.Position = p.Sub(d.GrabOffset)
		}
	case *ConnectionDrag:
		d.Cursor = p
	}
}

// CompleteConnection finishes a connection drag released at p over the
// target node's body. The nearest port of the direction opposite the
// captured one is examined; an edge is committed only when the release
// point is inside the snap radius. Releasing outside the radius, with no
// connection drag active, or over a removed node discards the gesture
// without error. It reports whether an edge was added.
//
// The caller still owns gesture teardown: ClearDragging must follow.
func (c *Canvas) CompleteConnection(target NodeID, p Point) bool {
	d, ok := c.Dragging.(*ConnectionDrag)
	if !ok {
		return false
	}
	tn := c.Graph.Node(target)
	if tn == nil || c.Graph.Node(d.From) == nil {
		return false
	}
	idx, dist2, ok := NearestPortInDir(tn, d.Port.Dir.Opposite(), p)
	if !ok || !WithinSnap(dist2) {
		return false
	}
	c.commitEdge(d, target, idx)
	return true
}

// CompletePortConnection finishes a connection drag released directly on
// a port marker, committing between the two captured ports with no
// distance test. The marker must be of the direction opposite the
// captured port; same-direction releases discard nothing and add nothing.
func (c *Canvas) CompletePortConnection(target NodeID, port PortRef) bool {
	d, ok := c.Dragging.(*ConnectionDrag)
	if !ok || port.Dir != d.Port.Dir.Opposite() {
		return false
	}
	tn := c.Graph.Node(target)
	if tn == nil || c.Graph.Node(d.From) == nil {
		return false
	}
	if port.Index < 0 || port.Index >= tn.PortCount(port.Dir) {
		return false
	}
	c.commitEdge(d, target, port.Index)
	return true
}

// commitEdge stores the new connection with the output role deciding the
// direction: an edge always runs from the output port's node to the input
// port's node, whichever end of the gesture held the output.
func (c *Canvas) commitEdge(d *ConnectionDrag, target NodeID, targetIndex int) {
	if d.Port.Dir == DirOutput {
		c.Graph.AddEdge(d.From, d.Port.Index, target, targetIndex)
	} else {
		c.Graph.AddEdge(target, targetIndex, d.From, d.Port.Index)
	}
}
