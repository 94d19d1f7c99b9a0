package flow

// DragState is the tagged record of the single in-progress pointer
// gesture. A nil DragState means no gesture is active (idle). At most one
// gesture exists system-wide, so exactly one of {nil, *NodeDrag,
// *ConnectionDrag} holds at any instant.
type DragState interface {
	dragState() // marker method restricting implementations to this package
}

// NodeDrag is the gesture of moving a node under the pointer.
type NodeDrag struct {
	Node NodeID
	// GrabOffset is the pointer's offset from the node's top-left origin
	// at grab time, frozen for the gesture's duration so the node never
	// jumps under the cursor.
	GrabOffset Point
}

func (*NodeDrag) dragState() {}

// ConnectionDrag is the gesture of drawing a new connection out of a
// captured port toward the live cursor.
type ConnectionDrag struct {
	From   NodeID
	Port   PortRef
	Cursor Point // live pointer position, updated on every move
}

func (*ConnectionDrag) dragState() {}
