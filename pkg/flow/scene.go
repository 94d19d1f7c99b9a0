package flow

// EdgeSegment is an edge resolved against both endpoints' current port
// positions. Segments run from the source node's output port to the
// target node's input port; storage and rendering share one convention.
type EdgeSegment struct {
	Edge  Edge  `json:"edge"`
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// EdgeSegments resolves every edge for the current frame. Port positions
// move with their nodes, so this must be recomputed on every read rather
// than cached. Edges whose endpoints cannot be resolved are skipped.
func (c *Canvas) EdgeSegments() []EdgeSegment {
	segs := make([]EdgeSegment, 0, len(c.Graph.Edges()))
	for _, e := range c.Graph.Edges() {
		from := c.Graph.Node(e.From)
		to := c.Graph.Node(e.To)
		if from == nil || to == nil {
			continue
		}
		segs = append(segs, EdgeSegment{
			Edge:  e,
			Start: from.OutputPosition(e.Output),
			End:   to.InputPosition(e.Input),
		})
	}
	return segs
}

// Preview returns the in-progress connection segment, from the captured
// port's current position to the live cursor. ok is false when no
// connection drag is active or the source node is gone.
func (c *Canvas) Preview() (start, end Point, ok bool) {
	d, isConn := c.Dragging.(*ConnectionDrag)
	if !isConn {
		return Point{}, Point{}, false
	}
	n := c.Graph.Node(d.From)
	if n == nil {
		return Point{}, Point{}, false
	}
	return n.PortPosition(d.Port), d.Cursor, true
}
