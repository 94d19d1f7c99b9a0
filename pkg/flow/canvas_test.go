package flow

import "testing"

func TestClearDraggingIdempotent(t *testing.T) {
	c := NewCanvas()

	// From idle.
	c.ClearDragging()
	if c.Dragging != nil {
		t.Error("idle ClearDragging should stay idle")
	}

	// From a node drag.
	id := c.Graph.AddNode(testNode(0, 0, 80, 40, 1, 1))
	c.StartNodeDrag(id, Point{5, 5})
	c.ClearDragging()
	if c.Dragging != nil {
		t.Error("ClearDragging should end a node drag")
	}

	// From a connection drag.
	c.StartConnectionDrag(id, PortRef{Dir: DirOutput, Index: 0}, Point{0, 0})
	c.ClearDragging()
	c.ClearDragging()
	if c.Dragging != nil {
		t.Error("ClearDragging should end a connection drag and stay idle")
	}
}

func TestStartNodeDragFreezesGrabOffset(t *testing.T) {
	c := NewCanvas()
	n := testNode(100, 100, 80, 40, 0, 0)
	id := c.Graph.AddNode(n)

	c.StartNodeDrag(id, Point{12, 7})
	d, ok := c.Dragging.(*NodeDrag)
	if !ok {
		t.Fatal("expected a node drag")
	}
	if d.GrabOffset != (Point{12, 7}) {
		t.Errorf("grab offset = %v, want (12, 7)", d.GrabOffset)
	}

	// Law: for every subsequent move at p, position == p - grabOffset.
	for _, p := range []Point{{150, 130}, {90, 40}, {112, 107}} {
		c.UpdatePointer(p)
		want := p.Sub(Point{12, 7})
		if n.Position != want {
			t.Errorf("after move to %v: position = %v, want %v", p, n.Position, want)
		}
	}
}

func TestStartNodeDragStaleNode(t *testing.T) {
	c := NewCanvas()
	id := c.Graph.AddNode(testNode(0, 0, 80, 40, 0, 0))
	c.Graph.RemoveNode(id)

	c.StartNodeDrag(id, Point{1, 1})
	if c.Dragging != nil {
		t.Error("starting a drag on a removed node should no-op")
	}
}

func TestStartConnectionDragGuards(t *testing.T) {
	c := NewCanvas()
	id := c.Graph.AddNode(testNode(0, 0, 80, 40, 1, 1))

	// Out-of-range index refuses to capture.
	c.StartConnectionDrag(id, PortRef{Dir: DirInput, Index: 3}, Point{0, 0})
	if c.Dragging != nil {
		t.Error("out-of-range port index should no-op")
	}
	c.StartConnectionDrag(id, PortRef{Dir: DirOutput, Index: -1}, Point{0, 0})
	if c.Dragging != nil {
		t.Error("negative port index should no-op")
	}

	c.StartConnectionDrag(id, PortRef{Dir: DirOutput, Index: 0}, Point{40, 20})
	d, ok := c.Dragging.(*ConnectionDrag)
	if !ok {
		t.Fatal("expected a connection drag")
	}
	if d.Cursor != (Point{40, 20}) {
		t.Errorf("cursor = %v, want (40, 20)", d.Cursor)
	}
}

func TestUpdatePointerMovesCursor(t *testing.T) {
	c := NewCanvas()
	id := c.Graph.AddNode(testNode(0, 0, 80, 40, 0, 1))
	c.StartConnectionDrag(id, PortRef{Dir: DirOutput, Index: 0}, Point{79, 20})

	c.UpdatePointer(Point{200, 150})
	d := c.Dragging.(*ConnectionDrag)
	if d.Cursor != (Point{200, 150}) {
		t.Errorf("cursor = %v, want (200, 150)", d.Cursor)
	}
}

func TestUpdatePointerIdleNoop(t *testing.T) {
	c := NewCanvas()
	n := testNode(10, 10, 80, 40, 0, 0)
	c.Graph.AddNode(n)

	c.UpdatePointer(Point{500, 500})
	if n.Position != (Point{10, 10}) {
		t.Error("idle pointer moves must not touch nodes")
	}
}

func TestUpdatePointerNodeRemovedMidGesture(t *testing.T) {
	c := NewCanvas()
	id := c.Graph.AddNode(testNode(0, 0, 80, 40, 0, 0))
	c.StartNodeDrag(id, Point{0, 0})
	c.Graph.RemoveNode(id)

	// The live gesture references a dead node; moves silently no-op.
	c.UpdatePointer(Point{50, 50})
	if c.Graph.Len() != 0 {
		t.Error("graph should stay empty")
	}
}

// The reference scenario: A at (100,100) 80x40 with one output at
// (179,120); B at (300,100) 80x40 with one input at (299,120).
func scenarioCanvas(t *testing.T) (c *Canvas, a, b NodeID) {
	t.Helper()
	c = NewCanvas()
	a = c.Graph.AddNode(testNode(100, 100, 80, 40, 0, 1))
	b = c.Graph.AddNode(testNode(300, 100, 80, 40, 1, 0))
	return c, a, b
}

func TestCompleteConnectionInsideSnap(t *testing.T) {
	c, a, b := scenarioCanvas(t)

	c.StartConnectionDrag(a, PortRef{Dir: DirOutput, Index: 0}, Point{179, 120})
	c.UpdatePointer(Point{300, 120})

	// Squared distance to B's input is 1 < 225: exactly one edge commits.
	if !c.CompleteConnection(b, Point{300, 120}) {
		t.Fatal("release inside the snap radius should commit")
	}
	c.ClearDragging()

	edges := c.Graph.Edges()
	if len(edges) != 1 {
		t.Fatalf("edge count = %d, want 1", len(edges))
	}
	want := Edge{From: a, Output: 0, To: b, Input: 0}
	if edges[0] != want {
		t.Errorf("edge = %+v, want %+v", edges[0], want)
	}
}

func TestCompleteConnectionOutsideSnap(t *testing.T) {
	c, a, b := scenarioCanvas(t)

	c.StartConnectionDrag(a, PortRef{Dir: DirOutput, Index: 0}, Point{179, 120})
	c.UpdatePointer(Point{250, 120})

	// Squared distance 2401 >= 225: no edge, gesture discarded.
	if c.CompleteConnection(b, Point{250, 120}) {
		t.Fatal("release outside the snap radius should not commit")
	}
	c.ClearDragging()

	if len(c.Graph.Edges()) != 0 {
		t.Errorf("edge count = %d, want 0", len(c.Graph.Edges()))
	}
	if c.Dragging != nil {
		t.Error("canvas should be idle after teardown")
	}
}

func TestCompleteConnectionFromInputPort(t *testing.T) {
	// Dragging out of B's input and releasing over A must store the edge
	// with A (the output owner) as the source.
	c, a, b := scenarioCanvas(t)

	c.StartConnectionDrag(b, PortRef{Dir: DirInput, Index: 0}, Point{299, 120})
	if !c.CompleteConnection(a, Point{180, 120}) {
		t.Fatal("release near A's output should commit")
	}
	c.ClearDragging()

	want := Edge{From: a, Output: 0, To: b, Input: 0}
	if got := c.Graph.Edges()[0]; got != want {
		t.Errorf("edge = %+v, want %+v", got, want)
	}
}

func TestCompleteConnectionBoundaryDistance(t *testing.T) {
	// Exactly SnapDistance away (squared 225) does not snap.
	c, a, b := scenarioCanvas(t)
	c.StartConnectionDrag(a, PortRef{Dir: DirOutput, Index: 0}, Point{179, 120})
	if c.CompleteConnection(b, Point{299, 135}) {
		t.Error("release exactly 15 units from the port should not commit")
	}
}

func TestCompleteConnectionNoOppositePorts(t *testing.T) {
	// The target has no ports of the opposite direction: no candidates,
	// no edge, no error.
	c := NewCanvas()
	a := c.Graph.AddNode(testNode(100, 100, 80, 40, 0, 1))
	sink := c.Graph.AddNode(testNode(300, 100, 80, 40, 0, 1)) // outputs only

	c.StartConnectionDrag(a, PortRef{Dir: DirOutput, Index: 0}, Point{179, 120})
	if c.CompleteConnection(sink, Point{300, 120}) {
		t.Error("no opposite-direction ports should mean no commit")
	}
}

func TestCompleteConnectionWhileIdle(t *testing.T) {
	c, _, b := scenarioCanvas(t)
	if c.CompleteConnection(b, Point{300, 120}) {
		t.Error("completing with no active connection drag should no-op")
	}
}

func TestCompleteConnectionSourceRemovedMidGesture(t *testing.T) {
	c, a, b := scenarioCanvas(t)
	c.StartConnectionDrag(a, PortRef{Dir: DirOutput, Index: 0}, Point{179, 120})
	c.Graph.RemoveNode(a)

	if c.CompleteConnection(b, Point{300, 120}) {
		t.Error("completing from a removed source should no-op")
	}
}

func TestCompletePortConnection(t *testing.T) {
	c, a, b := scenarioCanvas(t)

	c.StartConnectionDrag(a, PortRef{Dir: DirOutput, Index: 0}, Point{179, 120})
	if !c.CompletePortConnection(b, PortRef{Dir: DirInput, Index: 0}) {
		t.Fatal("release on an opposite-direction marker should commit directly")
	}
	c.ClearDragging()

	want := Edge{From: a, Output: 0, To: b, Input: 0}
	if got := c.Graph.Edges()[0]; got != want {
		t.Errorf("edge = %+v, want %+v", got, want)
	}
}

func TestCompletePortConnectionSameDirection(t *testing.T) {
	// Output-to-output is impossible by construction: the marker's
	// direction must oppose the captured one.
	c := NewCanvas()
	a := c.Graph.AddNode(testNode(100, 100, 80, 40, 0, 1))
	other := c.Graph.AddNode(testNode(300, 100, 80, 40, 0, 1))

	c.StartConnectionDrag(a, PortRef{Dir: DirOutput, Index: 0}, Point{179, 120})
	if c.CompletePortConnection(other, PortRef{Dir: DirOutput, Index: 0}) {
		t.Error("same-direction completion should no-op")
	}
	if len(c.Graph.Edges()) != 0 {
		t.Error("no edge should be created")
	}
}

func TestCompletePortConnectionOutOfRange(t *testing.T) {
	c, a, b := scenarioCanvas(t)
	c.StartConnectionDrag(a, PortRef{Dir: DirOutput, Index: 0}, Point{179, 120})
	if c.CompletePortConnection(b, PortRef{Dir: DirInput, Index: 5}) {
		t.Error("out-of-range marker index should no-op")
	}
}

func TestSelfConnectionAllowed(t *testing.T) {
	// A node may feed itself; direction compatibility is the only rule.
	c := NewCanvas()
	id := c.Graph.AddNode(testNode(100, 100, 80, 40, 1, 1))

	c.StartConnectionDrag(id, PortRef{Dir: DirOutput, Index: 0}, Point{179, 120})
	if !c.CompletePortConnection(id, PortRef{Dir: DirInput, Index: 0}) {
		t.Fatal("self connection should commit")
	}
	want := Edge{From: id, Output: 0, To: id, Input: 0}
	if got := c.Graph.Edges()[0]; got != want {
		t.Errorf("edge = %+v, want %+v", got, want)
	}
}
