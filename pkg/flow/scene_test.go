package flow

import "testing"

func TestEdgeSegmentsResolveCurrentPositions(t *testing.T) {
	c := NewCanvas()
	a := c.Graph.AddNode(testNode(100, 100, 80, 40, 0, 1))
	b := c.Graph.AddNode(testNode(300, 100, 80, 40, 1, 0))
	c.Graph.AddEdge(a, 0, b, 0)

	segs := c.EdgeSegments()
	if len(segs) != 1 {
		t.Fatalf("segments = %d, want 1", len(segs))
	}
	// Segments run output -> input: one consistent convention for both
	// storage and rendering.
	if segs[0].Start != (Point{179, 120}) {
		t.Errorf("start = %v, want A's output (179, 120)", segs[0].Start)
	}
	if segs[0].End != (Point{299, 120}) {
		t.Errorf("end = %v, want B's input (299, 120)", segs[0].End)
	}

	// Moving an endpoint is visible on the next frame.
	c.Graph.Node(b).Position = Point{400, 200}
	segs = c.EdgeSegments()
	if segs[0].End != (Point{399, 220}) {
		t.Errorf("after move: end = %v, want (399, 220)", segs[0].End)
	}
}

func TestPreview(t *testing.T) {
	c := NewCanvas()
	a := c.Graph.AddNode(testNode(100, 100, 80, 40, 0, 1))

	if _, _, ok := c.Preview(); ok {
		t.Error("idle canvas should have no preview")
	}

	c.StartConnectionDrag(a, PortRef{Dir: DirOutput, Index: 0}, Point{179, 120})
	c.UpdatePointer(Point{250, 140})

	start, end, ok := c.Preview()
	if !ok {
		t.Fatal("connection drag should have a preview")
	}
	if start != (Point{179, 120}) {
		t.Errorf("preview start = %v, want the captured port", start)
	}
	if end != (Point{250, 140}) {
		t.Errorf("preview end = %v, want the live cursor", end)
	}

	// The start tracks the source node if it moves mid-gesture.
	c.Graph.Node(a).Position = Point{110, 100}
	start, _, _ = c.Preview()
	if start != (Point{189, 120}) {
		t.Errorf("preview start after move = %v, want (189, 120)", start)
	}
}

func TestPreviewNodeDrag(t *testing.T) {
	c := NewCanvas()
	a := c.Graph.AddNode(testNode(100, 100, 80, 40, 0, 1))
	c.StartNodeDrag(a, Point{5, 5})

	if _, _, ok := c.Preview(); ok {
		t.Error("node drags have no connection preview")
	}
}

func TestPreviewSourceRemoved(t *testing.T) {
	c := NewCanvas()
	a := c.Graph.AddNode(testNode(100, 100, 80, 40, 0, 1))
	c.StartConnectionDrag(a, PortRef{Dir: DirOutput, Index: 0}, Point{179, 120})
	c.Graph.RemoveNode(a)

	if _, _, ok := c.Preview(); ok {
		t.Error("preview should vanish with its source node")
	}
}
