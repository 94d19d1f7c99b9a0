package flow

// testNode builds a node with the given geometry and port counts.
// Port names follow in0..inN / out0..outN.
func testNode(x, y, w, h float64, inputs, outputs int) *Node {
	n := &Node{
		Unit:     "test",
		Position: Point{x, y},
		Width:    w,
		Height:   h,
	}
	for i := 0; i < inputs; i++ {
		n.Inputs = append(n.Inputs, PortSpec{Name: "in" + string(rune('0'+i))})
	}
	for i := 0; i < outputs; i++ {
		n.Outputs = append(n.Outputs, PortSpec{Name: "out" + string(rune('0'+i))})
	}
	return n
}
