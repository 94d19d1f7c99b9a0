package flow

// NearestPort returns the port of n closest to p, searching the input and
// output lists together, along with its squared distance. ok is false
// when the node has no ports at all; an empty list simply contributes no
// candidates.
func NearestPort(n *Node, p Point) (ref PortRef, dist2 float64, ok bool) {
	in, inDist, inOK := NearestPortInDir(n, DirInput, p)
	out, outDist, outOK := NearestPortInDir(n, DirOutput, p)
	switch {
	case inOK && (!outOK || inDist <= outDist):
		return PortRef{Dir: DirInput, Index: in}, inDist, true
	case outOK:
		return PortRef{Dir: DirOutput, Index: out}, outDist, true
	default:
		return PortRef{}, 0, false
	}
}

// NearestPortInDir returns the index of the port in the given direction
// closest to p, with its squared distance. ok is false when the node has
// no ports in that direction.
func NearestPortInDir(n *Node, dir PortDir, p Point) (index int, dist2 float64, ok bool) {
	count := n.PortCount(dir)
	if count == 0 {
		return 0, 0, false
	}
	index = 0
	dist2 = SquaredDistance(n.PortPosition(PortRef{Dir: dir, Index: 0}), p)
	for i := 1; i < count; i++ {
		d := SquaredDistance(n.PortPosition(PortRef{Dir: dir, Index: i}), p)
		if d < dist2 {
			index = i
			dist2 = d
		}
	}
	return index, dist2, true
}
