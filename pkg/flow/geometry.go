package flow

import "fmt"

// SnapDistance is the proximity threshold, in canvas units, within which
// a pointer counts as "on" a port for hit-testing and snapping.
const SnapDistance = 15.0

// Point is a 2D position in canvas coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns the componentwise sum of p and q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns the componentwise difference of p and q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// SquaredDistance returns the squared Euclidean distance between p and q.
// Proximity tests compare it against SnapDistance*SnapDistance, keeping
// square roots off the interaction hot path.
func SquaredDistance(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// WithinSnap reports whether a squared distance falls inside the snap
// radius. The boundary itself does not snap.
func WithinSnap(dist2 float64) bool {
	return dist2 < SnapDistance*SnapDistance
}
