// Package flow implements the graph interaction core of Xylem: the node
// graph arena, the single active drag gesture, and the hit-testing and
// snapping logic that decides what a pointer gesture means.
package flow
