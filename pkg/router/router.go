// Package router translates raw pointer events from the rendering
// frontend into drag-state transitions and graph mutations. The router
// owns no state of its own: it reads and writes the canvas and focus
// cells it was constructed with, passed explicitly rather than looked up
// from any ambient context. Side effects are confined to graph mutation,
// node position mutation, drag-state mutation, and focus mutation.
package router

import (
	"github.com/chazu/xylem/pkg/flow"
	"github.com/chazu/xylem/pkg/store"
)

// Buttons is the bitmask of currently held pointer buttons, in the
// conventional web ordering (bit 0 = primary).
type Buttons uint32

// None reports whether no buttons are held.
func (b Buttons) None() bool {
	return b == 0
}

// PointerEvent carries one raw pointer signal from the frontend.
type PointerEvent struct {
	Page    flow.Point `json:"page"`    // canvas/page coordinates
	Element flow.Point `json:"element"` // offset inside the hit element
	Buttons Buttons    `json:"buttons"`
}

// Router drives the drag state machine from pointer events.
type Router struct {
	canvas *store.Cell[*flow.Canvas]
	focus  *store.Cell[flow.NodeID]
}

// New returns a Router bound to the given canvas and focus cells.
func New(canvas *store.Cell[*flow.Canvas], focus *store.Cell[flow.NodeID]) *Router {
	return &Router{canvas: canvas, focus: focus}
}

func (r *Router) withCanvas(fn func(*flow.Canvas)) {
	r.canvas.Update(func(c **flow.Canvas) { fn(*c) })
}

// PointerMove advances the active gesture to the pointer's new position.
func (r *Router) PointerMove(ev PointerEvent) {
	r.withCanvas(func(c *flow.Canvas) {
		c.UpdatePointer(ev.Page)
	})
}

// NodeDown handles pointerDown on a node's body. The pointer is
// hit-tested against the node's ports: inside the snap radius the
// gesture becomes a connection drag from the nearest port, otherwise a
// node drag with the element-relative grab offset frozen for the
// gesture's duration.
func (r *Router) NodeDown(ev PointerEvent, id flow.NodeID) {
	r.withCanvas(func(c *flow.Canvas) {
		n := c.Graph.Node(id)
		if n == nil {
			return
		}
		if ref, dist2, ok := flow.NearestPort(n, ev.Page); ok && flow.WithinSnap(dist2) {
			c.StartConnectionDrag(id, ref, ev.Page)
			return
		}
		c.StartNodeDrag(id, ev.Element)
	})
}

// PortDown handles pointerDown directly on a port marker: the gesture is
// a connection drag regardless of distance.
func (r *Router) PortDown(ev PointerEvent, id flow.NodeID, port flow.PortRef) {
	r.withCanvas(func(c *flow.Canvas) {
		c.StartConnectionDrag(id, port, ev.Page)
	})
}

// NodeUp handles pointerUp over a node's body: an active connection drag
// completes against the node's nearest opposite-direction port, the
// gesture ends, and focus toggles. The focus toggle always runs
// alongside the drag-completion logic for body gestures.
func (r *Router) NodeUp(ev PointerEvent, id flow.NodeID) {
	r.withCanvas(func(c *flow.Canvas) {
		c.CompleteConnection(id, ev.Page)
		c.ClearDragging()
	})
	r.toggleFocus(id)
}

// PortUp handles pointerUp on a bare port marker: an active connection
// drag of the matching opposite direction commits directly between the
// two captured ports.
func (r *Router) PortUp(ev PointerEvent, id flow.NodeID, port flow.PortRef) {
	r.withCanvas(func(c *flow.Canvas) {
		c.CompletePortConnection(id, port)
		c.ClearDragging()
	})
}

// PointerUp handles pointerUp anywhere else on the editor surface: any
// gesture is discarded.
func (r *Router) PointerUp(ev PointerEvent) {
	r.withCanvas(func(c *flow.Canvas) {
		c.ClearDragging()
	})
}

// PointerEnter handles the pointer entering the editor surface. With no
// buttons held, a gesture whose pointerUp fired outside the tracked
// surface is stale; it is discarded to recover to idle.
func (r *Router) PointerEnter(ev PointerEvent) {
	if !ev.Buttons.None() {
		return
	}
	r.withCanvas(func(c *flow.Canvas) {
		c.ClearDragging()
	})
}

// toggleFocus implements the focused-node slot: clicking the focused
// node's body clears focus, clicking any other node focuses it.
func (r *Router) toggleFocus(id flow.NodeID) {
	if r.focus.Get() == id {
		r.focus.Set(flow.NodeID{})
		return
	}
	r.focus.Set(id)
}
