// Package store provides a minimal publish/subscribe cell for shared
// mutable editor state. A Cell wraps a single value; writers mutate it
// through an exclusive write view, and every registered observer is
// notified when the view is released. Cells are not safe for concurrent
// use: Xylem's event handling is single-threaded, and the cell only
// enforces the one-writer discipline within that model.
package store

// Cell is a single shared observable value of type T.
type Cell[T any] struct {
	value     T
	writing   bool
	observers map[int]func()
	next      int
}

// NewCell returns a Cell holding the given initial value.
func NewCell[T any](value T) *Cell[T] {
	return &Cell[T]{
		value:     value,
		observers: make(map[int]func()),
	}
}

// Get returns the current value. Reads take no view and may be nested
// freely, including inside a write.
func (c *Cell[T]) Get() T {
	return c.value
}

// Update runs fn with the cell's exclusive write view and notifies every
// observer when fn returns. The view is released on every exit path,
// including a panic in fn. Taking a second write view of the same cell
// while one is held is a correctness bug, not a supported pattern, and
// panics immediately instead of corrupting observer state.
//
// For cells holding pointer values, fn mutates through the pointer; for
// value cells, assign through the passed address or use Set.
func (c *Cell[T]) Update(fn func(*T)) {
	if c.writing {
		panic("store: re-entrant write view on Cell")
	}
	c.writing = true
	defer func() {
		c.writing = false
		c.notify()
	}()
	fn(&c.value)
}

// Set replaces the value under a write view and notifies observers.
func (c *Cell[T]) Set(v T) {
	c.Update(func(p *T) { *p = v })
}

// Observe registers fn to run after every released write. The returned
// cancel func removes the registration; cancel is idempotent.
func (c *Cell[T]) Observe(fn func()) (cancel func()) {
	id := c.next
	c.next++
	c.observers[id] = fn
	return func() { delete(c.observers, id) }
}

func (c *Cell[T]) notify() {
	for _, fn := range c.observers {
		fn()
	}
}
