// Package unit defines the compute units Xylem nodes instantiate, and a
// sandboxed zygomys engine that runs them. The interaction core treats a
// node's unit as an opaque payload; this package is the collaborator
// that gives a node its display name, description, port lists, and
// execution status.
package unit

import (
	"fmt"
	"sort"

	"github.com/chazu/xylem/pkg/flow"
)

// Default node box size for units that do not specify one.
const (
	DefaultWidth  = 120.0
	DefaultHeight = 60.0
)

// Spec describes a compute unit: its identity, port signature, and the
// zygomys script run when a node of this unit is evaluated. Inside the
// script the node's input values are bound as in0..inN-1; the script's
// final value is the node's output.
type Spec struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Inputs      []flow.PortSpec `json:"inputs,omitempty"`
	Outputs     []flow.PortSpec `json:"outputs,omitempty"`
	Source      string          `json:"source"`
	Width       float64         `json:"width,omitempty"`
	Height      float64         `json:"height,omitempty"`
}

// Instantiate returns a new node of this unit at the given position,
// with the spec's port lists and box size (falling back to defaults).
func (s *Spec) Instantiate(at flow.Point) *flow.Node {
	w, h := s.Width, s.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return &flow.Node{
		Unit:     s.Name,
		Position: at,
		Width:    w,
		Height:   h,
		Inputs:   append([]flow.PortSpec(nil), s.Inputs...),
		Outputs:  append([]flow.PortSpec(nil), s.Outputs...),
	}
}

// Registry holds the known unit specs by name.
type Registry struct {
	units map[string]*Spec
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{units: make(map[string]*Spec)}
}

// Register adds a spec. Duplicate names are rejected.
func (r *Registry) Register(s *Spec) error {
	if s.Name == "" {
		return fmt.Errorf("unit: spec has no name")
	}
	if _, exists := r.units[s.Name]; exists {
		return fmt.Errorf("unit: %q already registered", s.Name)
	}
	r.units[s.Name] = s
	return nil
}

// Get returns the spec with the given name, or nil.
func (r *Registry) Get(name string) *Spec {
	return r.units[name]
}

// Names returns all registered unit names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.units))
	for name := range r.units {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtins returns a registry preloaded with the default unit catalog.
func Builtins() *Registry {
	r := NewRegistry()
	num := flow.PortSpec{Name: "value", Type: "number"}
	for _, s := range []*Spec{
		{
			Name:        "add",
			Description: "Adds two numbers.",
			Inputs:      []flow.PortSpec{{Name: "a", Type: "number"}, {Name: "b", Type: "number"}},
			Outputs:     []flow.PortSpec{{Name: "sum", Type: "number"}},
			Source:      "(+ in0 in1)",
		},
		{
			Name:        "multiply",
			Description: "Multiplies two numbers.",
			Inputs:      []flow.PortSpec{{Name: "a", Type: "number"}, {Name: "b", Type: "number"}},
			Outputs:     []flow.PortSpec{{Name: "product", Type: "number"}},
			Source:      "(* in0 in1)",
		},
		{
			Name:        "negate",
			Description: "Negates a number.",
			Inputs:      []flow.PortSpec{num},
			Outputs:     []flow.PortSpec{{Name: "negated", Type: "number"}},
			Source:      "(- 0 in0)",
		},
		{
			Name:        "passthrough",
			Description: "Forwards its input unchanged.",
			Inputs:      []flow.PortSpec{num},
			Outputs:     []flow.PortSpec{num},
			Source:      "in0",
		},
	} {
		if err := r.Register(s); err != nil {
			// The catalog above is static; a duplicate is a programming error.
			panic(err)
		}
	}
	return r
}
