package flow

import "fmt"

// PortDir distinguishes input ports from output ports.
type PortDir int

const (
	DirInput  PortDir = iota // left edge, receives values
	DirOutput                // right edge, produces values
)

func (d PortDir) String() string {
	switch d {
	case DirInput:
		return "input"
	case DirOutput:
		return "output"
	default:
		return fmt.Sprintf("PortDir(%d)", int(d))
	}
}

// Opposite returns the direction a connection started at d may complete
// against. Connections always pair one output with one input.
func (d PortDir) Opposite() PortDir {
	if d == DirInput {
		return DirOutput
	}
	return DirInput
}

// PortRef identifies one port on one node by direction and index within
// that direction's list.
type PortRef struct {
	Dir   PortDir `json:"dir"`
	Index int     `json:"index"`
}

func (r PortRef) String() string {
	return fmt.Sprintf("%s[%d]", r.Dir, r.Index)
}

// PortSpec describes a single port. Name and Type are attached by the
// compute collaborator and are opaque to the interaction core, which only
// ever counts ports and indexes into the lists.
type PortSpec struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}
