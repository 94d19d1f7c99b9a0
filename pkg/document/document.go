// Package document persists Xylem workspaces as JSON on disk. The format
// carries only durable node state: a node's transient execution flags
// never appear in the file and always load reset. Port indices read from
// a file are untrusted and validated on restore.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/chazu/xylem/pkg/flow"
)

// Restore validation errors.
var (
	ErrUnknownNode = errors.New("edge references unknown node")
	ErrPortRange   = errors.New("edge port index out of range")
	ErrBadNode     = errors.New("node record invalid")
)

// Document is the persisted form of a workspace.
type Document struct {
	ID    uuid.UUID    `json:"id"`
	Name  string       `json:"name,omitempty"`
	Nodes []*flow.Node `json:"nodes"`
	Edges []flow.Edge  `json:"edges"`
}

// New returns an empty named document with a fresh identifier.
func New(name string) *Document {
	return &Document{ID: uuid.New(), Name: name}
}

// Snapshot captures the graph's durable state into a document carrying
// the given identity. Node values are copied so later edits to the live
// graph cannot drift into the snapshot.
func Snapshot(id uuid.UUID, name string, g *flow.Graph) *Document {
	d := &Document{ID: id, Name: name}
	for _, n := range g.Nodes() {
		clone := *n
		clone.Inputs = append([]flow.PortSpec(nil), n.Inputs...)
		clone.Outputs = append([]flow.PortSpec(nil), n.Outputs...)
		d.Nodes = append(d.Nodes, &clone)
	}
	d.Edges = append(d.Edges, g.Edges()...)
	return d
}

// Restore rebuilds a graph from the document. The arena reassigns node
// IDs; edges are remapped through the persisted IDs. Transient status
// fields are zeroed regardless of anything in the file, and every edge's
// endpoints and port indices are validated before insertion.
func (d *Document) Restore() (*flow.Graph, error) {
	g := flow.New()
	remap := make(map[flow.NodeID]flow.NodeID, len(d.Nodes))

	for i, rec := range d.Nodes {
		if rec == nil {
			return nil, fmt.Errorf("%w: record %d is null", ErrBadNode, i)
		}
		if rec.Width <= 0 || rec.Height <= 0 {
			return nil, fmt.Errorf("%w: record %d has size %gx%g", ErrBadNode, i, rec.Width, rec.Height)
		}
		oldID := rec.ID
		if _, dup := remap[oldID]; dup {
			return nil, fmt.Errorf("%w: record %d reuses id %s", ErrBadNode, i, oldID)
		}

		n := *rec
		n.Inputs = append([]flow.PortSpec(nil), rec.Inputs...)
		n.Outputs = append([]flow.PortSpec(nil), rec.Outputs...)
		n.Running = false
		n.Queued = false
		n.Err = ""

		remap[oldID] = g.AddNode(&n)
	}

	for _, e := range d.Edges {
		from, ok := remap[e.From]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownNode, e.From)
		}
		to, ok := remap[e.To]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownNode, e.To)
		}
		fn, tn := g.Node(from), g.Node(to)
		if e.Output < 0 || e.Output >= fn.PortCount(flow.DirOutput) {
			return nil, fmt.Errorf("%w: output %d on %s", ErrPortRange, e.Output, e.From)
		}
		if e.Input < 0 || e.Input >= tn.PortCount(flow.DirInput) {
			return nil, fmt.Errorf("%w: input %d on %s", ErrPortRange, e.Input, e.To)
		}
		g.AddEdge(from, e.Output, to, e.Input)
	}

	return g, nil
}

// Save writes the document as indented JSON.
func (d *Document) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("document: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("document: write %s: %w", path, err)
	}
	return nil
}

// Load reads a document from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("document: read %s: %w", path, err)
	}
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("document: parse %s: %w", path, err)
	}
	return &d, nil
}
