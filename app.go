package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/chazu/xylem/pkg/config"
	"github.com/chazu/xylem/pkg/document"
	"github.com/chazu/xylem/pkg/flow"
	"github.com/chazu/xylem/pkg/router"
	"github.com/chazu/xylem/pkg/store"
	"github.com/chazu/xylem/pkg/unit"
)

// App is the Wails backend. It exposes pointer-event, scene, and
// document methods to the frontend via bindings. All editor state lives
// in the two cells; the router is the only writer driven by pointer
// traffic.
type App struct {
	ctx    context.Context
	cfg    config.Config
	canvas *store.Cell[*flow.Canvas]
	focus  *store.Cell[flow.NodeID]
	router *router.Router
	units  *unit.Registry
	engine *unit.Engine

	docID   uuid.UUID
	docName string
}

// NewApp creates a new App with the builtin unit catalog and an empty
// canvas.
func NewApp(cfg config.Config) *App {
	canvas := store.NewCell(flow.NewCanvas())
	focus := store.NewCell(flow.NodeID{})
	a := &App{
		cfg:    cfg,
		canvas: canvas,
		focus:  focus,
		router: router.New(canvas, focus),
		units:  unit.Builtins(),
		engine: unit.NewEngineTimeout(time.Duration(cfg.Evaluator.TimeoutSeconds) * time.Second),
		docID:  uuid.New(),
	}

	// Every released write view invalidates the frontend's frame.
	canvas.Observe(a.invalidate)
	focus.Observe(a.invalidate)
	return a
}

// startup is called by Wails on app startup. The context is saved for
// runtime event emission; if an autosave document exists it is loaded,
// and the periodic autosave loop starts when an interval is configured.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	path := a.cfg.Autosave.Path
	if path == "" {
		return
	}
	if err := a.LoadDocument(path); err != nil {
		log.Printf("autosave restore skipped: %v", err)
	}
	if iv := a.cfg.Autosave.IntervalSeconds; iv > 0 {
		go a.autosaveLoop(ctx, path, time.Duration(iv)*time.Second)
	}
}

// autosaveLoop saves the workspace to path every interval until ctx is
// cancelled.
func (a *App) autosaveLoop(ctx context.Context, path string, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.SaveDocument(path); err != nil {
				log.Printf("autosave failed: %v", err)
			}
		}
	}
}

// shutdown is called by Wails before the window closes.
func (a *App) shutdown(context.Context) {
	if path := a.cfg.Autosave.Path; path != "" {
		if err := a.SaveDocument(path); err != nil {
			log.Printf("autosave failed: %v", err)
		}
	}
}

// invalidate tells the frontend to pull a fresh scene.
func (a *App) invalidate() {
	if a.ctx == nil {
		return // headless, nothing to notify
	}
	runtime.EventsEmit(a.ctx, "scene:invalidated")
}

// --- frontend DTOs -------------------------------------------------------

// PortData is a port resolved to its current marker position.
type PortData struct {
	Name     string     `json:"name"`
	Type     string     `json:"type,omitempty"`
	Position flow.Point `json:"position"`
}

// NodeData is the JSON-serializable node view sent to the frontend.
type NodeData struct {
	ID          flow.NodeID `json:"id"`
	Unit        string      `json:"unit"`
	Description string      `json:"description,omitempty"`
	Position    flow.Point  `json:"position"`
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Inputs      []PortData  `json:"inputs"`
	Outputs     []PortData  `json:"outputs"`
	Running     bool        `json:"running"`
	Queued      bool        `json:"queued"`
	Error       string      `json:"error,omitempty"`
	Focused     bool        `json:"focused"`
}

// SegmentData is a line segment in canvas coordinates.
type SegmentData struct {
	Start flow.Point `json:"start"`
	End   flow.Point `json:"end"`
}

// SceneData is the full per-frame view: every node, every edge resolved
// to current port positions, and the connection preview when one is
// being drawn.
type SceneData struct {
	Nodes   []NodeData         `json:"nodes"`
	Edges   []flow.EdgeSegment `json:"edges"`
	Preview *SegmentData       `json:"preview,omitempty"`
}

// UnitData describes one catalog entry for the frontend palette.
type UnitData struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Inputs      int    `json:"inputs"`
	Outputs     int    `json:"outputs"`
}

// EvalData is the result of evaluating one node.
type EvalData struct {
	Value string `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

// --- pointer bindings ----------------------------------------------------

// PointerMove forwards a pointer move on the editor surface.
func (a *App) PointerMove(ev router.PointerEvent) {
	a.router.PointerMove(ev)
}

// PointerDownNode forwards a pointer press on a node's body.
func (a *App) PointerDownNode(ev router.PointerEvent, id flow.NodeID) {
	a.router.NodeDown(ev, id)
}

// PointerDownPort forwards a pointer press on a port marker.
func (a *App) PointerDownPort(ev router.PointerEvent, id flow.NodeID, port flow.PortRef) {
	a.router.PortDown(ev, id, port)
}

// PointerUpNode forwards a pointer release over a node's body.
func (a *App) PointerUpNode(ev router.PointerEvent, id flow.NodeID) {
	a.router.NodeUp(ev, id)
}

// PointerUpPort forwards a pointer release on a port marker.
func (a *App) PointerUpPort(ev router.PointerEvent, id flow.NodeID, port flow.PortRef) {
	a.router.PortUp(ev, id, port)
}

// PointerUp forwards a pointer release on the bare editor surface.
func (a *App) PointerUp(ev router.PointerEvent) {
	a.router.PointerUp(ev)
}

// PointerEnter forwards the pointer entering the editor surface.
func (a *App) PointerEnter(ev router.PointerEvent) {
	a.router.PointerEnter(ev)
}

// --- scene binding -------------------------------------------------------

// Scene returns the current frame view. The frontend calls this after
// every scene:invalidated event; port and edge positions are recomputed
// from node positions on each call.
func (a *App) Scene() SceneData {
	c := a.canvas.Get()
	focused := a.focus.Get()

	var scene SceneData
	for _, n := range c.Graph.Nodes() {
		nd := NodeData{
			ID:       n.ID,
			Unit:     n.Unit,
			Position: n.Position,
			Width:    n.Width,
			Height:   n.Height,
			Running:  n.Running,
			Queued:   n.Queued,
			Error:    n.Err,
			Focused:  n.ID == focused,
		}
		if spec := a.units.Get(n.Unit); spec != nil {
			nd.Description = spec.Description
		}
		for i, p := range n.Inputs {
			nd.Inputs = append(nd.Inputs, PortData{
				Name: p.Name, Type: p.Type, Position: n.InputPosition(i),
			})
		}
		for i, p := range n.Outputs {
			nd.Outputs = append(nd.Outputs, PortData{
				Name: p.Name, Type: p.Type, Position: n.OutputPosition(i),
			})
		}
		scene.Nodes = append(scene.Nodes, nd)
	}

	scene.Edges = c.EdgeSegments()

	if start, end, ok := c.Preview(); ok {
		scene.Preview = &SegmentData{Start: start, End: end}
	}
	return scene
}

// --- catalog and graph bindings ------------------------------------------

// Units lists the unit catalog for the palette.
func (a *App) Units() []UnitData {
	var out []UnitData
	for _, name := range a.units.Names() {
		s := a.units.Get(name)
		out = append(out, UnitData{
			Name:        s.Name,
			Description: s.Description,
			Inputs:      len(s.Inputs),
			Outputs:     len(s.Outputs),
		})
	}
	return out
}

// SpawnNode places a new node of the named unit at the given position.
func (a *App) SpawnNode(unitName string, at flow.Point) (flow.NodeID, error) {
	spec := a.units.Get(unitName)
	if spec == nil {
		return flow.NodeID{}, fmt.Errorf("unknown unit %q", unitName)
	}
	var id flow.NodeID
	a.canvas.Update(func(c **flow.Canvas) {
		id = (*c).Graph.AddNode(spec.Instantiate(at))
	})
	return id, nil
}

// DeleteNode removes a node and every connection touching it. A stale
// ID is a no-op.
func (a *App) DeleteNode(id flow.NodeID) {
	a.canvas.Update(func(c **flow.Canvas) {
		(*c).Graph.RemoveNode(id)
	})
	if a.focus.Get() == id {
		a.focus.Set(flow.NodeID{})
	}
}

// EvaluateNode runs the node's unit script with the given input values.
// Status flags on the node track the evaluation: queued, then running,
// then either clear or carrying the error message. A failure stays on
// that node and never blocks interaction with the rest of the graph.
func (a *App) EvaluateNode(id flow.NodeID, inputs []interface{}) EvalData {
	var spec *unit.Spec
	var failure string
	a.canvas.Update(func(c **flow.Canvas) {
		n := (*c).Graph.Node(id)
		if n == nil {
			failure = fmt.Sprintf("node %s does not exist", id)
			return
		}
		// Resolve the unit before touching status flags: a node whose
		// unit is missing from the registry carries the error inline
		// and is never left queued.
		spec = a.units.Get(n.Unit)
		if spec == nil {
			failure = fmt.Sprintf("unknown unit %q", n.Unit)
			n.Err = failure
			return
		}
		n.Queued = true
		n.Err = ""
	})
	if failure != "" {
		log.Printf("EvaluateNode %s: %s", id, failure)
		return EvalData{Error: failure}
	}

	a.canvas.Update(func(c **flow.Canvas) {
		if n := (*c).Graph.Node(id); n != nil {
			n.Queued = false
			n.Running = true
		}
	})

	value, err := a.engine.Run(spec, inputs)

	a.canvas.Update(func(c **flow.Canvas) {
		n := (*c).Graph.Node(id)
		if n == nil {
			return
		}
		n.Running = false
		if err != nil {
			n.Err = err.Error()
		}
	})
	if err != nil {
		log.Printf("EvaluateNode %s: %v", id, err)
		return EvalData{Error: err.Error()}
	}
	return EvalData{Value: value}
}

// --- document bindings ---------------------------------------------------

// SaveDocument writes the current workspace to path.
func (a *App) SaveDocument(path string) error {
	doc := document.Snapshot(a.docID, a.docName, a.canvas.Get().Graph)
	if err := doc.Save(path); err != nil {
		log.Printf("SaveDocument: %v", err)
		return err
	}
	return nil
}

// LoadDocument replaces the workspace with the document at path. Any
// in-progress gesture and the focus slot are discarded with the old
// graph.
func (a *App) LoadDocument(path string) error {
	doc, err := document.Load(path)
	if err != nil {
		return err
	}
	g, err := doc.Restore()
	if err != nil {
		log.Printf("LoadDocument: %v", err)
		return err
	}
	a.canvas.Update(func(c **flow.Canvas) {
		(*c).Graph = g
		(*c).ClearDragging()
	})
	a.focus.Set(flow.NodeID{})
	a.docID = doc.ID
	a.docName = doc.Name
	return nil
}

// NewDocument clears the workspace and starts a fresh document.
func (a *App) NewDocument(name string) {
	a.canvas.Update(func(c **flow.Canvas) {
		*c = flow.NewCanvas()
	})
	a.focus.Set(flow.NodeID{})
	a.docID = uuid.New()
	a.docName = name
}
