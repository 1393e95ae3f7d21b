// Package layout adapts the gonum force-directed layout engine to the
// viewer's graph model. Position computation is fully delegated; this
// package only converts between the two graph representations and shields
// callers from engine failures.
package layout

import (
	"math"
	"time"

	"go.uber.org/zap"
	gonumlayout "gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"

	"memviz/internal/graph"
	"memviz/internal/viewport"
	apperrors "memviz/pkg/errors"
	"memviz/pkg/logger"
)

// Point is a node position in data coordinates.
type Point struct {
	X, Y float64
}

// PlacedEdge is an edge with both endpoints resolved to positions.
type PlacedEdge struct {
	From    Point
	To      Point
	RelType string
}

// Result holds the computed scene: one position per node, drawable edges,
// and the data-space bounding box for the initial viewport fit.
type Result struct {
	Positions map[string]Point
	Edges     []PlacedEdge
	Bounds    viewport.Rect
}

// Engine runs the external spring layout over a built graph.
type Engine struct {
	iterations int
	logger     *zap.Logger
}

// NewEngine returns an engine that runs the given number of layout rounds.
func NewEngine(iterations int) *Engine {
	if iterations <= 0 {
		iterations = 100
	}
	return &Engine{
		iterations: iterations,
		logger:     logger.Get(),
	}
}

// Compute places every node of g in 2D. An empty node set, or any failure
// inside the layout engine, yields the ErrNothingToPlot sentinel instead of
// an engine error: the caller shows "nothing to plot" and skips all viewport
// wiring.
func (e *Engine) Compute(g *graph.Graph) (res *Result, err error) {
	if g.Empty() {
		return nil, apperrors.ErrNothingToPlot
	}

	// The engine is an external collaborator; treat a panic like an empty
	// result rather than letting it escape.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("Layout engine failed", zap.Any("cause", r))
			res = nil
			err = apperrors.ErrNothingToPlot
		}
	}()

	start := time.Now()

	ids := make(map[string]int64, g.NodeCount())
	dg := simple.NewDirectedGraph()
	for i, name := range g.Nodes {
		ids[name] = int64(i)
		dg.AddNode(simple.Node(int64(i)))
	}
	for _, edge := range g.Edges {
		if !edge.HasSource || edge.Source == edge.Target {
			// No spring force without a second endpoint; self-loops are
			// rejected by the engine's graph type.
			continue
		}
		from, okFrom := ids[edge.Source]
		to, okTo := ids[edge.Target]
		if !okFrom || !okTo {
			continue
		}
		dg.SetEdge(dg.NewEdge(simple.Node(from), simple.Node(to)))
	}

	eades := gonumlayout.EadesR2{
		Repulsion: 1,
		Rate:      0.05,
		Updates:   e.iterations,
		Theta:     0.1,
	}
	optimizer := gonumlayout.NewOptimizerR2(dg, eades.Update)
	for optimizer.Update() {
	}

	positions := make(map[string]Point, g.NodeCount())
	bounds := viewport.Rect{
		XMin: math.Inf(1), XMax: math.Inf(-1),
		YMin: math.Inf(1), YMax: math.Inf(-1),
	}
	for name, id := range ids {
		coord := optimizer.Coord2(id)
		if !isFinite(coord.X) || !isFinite(coord.Y) {
			e.logger.Warn("Layout produced non-finite position", zap.String("node", name))
			return nil, apperrors.ErrNothingToPlot
		}
		positions[name] = Point{X: coord.X, Y: coord.Y}
		bounds.XMin = math.Min(bounds.XMin, coord.X)
		bounds.XMax = math.Max(bounds.XMax, coord.X)
		bounds.YMin = math.Min(bounds.YMin, coord.Y)
		bounds.YMax = math.Max(bounds.YMax, coord.Y)
	}

	placed := make([]PlacedEdge, 0, g.EdgeCount())
	for _, edge := range g.Edges {
		if !edge.HasSource {
			// Retained in the model for the edge count, but there is no
			// origin to stroke from.
			continue
		}
		from, okFrom := positions[edge.Source]
		to, okTo := positions[edge.Target]
		if !okFrom || !okTo {
			continue
		}
		placed = append(placed, PlacedEdge{From: from, To: to, RelType: edge.RelType})
	}

	e.logger.Info("Layout computed",
		zap.Int("nodes", g.NodeCount()),
		zap.Int("edges", g.EdgeCount()),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &Result{
		Positions: positions,
		Edges:     placed,
		Bounds:    bounds,
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
