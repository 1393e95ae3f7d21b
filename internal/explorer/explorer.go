// Package explorer opens the interactive window over a laid-out memory
// graph. It wires the store, the model builder, the layout engine and the
// viewport controller together; run loop and input delivery come from
// bubbletea.
package explorer

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"memviz/internal/graph"
	"memviz/internal/layout"
	"memviz/internal/viewport"
	"memviz/pkg/config"
	apperrors "memviz/pkg/errors"
	"memviz/pkg/logger"
)

// NothingToPlotMessage is returned instead of opening a window when the
// store holds no displayable graph.
const NothingToPlotMessage = "Nothing to Plot, add memories"

// DisplayGraph connects to the memory store, builds and lays out the graph,
// and opens the interactive window. It blocks until the window closes and
// always releases the store connection, including on the empty-graph early
// return. The returned string is empty except for the nothing-to-plot case.
func DisplayGraph(ctx context.Context, cfg *config.Config) (string, error) {
	log := logger.Get()

	store, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		return "", err
	}
	defer store.Close(ctx)

	triples, err := store.FetchTriples(ctx)
	if err != nil {
		return "", err
	}

	g := graph.Build(triples)
	log.Info("Graph assembled",
		zap.Int("nodes", g.NodeCount()),
		zap.Int("edges", g.EdgeCount()),
	)

	scene, err := layout.NewEngine(cfg.LayoutIterations).Compute(g)
	if err != nil {
		if errors.Is(err, apperrors.ErrNothingToPlot) {
			return NothingToPlotMessage, nil
		}
		return "", err
	}

	ctrl := viewport.NewController(cfg.BaseScale)
	ctrl.FitTo(scene.Bounds, fitMargin)

	program := tea.NewProgram(
		newModel(g, scene, ctrl, cfg.ShowLabels),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := program.Run(); err != nil {
		return "", fmt.Errorf("viewer window failed: %w", err)
	}

	log.Info("Viewer window closed")
	return "", nil
}
