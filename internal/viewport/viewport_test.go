package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func newTestController() *Controller {
	c := NewController(2.0)
	c.FitTo(Rect{XMin: 0, XMax: 10, YMin: 0, YMax: 10}, 0)
	c.SetCanvasSize(500, 400)
	return c
}

func TestZoomInAtAnchor(t *testing.T) {
	c := newTestController()

	changed := c.Zoom(2, 2, ZoomIn)
	require.True(t, changed)

	v := c.View()
	// Width and height halve; the anchor keeps its relative position
	// (relX = relY = 0.8 from the max edge).
	assert.InDelta(t, 5.0, v.Width(), tolerance)
	assert.InDelta(t, 5.0, v.Height(), tolerance)
	assert.InDelta(t, 1.0, v.XMin, tolerance)
	assert.InDelta(t, 6.0, v.XMax, tolerance)
	assert.InDelta(t, 1.0, v.YMin, tolerance)
	assert.InDelta(t, 6.0, v.YMax, tolerance)

	relX := (v.XMax - 2) / v.Width()
	relY := (v.YMax - 2) / v.Height()
	assert.InDelta(t, 0.8, relX, tolerance)
	assert.InDelta(t, 0.8, relY, tolerance)
}

func TestZoomOutAtAnchor(t *testing.T) {
	c := newTestController()

	require.True(t, c.Zoom(5, 5, ZoomOut))

	v := c.View()
	assert.InDelta(t, 20.0, v.Width(), tolerance)
	assert.InDelta(t, 20.0, v.Height(), tolerance)
	// Centered anchor stays centered.
	assert.InDelta(t, -5.0, v.XMin, tolerance)
	assert.InDelta(t, 15.0, v.XMax, tolerance)
}

func TestZoomNoneIsNoOp(t *testing.T) {
	c := newTestController()
	before := c.View()

	changed := c.Zoom(3, 7, ZoomNone)

	assert.False(t, changed)
	assert.Equal(t, before, c.View())
}

func TestZoomInThenOutRestoresView(t *testing.T) {
	c := newTestController()
	before := c.View()

	require.True(t, c.Zoom(3.3, 7.1, ZoomIn))
	require.True(t, c.Zoom(3.3, 7.1, ZoomOut))

	v := c.View()
	assert.InDelta(t, before.XMin, v.XMin, tolerance)
	assert.InDelta(t, before.XMax, v.XMax, tolerance)
	assert.InDelta(t, before.YMin, v.YMin, tolerance)
	assert.InDelta(t, before.YMax, v.YMax, tolerance)
}

func TestZoomNeverInvertsViewport(t *testing.T) {
	c := newTestController()

	for i := 0; i < 50; i++ {
		c.Zoom(2, 2, ZoomIn)
		v := c.View()
		assert.Greater(t, v.XMax, v.XMin)
		assert.Greater(t, v.YMax, v.YMin)
	}
}

func TestContinueDragPansView(t *testing.T) {
	c := newTestController()

	c.BeginDrag(100, 100, true)
	require.True(t, c.Dragging())

	changed := c.ContinueDrag(110, 95, true)
	require.True(t, changed)

	v := c.View()
	// dx=10 cells at 0.02 data/cell, dy=-5 cells at 0.025 data/cell with
	// the vertical axis inverted.
	assert.InDelta(t, -0.2, v.XMin, tolerance)
	assert.InDelta(t, 9.8, v.XMax, tolerance)
	assert.InDelta(t, -0.125, v.YMin, tolerance)
	assert.InDelta(t, 9.875, v.YMax, tolerance)
}

func TestContinueDragReanchorsEachSample(t *testing.T) {
	c := newTestController()

	c.BeginDrag(100, 100, true)
	c.ContinueDrag(110, 100, true)
	c.ContinueDrag(110, 100, true) // same position, zero delta

	v := c.View()
	assert.InDelta(t, -0.2, v.XMin, tolerance)
	assert.InDelta(t, 9.8, v.XMax, tolerance)
}

func TestContinueDragWhileIdleIsNoOp(t *testing.T) {
	c := newTestController()
	before := c.View()

	changed := c.ContinueDrag(110, 95, true)

	assert.False(t, changed)
	assert.Equal(t, before, c.View())
}

func TestBeginDragOutsideCanvasIsIgnored(t *testing.T) {
	c := newTestController()

	c.BeginDrag(100, 100, false)

	assert.False(t, c.Dragging())
}

func TestDragSurvivesOutOfCanvasEvents(t *testing.T) {
	c := newTestController()

	c.BeginDrag(100, 100, true)

	// Motion and release outside the canvas neither pan nor cancel.
	before := c.View()
	assert.False(t, c.ContinueDrag(200, 200, false))
	assert.Equal(t, before, c.View())

	c.EndDrag(false)
	assert.True(t, c.Dragging())

	// Back in the canvas the drag is still live.
	assert.True(t, c.ContinueDrag(105, 100, true))
	c.EndDrag(true)
	assert.False(t, c.Dragging())
}

func TestFitToAddsMargin(t *testing.T) {
	c := NewController(2.0)
	c.FitTo(Rect{XMin: 0, XMax: 10, YMin: 0, YMax: 20}, 0.05)

	v := c.View()
	assert.InDelta(t, -0.5, v.XMin, tolerance)
	assert.InDelta(t, 10.5, v.XMax, tolerance)
	assert.InDelta(t, -1.0, v.YMin, tolerance)
	assert.InDelta(t, 21.0, v.YMax, tolerance)
}

func TestFitToDegenerateBounds(t *testing.T) {
	c := NewController(2.0)

	// A single node has a zero-extent bounding box.
	c.FitTo(Rect{XMin: 3, XMax: 3, YMin: 4, YMax: 4}, 0.05)

	v := c.View()
	assert.Greater(t, v.XMax, v.XMin)
	assert.Greater(t, v.YMax, v.YMin)
	assert.True(t, v.Contains(3, 4))
}

func TestResetRestoresFit(t *testing.T) {
	c := newTestController()
	home := c.View()

	c.Zoom(2, 2, ZoomIn)
	c.BeginDrag(100, 100, true)
	c.ContinueDrag(150, 120, true)
	require.NotEqual(t, home, c.View())

	c.Reset()
	assert.Equal(t, home, c.View())
}

func TestNewControllerRejectsBadScale(t *testing.T) {
	c := NewController(0.5)
	c.FitTo(Rect{XMin: 0, XMax: 10, YMin: 0, YMax: 10}, 0)

	c.Zoom(5, 5, ZoomIn)
	// Falls back to the default factor of 2 rather than zooming backwards.
	assert.InDelta(t, 5.0, c.View().Width(), tolerance)
}
