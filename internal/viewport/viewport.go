package viewport

// Rect is an axis-aligned rectangle in data coordinates, the window onto the
// laid-out graph that is currently visible. XMax > XMin and YMax > YMin at
// all times; zoom and pan preserve this.
type Rect struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 {
	return r.XMax - r.XMin
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 {
	return r.YMax - r.YMin
}

// Contains reports whether the data point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.XMin && x <= r.XMax && y >= r.YMin && y <= r.YMax
}

// ZoomDirection selects which way a scroll step scales the view.
type ZoomDirection int

const (
	// ZoomNone leaves the view unchanged; unrecognized scroll input maps here.
	ZoomNone ZoomDirection = iota
	// ZoomIn shrinks the visible window around the anchor.
	ZoomIn
	// ZoomOut grows the visible window around the anchor.
	ZoomOut
)

// DragState tracks an in-progress pan. The zero value is idle.
type DragState struct {
	Active  bool
	AnchorX int // screen cell of the last motion sample
	AnchorY int
}

// Controller owns the viewport rectangle and drag state and translates
// pointer and scroll input into view mutations. It has no dependency on any
// windowing system; the caller feeds it events and canvas geometry and
// redraws whenever a method reports a change.
type Controller struct {
	view      Rect
	home      Rect
	drag      DragState
	canvasW   int
	canvasH   int
	baseScale float64
}

// NewController returns a controller with the given per-step zoom factor.
// Factors at or below 1 fall back to the default of 2.
func NewController(baseScale float64) *Controller {
	if baseScale <= 1 {
		baseScale = 2.0
	}
	return &Controller{
		view:      Rect{XMin: 0, XMax: 1, YMin: 0, YMax: 1},
		home:      Rect{XMin: 0, XMax: 1, YMin: 0, YMax: 1},
		baseScale: baseScale,
	}
}

// View returns the current visible window.
func (c *Controller) View() Rect {
	return c.view
}

// Dragging reports whether a pan is in progress.
func (c *Controller) Dragging() bool {
	return c.drag.Active
}

// SetCanvasSize records the canvas extent in screen cells. Pan deltas are
// scaled by it, so it must track every resize.
func (c *Controller) SetCanvasSize(w, h int) {
	if w > 0 {
		c.canvasW = w
	}
	if h > 0 {
		c.canvasH = h
	}
}

// CanvasSize returns the recorded canvas extent.
func (c *Controller) CanvasSize() (w, h int) {
	return c.canvasW, c.canvasH
}

// FitTo sets both the current view and the reset target to the given bounds,
// padded by margin on every side (as a fraction of the extent). Degenerate
// bounds are widened so the rectangle never collapses.
func (c *Controller) FitTo(bounds Rect, margin float64) {
	w := bounds.Width()
	h := bounds.Height()
	if w <= 0 {
		bounds.XMin -= 0.5
		bounds.XMax += 0.5
		w = 1
	}
	if h <= 0 {
		bounds.YMin -= 0.5
		bounds.YMax += 0.5
		h = 1
	}
	c.view = Rect{
		XMin: bounds.XMin - w*margin,
		XMax: bounds.XMax + w*margin,
		YMin: bounds.YMin - h*margin,
		YMax: bounds.YMax + h*margin,
	}
	c.home = c.view
}

// Reset restores the view set by the last FitTo.
func (c *Controller) Reset() {
	c.view = c.home
}

// HomeWidth returns the width of the auto-fit view, the 100% zoom reference.
func (c *Controller) HomeWidth() float64 {
	return c.home.Width()
}

// Zoom scales the view by the configured factor around an anchor point in
// data coordinates, keeping the anchor's relative position inside the
// rectangle fixed. The anchor therefore stays under the same screen cell
// before and after the zoom. Returns true when the view changed.
func (c *Controller) Zoom(anchorX, anchorY float64, dir ZoomDirection) bool {
	var k float64
	switch dir {
	case ZoomIn:
		k = 1 / c.baseScale
	case ZoomOut:
		k = c.baseScale
	default:
		k = 1
	}
	if k == 1 {
		return false
	}

	// Relative anchor position, computed before scaling.
	relX := (c.view.XMax - anchorX) / c.view.Width()
	relY := (c.view.YMax - anchorY) / c.view.Height()

	newW := c.view.Width() * k
	newH := c.view.Height() * k

	c.view = Rect{
		XMin: anchorX - newW*(1-relX),
		XMax: anchorX + newW*relX,
		YMin: anchorY - newH*(1-relY),
		YMax: anchorY + newH*relY,
	}
	return true
}

// BeginDrag starts a pan anchored at the given screen cell. Events outside
// the canvas leave the state untouched.
func (c *Controller) BeginDrag(screenX, screenY int, inCanvas bool) {
	if !inCanvas {
		return
	}
	c.drag = DragState{Active: true, AnchorX: screenX, AnchorY: screenY}
}

// EndDrag finishes a pan. An out-of-canvas release is ignored, matching the
// press/motion gating: a drag survives the pointer transiently leaving the
// canvas.
func (c *Controller) EndDrag(inCanvas bool) {
	if !inCanvas {
		return
	}
	c.drag = DragState{}
}

// ContinueDrag pans the view by the screen delta since the previous sample
// and re-anchors at the new position. Motion while idle or outside the
// canvas is a no-op. The vertical delta is inverted: screen y grows
// downward while data y grows upward. Returns true when the view changed.
func (c *Controller) ContinueDrag(screenX, screenY int, inCanvas bool) bool {
	if !c.drag.Active || !inCanvas {
		return false
	}
	if c.canvasW <= 0 || c.canvasH <= 0 {
		return false
	}

	dx := float64(screenX - c.drag.AnchorX)
	dy := float64(screenY - c.drag.AnchorY)

	scaleX := c.view.Width() / float64(c.canvasW)
	scaleY := c.view.Height() / float64(c.canvasH)

	c.view.XMin -= dx * scaleX
	c.view.XMax -= dx * scaleX
	c.view.YMin += dy * scaleY
	c.view.YMax += dy * scaleY

	c.drag.AnchorX = screenX
	c.drag.AnchorY = screenY
	return dx != 0 || dy != 0
}
