package canopy

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Scene owns the root of a node tree and drives it frame by frame: layout,
// input, animation, and painting. All methods except Post must be called on
// the UI thread.
type Scene struct {
	root  *Node
	debug bool
	frame uint64

	viewportW, viewportH float64
	viewportDirty        bool
	scale                float64

	tasks  TaskQueue
	clock  *CompositionClock
	tweens []*TweenGroup

	// Input state
	captured     [maxPointers]*VisualNode
	pointers     [maxPointers]pointerState
	dragDeadZone float64
	injectQueue  []PointerInput
	testRunner   *TestRunner
	focused      *VisualNode

	screenshotQueue []string

	// Resized fires when the viewport size changes.
	Resized Signal[ViewportSize]
	// Invalidated fires when the scene asks its host for a redraw.
	Invalidated Signal[struct{}]
	// ScaleChanged fires when the content scale (DPI factor) changes.
	ScaleChanged Signal[float64]
	// FocusChanged fires when the focused node changes.
	FocusChanged Signal[FocusChange]
	// Events sees every routed event raised by pointer input, before any
	// node handler.
	Events Signal[*RoutedEventArgs]
	// Screenshots fires after each queued snapshot is written.
	Screenshots Signal[ScreenshotTaken]
}

// NewScene creates an empty scene with a content scale of 1.
func NewScene() *Scene {
	return &Scene{
		scale:        1,
		clock:        NewCompositionClock(),
		dragDeadZone: defaultDragDeadZone,
	}
}

// SetRoot replaces the root. The previous root is not disposed.
func (s *Scene) SetRoot(root Element) {
	s.root = nodeOf(root)
	s.resetInput()
	if s.root != nil {
		s.root.markLayoutDirty()
	}
	s.Invalidate()
}

// Root returns the root node, or nil.
func (s *Scene) Root() *Node {
	return s.root
}

// Clear drops the root and all pointer state.
func (s *Scene) Clear() {
	s.root = nil
	s.resetInput()
	s.Invalidate()
}

func (s *Scene) resetInput() {
	s.captured = [maxPointers]*VisualNode{}
	s.pointers = [maxPointers]pointerState{}
	s.focused = nil
}

// SetDebugMode enables per-frame stats logging at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// SetClock replaces the clock used by Run.
func (s *Scene) SetClock(c *CompositionClock) {
	if c != nil {
		s.clock = c
	}
}

// Clock returns the clock used by Run.
func (s *Scene) Clock() *CompositionClock { return s.clock }

// --- Viewport ---

// SetViewport sets the size the root is laid out in. A change dirties
// layout and emits Resized.
func (s *Scene) SetViewport(width, height float64) {
	if width == s.viewportW && height == s.viewportH {
		return
	}
	s.viewportW, s.viewportH = width, height
	s.viewportDirty = true
	s.Resized.Emit(ViewportSize{Width: width, Height: height})
	s.Invalidate()
}

// Viewport returns the current viewport size.
func (s *Scene) Viewport() (width, height float64) {
	return s.viewportW, s.viewportH
}

// SetScale sets the content scale (device pixels per logical pixel) and
// emits ScaleChanged when it changes.
func (s *Scene) SetScale(scale float64) {
	if scale <= 0 || scale == s.scale {
		return
	}
	s.scale = scale
	s.ScaleChanged.Emit(scale)
	s.Invalidate()
}

// Scale returns the content scale.
func (s *Scene) Scale() float64 { return s.scale }

// Invalidate asks the host for a redraw.
func (s *Scene) Invalidate() {
	s.Invalidated.Emit(struct{}{})
}

// --- Layout ---

// CalculateLayout lays the root out in a viewportWidth x viewportHeight area
// with no parent padding.
func (s *Scene) CalculateLayout(viewportWidth, viewportHeight float64) {
	if s.root == nil {
		return
	}
	layoutDetached(s.root, viewportWidth, viewportHeight)
}

// ensureLayout runs a layout pass when the tree or the viewport changed
// since the last one. It reports whether a pass ran.
func (s *Scene) ensureLayout() bool {
	if s.root == nil {
		return false
	}
	if !s.root.layoutDirty && !s.viewportDirty {
		return false
	}
	s.CalculateLayout(s.viewportW, s.viewportH)
	s.viewportDirty = false
	return true
}

// HitTest returns the topmost visual node under the scene point (x, y), after
// bringing layout up to date.
func (s *Scene) HitTest(x, y float64) *VisualNode {
	if s.root == nil {
		return nil
	}
	s.ensureLayout()
	return s.root.HitTest(x, y)
}

// --- Painting ---

// Render paints the tree onto c. Layout is not recomputed; use Frame for
// the full per-frame sequence.
func (s *Scene) Render(c Canvas) {
	if c == nil || s.root == nil {
		return
	}
	var stats paintStats
	paintNode(c, s.root, 1, &stats)
}

// Frame runs one frame on surface: layout if needed, BeginFrame, paint when
// a canvas is available, EndFrame, then queued screenshots. It reports
// whether anything was painted.
func (s *Scene) Frame(surface Surface) bool {
	if surface == nil {
		return false
	}
	s.frame++
	var stats debugStats

	t0 := time.Now()
	stats.laidOut = s.ensureLayout()
	stats.layoutTime = time.Since(t0)

	canvas, ok := surface.BeginFrame()
	painted := false
	if ok && canvas != nil && s.root != nil {
		t1 := time.Now()
		paintNode(canvas, s.root, 1, &stats.paint)
		stats.paintTime = time.Since(t1)
		painted = true
	} else if !ok {
		logger().Debug("frame skipped: no canvas", zap.Uint64("frame", s.frame))
	}
	surface.EndFrame()

	s.flushScreenshots(surface)
	s.debugLog(stats)
	return painted
}

// --- Update ---

// Update advances the scene by dt seconds: the test runner, one injected
// input event, registered tweens, then tasks posted from other goroutines.
func (s *Scene) Update(dt float32) {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInjectedInput()
	s.advanceTweens(dt)
	s.tasks.Drain()
}

// Animate registers g to be advanced by Update until it is done.
func (s *Scene) Animate(g *TweenGroup) {
	if g != nil && !g.Done {
		s.tweens = append(s.tweens, g)
	}
}

// ActiveTweens returns the number of registered tweens still running.
func (s *Scene) ActiveTweens() int { return len(s.tweens) }

func (s *Scene) advanceTweens(dt float32) {
	if len(s.tweens) == 0 {
		return
	}
	live := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = live
}

// Post queues fn to run on the UI thread during the next Update. Safe to
// call from any goroutine.
func (s *Scene) Post(fn func()) {
	s.tasks.Post(fn)
}

// --- Main loop ---

// Run drives the scene until window asks to close or ctx is cancelled: each
// iteration ticks the clock, runs Update and Frame, then polls window
// events. A cancelled ctx returns its error; a closed window returns nil.
func (s *Scene) Run(ctx context.Context, surface Surface, window Window) error {
	if surface == nil || window == nil {
		return nil
	}
	for !window.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.clock.Tick()
		s.Update(s.clock.DeltaSeconds())
		s.Frame(surface)
		window.PollEvents()
	}
	logger().Debug("run loop finished", zap.Uint64("frames", s.frame))
	return nil
}

// FrameCount returns the number of frames run.
func (s *Scene) FrameCount() uint64 { return s.frame }
