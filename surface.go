package canopy

// Surface is the per-frame drawing target. BeginFrame returns the canvas for
// this frame, or false when nothing can be drawn (minimized window, lost
// context); painting is then skipped but EndFrame is still called.
type Surface interface {
	BeginFrame() (Canvas, bool)
	EndFrame()
}

// Window is the event-source side of a native window, used by Scene.Run.
type Window interface {
	// ShouldClose reports whether the main loop should stop.
	ShouldClose() bool
	// PollEvents pumps pending native events, feeding input into the scene.
	PollEvents()
}

// Snapshotter is implemented by surfaces that can write the last completed
// frame to disk.
type Snapshotter interface {
	Snapshot(label string) (path string, err error)
}
