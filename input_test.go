package canopy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inputScene lays out an 800x600 root with two 100x100 buttons: "a" at
// (0,0) and "b" at (200,0) in scene space.
func inputScene(t *testing.T) (s *Scene, root, a, b *VisualNode) {
	t.Helper()
	s = NewScene()
	root = NewBox("root")
	root.SetSize(800, 600)
	a = NewBox("a")
	a.SetSize(100, 100)
	a.SetAlignment(AlignStart)
	row := NewGroup("row")
	b = NewBox("b")
	b.SetSize(100, 100)
	b.SetAlignment(AlignStart)
	b.SetMargin(EdgeLeft, 200)
	root.AddChild(a)
	root.AddChild(row)
	row.AddChild(b)
	s.SetRoot(root)
	s.SetViewport(800, 600)
	require.Same(t, b, s.HitTest(250, 50))
	return s, root, a, b
}

// recordEvents logs "<event>@<current target>" for every pointer event that
// reaches n.
func recordEvents(n *Node, log *[]string, events ...*RoutedEvent) {
	for _, ev := range events {
		n.AddHandler(ev, func(node *Node, args *RoutedEventArgs) {
			*log = append(*log, args.Event.Name+"@"+node.Name)
		})
	}
}

var allPointerEvents = []*RoutedEvent{
	EventPreviewPointerDown, EventPointerDown, EventPointerUp, EventPointerMove,
	EventPointerEnter, EventPointerLeave, EventClick,
	EventDragStart, EventDrag, EventDragEnd,
}

func press(x, y float64) PointerInput   { return PointerInput{X: x, Y: y, Pressed: true} }
func release(x, y float64) PointerInput { return PointerInput{X: x, Y: y} }

func TestClickSequence(t *testing.T) {
	s, _, a, _ := inputScene(t)
	var log []string
	recordEvents(a.AsNode(), &log, allPointerEvents...)

	s.HandlePointer(press(50, 50))
	s.HandlePointer(release(50, 50))

	assert.Equal(t, []string{
		"PointerEnter@a",
		"PreviewPointerDown@a",
		"PointerDown@a",
		"Click@a",
		"PointerUp@a",
	}, log)
}

func TestClickBubblesToRoot(t *testing.T) {
	s, root, _, b := inputScene(t)
	var log []string
	recordEvents(root.AsNode(), &log, EventClick)
	recordEvents(b.AsNode(), &log, EventClick)
	row := root.FindByName("row")
	recordEvents(row, &log, EventClick)

	s.HandlePointer(press(250, 50))
	s.HandlePointer(release(250, 50))

	assert.Equal(t, []string{"Click@b", "Click@row", "Click@root"}, log)
}

func TestNoClickWhenReleasedElsewhere(t *testing.T) {
	s, _, a, b := inputScene(t)
	var log []string
	recordEvents(a.AsNode(), &log, EventClick, EventPointerUp)
	recordEvents(b.AsNode(), &log, EventClick, EventPointerUp)

	s.SetDragDeadZone(1000)
	s.HandlePointer(press(50, 50))
	s.HandlePointer(release(250, 50))

	assert.Equal(t, []string{"PointerUp@b"}, log)
}

func TestDragSequence(t *testing.T) {
	s, _, a, _ := inputScene(t)
	var deltas []float64
	var log []string
	recordEvents(a.AsNode(), &log, EventDragStart, EventDragEnd, EventClick)
	a.AddHandler(EventDrag, func(_ *Node, args *RoutedEventArgs) {
		deltas = append(deltas, args.Pointer.DeltaX)
		assert.Equal(t, 10.0, args.Pointer.StartX)
	})

	s.HandlePointer(press(10, 10))
	s.HandlePointer(press(12, 10)) // inside the dead zone
	s.HandlePointer(press(30, 10))
	s.HandlePointer(press(300, 10)) // leaves a, still delivered to a
	s.HandlePointer(release(300, 10))

	assert.Equal(t, []string{"DragStart@a", "DragEnd@a"}, log)
	assert.Equal(t, []float64{18, 270}, deltas)
}

func TestDeadZoneSuppressesDrag(t *testing.T) {
	s, _, a, _ := inputScene(t)
	var log []string
	recordEvents(a.AsNode(), &log, EventDragStart, EventClick)

	s.HandlePointer(press(10, 10))
	s.HandlePointer(press(13, 10))
	s.HandlePointer(release(13, 10))

	assert.Equal(t, []string{"Click@a"}, log)
}

func TestHoverEnterLeave(t *testing.T) {
	s, root, a, b := inputScene(t)
	var log []string
	recordEvents(a.AsNode(), &log, EventPointerEnter, EventPointerLeave)
	recordEvents(b.AsNode(), &log, EventPointerEnter, EventPointerLeave)
	recordEvents(root.AsNode(), &log, EventPointerEnter, EventPointerLeave)

	s.HandlePointer(release(50, 50))
	s.HandlePointer(release(60, 50))
	s.HandlePointer(release(250, 50))
	s.HandlePointer(release(500, 500))

	// Enter and leave are direct: ancestors never see them.
	assert.Equal(t, []string{
		"PointerEnter@a",
		"PointerLeave@a",
		"PointerEnter@b",
		"PointerLeave@b",
		"PointerEnter@root",
	}, log)
}

func TestHoverMoveDelta(t *testing.T) {
	s, _, a, _ := inputScene(t)
	var moves []PointerData
	a.AddHandler(EventPointerMove, func(_ *Node, args *RoutedEventArgs) {
		moves = append(moves, *args.Pointer)
	})

	s.HandlePointer(release(10, 10))
	s.HandlePointer(release(10, 10))
	s.HandlePointer(release(15, 12))

	require.Len(t, moves, 2)
	assert.Equal(t, 5.0, moves[1].DeltaX)
	assert.Equal(t, 2.0, moves[1].DeltaY)
}

func TestPreviewHandledSuppressesPointerDown(t *testing.T) {
	s, root, a, _ := inputScene(t)
	var log []string
	recordEvents(a.AsNode(), &log, EventPreviewPointerDown, EventPointerDown)
	root.AddHandler(EventPreviewPointerDown, func(n *Node, args *RoutedEventArgs) {
		log = append(log, "preview@root")
		args.Handled = true
	})

	s.HandlePointer(press(50, 50))
	assert.Equal(t, []string{"preview@root"}, log)
}

func TestPreviewTunnelsBeforeBubble(t *testing.T) {
	s, root, a, _ := inputScene(t)
	var log []string
	recordEvents(root.AsNode(), &log, EventPreviewPointerDown, EventPointerDown)
	recordEvents(a.AsNode(), &log, EventPreviewPointerDown, EventPointerDown)

	s.HandlePointer(press(50, 50))
	assert.Equal(t, []string{
		"PreviewPointerDown@root",
		"PreviewPointerDown@a",
		"PointerDown@a",
		"PointerDown@root",
	}, log)
}

func TestCapturePointer(t *testing.T) {
	s, _, a, b := inputScene(t)
	var log []string
	recordEvents(a.AsNode(), &log, EventPointerMove, EventPointerUp)
	recordEvents(b.AsNode(), &log, EventPointerMove, EventPointerUp)

	s.HandlePointer(press(50, 50))
	s.CapturePointer(0, a)
	s.HandlePointer(press(250, 50))
	s.HandlePointer(release(250, 50))
	// Capture ends with the release.
	s.HandlePointer(release(260, 50))

	assert.Equal(t, []string{"PointerMove@a", "PointerUp@a", "PointerMove@b"}, log)
}

func TestReleasePointer(t *testing.T) {
	s, _, a, b := inputScene(t)
	var log []string
	recordEvents(b.AsNode(), &log, EventPointerUp)

	s.HandlePointer(press(50, 50))
	s.CapturePointer(0, a)
	s.ReleasePointer(0)
	s.HandlePointer(release(250, 50))

	assert.Equal(t, []string{"PointerUp@b"}, log)
	s.CapturePointer(maxPointers, a)
	s.ReleasePointer(-1)
}

func TestMultiplePointersIndependent(t *testing.T) {
	s, _, a, b := inputScene(t)
	var log []string
	recordEvents(a.AsNode(), &log, EventClick)
	recordEvents(b.AsNode(), &log, EventClick)

	s.HandlePointer(PointerInput{X: 50, Y: 50, Pressed: true, PointerID: 1})
	s.HandlePointer(PointerInput{X: 250, Y: 50, Pressed: true, PointerID: 2})
	s.HandlePointer(PointerInput{X: 250, Y: 50, PointerID: 2})
	s.HandlePointer(PointerInput{X: 50, Y: 50, PointerID: 1})
	s.HandlePointer(PointerInput{X: 50, Y: 50, Pressed: true, PointerID: maxPointers})

	assert.Equal(t, []string{"Click@b", "Click@a"}, log)
}

func TestPointerDataCarriesButtonAndModifiers(t *testing.T) {
	s, _, a, _ := inputScene(t)
	var got *PointerData
	a.AddHandler(EventPointerUp, func(_ *Node, args *RoutedEventArgs) {
		got = args.Pointer
	})

	s.HandlePointer(PointerInput{X: 10, Y: 10, Pressed: true, Button: MouseButtonRight, Modifiers: ModShift | ModCtrl})
	s.HandlePointer(PointerInput{X: 10, Y: 10, Button: MouseButtonLeft})

	require.NotNil(t, got)
	assert.Equal(t, MouseButtonRight, got.Button, "release keeps the pressed button")
	assert.Equal(t, 10.0, got.StartX)
}

func TestFocusFollowsPress(t *testing.T) {
	s, root, a, _ := inputScene(t)
	a.Focusable = true
	var changes []FocusChange
	s.FocusChanged.Connect(func(c FocusChange) { changes = append(changes, c) })

	s.HandlePointer(press(50, 50))
	s.HandlePointer(release(50, 50))
	assert.Same(t, a, s.Focused())

	// b is not focusable and neither is any ancestor.
	s.HandlePointer(press(250, 50))
	s.HandlePointer(release(250, 50))
	assert.Nil(t, s.Focused())

	root.Focusable = true
	s.HandlePointer(press(250, 50))
	assert.Same(t, root, s.Focused())

	require.Len(t, changes, 3)
	assert.Nil(t, changes[0].Old)
	assert.Same(t, a, changes[0].New)
	assert.Same(t, a, changes[1].Old)
}

func TestSceneEventsSeesEveryRaise(t *testing.T) {
	s, _, a, _ := inputScene(t)
	a.AddHandler(EventPointerDown, func(_ *Node, args *RoutedEventArgs) { args.Handled = true })
	var names []string
	s.Events.Connect(func(args *RoutedEventArgs) { names = append(names, args.Event.Name) })

	s.HandlePointer(press(50, 50))
	assert.Equal(t, []string{"PointerEnter", "PreviewPointerDown", "PointerDown"}, names)
}

func TestDisposedHoverNodeGetsNoLeave(t *testing.T) {
	s, _, a, _ := inputScene(t)
	var log []string
	recordEvents(a.AsNode(), &log, EventPointerLeave)

	s.HandlePointer(release(50, 50))
	a.Dispose()
	s.HandlePointer(release(60, 50))
	assert.Empty(t, log)
}

func TestSetRootResetsPointerState(t *testing.T) {
	s, _, a, _ := inputScene(t)
	a.Focusable = true
	s.HandlePointer(press(50, 50))
	require.Same(t, a, s.Focused())

	s.SetRoot(NewBox("other"))
	assert.Nil(t, s.Focused())
	assert.Equal(t, pointerState{}, s.pointers[0])
}
