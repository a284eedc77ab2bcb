package canopy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectClick(t *testing.T) {
	s, _, a, _ := inputScene(t)
	clicked := 0
	a.AddHandler(EventClick, func(*Node, *RoutedEventArgs) { clicked++ })

	s.InjectClick(50, 50)
	require.Equal(t, 2, s.PendingInjected())

	s.Update(0)
	assert.Zero(t, clicked, "press alone does not click")
	assert.Equal(t, 1, s.PendingInjected())

	s.Update(0)
	assert.Equal(t, 1, clicked)
	assert.Zero(t, s.PendingInjected())
}

func TestInjectDragInterpolates(t *testing.T) {
	s, _, a, _ := inputScene(t)
	var xs []float64
	a.AddHandler(EventDrag, func(_ *Node, args *RoutedEventArgs) {
		xs = append(xs, args.Pointer.X)
	})
	ended := false
	a.AddHandler(EventDragEnd, func(*Node, *RoutedEventArgs) { ended = true })

	s.InjectDrag(10, 10, 50, 10, 5)
	require.Equal(t, 5, s.PendingInjected())
	for i := 0; i < 5; i++ {
		s.Update(0)
	}

	assert.Equal(t, []float64{20, 30, 40}, xs)
	assert.True(t, ended)
}

func TestInjectDragMinimumFrames(t *testing.T) {
	s := NewScene()
	s.InjectDrag(0, 0, 10, 10, 0)
	require.Equal(t, 2, s.PendingInjected())
	assert.True(t, s.injectQueue[0].Pressed)
	assert.False(t, s.injectQueue[1].Pressed)
	assert.Equal(t, 10.0, s.injectQueue[1].X)
}

func TestInjectHoverHasNoButton(t *testing.T) {
	s, _, a, _ := inputScene(t)
	entered := 0
	a.AddHandler(EventPointerEnter, func(*Node, *RoutedEventArgs) { entered++ })

	s.InjectHover(50, 50)
	s.Update(0)
	assert.Equal(t, 1, entered)
	assert.False(t, s.pointers[0].down)
}

func TestInjectMoveHoldsButton(t *testing.T) {
	s := NewScene()
	s.InjectPress(1, 2)
	s.InjectMove(3, 4)
	s.InjectRelease(5, 6)

	want := []PointerInput{
		{X: 1, Y: 2, Pressed: true},
		{X: 3, Y: 4, Pressed: true},
		{X: 5, Y: 6},
	}
	assert.Equal(t, want, s.injectQueue)
}

func TestProcessInjectedInputEmpty(t *testing.T) {
	s := NewScene()
	assert.False(t, s.processInjectedInput())
}
