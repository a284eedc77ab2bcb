package ebitenui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/canopy"
)

// readModifiers reads the current keyboard modifier state.
func readModifiers() canopy.KeyModifiers {
	var mods canopy.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= canopy.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= canopy.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= canopy.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= canopy.ModMeta
	}
	return mods
}

// processMouse feeds the mouse as pointer 0.
func (g *Game) processMouse(mods canopy.KeyModifiers) {
	mx, my := ebiten.CursorPosition()
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	in := canopy.PointerInput{X: float64(mx), Y: float64(my), Modifiers: mods}
	switch {
	case left:
		in.Pressed, in.Button = true, canopy.MouseButtonLeft
	case right:
		in.Pressed, in.Button = true, canopy.MouseButtonRight
	case middle:
		in.Pressed, in.Button = true, canopy.MouseButtonMiddle
	}
	g.scene.HandlePointer(in)
}

// processTouches feeds touches as pointers 1-9 and releases ended touches.
func (g *Game) processTouches(mods canopy.KeyModifiers) {
	touchIDs := ebiten.AppendTouchIDs(g.prevTouchIDs[:0])
	g.prevTouchIDs = touchIDs

	var active [maxPointers]bool
	for _, tid := range touchIDs {
		slot := g.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		g.touchLast[slot] = canopy.Vec2{X: float64(tx), Y: float64(ty)}
		g.scene.HandlePointer(canopy.PointerInput{
			X: float64(tx), Y: float64(ty),
			Pressed:   true,
			Button:    canopy.MouseButtonLeft,
			Modifiers: mods,
			PointerID: slot,
		})
	}
	g.releaseInactive(active, mods)
}

func (g *Game) releaseInactive(active [maxPointers]bool, mods canopy.KeyModifiers) {
	for i := 1; i < maxPointers; i++ {
		if !g.touchUsed[i] || active[i] {
			continue
		}
		last := g.touchLast[i]
		g.scene.HandlePointer(canopy.PointerInput{
			X: last.X, Y: last.Y,
			Button:    canopy.MouseButtonLeft,
			Modifiers: mods,
			PointerID: i,
		})
		g.touchUsed[i] = false
		g.touchMap[i] = 0
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (g *Game) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if g.touchUsed[i] && g.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !g.touchUsed[i] {
			g.touchUsed[i] = true
			g.touchMap[i] = tid
			return i
		}
	}
	return -1
}
