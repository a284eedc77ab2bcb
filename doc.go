// Package canopy is a retained-mode UI scene graph.
//
// A tree of nodes is laid out by an external flexbox solver, hit-tested
// through nested affine transforms, and receives input as routed events that
// tunnel from the root, bubble from the target, or go directly to it.
//
// # Quick start
//
//	root := canopy.NewBox("root")
//	root.SetPadding(canopy.EdgeAll, 20)
//
//	card := canopy.NewBox("card")
//	card.SetSize(300, 200)
//	card.SetAlignment(canopy.AlignCenter)
//	card.SetJustification(canopy.JustifyCenter)
//	card.SetBackground(canopy.Color{R: 0.2, G: 0.4, B: 0.8, A: 1})
//	root.AddChild(card)
//
//	scene := canopy.NewScene()
//	scene.SetRoot(root)
//	scene.SetViewport(800, 600)
//
// Drive the scene from a host loop with [Scene.Update] and [Scene.Frame], or
// hand it a [Surface] and [Window] and call [Scene.Run]. The ebitenui package
// hosts a scene in an Ebitengine window; ggcanvas renders off-screen.
//
// # Scene graph
//
// [Node] carries parent/child bookkeeping only. Group nodes ([NewGroup]) have
// no geometry and pass painting and hit testing through to their children.
// [VisualNode] adds resolved geometry, a box model (margin, padding, border
// widths and radii), paint state, and one solver handle mirrored 1:1 into
// the solver's tree. [Node.AsVisual] narrows a node to its visual
// capability without a type switch.
//
// Tree operations take an [Element], which both *Node and *VisualNode
// implement. Adding a node that already has a parent moves it.
//
// # Layout
//
// Resolved Left and Top are relative to the parent's content box (inside its
// padding). The main axis is vertical. A node's [Alignment] places it
// horizontally within its parent and its [Justification] vertically.
// Setters that affect layout mark the subtree dirty; the scene lays out
// again before the next hit test, pointer event, or paint.
//
// # Events
//
// Each pointer sample passed to [Scene.HandlePointer] is hit-tested against
// the tree and raised as routed events such as [EventPointerDown] and
// [EventClick]. Register handlers with [Node.AddHandler]; setting
// [RoutedEventArgs].Handled stops the route.
package canopy
