package canopy

import "go.uber.org/zap"

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic: the scene graph is owned by
// the UI thread).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Element is implemented by *Node and *VisualNode. Tree operations accept an
// Element so a visual node can be passed without spelling out its embedded Node.
type Element interface {
	node() *Node
}

func nodeOf(e Element) *Node {
	if e == nil {
		return nil
	}
	return e.node()
}

// --- Node ---

// Node is a tree entity with parent/child bookkeeping and no geometry.
// Group nodes are plain Nodes; visual nodes embed a Node and register
// themselves as its visual capability at construction.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	parent   *Node
	children []*Node

	// visual is set once by the VisualNode constructor and never changes.
	visual *VisualNode

	// Metadata
	UserData any

	handlers    handlerTable
	layoutDirty bool
	disposed    bool
}

// NewGroup creates a node with no geometry. Group nodes pass hit tests and
// painting straight through to their children.
func NewGroup(name string) *Node {
	return &Node{ID: nextNodeID(), Name: name, Type: NodeTypeGroup, layoutDirty: true}
}

func (n *Node) node() *Node { return n }

// AsVisual returns the visual capability of n, or nil for group nodes.
func (n *Node) AsVisual() *VisualNode {
	if n == nil {
		return nil
	}
	return n.visual
}

// --- Tree queries ---

// Parent returns the parent node, or nil for a detached node.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	if n == nil {
		return 0
	}
	return len(n.children)
}

// ChildAt returns the child at the given index, or nil when out of range.
func (n *Node) ChildAt(index int) *Node {
	if n == nil || index < 0 || index >= len(n.children) {
		return nil
	}
	return n.children[index]
}

// IndexOf returns the index of child among n's children, or -1.
func (n *Node) IndexOf(child Element) int {
	c := nodeOf(child)
	if n == nil || c == nil || c.parent != n {
		return -1
	}
	for i, ch := range n.children {
		if ch == c {
			return i
		}
	}
	return -1
}

// Root walks up the parent chain and returns the topmost ancestor.
func (n *Node) Root() *Node {
	if n == nil {
		return nil
	}
	p := n
	for p.parent != nil {
		p = p.parent
	}
	return p
}

// Depth returns the number of ancestors of n.
func (n *Node) Depth() int {
	d := 0
	for p := n.Parent(); p != nil; p = p.parent {
		d++
	}
	return d
}

// FindByName returns the first node named name in a depth-first, pre-order
// walk of the subtree rooted at n.
func (n *Node) FindByName(name string) *Node {
	if n == nil {
		return nil
	}
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.FindByName(name); found != nil {
			return found
		}
	}
	return nil
}

// Walk calls fn for n and every descendant in paint order. Returning false
// from fn skips that node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// --- Tree manipulation ---

// AddChild appends child to this node's children, on top of its siblings.
// If child already has a parent, it is removed from that parent first.
// Nil children and additions that would create a cycle are ignored.
func (n *Node) AddChild(child Element) {
	n.AddChildAt(child, n.NumChildren())
}

// AddChildAt inserts child at the given index, clamped to [0, NumChildren()].
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child Element, index int) {
	c := nodeOf(child)
	if n == nil || c == nil {
		return
	}
	if n.disposed || c.disposed {
		logger().Debug("add child: disposed node",
			zap.String("parent", n.Name), zap.String("child", c.Name))
		return
	}
	if isAncestor(c, n) {
		logger().Debug("add child: would create a cycle",
			zap.String("parent", n.Name), zap.String("child", c.Name))
		return
	}
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
	index = max(0, min(index, len(n.children)))
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = c
	c.parent = n

	if n.visual != nil && c.visual != nil {
		n.visual.attachLayout(c.visual, n.visualIndex(index))
	}
	c.markLayoutDirty()
	debugCheckTreeDepth(c)
	debugCheckChildCount(n)
}

// RemoveChild detaches child from this node and clears its parent.
// No-op if child is nil or not a child of n.
func (n *Node) RemoveChild(child Element) {
	c := nodeOf(child)
	if n == nil || c == nil || c.parent != n {
		return
	}
	if !n.removeChildByPtr(c) {
		return
	}
	c.parent = nil
	if n.visual != nil && c.visual != nil {
		n.visual.detachLayout(c.visual)
	}
	n.markLayoutDirty()
	c.markLayoutDirty()
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n == nil || n.parent == nil {
		return
	}
	n.parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	if n == nil {
		return
	}
	for len(n.children) > 0 {
		n.RemoveChild(n.children[len(n.children)-1])
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n == nil || n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.parent = nil
		child.dispose()
	}
	n.children = nil
	n.parent = nil
	n.UserData = nil
	n.handlers = handlerTable{}
	if n.visual != nil {
		n.visual.releaseLayout()
	}
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n != nil && n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return true
		}
	}
	return false
}

// visualIndex converts an index into n.children into an index among the
// visual children before it. Group children have no layout mirror.
func (n *Node) visualIndex(index int) int {
	vi := 0
	for _, c := range n.children[:index] {
		if c.visual != nil {
			vi++
		}
	}
	return vi
}

// markLayoutDirty flags n and its ancestors as needing a layout pass. An
// already dirty node implies dirty ancestors, so the walk stops there.
func (n *Node) markLayoutDirty() {
	for p := n; p != nil; p = p.parent {
		if p.layoutDirty && p != n {
			return
		}
		p.layoutDirty = true
	}
}

// NeedsLayout reports whether a property affecting layout changed in this
// subtree since the last layout pass.
func (n *Node) NeedsLayout() bool {
	return n != nil && n.layoutDirty
}
