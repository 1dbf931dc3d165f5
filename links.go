package main

// PointRole names which stored coordinate of a path command a reference
// points at.
type PointRole int

const (
	RoleEnd PointRole = iota
	RoleC1
	RoleC2
	// RolePending is the dangling handle staged for the next segment; its
	// command index is ignored.
	RolePending
)

type PointRef struct {
	Cmd  int
	Role PointRole
}

var pendingRef = PointRef{Cmd: -1, Role: RolePending}

// LinkRule says how a linked point follows the dragged one.
type LinkRule int

const (
	// LinkTranslate moves the target by the same delta as the dragged point.
	LinkTranslate LinkRule = iota
	// LinkMirror keeps the target opposite the dragged point across Joint,
	// at the target's original distance from Joint.
	LinkMirror
)

type Link struct {
	Target PointRef
	Rule   LinkRule
	Joint  PointRef
	radius float64
}

// pointStore is anything holding addressable path points.
type pointStore interface {
	point(ref PointRef) Point
	setPoint(ref PointRef, p Point)
}

// dragGraph is one drag gesture: the grabbed node, the edges to the points
// that follow it, and the positions everything had when the drag started.
type dragGraph struct {
	node   PointRef
	links  []Link
	grab   Point
	origin map[PointRef]Point
}

func newDragGraph(store pointStore, node PointRef, grab Point) *dragGraph {
	return &dragGraph{
		node:   node,
		grab:   grab,
		origin: map[PointRef]Point{node: store.point(node)},
	}
}

func (g *dragGraph) translate(store pointStore, target PointRef) {
	g.links = append(g.links, Link{Target: target, Rule: LinkTranslate})
	g.origin[target] = store.point(target)
}

func (g *dragGraph) mirror(store pointStore, target, joint PointRef) {
	t := store.point(target)
	g.links = append(g.links, Link{
		Target: target,
		Rule:   LinkMirror,
		Joint:  joint,
		radius: t.Dist(store.point(joint)),
	})
	g.origin[target] = t
}

// apply moves the grabbed node to follow the pointer at to and propagates
// the move along every edge.
func (g *dragGraph) apply(store pointStore, to Point) {
	delta := to.Sub(g.grab)
	moved := g.origin[g.node].Add(delta)
	store.setPoint(g.node, moved)
	for _, l := range g.links {
		switch l.Rule {
		case LinkTranslate:
			store.setPoint(l.Target, g.origin[l.Target].Add(delta))
		case LinkMirror:
			joint := store.point(l.Joint)
			dir := joint.Sub(moved).Normalize()
			if dir == (Point{}) {
				store.setPoint(l.Target, g.origin[l.Target])
				continue
			}
			store.setPoint(l.Target, joint.Add(dir.Scale(l.radius)))
		}
	}
}
