// Package layout computes node and edge coordinates for the four-lane
// sankey view. A generic layered pass produces initial positions; a
// fixed pipeline of pure corrective passes then pins lanes, re-centers
// the crowded lanes, and recomputes edge endpoints.
package layout

import (
	"errors"
	"sort"

	"github.com/ilyacantor/autonomos-dash/internal/graph"
)

// Geometry constants. Node width and padding are fixed; the four lane
// bands are derived from the canvas width.
const (
	NodeWidth   = 18.0
	NodeHeight  = 28.0
	NodePadding = 12.0
	Margin      = 40.0

	// RecenterGap is the fixed inter-node gap applied when a lane is
	// re-centered vertically.
	RecenterGap = 24.0
)

// ErrNoCanvas is returned when the canvas has not been measured yet.
// Callers defer rendering until dimensions are known.
var ErrNoCanvas = errors.New("layout: canvas has zero dimensions")

// NodeBox is a positioned node.
type NodeBox struct {
	graph.SnapshotNode
	X, Y, W, H float64
}

// EdgeLine is a positioned edge. Endpoints sit at the vertical
// midpoints of the connected node bands.
type EdgeLine struct {
	graph.SnapshotEdge
	X1, Y1, X2, Y2 float64
}

// Layout holds positioned nodes and edges for one canvas size.
type Layout struct {
	Width  float64
	Height float64
	Nodes  []NodeBox
	Edges  []EdgeLine
}

// Pass transforms one layout state into the next. Passes never mutate
// their input.
type Pass func(Layout) Layout

// Compute runs the full pipeline: generic layered placement followed by
// lane pinning, vertical re-centering, and endpoint recomputation.
func Compute(s *graph.Snapshot, width, height float64) (Layout, error) {
	if width <= 0 || height <= 0 {
		return Layout{}, ErrNoCanvas
	}

	l := layered(s, width, height)
	for _, pass := range []Pass{PinLanes, RecenterLanes, RecomputeEndpoints} {
		l = pass(l)
	}
	return l, nil
}

// LaneX returns the left edge of a lane's fixed horizontal band.
func LaneX(lane int, width float64) float64 {
	span := width - 2*Margin - NodeWidth
	return Margin + float64(lane)*span/float64(graph.LaneCount-1)
}

// layered is the generic layered-flow pass. It only understands one
// ordering dimension: nodes are placed in columns by dependency depth
// and stacked top-down with fixed padding.
func layered(s *graph.Snapshot, width, height float64) Layout {
	l := Layout{Width: width, Height: height}
	if s.Empty() {
		return l
	}

	depths := depthByLongestPath(s)
	maxDepth := 0
	for _, d := range depths {
		if d > maxDepth {
			maxDepth = d
		}
	}

	colSpan := width - 2*Margin - NodeWidth
	colStep := colSpan
	if maxDepth > 0 {
		colStep = colSpan / float64(maxDepth)
	}

	l.Nodes = make([]NodeBox, len(s.Nodes))
	nextY := make([]float64, maxDepth+1)
	for i, n := range s.Nodes {
		d := depths[i]
		l.Nodes[i] = NodeBox{
			SnapshotNode: n,
			X:            Margin + float64(d)*colStep,
			Y:            Margin + nextY[d],
			W:            NodeWidth,
			H:            NodeHeight,
		}
		nextY[d] += NodeHeight + NodePadding
	}

	l.Edges = make([]EdgeLine, len(s.Edges))
	for i, e := range s.Edges {
		l.Edges[i] = EdgeLine{SnapshotEdge: e}
	}
	return RecomputeEndpoints(l)
}

// depthByLongestPath assigns each node the length of the longest
// incoming path. Cycles fall back to depth zero for the revisited node.
func depthByLongestPath(s *graph.Snapshot) []int {
	incoming := make([][]int, len(s.Nodes))
	for _, e := range s.Edges {
		incoming[e.TargetIdx] = append(incoming[e.TargetIdx], e.SourceIdx)
	}

	const unvisited = -1
	depths := make([]int, len(s.Nodes))
	for i := range depths {
		depths[i] = unvisited
	}

	var visit func(i int, trail map[int]bool) int
	visit = func(i int, trail map[int]bool) int {
		if depths[i] != unvisited {
			return depths[i]
		}
		if trail[i] {
			return 0
		}
		trail[i] = true
		d := 0
		for _, p := range incoming[i] {
			if pd := visit(p, trail) + 1; pd > d {
				d = pd
			}
		}
		delete(trail, i)
		depths[i] = d
		return d
	}

	for i := range s.Nodes {
		visit(i, map[int]bool{})
	}
	return depths
}

// PinLanes overrides each node's horizontal position with its semantic
// lane band, discarding whatever column the generic pass chose.
func PinLanes(l Layout) Layout {
	out := clone(l)
	for i := range out.Nodes {
		out.Nodes[i].X = LaneX(out.Nodes[i].Lane, l.Width)
	}
	return out
}

// RecenterLanes redistributes the ontology and agent lanes vertically
// with an even fixed gap, centered in the canvas. The generic pass
// clusters these lanes tightly when lane populations are uneven.
func RecenterLanes(l Layout) Layout {
	out := clone(l)
	for _, lane := range []int{graph.LaneOntology, graph.LaneAgent} {
		recenterLane(&out, lane)
	}
	return out
}

func recenterLane(l *Layout, lane int) {
	var members []int
	for i := range l.Nodes {
		if l.Nodes[i].Lane == lane {
			members = append(members, i)
		}
	}
	if len(members) == 0 {
		return
	}

	// Preserve the vertical order the generic pass produced.
	sort.SliceStable(members, func(a, b int) bool {
		return l.Nodes[members[a]].Y < l.Nodes[members[b]].Y
	})

	n := float64(len(members))
	total := n*NodeHeight + (n-1)*RecenterGap
	y := (l.Height - total) / 2
	for _, i := range members {
		l.Nodes[i].Y = y
		y += NodeHeight + RecenterGap
	}
}

// RecomputeEndpoints re-anchors every edge at the vertical midpoints of
// its endpoint bands. Edges here are straight flow ribbons, not curves
// tied to sub-node ports.
func RecomputeEndpoints(l Layout) Layout {
	out := clone(l)
	for i := range out.Edges {
		src := out.Nodes[out.Edges[i].SourceIdx]
		tgt := out.Nodes[out.Edges[i].TargetIdx]
		out.Edges[i].X1 = src.X + src.W
		out.Edges[i].Y1 = src.Y + src.H/2
		out.Edges[i].X2 = tgt.X
		out.Edges[i].Y2 = tgt.Y + tgt.H/2
	}
	return out
}

func clone(l Layout) Layout {
	out := l
	out.Nodes = append([]NodeBox(nil), l.Nodes...)
	out.Edges = append([]EdgeLine(nil), l.Edges...)
	return out
}
