// Package render draws a positioned graph layout as SVG and builds the
// tooltip view-models attached to it. All visual encoding rules live
// here and are deterministic.
package render

import "github.com/ilyacantor/autonomos-dash/internal/graph"

// Edge stroke colors.
const (
	colorHierarchyParent = "#94a3b8" // source_parent -> source structure
	colorHierarchy       = "#64748b" // any other hierarchy edge
	colorAgentFlow       = "#a855f7" // dataflow into an agent
	colorDefault         = "#6b7280"
)

// Per-system stroke colors for dataflow edges whose origin carries a
// known source system tag.
var sourceSystemColors = map[string]string{
	"salesforce": "#00a1e0",
	"sap":        "#0faaff",
	"workday":    "#f5a623",
	"oracle":     "#f80000",
	"netsuite":   "#125580",
}

// Edge stroke opacities.
const (
	opacityAnimating  = 0.9
	opacityFromSource = 0.7
	opacityDefault    = 0.4
	opacityHierarchy  = 0.25
)

// Node fill colors per lane.
var laneFills = [graph.LaneCount]string{
	"#475569", // source_parent
	"#0ea5e9", // source
	"#22c55e", // ontology
	"#a855f7", // agent
}

// EdgeColor applies the fixed color rules in order: parent/source
// hierarchy, other hierarchy, dataflow into agent, known source system,
// default.
func EdgeColor(e graph.SnapshotEdge, src, tgt graph.SnapshotNode) string {
	if e.EdgeType == graph.EdgeHierarchy {
		if src.Type == graph.TypeSourceParent && tgt.Type == graph.TypeSource {
			return colorHierarchyParent
		}
		return colorHierarchy
	}
	if e.EdgeType == graph.EdgeDataflow {
		if tgt.Type == graph.TypeAgent {
			return colorAgentFlow
		}
		if c, ok := sourceSystemColors[src.SourceSystem]; ok {
			return c
		}
	}
	return colorDefault
}

// EdgeOpacity applies the fixed opacity rules. An animating edge always
// renders at the high opacity; hierarchy edges sit at the low fixed
// opacity; edges leaving a source or source parent are medium-high.
func EdgeOpacity(e graph.SnapshotEdge, src graph.SnapshotNode, animating bool) float64 {
	if animating {
		return opacityAnimating
	}
	if e.EdgeType == graph.EdgeHierarchy {
		return opacityHierarchy
	}
	if src.Type == graph.TypeSource || src.Type == graph.TypeSourceParent {
		return opacityFromSource
	}
	return opacityDefault
}

// NodeStyle is the resolved appearance of one node rectangle.
type NodeStyle struct {
	Fill        string
	FillOpacity float64
	Stroke      string
	Dashed      bool
}

// NodeStyleFor resolves the per-type node appearance. Source nodes with
// no outgoing dataflow edge render dimmed with a dashed outline.
func NodeStyleFor(n graph.SnapshotNode, hasOutflow bool) NodeStyle {
	fill := laneFills[n.Lane]
	switch n.Type {
	case graph.TypeOntology:
		return NodeStyle{Fill: fill, FillOpacity: 0.85, Stroke: fill}
	case graph.TypeAgent:
		return NodeStyle{Fill: "none", FillOpacity: 0, Stroke: fill}
	case graph.TypeSourceParent:
		return NodeStyle{Fill: fill, FillOpacity: 0.7, Stroke: fill}
	default:
		if hasOutflow {
			return NodeStyle{Fill: fill, FillOpacity: 1, Stroke: fill}
		}
		return NodeStyle{Fill: fill, FillOpacity: 0.5, Stroke: fill, Dashed: true}
	}
}
