package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyacantor/autonomos-dash/internal/graph"
	"github.com/ilyacantor/autonomos-dash/internal/layout"
)

func computeLayout(t *testing.T, raw graph.RawGraph) layout.Layout {
	t.Helper()
	l, err := layout.Compute(graph.Normalize(raw), 1200, 600)
	require.NoError(t, err)
	return l
}

func TestSVG_EmptyGraphPlaceholder(t *testing.T) {
	out := SVG(computeLayout(t, graph.RawGraph{}), Options{})

	assert.Equal(t, 1, strings.Count(out, "<text"))
	assert.Contains(t, out, PlaceholderText)
	assert.Zero(t, strings.Count(out, "<rect"))
	assert.Zero(t, strings.Count(out, "<path"))
}

func TestSVG_ThreeNodeScenario(t *testing.T) {
	raw := graph.RawGraph{
		Nodes: []graph.Node{
			{ID: "a", Type: graph.TypeSourceParent},
			{ID: "b", Type: graph.TypeSource},
			{ID: "c", Type: graph.TypeOntology},
		},
		Edges: []graph.Edge{
			{Source: "a", Target: "b", EdgeType: graph.EdgeHierarchy},
			{Source: "b", Target: "c", EdgeType: graph.EdgeDataflow},
		},
	}
	l := computeLayout(t, raw)
	out := SVG(l, Options{})

	assert.Equal(t, 3, strings.Count(out, "<rect"))
	assert.Equal(t, 2, strings.Count(out, "<path"))

	// Three distinct x-bands.
	xs := map[float64]bool{}
	for _, n := range l.Nodes {
		xs[n.X] = true
	}
	assert.Len(t, xs, 3)

	// Hierarchy edge between parent and source gets the parent color;
	// the dataflow edge carries no source system so it falls through to
	// the default color.
	assert.Contains(t, out, `stroke="`+colorHierarchyParent+`"`)
	assert.Contains(t, out, `stroke="`+colorDefault+`"`)
}

func TestEdgeColor_Rules(t *testing.T) {
	hierarchy := func(srcType, tgtType string) string {
		return EdgeColor(
			graph.SnapshotEdge{Edge: graph.Edge{EdgeType: graph.EdgeHierarchy}},
			graph.SnapshotNode{Node: graph.Node{Type: srcType}},
			graph.SnapshotNode{Node: graph.Node{Type: tgtType}},
		)
	}
	dataflow := func(srcSystem, tgtType string) string {
		return EdgeColor(
			graph.SnapshotEdge{Edge: graph.Edge{EdgeType: graph.EdgeDataflow}},
			graph.SnapshotNode{Node: graph.Node{Type: graph.TypeSource, SourceSystem: srcSystem}},
			graph.SnapshotNode{Node: graph.Node{Type: tgtType}},
		)
	}

	assert.Equal(t, colorHierarchyParent, hierarchy(graph.TypeSourceParent, graph.TypeSource))
	assert.Equal(t, colorHierarchy, hierarchy(graph.TypeSource, graph.TypeOntology))
	assert.Equal(t, colorAgentFlow, dataflow("", graph.TypeAgent))
	assert.Equal(t, sourceSystemColors["salesforce"], dataflow("salesforce", graph.TypeOntology))
	assert.Equal(t, colorDefault, dataflow("unknown-system", graph.TypeOntology))
}

func TestEdgeOpacity_Rules(t *testing.T) {
	hierEdge := graph.SnapshotEdge{Edge: graph.Edge{EdgeType: graph.EdgeHierarchy}}
	flowEdge := graph.SnapshotEdge{Edge: graph.Edge{EdgeType: graph.EdgeDataflow}}
	srcNode := graph.SnapshotNode{Node: graph.Node{Type: graph.TypeSource}}
	ontNode := graph.SnapshotNode{Node: graph.Node{Type: graph.TypeOntology}}

	assert.Equal(t, opacityAnimating, EdgeOpacity(hierEdge, srcNode, true))
	assert.Equal(t, opacityHierarchy, EdgeOpacity(hierEdge, srcNode, false))
	assert.Equal(t, opacityFromSource, EdgeOpacity(flowEdge, srcNode, false))
	assert.Equal(t, opacityDefault, EdgeOpacity(flowEdge, ontNode, false))
}

func TestSVG_SourceNodeDimming(t *testing.T) {
	raw := graph.RawGraph{
		Nodes: []graph.Node{
			{ID: "live", Type: graph.TypeSource},
			{ID: "idle", Type: graph.TypeSource},
			{ID: "schema", Type: graph.TypeOntology},
		},
		Edges: []graph.Edge{
			{Source: "live", Target: "schema", EdgeType: graph.EdgeDataflow},
		},
	}
	out := SVG(computeLayout(t, raw), Options{})

	// The connected source is fully opaque with a solid stroke; the idle
	// one is dimmed and dashed.
	assert.Contains(t, out, `fill-opacity="1"`)
	assert.Contains(t, out, `fill-opacity="0.5"`)
	assert.Equal(t, 1, strings.Count(out, `stroke-dasharray`))
}

func TestSVG_AnimatingEdgeOpacity(t *testing.T) {
	raw := graph.RawGraph{
		Nodes: []graph.Node{
			{ID: "b", Type: graph.TypeSource},
			{ID: "c", Type: graph.TypeOntology},
		},
		Edges: []graph.Edge{
			{Source: "b", Target: "c", EdgeType: graph.EdgeDataflow},
		},
	}
	l := computeLayout(t, raw)

	steady := SVG(l, Options{})
	assert.Contains(t, steady, `stroke-opacity="0.7"`)

	animating := SVG(l, Options{Animating: map[graph.EdgeKey]bool{
		{Source: "b", Target: "c"}: true,
	}})
	assert.Contains(t, animating, `stroke-opacity="0.9"`)
	assert.NotContains(t, animating, `stroke-opacity="0.7"`)
}

func TestSVG_PreviewClickActions(t *testing.T) {
	raw := graph.RawGraph{Nodes: []graph.Node{{ID: "n1", Type: graph.TypeAgent}}}
	out := SVG(computeLayout(t, raw), Options{PreviewPath: "/sankey/preview"})

	assert.Contains(t, out, `data-on-click="@get('/sankey/preview/n1')"`)
}

func TestSVG_AgentOutlineOnly(t *testing.T) {
	raw := graph.RawGraph{Nodes: []graph.Node{{ID: "bot", Type: graph.TypeAgent}}}
	out := SVG(computeLayout(t, raw), Options{})

	assert.Contains(t, out, `fill="none"`)
}

func TestTooltip_EdgeRowsAndText(t *testing.T) {
	e := graph.SnapshotEdge{Edge: graph.Edge{
		EdgeType:      graph.EdgeDataflow,
		EntityName:    "Customer",
		FieldMappings: []string{"acct_id -> customer_id", "acct_nm -> name"},
	}}
	src := graph.SnapshotNode{Node: graph.Node{Type: graph.TypeSource, Label: "CRM"}}
	tgt := graph.SnapshotNode{Node: graph.Node{Type: graph.TypeOntology, Label: "Unified"}}

	tt := EdgeTooltip(e, src, tgt)
	assert.Equal(t, "raw data mapped to unified schema", tt.Title)
	require.Len(t, tt.Rows, 3)
	assert.Equal(t, Row{Label: "Entity", Value: "Customer"}, tt.Rows[0])

	text := tt.Text()
	assert.Contains(t, text, "Mapping: acct_id -> customer_id")
	assert.Contains(t, text, "Mapping: acct_nm -> name")
}

func TestTooltip_NodeFallsBackToID(t *testing.T) {
	tt := NodeTooltip(graph.SnapshotNode{Node: graph.Node{ID: "n7", Type: graph.TypeSource}})
	assert.Equal(t, "n7", tt.Title)
}
