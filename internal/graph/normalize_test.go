package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_DropsDanglingEdges(t *testing.T) {
	raw := RawGraph{
		Nodes: []Node{
			{ID: "a", Type: TypeSourceParent},
			{ID: "b", Type: TypeSource},
		},
		Edges: []Edge{
			{Source: "a", Target: "b", EdgeType: EdgeHierarchy},
			{Source: "a", Target: "missing", EdgeType: EdgeDataflow},
			{Source: "ghost", Target: "b", EdgeType: EdgeDataflow},
		},
	}

	s := Normalize(raw)

	require.Len(t, s.Edges, 1)
	assert.Equal(t, "a", s.Edges[0].Source)
	assert.Equal(t, "b", s.Edges[0].Target)
}

func TestNormalize_LaneAssignment(t *testing.T) {
	tests := []struct {
		name     string
		nodeType string
		wantLane int
	}{
		{"source parent", TypeSourceParent, LaneSourceParent},
		{"source", TypeSource, LaneSource},
		{"ontology", TypeOntology, LaneOntology},
		{"agent", TypeAgent, LaneAgent},
		{"unknown defaults to source lane", "mystery", LaneSource},
		{"empty defaults to source lane", "", LaneSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Normalize(RawGraph{Nodes: []Node{{ID: "n", Type: tt.nodeType}}})
			require.Len(t, s.Nodes, 1)
			assert.Equal(t, tt.wantLane, s.Nodes[0].Lane)
		})
	}
}

func TestNormalize_DuplicateIDsKeepFirst(t *testing.T) {
	s := Normalize(RawGraph{
		Nodes: []Node{
			{ID: "a", Label: "first", Type: TypeSource},
			{ID: "a", Label: "second", Type: TypeAgent},
		},
	})

	require.Len(t, s.Nodes, 1)
	assert.Equal(t, "first", s.Nodes[0].Label)
}

func TestSnapshot_HasOutgoingDataflow(t *testing.T) {
	s := Normalize(RawGraph{
		Nodes: []Node{
			{ID: "live", Type: TypeSource},
			{ID: "idle", Type: TypeSource},
			{ID: "schema", Type: TypeOntology},
		},
		Edges: []Edge{
			{Source: "live", Target: "schema", EdgeType: EdgeDataflow},
			{Source: "idle", Target: "schema", EdgeType: EdgeHierarchy},
		},
	})

	assert.True(t, s.HasOutgoingDataflow(s.index["live"]))
	assert.False(t, s.HasOutgoingDataflow(s.index["idle"]))
}

func TestSnapshot_Counts(t *testing.T) {
	s := Normalize(RawGraph{
		Nodes: []Node{
			{ID: "p", Type: TypeSourceParent},
			{ID: "s1", Type: TypeSource},
			{ID: "s2", Type: TypeSource},
			{ID: "o", Type: TypeOntology},
		},
		Edges: []Edge{
			{Source: "p", Target: "s1", EdgeType: EdgeHierarchy},
			{Source: "s1", Target: "o", EdgeType: EdgeDataflow},
			{Source: "s2", Target: "o", EdgeType: EdgeDataflow},
		},
	})

	counts := s.LaneCounts()
	assert.Equal(t, 1, counts[LaneSourceParent])
	assert.Equal(t, 2, counts[LaneSource])
	assert.Equal(t, 1, counts[LaneOntology])
	assert.Equal(t, 0, counts[LaneAgent])

	hier, flow := s.EdgeKindCounts()
	assert.Equal(t, 1, hier)
	assert.Equal(t, 2, flow)
}

func TestSnapshot_NodeByID(t *testing.T) {
	s := Normalize(RawGraph{Nodes: []Node{{ID: "a", Label: "A", Type: TypeAgent}}})

	n, ok := s.NodeByID("a")
	require.True(t, ok)
	assert.Equal(t, "A", n.Label)

	_, ok = s.NodeByID("nope")
	assert.False(t, ok)
}

func TestSnapshot_Empty(t *testing.T) {
	assert.True(t, Normalize(RawGraph{}).Empty())
	assert.False(t, Normalize(RawGraph{Nodes: []Node{{ID: "x"}}}).Empty())
}
