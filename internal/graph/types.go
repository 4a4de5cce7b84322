// Package graph models the DCL connectivity graph and its normalization
// into the four-lane form used by the sankey layout.
package graph

// Node type tags as delivered by the platform state endpoint.
const (
	TypeSourceParent = "source_parent"
	TypeSource       = "source"
	TypeOntology     = "ontology"
	TypeAgent        = "agent"
)

// Edge kinds.
const (
	EdgeHierarchy = "hierarchy"
	EdgeDataflow  = "dataflow"
)

// Lane indices. Every node is pinned to one of these four horizontal
// bands regardless of what the generic layout computes.
const (
	LaneSourceParent = 0
	LaneSource       = 1
	LaneOntology     = 2
	LaneAgent        = 3

	LaneCount = 4
)

// Node is a raw graph node as received from the backend.
type Node struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Type         string `json:"type"`
	SourceSystem string `json:"sourceSystem,omitempty"`
	ParentID     string `json:"parentId,omitempty"`
}

// Edge is a raw graph edge. Endpoints reference nodes by id.
type Edge struct {
	Source        string   `json:"source"`
	Target        string   `json:"target"`
	Label         string   `json:"label,omitempty"`
	EdgeType      string   `json:"edgeType,omitempty"`
	FieldMappings []string `json:"field_mappings,omitempty"`
	EntityFields  []string `json:"entity_fields,omitempty"`
	EntityName    string   `json:"entity_name,omitempty"`
}

// State is the payload of GET {backend}/state.
type State struct {
	Graph   RawGraph `json:"graph"`
	DevMode bool     `json:"dev_mode"`
}

// RawGraph is the unnormalized node/edge list.
type RawGraph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// LaneFor maps a node type tag to its lane. Unrecognized types fall
// into the source lane.
func LaneFor(nodeType string) int {
	switch nodeType {
	case TypeSourceParent:
		return LaneSourceParent
	case TypeSource:
		return LaneSource
	case TypeOntology:
		return LaneOntology
	case TypeAgent:
		return LaneAgent
	default:
		return LaneSource
	}
}
