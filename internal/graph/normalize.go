package graph

// SnapshotNode is a node with its resolved lane assignment.
type SnapshotNode struct {
	Node
	Lane int
}

// SnapshotEdge is an edge whose endpoints resolved against the current
// node set. Indices point into Snapshot.Nodes.
type SnapshotEdge struct {
	Edge
	SourceIdx int
	TargetIdx int
}

// Snapshot is an immutable, normalized view of one state fetch. Nodes
// and edges are always replaced together; nothing merges across fetches.
type Snapshot struct {
	Nodes []SnapshotNode
	Edges []SnapshotEdge
	index map[string]int
}

// Normalize converts a raw node/edge list into an indexed snapshot.
// Edges with an endpoint id absent from the node set are dropped.
// Pure: safe to re-run on every state change.
func Normalize(raw RawGraph) *Snapshot {
	s := &Snapshot{
		Nodes: make([]SnapshotNode, 0, len(raw.Nodes)),
		Edges: make([]SnapshotEdge, 0, len(raw.Edges)),
		index: make(map[string]int, len(raw.Nodes)),
	}

	for _, n := range raw.Nodes {
		if _, exists := s.index[n.ID]; exists {
			continue
		}
		s.index[n.ID] = len(s.Nodes)
		s.Nodes = append(s.Nodes, SnapshotNode{Node: n, Lane: LaneFor(n.Type)})
	}

	for _, e := range raw.Edges {
		si, ok := s.index[e.Source]
		if !ok {
			continue
		}
		ti, ok := s.index[e.Target]
		if !ok {
			continue
		}
		s.Edges = append(s.Edges, SnapshotEdge{Edge: e, SourceIdx: si, TargetIdx: ti})
	}

	return s
}

// NodeByID returns the snapshot node for an id.
func (s *Snapshot) NodeByID(id string) (SnapshotNode, bool) {
	i, ok := s.index[id]
	if !ok {
		return SnapshotNode{}, false
	}
	return s.Nodes[i], true
}

// Empty reports whether the snapshot has no nodes.
func (s *Snapshot) Empty() bool {
	return len(s.Nodes) == 0
}

// HasOutgoingDataflow reports whether the node at index i has at least
// one outgoing dataflow edge. Drives the dimmed rendering of idle
// source nodes.
func (s *Snapshot) HasOutgoingDataflow(i int) bool {
	for _, e := range s.Edges {
		if e.SourceIdx == i && e.EdgeType == EdgeDataflow {
			return true
		}
	}
	return false
}

// LaneCounts returns how many nodes sit in each lane.
func (s *Snapshot) LaneCounts() [LaneCount]int {
	var counts [LaneCount]int
	for _, n := range s.Nodes {
		counts[n.Lane]++
	}
	return counts
}

// EdgeKindCounts returns hierarchy and dataflow edge totals.
func (s *Snapshot) EdgeKindCounts() (hierarchy, dataflow int) {
	for _, e := range s.Edges {
		switch e.EdgeType {
		case EdgeHierarchy:
			hierarchy++
		case EdgeDataflow:
			dataflow++
		}
	}
	return hierarchy, dataflow
}
