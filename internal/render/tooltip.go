package render

import (
	"strings"

	"github.com/ilyacantor/autonomos-dash/internal/graph"
)

// Row is one labeled line of tooltip content.
type Row struct {
	Label string
	Value string
}

// Tooltip is the typed view-model for hover content. Presentation
// markup is owned by the rendering layer; handlers never concatenate
// HTML for this.
type Tooltip struct {
	Title string
	Rows  []Row
}

// Text flattens the tooltip for plain-text surfaces such as SVG
// <title> elements.
func (t Tooltip) Text() string {
	var b strings.Builder
	b.WriteString(t.Title)
	for _, r := range t.Rows {
		b.WriteString("\n")
		if r.Label != "" {
			b.WriteString(r.Label)
			b.WriteString(": ")
		}
		b.WriteString(r.Value)
	}
	return b.String()
}

// EdgeTooltip describes the semantic relationship an edge carries and
// enumerates any field mappings or entity fields attached to it.
func EdgeTooltip(e graph.SnapshotEdge, src, tgt graph.SnapshotNode) Tooltip {
	tt := Tooltip{Title: relationship(e, src, tgt)}

	if e.Label != "" {
		tt.Rows = append(tt.Rows, Row{Label: "Label", Value: e.Label})
	}
	if e.EntityName != "" {
		tt.Rows = append(tt.Rows, Row{Label: "Entity", Value: e.EntityName})
	}
	for _, m := range e.FieldMappings {
		tt.Rows = append(tt.Rows, Row{Label: "Mapping", Value: m})
	}
	for _, f := range e.EntityFields {
		tt.Rows = append(tt.Rows, Row{Label: "Field", Value: f})
	}
	return tt
}

// NodeTooltip describes a node for hover display.
func NodeTooltip(n graph.SnapshotNode) Tooltip {
	tt := Tooltip{Title: n.Label}
	if tt.Title == "" {
		tt.Title = n.ID
	}
	tt.Rows = append(tt.Rows, Row{Label: "Type", Value: n.Type})
	if n.SourceSystem != "" {
		tt.Rows = append(tt.Rows, Row{Label: "System", Value: n.SourceSystem})
	}
	return tt
}

func relationship(e graph.SnapshotEdge, src, tgt graph.SnapshotNode) string {
	switch {
	case e.EdgeType == graph.EdgeHierarchy && src.Type == graph.TypeSourceParent:
		return src.Label + " contains " + tgt.Label
	case e.EdgeType == graph.EdgeHierarchy:
		return "structural relationship"
	case e.EdgeType == graph.EdgeDataflow && tgt.Type == graph.TypeAgent:
		return "unified schema consumed by agent"
	case e.EdgeType == graph.EdgeDataflow && tgt.Type == graph.TypeOntology:
		return "raw data mapped to unified schema"
	default:
		return "data flow"
	}
}
