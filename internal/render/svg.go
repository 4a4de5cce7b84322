package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/ilyacantor/autonomos-dash/internal/graph"
	"github.com/ilyacantor/autonomos-dash/internal/layout"
)

// PlaceholderText is the single label drawn when the graph is empty.
const PlaceholderText = "No data available…"

// Options controls per-render state that is not part of the snapshot.
type Options struct {
	// Animating holds the edge keys currently in their highlight window.
	Animating map[graph.EdgeKey]bool
	// PreviewPath, when set, turns node rectangles into datastar click
	// actions hitting {PreviewPath}/{node id}.
	PreviewPath string
}

// SVG renders the positioned layout as a complete SVG document. Edges
// draw first so nodes sit on top.
func SVG(l layout.Layout, opts Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg id="sankey-canvas" xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		num(l.Width), num(l.Height), num(l.Width), num(l.Height))

	if len(l.Nodes) == 0 {
		fmt.Fprintf(&b, `<text x="%s" y="%s" text-anchor="middle" class="sankey-empty">%s</text>`,
			num(l.Width/2), num(l.Height/2), PlaceholderText)
		b.WriteString(`</svg>`)
		return b.String()
	}

	for _, e := range l.Edges {
		writeEdge(&b, l, e, opts)
	}
	for i, n := range l.Nodes {
		writeNode(&b, l, i, n, opts)
	}

	b.WriteString(`</svg>`)
	return b.String()
}

func writeEdge(b *strings.Builder, l layout.Layout, e layout.EdgeLine, opts Options) {
	src := l.Nodes[e.SourceIdx].SnapshotNode
	tgt := l.Nodes[e.TargetIdx].SnapshotNode
	animating := opts.Animating[graph.EdgeKey{Source: e.Source, Target: e.Target}]

	// Straight-ish ribbon: a cubic with both controls at the midpoint x.
	mx := (e.X1 + e.X2) / 2
	d := fmt.Sprintf("M %s %s C %s %s, %s %s, %s %s",
		num(e.X1), num(e.Y1), num(mx), num(e.Y1), num(mx), num(e.Y2), num(e.X2), num(e.Y2))

	fmt.Fprintf(b, `<path class="sankey-edge" d="%s" fill="none" stroke="%s" stroke-opacity="%s" stroke-width="2">`,
		d, EdgeColor(e.SnapshotEdge, src, tgt), num(EdgeOpacity(e.SnapshotEdge, src, animating)))
	fmt.Fprintf(b, `<title>%s</title>`, html.EscapeString(EdgeTooltip(e.SnapshotEdge, src, tgt).Text()))
	b.WriteString(`</path>`)
}

func writeNode(b *strings.Builder, l layout.Layout, idx int, n layout.NodeBox, opts Options) {
	style := NodeStyleFor(n.SnapshotNode, hasOutflow(l, idx))

	attrs := fmt.Sprintf(`class="sankey-node" x="%s" y="%s" width="%s" height="%s" fill="%s" fill-opacity="%s" stroke="%s" stroke-width="1.5"`,
		num(n.X), num(n.Y), num(n.W), num(n.H), style.Fill, num(style.FillOpacity), style.Stroke)
	if style.Dashed {
		attrs += ` stroke-dasharray="6,3"`
	}
	attrs += fmt.Sprintf(` data-node-id="%s"`, html.EscapeString(n.ID))
	if opts.PreviewPath != "" {
		attrs += fmt.Sprintf(` data-on-click="@get('%s/%s')"`, opts.PreviewPath, html.EscapeString(n.ID))
	}

	fmt.Fprintf(b, `<rect %s>`, attrs)
	fmt.Fprintf(b, `<title>%s</title>`, html.EscapeString(NodeTooltip(n.SnapshotNode).Text()))
	b.WriteString(`</rect>`)

	label := n.Label
	if label == "" {
		label = n.ID
	}
	fmt.Fprintf(b, `<text class="sankey-label" x="%s" y="%s">%s</text>`,
		num(n.X+n.W+6), num(n.Y+n.H/2+4), html.EscapeString(label))
}

func hasOutflow(l layout.Layout, idx int) bool {
	for _, e := range l.Edges {
		if e.SourceIdx == idx && e.EdgeType == graph.EdgeDataflow {
			return true
		}
	}
	return false
}

// num formats a coordinate or opacity without trailing zero noise.
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
