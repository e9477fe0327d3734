package nodelink

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"
)

const diagramCSS = `
    .link { fill: none; stroke: #2f3e46; stroke-width: 1.5; }
    .node text { font-family: sans-serif; pointer-events: none; }`

// Draw writes the laid out tree as SVG. Edges are drawn first so that nodes
// paint over them; the whole tree is wrapped in a group translated by
// opts.Translate.
func Draw(l Layout, opts Options) []byte {
	opts = opts.withDefaults()
	w, h := viewport(l, opts)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" class="tree-diagram" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", diagramCSS)
	fmt.Fprintf(&buf, `  <g class="tree-canvas" transform="translate(%s,%s)">`+"\n",
		num(opts.Translate.X), num(opts.Translate.Y))

	buf.WriteString("    <g class=\"links\">\n")
	for _, n := range l.Nodes {
		if n.Parent < 0 {
			continue
		}
		p := l.Nodes[n.Parent]
		fmt.Fprintf(&buf, "      <path class=\"link\" d=\"%s\"/>\n", edgePath(opts.PathFunc, opts.Orientation, p, n))
	}
	buf.WriteString("    </g>\n")

	buf.WriteString("    <g class=\"nodes\">\n")
	for _, n := range l.Nodes {
		kind := "branch"
		if n.Datum.IsLeaf() {
			kind = "leaf"
		}
		fmt.Fprintf(&buf, "      <g class=\"node %s\" id=\"%s\" transform=\"translate(%s,%s)\">\n",
			kind, nodeID(n.Index), num(n.X), num(n.Y))
		opts.RenderNode(&buf, NodeContext{
			Datum:         n.Datum,
			Index:         n.Index,
			Depth:         n.Depth,
			Position:      Point{X: n.X, Y: n.Y},
			ForeignObject: opts.ForeignObject,
		})
		buf.WriteString("      </g>\n")
	}
	buf.WriteString("    </g>\n")

	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// viewport returns the SVG size: the fixed size from opts, or the extent of
// the translated content.
func viewport(l Layout, opts Options) (float64, float64) {
	if opts.Width > 0 && opts.Height > 0 {
		return opts.Width, opts.Height
	}
	_, _, maxX, maxY := l.Bounds()
	fo := opts.ForeignObject
	w := max(1, maxX+opts.Translate.X+fo.X+fo.Width)
	h := max(1, maxY+opts.Translate.Y+fo.Y+fo.Height)
	return w, h
}

// edgePath returns the SVG path data from parent to child.
func edgePath(fn PathFunc, o Orientation, p, c PlacedNode) string {
	switch fn {
	case Straight:
		return fmt.Sprintf("M%s,%sL%s,%s", num(p.X), num(p.Y), num(c.X), num(c.Y))
	case Elbow:
		if o == Horizontal {
			mx := (p.X + c.X) / 2
			return fmt.Sprintf("M%s,%sH%sV%sH%s", num(p.X), num(p.Y), num(mx), num(c.Y), num(c.X))
		}
		my := (p.Y + c.Y) / 2
		return fmt.Sprintf("M%s,%sV%sH%sV%s", num(p.X), num(p.Y), num(my), num(c.X), num(c.Y))
	default:
		if o == Horizontal {
			mx := (p.X + c.X) / 2
			return fmt.Sprintf("M%s,%sC%s,%s %s,%s %s,%s",
				num(p.X), num(p.Y), num(mx), num(p.Y), num(mx), num(c.Y), num(c.X), num(c.Y))
		}
		my := (p.Y + c.Y) / 2
		return fmt.Sprintf("M%s,%sC%s,%s %s,%s %s,%s",
			num(p.X), num(p.Y), num(p.X), num(my), num(c.X), num(my), num(c.X), num(c.Y))
	}
}

// num formats a coordinate rounded to two decimals without trailing zeros.
func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// DefaultNodeRenderer draws a circle with the label beside it.
func DefaultNodeRenderer(w io.Writer, n NodeContext) {
	fmt.Fprintf(w, "        <circle r=\"15\" fill=\"#777\" stroke=\"#2f3e46\"/>\n")
	fmt.Fprintf(w, "        <text x=\"20\" dy=\".35em\" font-size=\"12\">%s</text>\n", Escape(n.Datum.Text()))
}
