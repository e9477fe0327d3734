package display

import (
	"fmt"
	"io"

	"github.com/matzehuels/treedisplay/pkg/render/nodelink"
)

// NodeFill is the background of the default node box.
const NodeFill = "#5cb85c"

// DefaultNodeRenderer fills the node rectangle with NodeFill and centers the
// label inside it. Nodes without a label get an empty box.
func DefaultNodeRenderer(w io.Writer, _ DocumentPosition, n nodelink.NodeContext) {
	fo := n.ForeignObject
	fmt.Fprintf(w, "        <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\" stroke=\"black\"/>\n",
		fo.X, fo.Y, fo.Width, fo.Height, NodeFill)
	if n.Datum == nil || n.Datum.Label == nil {
		return
	}
	label, size := nodelink.FitLabel(*n.Datum.Label, fo.Width, fo.Height)
	fmt.Fprintf(w, "        <text x=\"%g\" y=\"%g\" text-anchor=\"middle\" dominant-baseline=\"central\" font-size=\"%g\">%s</text>\n",
		fo.X+fo.Width/2, fo.Y+fo.Height/2, size, nodelink.Escape(label))
}
