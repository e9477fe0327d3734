// Package nodelink lays out converted display trees with Graphviz and draws
// them as node-link SVG diagrams.
//
// # Overview
//
// The package is the layout and drawing engine of treedisplay. It consumes a
// [displaytree.Datum] node graph plus layout parameters, asks Graphviz for
// node positions and emits SVG, delegating the appearance of every node to a
// caller-supplied [NodeRenderer].
//
// # Usage
//
//	opts := nodelink.Options{
//	    NodeSize:    nodelink.Size{X: 120, Y: 40},
//	    Translate:   nodelink.Point{X: 300, Y: 20},
//	    Orientation: nodelink.Vertical,
//	    PathFunc:    nodelink.Straight,
//	    RenderNode:  myRenderer,
//	}
//	l, err := nodelink.Compute(ctx, &datum, opts)
//	svg := nodelink.Draw(l, opts)
//
// # Coordinates
//
// Positions in a [Layout] are relative to the root, which sits at (0, 0);
// y grows downward. The translate option moves the whole tree inside the
// viewport, exactly like a pan.
//
// # Graphviz
//
// [ToDOT] emits a digraph with fixed-size boxes matching the foreign-object
// footprint, ordering=out so children keep their draw order, and
// nodesep/ranksep derived from the node size. Layout runs in-process via
// [github.com/goccy/go-graphviz]; the positions are read back from the laid
// out DOT output.
package nodelink
