// Package displaytree converts host-supplied display trees into node graphs
// ready for the layout engine.
//
// # Overview
//
// A [DisplayTree] is a recursive value with a single variant, node, carrying
// a label and an ordered list of children:
//
//	{"node": {"label": "A", "children": [{"node": {"label": "B", "children": []}}]}}
//
// [Convert] turns it into a [Datum], the node-graph shape consumed by
// [github.com/matzehuels/treedisplay/pkg/render/nodelink]:
//
//	{"name": "node", "label": "A", "children": [{"name": "node", "label": "B"}]}
//
// # Leaves
//
// A node without children produces a datum whose children key is absent, not
// an empty list. Engines in the D3 family detect leaves by key absence, so the
// distinction is kept on the wire: [Datum.Children] is nil for leaves and
// serialises with omitempty.
//
// # Malformed Input
//
// Children must be an ordered sequence. The JSON decoder accepts a node whose
// children value is missing, null, an object or a scalar, and leaves
// [Node.Children] nil; [Convert] then fails with a [*MalformedTreeError]
// without returning a partial result. Trees built in Go should use [Leaf] and
// [Branch], which always produce a non-nil children slice.
package displaytree
