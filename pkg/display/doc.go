// Package display mounts labeled trees as auto-centered diagrams.
//
// A [Diagram] binds one [displaytree.DisplayTree] to its own
// [center.Controller] and to the Graphviz-backed node-link engine in
// [nodelink]. Hosts report container sizes through [Diagram.Measure]; the
// first non-zero measurement freezes the pan offset at
// (width/2, [center.TopInset]) and every later [Diagram.Render] draws the tree
// at that offset.
//
//	d := display.Mount(tree, display.DocumentPosition{URI: "file:///a.lean"})
//	d.Measure(center.Box{Width: 600, Height: 400})
//	svg, err := d.Render(ctx)
//
// Every node is drawn at a fixed slot of 120x40 with straight links, and its
// content is confined to the 100x30 rectangle at (-50,-10).
package display
