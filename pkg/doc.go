// Package pkg provides the core libraries for treedisplay tree diagrams.
//
// # Overview
//
// treedisplay turns a recursive labeled tree into a node-link diagram laid
// out by Graphviz and centers it in its container the first time the container
// reports a real size. The pkg directory is organized into these areas:
//
//  1. [displaytree] - Tree input and conversion into the layout node graph
//  2. [center] - One-shot centering of a diagram inside its container
//  3. [render/nodelink] - Graphviz layout and SVG drawing
//  4. [display] - One mounted diagram binding the three together
//  5. [pipeline] - Cached rendering to SVG, PNG, PDF and JSON
//  6. [server] - HTTP host for mounted diagrams
//
// # Architecture
//
// The data flow through treedisplay:
//
//	DisplayTree JSON
//	         ↓
//	    [displaytree] package (Convert to Datum)
//	         ↓
//	    [render/nodelink] package (Graphviz layout)
//	         ↓
//	    [display] package (translate by the frozen center offset, draw nodes)
//	         ↓
//	SVG/PDF/PNG output
//
// # Quick Start
//
//	tree, _ := displaytree.ReadFile("tree.json")
//	d := display.Mount(tree, display.DocumentPosition{URI: "file:///tree.json"})
//
//	// The container has no size yet: the diagram draws at the origin.
//	d.Measure(nil)
//
//	// First real size: the root moves to (300, 20) and stays there.
//	d.Measure(center.Box{Width: 600, Height: 400})
//
//	svg, _ := d.Render(ctx)
//
// # Main Packages
//
// [displaytree] - The DisplayTree input type and its JSON decoding. Convert
// maps it to a Datum node graph, omitting children on leaves and rejecting
// nodes whose children are not a list with [displaytree.ErrMalformedTree].
//
// [center] - A two-state controller (unmeasured, centered). The first pass
// with a non-zero container size commits the offset {width/2, 20}; later
// passes keep it.
//
// [render/nodelink] - Graphviz-backed vertical tree layout with fixed node
// size, straight links and a per-node draw callback.
//
// [render] - Format conversion (SVG to PDF/PNG) through rsvg-convert.
//
// [display] - A mounted diagram: its own controller, document position and
// node renderer. The default renderer draws a green 100x30 box with the
// label centered inside.
//
// ## Infrastructure
//
// [pipeline] - Renders a diagram to every requested format and caches the
// artifacts by tree hash and placement.
//
// [cache] - File, Redis and null caches with retry and instrumentation.
//
// [server] - chi-based HTTP host: mounts diagrams, receives container sizes
// from the browser page and serves the rendered SVG.
//
// [observability] - Hooks for diagram, cache and request events.
//
// [errors] - Coded errors shared by the CLI and the HTTP host.
//
// # Testing
//
//	go test ./...                 # All tests
//	go test ./pkg/center/...      # Specific package
//	go test -run Example ./pkg/...
//
// [displaytree]: https://pkg.go.dev/github.com/matzehuels/treedisplay/pkg/displaytree
// [center]: https://pkg.go.dev/github.com/matzehuels/treedisplay/pkg/center
// [render]: https://pkg.go.dev/github.com/matzehuels/treedisplay/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/treedisplay/pkg/render/nodelink
// [display]: https://pkg.go.dev/github.com/matzehuels/treedisplay/pkg/display
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/treedisplay/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/treedisplay/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/treedisplay/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/treedisplay/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/treedisplay/pkg/errors
package pkg
