// Package render provides visualization rendering for display trees.
//
// # Overview
//
// This package contains format conversion shared by every renderer, and the
// node-link engine in the [nodelink] subpackage:
//
//   - [nodelink]: Graphviz-backed tree layout and SVG drawing
//   - [ToPDF] and [ToPNG]: SVG conversion through rsvg-convert
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). Node labels are drawn as SVG
// text rather than foreignObject content so that they survive conversion.
//
//	svg := nodelink.Draw(layout, opts)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/matzehuels/treedisplay/pkg/render/nodelink
package render
