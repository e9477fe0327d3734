package nodelink

import (
	"io"

	"github.com/matzehuels/treedisplay/pkg/displaytree"
)

// Orientation selects the direction the tree grows in.
type Orientation string

const (
	Vertical   Orientation = "vertical"   // root on top
	Horizontal Orientation = "horizontal" // root on the left
)

// PathFunc selects how edges between nodes are drawn.
type PathFunc string

const (
	Straight PathFunc = "straight"
	Elbow    PathFunc = "step"
	Diagonal PathFunc = "diagonal"
)

// Size is a node slot: horizontal and vertical distance between neighbours.
type Size struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Point is a position in diagram space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ForeignObject is the rectangle, local to a node, that node content is drawn in.
type ForeignObject struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NodeContext is passed to a NodeRenderer for every node.
type NodeContext struct {
	Datum         *displaytree.Datum
	Index         int   // pre-order index
	Depth         int   // 0 for the root
	Position      Point // layout position, before translation
	ForeignObject ForeignObject
}

// NodeRenderer writes the SVG content of one node in node-local coordinates.
type NodeRenderer func(w io.Writer, n NodeContext)

// Options configures layout and drawing.
type Options struct {
	NodeSize      Size
	Translate     Point
	Orientation   Orientation
	PathFunc      PathFunc
	ForeignObject ForeignObject
	RenderNode    NodeRenderer

	// Width and Height fix the SVG viewport. Zero fits the viewport to the
	// translated content.
	Width, Height float64
}

// Defaults for options left at their zero value.
var (
	DefaultNodeSize      = Size{X: 140, Y: 140}
	DefaultForeignObject = ForeignObject{X: -50, Y: -10, Width: 100, Height: 30}
)

func (o Options) withDefaults() Options {
	if o.NodeSize.X <= 0 || o.NodeSize.Y <= 0 {
		o.NodeSize = DefaultNodeSize
	}
	if o.ForeignObject.Width <= 0 || o.ForeignObject.Height <= 0 {
		o.ForeignObject = DefaultForeignObject
	}
	if o.Orientation == "" {
		o.Orientation = Vertical
	}
	if o.PathFunc == "" {
		o.PathFunc = Diagonal
	}
	if o.RenderNode == nil {
		o.RenderNode = DefaultNodeRenderer
	}
	return o
}
