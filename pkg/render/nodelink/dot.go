package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/treedisplay/pkg/displaytree"
)

// pointsPerInch converts pixel sizes to Graphviz inches (1px == 1pt).
const pointsPerInch = 72.0

// minSep is the smallest nodesep/ranksep Graphviz accepts.
const minSep = 0.02

// PlacedNode is a datum with its computed position.
type PlacedNode struct {
	Index  int
	Parent int // -1 for the root
	Depth  int
	Datum  *displaytree.Datum
	X, Y   float64
}

// Layout is the result of Compute. Nodes are in pre-order.
type Layout struct {
	Nodes []PlacedNode
}

// Bounds returns the extent of the node positions.
func (l Layout) Bounds() (minX, minY, maxX, maxY float64) {
	for i, n := range l.Nodes {
		if i == 0 {
			minX, maxX, minY, maxY = n.X, n.X, n.Y, n.Y
			continue
		}
		minX, maxX = min(minX, n.X), max(maxX, n.X)
		minY, maxY = min(minY, n.Y), max(maxY, n.Y)
	}
	return minX, minY, maxX, maxY
}

// nodeID returns the DOT identifier for the node with the given pre-order index.
func nodeID(index int) string {
	return "n" + strconv.Itoa(index)
}

// ToDOT converts a node graph to Graphviz DOT with fixed-size boxes.
// Node identifiers are n0, n1, ... in pre-order; labels are left empty
// because node content is drawn by the NodeRenderer.
func ToDOT(root *displaytree.Datum, opts Options) string {
	opts = opts.withDefaults()
	fo := opts.ForeignObject

	rankdir, nodesep, ranksep := "TB", opts.NodeSize.X-fo.Width, opts.NodeSize.Y-fo.Height
	if opts.Orientation == Horizontal {
		rankdir, nodesep, ranksep = "LR", opts.NodeSize.Y-fo.Height, opts.NodeSize.X-fo.Width
	}

	var buf bytes.Buffer
	buf.WriteString("digraph tree {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  ordering=out;\n")
	buf.WriteString("  splines=line;\n")
	fmt.Fprintf(&buf, "  nodesep=%.4f;\n", max(minSep, nodesep/pointsPerInch))
	fmt.Fprintf(&buf, "  ranksep=%.4f;\n", max(minSep, ranksep/pointsPerInch))
	fmt.Fprintf(&buf, "  node [shape=box, fixedsize=true, width=%.4f, height=%.4f, label=\"\"];\n",
		fo.Width/pointsPerInch, fo.Height/pointsPerInch)
	buf.WriteString("\n")

	var edges bytes.Buffer
	root.Walk(func(index, parent int, _ *displaytree.Datum) {
		fmt.Fprintf(&buf, "  %s;\n", nodeID(index))
		if parent >= 0 {
			fmt.Fprintf(&edges, "  %s -> %s;\n", nodeID(parent), nodeID(index))
		}
	})

	buf.WriteString("\n")
	buf.Write(edges.Bytes())
	buf.WriteString("}\n")
	return buf.String()
}

// Compute lays out the tree rooted at root with Graphviz.
func Compute(ctx context.Context, root *displaytree.Datum, opts Options) (Layout, error) {
	if root == nil {
		return Layout{}, fmt.Errorf("layout: nil root")
	}
	laidOut, err := runGraphviz(ctx, ToDOT(root, opts))
	if err != nil {
		return Layout{}, err
	}
	positions, err := parsePositions(laidOut)
	if err != nil {
		return Layout{}, err
	}
	return place(root, positions)
}

// runGraphviz runs the dot layout and returns the DOT output annotated with positions.
func runGraphviz(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.XDOT, &buf); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	nodeStmtRe = regexp.MustCompile(`(?ms)^\s*(n\d+)\s*\[(.*?)\];`)
	posRe      = regexp.MustCompile(`\bpos="(-?[0-9.eE+-]+),(-?[0-9.eE+-]+)!?"`)
)

// parsePositions extracts node centres, in Graphviz points, from laid out DOT.
func parsePositions(laidOut []byte) (map[int]Point, error) {
	positions := make(map[int]Point)
	for _, m := range nodeStmtRe.FindAllSubmatch(laidOut, -1) {
		idx, err := strconv.Atoi(string(m[1][1:]))
		if err != nil {
			continue
		}
		pm := posRe.FindSubmatch(m[2])
		if pm == nil {
			continue
		}
		x, errX := strconv.ParseFloat(string(pm[1]), 64)
		y, errY := strconv.ParseFloat(string(pm[2]), 64)
		if errX != nil || errY != nil {
			return nil, fmt.Errorf("node %s: bad position %q", m[1], pm[0])
		}
		positions[idx] = Point{X: x, Y: y}
	}
	return positions, nil
}

// place converts Graphviz positions (origin bottom-left, y up) into
// root-relative positions with y growing downward.
func place(root *displaytree.Datum, positions map[int]Point) (Layout, error) {
	origin, ok := positions[0]
	if !ok {
		return Layout{}, fmt.Errorf("layout: no position for root")
	}

	var (
		l      Layout
		depths []int
		err    error
	)
	root.Walk(func(index, parent int, d *displaytree.Datum) {
		depth := 0
		if parent >= 0 {
			depth = depths[parent] + 1
		}
		depths = append(depths, depth)

		p, ok := positions[index]
		if !ok && err == nil {
			err = fmt.Errorf("layout: no position for %s", nodeID(index))
		}
		l.Nodes = append(l.Nodes, PlacedNode{
			Index:  index,
			Parent: parent,
			Depth:  depth,
			Datum:  d,
			X:      p.X - origin.X,
			Y:      origin.Y - p.Y,
		})
	})
	if err != nil {
		return Layout{}, err
	}
	return l, nil
}
