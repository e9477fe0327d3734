package display

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/treedisplay/pkg/center"
	"github.com/matzehuels/treedisplay/pkg/displaytree"
	"github.com/matzehuels/treedisplay/pkg/observability"
	"github.com/matzehuels/treedisplay/pkg/render/nodelink"
)

// DocumentPosition identifies the place in the host document a diagram was
// produced for. It is opaque to this package and handed to node renderers as is.
type DocumentPosition struct {
	URI       string `json:"uri"`
	Line      int    `json:"line"`
	Character int    `json:"character"`
}

// Fixed engine configuration of every mounted diagram.
var (
	NodeSize      = nodelink.Size{X: 120, Y: 40}
	ForeignObject = nodelink.ForeignObject{X: -50, Y: -10, Width: 100, Height: 30}
)

// NodeRenderer draws the content of one node in node-local coordinates.
type NodeRenderer func(w io.Writer, pos DocumentPosition, n nodelink.NodeContext)

// Option configures a Diagram.
type Option func(*Diagram)

// WithNodeRenderer replaces the default green node box.
func WithNodeRenderer(r NodeRenderer) Option {
	return func(d *Diagram) {
		if r != nil {
			d.renderNode = r
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(d *Diagram) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithHooks overrides the globally registered diagram hooks.
func WithHooks(h observability.DiagramHooks) Option {
	return func(d *Diagram) {
		if h != nil {
			d.hooks = h
		}
	}
}

// WithID sets the instance ID instead of generating one.
func WithID(id string) Option {
	return func(d *Diagram) {
		if id != "" {
			d.id = id
		}
	}
}

// Diagram is one mounted tree display. Its centering state lives and dies
// with the value; two diagrams never share an offset.
type Diagram struct {
	id         string
	tree       displaytree.DisplayTree
	pos        DocumentPosition
	ctrl       center.Controller
	renderNode NodeRenderer
	logger     *log.Logger
	hooks      observability.DiagramHooks

	mu        sync.Mutex
	container center.Box // last non-zero measurement
}

// Mount creates a diagram for tree. The diagram starts unmeasured.
func Mount(tree displaytree.DisplayTree, pos DocumentPosition, opts ...Option) *Diagram {
	d := &Diagram{
		id:         uuid.NewString(),
		tree:       tree,
		pos:        pos,
		renderNode: DefaultNodeRenderer,
		logger:     log.New(io.Discard),
		hooks:      observability.Diagram(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.ctrl.OnCentered = func(off center.Offset) {
		d.logger.Debug("diagram centered", "id", d.id, "x", off.X, "y", off.Y)
		d.hooks.OnCentered(context.Background(), d.id, off.X, off.Y)
	}
	d.hooks.OnMount(context.Background(), d.id)
	return d
}

// ID returns the instance ID.
func (d *Diagram) ID() string { return d.id }

// Tree returns the mounted tree.
func (d *Diagram) Tree() displaytree.DisplayTree { return d.tree }

// Position returns the document position the diagram was mounted with.
func (d *Diagram) Position() DocumentPosition { return d.pos }

// State returns the centering state.
func (d *Diagram) State() center.State { return d.ctrl.State() }

// Offset returns the frozen offset and whether it has been set.
func (d *Diagram) Offset() (center.Offset, bool) { return d.ctrl.Offset() }

// Container returns the last non-zero container size reported to Measure.
func (d *Diagram) Container() (center.Box, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.container, d.container.Width > 0 && d.container.Height > 0
}

// Measure runs one centering pass against the container m. A nil m stands
// for a container that is not attached yet. Every non-zero size is recorded
// as the container, but only the first one moves the diagram.
func (d *Diagram) Measure(m center.Measurer) (center.Offset, bool) {
	if m == nil {
		return d.ctrl.Pass(nil)
	}
	var box center.Box
	if w, h, ok := m.Measure(); ok {
		box = center.Box{Width: w, Height: h}
	}
	if box.Width > 0 && box.Height > 0 {
		d.mu.Lock()
		d.container = box
		d.mu.Unlock()
	}
	return d.ctrl.Pass(box)
}

// Datum converts the mounted tree.
func (d *Diagram) Datum(ctx context.Context) (displaytree.Datum, error) {
	start := time.Now()
	datum, err := displaytree.Convert(d.tree)
	d.hooks.OnConvert(ctx, datum.Count(), time.Since(start), err)
	if err != nil {
		return displaytree.Datum{}, err
	}
	return datum, nil
}

// Options returns the engine options for the current state.
func (d *Diagram) Options() nodelink.Options {
	off := d.ctrl.Translate()
	opts := nodelink.Options{
		NodeSize:      NodeSize,
		Translate:     nodelink.Point{X: off.X, Y: off.Y},
		Orientation:   nodelink.Vertical,
		PathFunc:      nodelink.Straight,
		ForeignObject: ForeignObject,
		RenderNode: func(w io.Writer, n nodelink.NodeContext) {
			d.renderNode(w, d.pos, n)
		},
	}
	if box, ok := d.Container(); ok {
		opts.Width, opts.Height = box.Width, box.Height
	}
	return opts
}

// Layout converts the tree and positions its nodes with the options of the
// current state.
func (d *Diagram) Layout(ctx context.Context) (nodelink.Layout, nodelink.Options, error) {
	opts := d.Options()
	l, err := d.LayoutWith(ctx, opts)
	if err != nil {
		return nodelink.Layout{}, nodelink.Options{}, err
	}
	return l, opts, nil
}

// LayoutWith converts the tree and positions its nodes with opts, usually a
// snapshot taken earlier with Options.
func (d *Diagram) LayoutWith(ctx context.Context, opts nodelink.Options) (nodelink.Layout, error) {
	datum, err := d.Datum(ctx)
	if err != nil {
		return nodelink.Layout{}, err
	}

	start := time.Now()
	l, err := nodelink.Compute(ctx, &datum, opts)
	d.hooks.OnLayout(ctx, len(l.Nodes), time.Since(start), err)
	if err != nil {
		return nodelink.Layout{}, fmt.Errorf("layout diagram %s: %w", d.id, err)
	}
	return l, nil
}

// Render draws the diagram as SVG at the current translation: the frozen
// offset once centered, the origin before that.
func (d *Diagram) Render(ctx context.Context) ([]byte, error) {
	return d.RenderWith(ctx, d.Options())
}

// RenderWith draws the diagram as SVG with opts. A measurement that lands
// while drawing does not change the output.
func (d *Diagram) RenderWith(ctx context.Context, opts nodelink.Options) ([]byte, error) {
	start := time.Now()
	l, err := d.LayoutWith(ctx, opts)
	if err != nil {
		d.hooks.OnRender(ctx, "svg", 0, time.Since(start), err)
		return nil, err
	}
	svg := nodelink.Draw(l, opts)
	d.hooks.OnRender(ctx, "svg", len(svg), time.Since(start), nil)
	d.logger.Debug("rendered diagram", "id", d.id, "nodes", len(l.Nodes), "translate", opts.Translate)
	return svg, nil
}
