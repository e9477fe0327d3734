package display

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/treedisplay/pkg/center"
	"github.com/matzehuels/treedisplay/pkg/displaytree"
	"github.com/matzehuels/treedisplay/pkg/observability"
	"github.com/matzehuels/treedisplay/pkg/render/nodelink"
)

var testPos = DocumentPosition{URI: "file:///Main.lean", Line: 12, Character: 4}

func twoLevel() displaytree.DisplayTree {
	return displaytree.Branch("root",
		displaytree.Leaf("left"),
		displaytree.Leaf("right"),
	)
}

func TestMount_Unmeasured(t *testing.T) {
	d := Mount(twoLevel(), testPos)
	if d.ID() == "" {
		t.Error("expected generated ID")
	}
	if d.State() != center.Unmeasured {
		t.Errorf("State() = %v, want unmeasured", d.State())
	}
	if _, ok := d.Offset(); ok {
		t.Error("offset set before any measurement")
	}
	if d.Position() != testPos {
		t.Errorf("Position() = %+v", d.Position())
	}
}

func TestMount_WithID(t *testing.T) {
	d := Mount(twoLevel(), testPos, WithID("fixed"))
	if d.ID() != "fixed" {
		t.Errorf("ID() = %q", d.ID())
	}
}

func TestMeasure_CentersOnce(t *testing.T) {
	d := Mount(twoLevel(), testPos)

	steps := []struct {
		box    center.Measurer
		want   center.Offset
		wantOK bool
	}{
		{nil, center.Offset{}, false},
		{center.Box{Width: 0, Height: 0}, center.Offset{}, false},
		{center.Box{Width: 300, Height: 150}, center.Offset{X: 150, Y: 20}, true},
		{center.Box{Width: 300, Height: 300}, center.Offset{X: 150, Y: 20}, true},
		{center.Box{Width: 900, Height: 600}, center.Offset{X: 150, Y: 20}, true},
	}
	for i, s := range steps {
		got, ok := d.Measure(s.box)
		if got != s.want || ok != s.wantOK {
			t.Errorf("step %d: Measure = %+v, %v; want %+v, %v", i, got, ok, s.want, s.wantOK)
		}
	}

	box, ok := d.Container()
	if !ok || box.Width != 900 {
		t.Errorf("Container() = %+v, %v; want last measured size", box, ok)
	}
}

func TestMeasure_IndependentInstances(t *testing.T) {
	a := Mount(twoLevel(), testPos)
	b := Mount(twoLevel(), testPos)

	a.Measure(center.Box{Width: 600, Height: 400})
	if b.State() != center.Unmeasured {
		t.Error("measuring one diagram centered another")
	}
	if a.ID() == b.ID() {
		t.Error("diagrams share an ID")
	}
}

func TestOptions(t *testing.T) {
	d := Mount(twoLevel(), testPos)

	opts := d.Options()
	if opts.NodeSize != (nodelink.Size{X: 120, Y: 40}) {
		t.Errorf("NodeSize = %+v", opts.NodeSize)
	}
	if opts.Orientation != nodelink.Vertical || opts.PathFunc != nodelink.Straight {
		t.Errorf("Orientation/PathFunc = %s/%s", opts.Orientation, opts.PathFunc)
	}
	if opts.Translate != (nodelink.Point{}) {
		t.Errorf("unmeasured Translate = %+v, want origin", opts.Translate)
	}
	if opts.ForeignObject != (nodelink.ForeignObject{X: -50, Y: -10, Width: 100, Height: 30}) {
		t.Errorf("ForeignObject = %+v", opts.ForeignObject)
	}

	d.Measure(center.Box{Width: 600, Height: 400})
	opts = d.Options()
	if opts.Translate != (nodelink.Point{X: 300, Y: 20}) {
		t.Errorf("centered Translate = %+v", opts.Translate)
	}
	if opts.Width != 600 || opts.Height != 400 {
		t.Errorf("viewport = %vx%v", opts.Width, opts.Height)
	}
}

func TestRender(t *testing.T) {
	ctx := context.Background()
	d := Mount(twoLevel(), testPos)

	svg, err := d.Render(ctx)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(svg), `transform="translate(0,0)"`) {
		t.Error("unmeasured render should be drawn at the origin")
	}
	if n := strings.Count(string(svg), `fill="#5cb85c"`); n != 3 {
		t.Errorf("got %d node boxes, want 3", n)
	}
	if n := strings.Count(string(svg), `class="link"`); n != 2 {
		t.Errorf("got %d links, want 2", n)
	}

	d.Measure(center.Box{Width: 600, Height: 400})
	svg, err = d.Render(ctx)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(svg), `transform="translate(300,20)"`) {
		t.Error("centered render should be translated by (300,20)")
	}
}

func TestRenderWith_Snapshot(t *testing.T) {
	d := Mount(twoLevel(), testPos)
	opts := d.Options()
	d.Measure(center.Box{Width: 600, Height: 400})

	svg, err := d.RenderWith(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(svg), "translate(300,20)") {
		t.Error("RenderWith should draw the snapshot, not the current offset")
	}
	if svg, _ := d.Render(context.Background()); !strings.Contains(string(svg), "translate(300,20)") {
		t.Error("Render should draw the current offset")
	}
}

func TestMeasure_NotAttachedKeepsContainer(t *testing.T) {
	d := Mount(twoLevel(), testPos)
	d.Measure(center.Box{Width: 600, Height: 400})
	d.Measure(center.MeasureFunc(func() (float64, float64, bool) { return 10, 10, false }))

	if box, _ := d.Container(); box.Width != 600 {
		t.Errorf("Container() = %+v; detached measurement should be ignored", box)
	}
}

func TestRender_Malformed(t *testing.T) {
	tree := displaytree.DisplayTree{Node: displaytree.Node{Children: nil}}
	d := Mount(tree, testPos)

	svg, err := d.Render(context.Background())
	if !errors.Is(err, displaytree.ErrMalformedTree) {
		t.Fatalf("Render error = %v, want ErrMalformedTree", err)
	}
	if svg != nil {
		t.Error("no partial output expected")
	}
}

func TestWithNodeRenderer(t *testing.T) {
	var seen []string
	renderer := func(w io.Writer, pos DocumentPosition, n nodelink.NodeContext) {
		if pos != testPos {
			t.Errorf("renderer got position %+v", pos)
		}
		seen = append(seen, n.Datum.Text())
		io.WriteString(w, "<circle/>")
	}

	d := Mount(twoLevel(), testPos, WithNodeRenderer(renderer))
	if _, err := d.Render(context.Background()); err != nil {
		t.Fatal(err)
	}
	if strings.Join(seen, ",") != "root,left,right" {
		t.Errorf("renderer saw %v", seen)
	}
}

func TestDefaultNodeRenderer(t *testing.T) {
	label := "a<b"
	tests := []struct {
		name  string
		datum displaytree.Datum
		want  []string
		avoid []string
	}{
		{
			name:  "labeled",
			datum: displaytree.Datum{Name: displaytree.NodeName, Label: &label},
			want: []string{
				`<rect x="-50" y="-10" width="100" height="30" fill="#5cb85c"`,
				`text-anchor="middle"`,
				`x="0" y="5"`,
				"a&lt;b",
			},
		},
		{
			name:  "unlabeled",
			datum: displaytree.Datum{Name: displaytree.NodeName},
			want:  []string{`<rect`},
			avoid: []string{`<text`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			DefaultNodeRenderer(&buf, testPos, nodelink.NodeContext{Datum: &tt.datum, ForeignObject: ForeignObject})
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, a := range tt.avoid {
				if strings.Contains(out, a) {
					t.Errorf("output contains %q:\n%s", a, out)
				}
			}
		})
	}
}

type recordingHooks struct {
	observability.NoopDiagramHooks
	events []string
}

func (h *recordingHooks) OnMount(context.Context, string) { h.events = append(h.events, "mount") }
func (h *recordingHooks) OnConvert(context.Context, int, time.Duration, error) {
	h.events = append(h.events, "convert")
}
func (h *recordingHooks) OnCentered(context.Context, string, float64, float64) {
	h.events = append(h.events, "centered")
}

func TestWithHooks(t *testing.T) {
	h := &recordingHooks{}
	d := Mount(twoLevel(), testPos, WithHooks(h))
	d.Measure(center.Box{Width: 10, Height: 10})
	d.Measure(center.Box{Width: 20, Height: 20})
	if _, err := d.Datum(context.Background()); err != nil {
		t.Fatal(err)
	}

	if got := strings.Join(h.events, ","); got != "mount,centered,convert" {
		t.Errorf("events = %s", got)
	}
}
