// Package pipeline turns mounted diagrams into cached artifacts.
//
// The CLI and the HTTP host both go through a [Runner] so that SVG, PNG, PDF
// and JSON output share one code path and one artifact cache.
//
// # Stages
//
//  1. Convert: the diagram's tree becomes a node graph (displaytree.Convert)
//  2. Layout: Graphviz positions the nodes (nodelink.Compute)
//  3. Render: the laid out tree is drawn as SVG and optionally converted
//
// Artifacts are keyed by the hash of the converted node graph and by every
// setting that changes the output: format, translation, viewport and scale.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	d := display.Mount(tree, pos)
//	d.Measure(center.Box{Width: 600, Height: 400})
//	result, err := runner.Execute(ctx, d, pipeline.Options{Formats: []string{"svg"}})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treedisplay/pkg/cache"
	apperrors "github.com/matzehuels/treedisplay/pkg/errors"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// DefaultScale is the PNG scale factor used when none is given.
const DefaultScale = 2.0

// Options configures one pipeline run.
type Options struct {
	Formats []string // output formats, "svg" when empty
	Scale   float64  // PNG scale factor
	Refresh bool     // skip cache reads, still write results

	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults fills in defaults and validates o.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "scale must be positive (got %g)", o.Scale)
	}
	return apperrors.ValidateFormats(o.Formats)
}

// Result holds the artifacts of a run.
type Result struct {
	Artifacts map[string][]byte
	TreeHash  string
	CacheHit  bool
	Stats     Stats
}

// Stats records how long each stage took.
type Stats struct {
	NodeCount  int
	RenderTime time.Duration
}

// artifactKeyOpts builds the cache key options for format.
func artifactKeyOpts(format string, tx, ty, w, h, scale float64) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, TranslateX: tx, TranslateY: ty, Width: w, Height: h}
	if format == FormatPNG {
		k.Scale = scale
	}
	if format == FormatJSON {
		// The node graph does not depend on placement.
		k.TranslateX, k.TranslateY, k.Width, k.Height = 0, 0, 0, 0
	}
	return k
}
