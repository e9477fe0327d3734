package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treedisplay/pkg/cache"
	"github.com/matzehuels/treedisplay/pkg/display"
	"github.com/matzehuels/treedisplay/pkg/displaytree"
	"github.com/matzehuels/treedisplay/pkg/observability"
	"github.com/matzehuels/treedisplay/pkg/render"
	"github.com/matzehuels/treedisplay/pkg/render/nodelink"
)

// Runner renders diagrams with caching.
// Both CLI and HTTP host use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different diagrams.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute renders d in every requested format, serving from the cache when
// all formats are present.
func (r *Runner) Execute(ctx context.Context, d *display.Diagram, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	datum, err := d.Datum(ctx)
	if err != nil {
		return nil, err
	}
	datumJSON, err := json.Marshal(datum)
	if err != nil {
		return nil, fmt.Errorf("serialize node graph: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		TreeHash:  cache.Hash(datumJSON),
	}
	result.Stats.NodeCount = datum.Count()

	// Key and draw from one snapshot so a concurrent measurement cannot
	// store a centered render under the unmeasured key.
	layoutOpts := d.Options()
	keyFor := func(format string) string {
		return r.Keyer.ArtifactKey(result.TreeHash, artifactKeyOpts(format,
			layoutOpts.Translate.X, layoutOpts.Translate.Y, layoutOpts.Width, layoutOpts.Height, opts.Scale))
	}

	if !opts.Refresh {
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, keyFor(format))
			if err != nil || !hit {
				break
			}
			result.Artifacts[format] = data
		}
		if len(result.Artifacts) == len(opts.Formats) {
			result.CacheHit = true
			logger.Debug("artifacts served from cache", "hash", result.TreeHash[:12], "formats", opts.Formats)
			return result, nil
		}
		clear(result.Artifacts)
	}

	start := time.Now()
	artifacts, err := r.render(ctx, d, layoutOpts, datum, opts)
	result.Stats.RenderTime = time.Since(start)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts

	for format, data := range artifacts {
		if err := r.Cache.Set(ctx, keyFor(format), data, cache.TTLArtifact); err != nil {
			logger.Warn("cache write failed", "format", format, "error", err)
		}
	}

	logger.Info("rendered outputs",
		"nodes", result.Stats.NodeCount,
		"formats", opts.Formats,
		"translate", layoutOpts.Translate,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// render produces every format of opts without touching the cache. The SVG
// is drawn at most once, with layoutOpts.
func (r *Runner) render(ctx context.Context, d *display.Diagram, layoutOpts nodelink.Options, datum displaytree.Datum, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var svg []byte
	drawn := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = d.RenderWith(ctx, layoutOpts)
		return svg, err
	}

	for _, format := range opts.Formats {
		start := time.Now()
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = drawn()
		case FormatPNG:
			if data, err = drawn(); err == nil {
				data, err = render.ToPNG(ctx, data, opts.Scale)
			}
		case FormatPDF:
			if data, err = drawn(); err == nil {
				data, err = render.ToPDF(ctx, data)
			}
		case FormatJSON:
			var buf bytes.Buffer
			err = displaytree.WriteJSON(&buf, datum)
			data = buf.Bytes()
		default:
			err = fmt.Errorf("unsupported format: %s", format)
		}

		if format != FormatSVG {
			observability.Diagram().OnRender(ctx, format, len(data), time.Since(start), err)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
