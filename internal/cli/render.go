package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treedisplay/pkg/center"
	"github.com/matzehuels/treedisplay/pkg/display"
	"github.com/matzehuels/treedisplay/pkg/displaytree"
	apperrors "github.com/matzehuels/treedisplay/pkg/errors"
	"github.com/matzehuels/treedisplay/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file path (or base path for multiple formats)
	formats []string // output formats: "svg", "png", "pdf", "json"
	width   float64  // container width in pixels
	height  float64  // container height in pixels
	scale   float64  // PNG scale factor
	noCache bool     // bypass the artifact cache entirely
	refresh bool     // re-render even when cached
	uri     string   // document URI handed to the node renderer
	line    int
	char    int
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [tree.json]",
		Short: "Render a tree to SVG, PNG, PDF or node-graph JSON",
		Long: `Render a tree to SVG, PNG, PDF or node-graph JSON.

The diagram is laid out once before the container is measured, then measured
with --width/--height and centered: the root sits at half the container width,
20px below the top edge. Reads the tree from stdin when no file is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := apperrors.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if !cmd.Flags().Changed("width") {
				opts.width = c.Config.Container.Width
			}
			if !cmd.Flags().Changed("height") {
				opts.height = c.Config.Container.Height
			}
			if err := apperrors.ValidateContainerSize(opts.width, opts.height); err != nil {
				return err
			}

			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), input, cmd.InOrStdin(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 600, "container width in pixels")
	cmd.Flags().Float64Var(&opts.height, "height", 400, "container height in pixels")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")
	cmd.Flags().StringVar(&opts.uri, "uri", "", "document URI of the tree (defaults to the input file)")
	cmd.Flags().IntVar(&opts.line, "line", 0, "document line of the tree")
	cmd.Flags().IntVar(&opts.char, "character", 0, "document character of the tree")

	return cmd
}

// runRender mounts the tree, runs the unmeasured and the measured layout
// passes, and writes every requested format.
func (c *CLI) runRender(ctx context.Context, input string, stdin io.Reader, stdout io.Writer, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	tree, err := readTree(input, stdin)
	if err != nil {
		return err
	}
	d := display.Mount(tree, documentPosition(input, opts.uri, opts.line, opts.char), display.WithLogger(logger))

	// First pass: the container has not been laid out yet.
	if _, ok := d.Measure(nil); ok {
		return fmt.Errorf("diagram %s centered before measurement", d.ID())
	}
	l, _, err := d.Layout(ctx)
	if err != nil {
		return err
	}
	logger.Debug("initial layout", "nodes", len(l.Nodes), "state", d.State())

	off, centered := d.Measure(center.Box{Width: opts.width, Height: opts.height})
	if centered {
		logger.Debug("centered", "x", off.X, "y", off.Y)
	} else {
		logger.Warn("container has no size, rendering at origin", "width", opts.width, "height", opts.height)
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spin *Spinner
	if needsConversion(opts.formats) && !c.verbose {
		spin = newSpinner(ctx, os.Stderr, "Converting with rsvg-convert...")
		spin.Start()
	}
	result, err := runner.Execute(ctx, d, pipeline.Options{
		Formats: opts.formats,
		Scale:   opts.scale,
		Refresh: opts.refresh,
		Logger:  logger,
	})
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	multiple := len(opts.formats) > 1
	var written []string
	for _, format := range opts.formats {
		path := outputPath(opts.output, input, format, multiple)
		if err := writeArtifact(path, stdout, result.Artifacts[format]); err != nil {
			return fmt.Errorf("write %s: %w", format, err)
		}
		if path != "" {
			written = append(written, path)
		}
	}

	prog.done(fmt.Sprintf("Rendered %d nodes", result.Stats.NodeCount))
	if len(written) > 0 {
		printStats(result.Stats.NodeCount, d.State().String(), result.CacheHit)
		for _, p := range written {
			printFile(p)
		}
	}
	return nil
}

func needsConversion(formats []string) bool {
	for _, f := range formats {
		if f == pipeline.FormatPNG || f == pipeline.FormatPDF {
			return true
		}
	}
	return false
}

func writeArtifact(path string, stdout io.Writer, data []byte) error {
	out, err := openOutput(path, stdout)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// convertCommand creates the convert command, which prints the node graph
// handed to the layout engine.
func (c *CLI) convertCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert [tree.json]",
		Short: "Print the node graph a tree converts to",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			tree, err := readTree(input, cmd.InOrStdin())
			if err != nil {
				return err
			}
			d := display.Mount(tree, documentPosition(input, "", 0, 0))
			datum, err := d.Datum(cmd.Context())
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := displaytree.WriteJSON(&buf, datum); err != nil {
				return err
			}
			if output == "" {
				output = "-"
			}
			return writeArtifact(outputPath(output, input, pipeline.FormatJSON, false), cmd.OutOrStdout(), buf.Bytes())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
