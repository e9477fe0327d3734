package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/treedisplay/pkg/display"
	"github.com/matzehuels/treedisplay/pkg/displaytree"
	apperrors "github.com/matzehuels/treedisplay/pkg/errors"
)

// stdinName is the input argument that reads the tree from standard input.
const stdinName = "-"

// readTree loads a display tree from path, or from stdin when path is empty
// or "-".
func readTree(path string, stdin io.Reader) (displaytree.DisplayTree, error) {
	if path == "" || path == stdinName {
		return displaytree.ReadJSON(stdin)
	}
	return displaytree.ReadFile(path)
}

// documentPosition returns the position diagrams from path are mounted with.
func documentPosition(path, uri string, line, char int) display.DocumentPosition {
	if uri == "" && path != "" && path != stdinName {
		if abs, err := filepath.Abs(path); err == nil {
			uri = "file://" + filepath.ToSlash(abs)
		}
	}
	return display.DocumentPosition{URI: uri, Line: line, Character: char}
}

// outputPath derives the file a format is written to. An empty result means
// standard output.
func outputPath(output, input, format string, multiple bool) string {
	if output == "-" {
		return ""
	}
	if output != "" && !multiple {
		return output
	}
	base := basePath(output, input)
	if base == "" {
		if multiple {
			base = "tree"
		} else {
			return ""
		}
	}
	return base + "." + format
}

// basePath strips a known format extension from output, or derives the base
// from the input file name when output is empty.
func basePath(output, input string) string {
	if output == "" {
		if input == "" || input == stdinName {
			return ""
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if apperrors.ValidateFormats([]string{strings.TrimPrefix(ext, ".")}) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput opens path for writing, or stdout when path is empty.
func openOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{stdout}, nil
	}
	if err := apperrors.ValidateOutputPath(path); err != nil {
		return nil, err
	}
	return os.Create(path)
}
