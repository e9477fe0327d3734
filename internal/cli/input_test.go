package cli

import (
	"strings"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "svg"},
		{"svg", "svg"},
		{"svg, png,pdf", "svg|png|pdf"},
	}
	for _, tt := range tests {
		if got := strings.Join(parseFormats(tt.input), "|"); got != tt.want {
			t.Errorf("parseFormats(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		input    string
		format   string
		multiple bool
		want     string
	}{
		{"explicit single", "out.svg", "tree.json", "svg", false, "out.svg"},
		{"stdout", "-", "tree.json", "svg", false, ""},
		{"derived from input", "", "dir/tree.json", "png", false, "dir/tree.png"},
		{"stdin single", "", "", "svg", false, ""},
		{"stdin multiple", "", "-", "svg", true, "tree.svg"},
		{"base path multiple", "out", "tree.json", "pdf", true, "out.pdf"},
		{"extension stripped", "out.svg", "tree.json", "json", true, "out.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, tt.input, tt.format, tt.multiple); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocumentPosition(t *testing.T) {
	pos := documentPosition("tree.json", "", 3, 7)
	if !strings.HasPrefix(pos.URI, "file://") || !strings.HasSuffix(pos.URI, "/tree.json") {
		t.Errorf("URI = %q", pos.URI)
	}
	if pos.Line != 3 || pos.Character != 7 {
		t.Errorf("pos = %+v", pos)
	}

	if pos := documentPosition("-", "", 0, 0); pos.URI != "" {
		t.Errorf("stdin URI = %q", pos.URI)
	}
	if pos := documentPosition("tree.json", "untitled:1", 0, 0); pos.URI != "untitled:1" {
		t.Errorf("explicit URI = %q", pos.URI)
	}
}
