package nodelink

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFitLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
		trunc bool
	}{
		{"short", "root", false},
		{"empty", "", false},
		{"long", strings.Repeat("x", 80), true},
		{"unicode", strings.Repeat("∀", 60), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, size := FitLabel(tt.label, 100, 30)
			if size < fontSizeMin || size > fontSizeMax {
				t.Errorf("size %v out of range", size)
			}
			if tt.trunc != strings.HasSuffix(text, "..") {
				t.Errorf("FitLabel(%q) = %q, truncated = %v", tt.label, text, !tt.trunc)
			}
			if !utf8.ValidString(text) {
				t.Error("truncation split a rune")
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello world", 7, "hello.."},
		{"héllo wörld", 5, "hél.."},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestEscape(t *testing.T) {
	if got := Escape(`a < b & "c"`); got != "a &lt; b &amp; &#34;c&#34;" {
		t.Errorf("Escape() = %q", got)
	}
}
