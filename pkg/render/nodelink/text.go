package nodelink

import (
	"bytes"
	"encoding/xml"
	"unicode/utf8"
)

const (
	fontHeightRatio = 0.5
	fontWidthRatio  = 0.9
	fontCharWidth   = 0.55
	fontSizeMin     = 8.0
	fontSizeMax     = 14.0
)

// FontSize picks a font size for text of textLen runes in a w x h box.
func FontSize(w, h float64, textLen int) float64 {
	n := max(1, textLen)
	byHeight := h * fontHeightRatio
	byWidth := (w * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, min(byHeight, byWidth)))
}

// FitLabel truncates label so that it fits a w x h box and returns it with
// the font size to draw it at.
func FitLabel(label string, w, h float64) (string, float64) {
	size := FontSize(w, h, utf8.RuneCountInString(label))
	maxChars := max(3, int((w*fontWidthRatio)/(size*fontCharWidth)))
	return Truncate(label, maxChars), size
}

// Truncate shortens s to at most n runes, marking the cut with "..".
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 2 {
		return string([]rune(s)[:n])
	}
	return string([]rune(s)[:n-2]) + ".."
}

// Escape returns s with XML special characters escaped.
func Escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
