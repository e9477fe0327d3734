package render

import (
	"bytes"
	"context"
	"testing"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10" fill="#5cb85c"/></svg>`

func TestToPNG(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	png, err := ToPNG(context.Background(), []byte(tinySVG), 2)
	if err != nil {
		t.Fatalf("ToPNG() error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("ToPNG() did not return PNG data")
	}
}

func TestToPDF(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	pdf, err := ToPDF(context.Background(), []byte(tinySVG))
	if err != nil {
		t.Fatalf("ToPDF() error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("ToPDF() did not return PDF data")
	}
}

func TestConvertWithoutTool(t *testing.T) {
	if Available() {
		t.Skip("rsvg-convert installed")
	}
	if _, err := ToPDF(context.Background(), []byte(tinySVG)); err == nil {
		t.Error("ToPDF() should fail without rsvg-convert")
	}
}
