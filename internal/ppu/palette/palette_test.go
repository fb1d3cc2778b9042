package palette

import (
	"image/color"
	"testing"
)

func TestByName(t *testing.T) {
	p, err := ByName("green")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.GetColour(3); got != (color.RGBA{R: 0x0F, G: 0x38, B: 0x0F, A: 0xFF}) {
		t.Errorf("expected the darkest green, got %v", got)
	}

	if _, err := ByName("purple"); err == nil {
		t.Errorf("expected an error for an unknown palette")
	}
}
