package wad

import (
	"bytes"
	"errors"
	"image/color"
	"testing"

	"github.com/stuarthighley/doomview/internal/wadtest"
)

func TestPaletteSize(t *testing.T) {
	b := wadtest.New()
	b.Add("PLAYPAL", make([]byte, 700))
	w, err := Decode(b.Bytes())
	if !errors.Is(err, ErrPaletteSize) {
		t.Fatalf("expected ErrPaletteSize, got %v", err)
	}
	if w != nil {
		t.Fatalf("expected no archive on failure")
	}
}

func TestMultiplePalettes(t *testing.T) {
	second := bytes.Repeat([]byte{9}, 768)
	b := wadtest.New()
	b.Add("PLAYPAL", append(wadtest.GrayPalette(), second...))
	w := decode(t, b.Bytes())
	if len(w.Palettes) != 2 {
		t.Fatalf("expected 2 palettes, got %d", len(w.Palettes))
	}
	if c, ok := w.Palettes[1].RGBA(3); !ok || c != (color.RGBA{9, 9, 9, 0xff}) {
		t.Errorf("expected second palette color 9, got %v", c)
	}
}

func TestPaletteNeverResolvesTransparent(t *testing.T) {
	b := wadtest.New()
	b.Add("PLAYPAL", wadtest.GrayPalette())
	p := decode(t, b.Bytes()).Palettes[0]
	for i := range 256 {
		c, ok := p.RGBA(byte(i))
		if i == TransparentIndex {
			if ok {
				t.Errorf("expected index %d to be transparent", i)
			}
			continue
		}
		if !ok || c != (color.RGBA{uint8(i), uint8(i), uint8(i), 0xff}) {
			t.Errorf("index %d: expected gray %d, got %v", i, i, c)
		}
	}
}
