package wad

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image/color"
)

// TransparentIndex marks unpainted pixels in pictures and stitched textures. It is never drawn.
const TransparentIndex = 247

const paletteSize = 768

type RGB struct {
	Red, Green, Blue uint8
}

// Each palette in PLAYPAL contains 256 three-ubyte colors totaling 768 bytes (RGB).
type Palette [256]RGB

// RGBA resolves a palette index. ok is false for the transparency sentinel.
func (p *Palette) RGBA(index byte) (c color.RGBA, ok bool) {
	if index == TransparentIndex {
		return color.RGBA{}, false
	}
	rgb := p[index]
	return color.RGBA{rgb.Red, rgb.Green, rgb.Blue, 0xff}, true
}

// readPlaypal decodes every palette in a PLAYPAL lump.
func readPlaypal(lump []byte) ([]Palette, error) {
	logger.Println("Loading PLAYPAL ...")
	if len(lump)%paletteSize != 0 {
		return nil, fmt.Errorf("%w: %v bytes", ErrPaletteSize, len(lump))
	}
	palettes := make([]Palette, len(lump)/paletteSize)
	if err := binary.Read(bytes.NewReader(lump), binary.LittleEndian, palettes); err != nil {
		return nil, err
	}
	logger.Printf("Loaded %v palettes", len(palettes))
	return palettes, nil
}
