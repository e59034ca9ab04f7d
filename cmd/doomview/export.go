package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/stuarthighley/doomview/wad"
)

// exportAssets writes every stitched texture and flat in palette 0 as NAME.png under dir.
func exportAssets(w *wad.Archive, dir string) error {
	if len(w.Palettes) == 0 {
		return fmt.Errorf("archive has no palette")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	palette := &w.Palettes[0]
	for _, t := range w.TexturesList {
		if err := writePNG(filepath.Join(dir, t.Name+".png"), pictureImage(t.Picture, palette)); err != nil {
			return err
		}
	}
	for _, f := range w.FlatsList {
		if err := writePNG(filepath.Join(dir, f.Name+".png"), flatImage(f, palette)); err != nil {
			return err
		}
	}
	return nil
}

// pictureImage converts a picture, leaving transparent pixels clear.
func pictureImage(p *wad.Picture, palette *wad.Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	for x := range p.Columns {
		for y, b := range p.Columns[x] {
			if c, ok := palette.RGBA(b); ok {
				img.SetRGBA(x, y, c)
			}
		}
	}
	return img
}

func flatImage(flat *wad.Flat, palette *wad.Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, wad.FlatWidth, wad.FlatHeight))
	for i, b := range flat.Data {
		if c, ok := palette.RGBA(b); ok {
			img.SetRGBA(i%wad.FlatWidth, i/wad.FlatWidth, c)
		}
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
