package wad

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

type binTextureHeader struct {
	TextureName String8
	Masked      int32
	Width       int16
	Height      int16
	Unused      int32 // ColumnDirectory
	NumPatches  int16
}

type binPatch struct {
	XOffset      int16
	YOffset      int16
	PatchNameIdx int16
	Unused1      int16 // StepDir
	Unused2      int16 // ColorMap
}

// Texture is a named wall texture composed of one or more positioned patches.
type Texture struct {
	Name          string   // Texture name and index into textures map
	Index         int      // Index into TexturesList
	IsMasked      bool     // Authored as see-through
	Width, Height int      // total width and height of the map texture
	Patches       []Patch  // List of component Patches
	Picture       *Picture // Stitched composite, built once at load
}

type Patch struct {
	XOffset  int // horizontal offset of patch relative to upper-left of texture
	YOffset  int // vertical offset of patch relative to upper-left of texture
	PatchNum int // index into PNAMES
	Picture  *Picture
}

// At returns the stitched pixel at texture column u, row v, wrapped into range.
func (t *Texture) At(u, v int) byte {
	return t.Picture.At(u, v)
}

// readPatchNames reads the PNAMES lump to populate a slice of patch names
func readPatchNames(lump []byte) ([]string, error) {
	logger.Printf("Loading patch names ...\n")
	reader := bytes.NewReader(lump)

	// Read PNAMES header
	var count int32
	if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("PNAMES: %w", ErrTruncated)
	}
	if count < 0 || int(count)*8 > reader.Len() {
		return nil, fmt.Errorf("PNAMES: %v names: %w", count, ErrTruncated)
	}

	// Read and translate PNAMES body
	pnames := make([]String8, count)
	patchNames := make([]string, count)
	if err := binary.Read(reader, binary.LittleEndian, pnames); err != nil {
		return nil, err
	}
	for i, p := range pnames {
		patchNames[i] = strings.ToUpper(p.String()) // ToUpper required for "w94_1" patch
	}
	return patchNames, nil
}

// readTextureDefs decodes a TEXTURE1/TEXTURE2 lump. Pictures are attached later by stitchTextures.
func readTextureDefs(name string, lump []byte) ([]*Texture, error) {
	logger.Printf("Loading %v ...", name)
	reader := bytes.NewReader(lump)

	// Read header
	var count int32
	if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("%v: %w", name, ErrTruncated)
	}
	if count < 0 || int(count)*4 > reader.Len() {
		return nil, fmt.Errorf("%v: %v textures: %w", name, count, ErrTruncated)
	}

	// Read offsets
	offsets := make([]int32, count)
	if err := binary.Read(reader, binary.LittleEndian, offsets); err != nil {
		return nil, err
	}

	// For each offset...
	textures := make([]*Texture, 0, count)
	for _, offset := range offsets {
		if offset < 0 || int(offset) >= len(lump) {
			return nil, fmt.Errorf("%v: texture offset %v: %w", name, offset, ErrTruncated)
		}
		entry := bytes.NewReader(lump[offset:])

		// Read header
		var binHeader binTextureHeader
		if err := binary.Read(entry, binary.LittleEndian, &binHeader); err != nil {
			return nil, fmt.Errorf("%v: texture header: %w", name, ErrTruncated)
		}

		// Create texture
		texture := &Texture{
			Name:     binHeader.TextureName.String(),
			IsMasked: binHeader.Masked != 0,
			Width:    int(binHeader.Width),
			Height:   int(binHeader.Height),
		}
		if texture.Width <= 0 || texture.Height <= 0 || binHeader.NumPatches < 0 {
			logger.Printf("Err: texture %v has size %vx%v", texture.Name, texture.Width, texture.Height)
			continue
		}

		// Add patches to texture
		binPatches := make([]binPatch, binHeader.NumPatches)
		if err := binary.Read(entry, binary.LittleEndian, binPatches); err != nil {
			return nil, fmt.Errorf("%v: texture %v patches: %w", name, texture.Name, ErrTruncated)
		}
		texture.Patches = make([]Patch, len(binPatches))
		for pi, p := range binPatches {
			texture.Patches[pi] = Patch{
				XOffset:  int(p.XOffset),
				YOffset:  int(p.YOffset),
				PatchNum: int(p.PatchNameIdx),
			}
		}
		textures = append(textures, texture)
	}
	logger.Printf("Loaded %v textures from %v", len(textures), name)
	return textures, nil
}

// stitchTextures resolves patch references and builds every texture's composite picture.
// Unresolved patches leave their footprint transparent.
func (w *Archive) stitchTextures() {
	logger.Println("Stitching textures ...")
	for _, texture := range w.TexturesList {
		for i := range texture.Patches {
			p := &texture.Patches[i]
			if p.PatchNum < 0 || p.PatchNum >= len(w.patchNames) {
				logger.Printf("Warn: texture %v references patch number %v", texture.Name, p.PatchNum)
				continue
			}
			patchName := w.patchNames[p.PatchNum]
			picture, ok := w.Pictures[patchName]
			if !ok {
				logger.Printf("Warn: texture %v references missing patch %v", texture.Name, patchName)
				continue
			}
			p.Picture = picture
		}
		texture.stitch()
	}
}

// stitch paints patches onto a transparent canvas in listed order. Transparent source
// pixels never overwrite, so the last opaque patch wins.
func (t *Texture) stitch() {
	picture := newPicture(t.Name, t.Width, t.Height)
	for _, p := range t.Patches {
		if p.Picture == nil {
			continue
		}
		for px, column := range p.Picture.Columns {
			x := p.XOffset + px
			if x < 0 || x >= t.Width {
				continue
			}
			dst := picture.Columns[x]
			for py, c := range column {
				y := p.YOffset + py
				if c == TransparentIndex || y < 0 || y >= t.Height {
					continue
				}
				dst[y] = c
			}
		}
	}
	t.Picture = picture
}
