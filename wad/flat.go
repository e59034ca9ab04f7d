package wad

import "strings"

// A flat is an image that is drawn on the floors and ceilings of sectors.
// Flats are a raw collection of pixel values with no offset or other dimension information;
// each flat is a named lump of 4096 bytes representing a 64x64 square.
// Flats are always drawn aligned to a fixed grid. This ensures that floor and ceiling textures
// flow smoothly from sector to sector.
type Flat struct {
	Name  string // Flat name and index into flats map
	Index int    // Index into flats list
	Data  []byte // Row-major
}

const FlatWidth, FlatHeight = 64, 64

// At samples the flat at integer world coordinates, wrapping on the 64 unit grid.
func (f *Flat) At(x, y int) byte {
	return f.Data[(y&(FlatHeight-1))*FlatWidth+x&(FlatWidth-1)]
}

// readFlat copies a lump inside the flat region. Lumps of the wrong size are logged and skipped.
func (w *Archive) readFlat(lumpInfo *LumpInfo) {
	if lumpInfo.Size == 0 {
		return
	}
	if lumpInfo.Size < FlatWidth*FlatHeight {
		logger.Printf("Err: flat %v is %v bytes", lumpInfo.Name, lumpInfo.Size)
		return
	}
	flat := &Flat{
		Name:  lumpInfo.Name,
		Index: len(w.FlatsList),
		Data:  make([]byte, FlatWidth*FlatHeight),
	}
	copy(flat.Data, w.lump(lumpInfo))
	w.Flats[strings.ToUpper(flat.Name)] = flat
	w.FlatsList = append(w.FlatsList, flat)
}
