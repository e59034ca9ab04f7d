package wad

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// The doom picture (image) format. Sometimes called a patch, but this code considers a patch to
// be a parent entity that makes up part of a texture, and points to a picture
type Picture struct {
	Name                  string // Useful for debugging
	Width, Height         int
	LeftOffset, TopOffset int
	Columns               []Column
}

// Rather than implement column posts, just set column to transparent and fill in post data.
type Column []byte

type binPatchImageHeader struct {
	Width, Height         uint16
	LeftOffset, TopOffset int16
}

// newPicture allocates a picture with every pixel set to TransparentIndex.
func newPicture(name string, width, height int) *Picture {
	columns := make([]Column, width)
	for i := range columns {
		columns[i] = make(Column, height)
		for j := range columns[i] {
			columns[i][j] = TransparentIndex
		}
	}
	return &Picture{Name: name, Width: width, Height: height, Columns: columns}
}

// At returns the pixel at column x, row y, both wrapped into range.
func (p *Picture) At(x, y int) byte {
	return p.Columns[wrap(x, p.Width)][wrap(y, p.Height)]
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// readPatch decodes a lump inside the patch region. Malformed patches are logged and skipped.
func (w *Archive) readPatch(lumpInfo *LumpInfo) {
	if lumpInfo.Size == 0 {
		return
	}
	picture, err := decodePicture(lumpInfo.Name, w.lump(lumpInfo))
	if err != nil {
		logger.Printf("Err: %v", err)
		return
	}
	w.Pictures[strings.ToUpper(lumpInfo.Name)] = picture
}

// decodePicture expands column posts into a dense, transparency-filled picture.
func decodePicture(name string, lump []byte) (*Picture, error) {
	// Read patch lump header
	reader := bytes.NewReader(lump)
	var header binPatchImageHeader
	if err := binary.Read(reader, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("picture %v header: %w", name, ErrTruncated)
	}
	picture := newPicture(name, int(header.Width), int(header.Height))
	picture.LeftOffset = int(header.LeftOffset)
	picture.TopOffset = int(header.TopOffset)

	// Read column offsets
	offsets := make([]uint32, header.Width)
	if err := binary.Read(reader, binary.LittleEndian, offsets); err != nil {
		return nil, fmt.Errorf("picture %v column offsets: %w", name, ErrTruncated)
	}

	// For each column offset, expand out the posts into columns
	for columnIndex, offset := range offsets {
		column := picture.Columns[columnIndex]
		pos := int(offset)
		for {
			if pos >= len(lump) {
				return nil, fmt.Errorf("picture %v column %v: %w", name, columnIndex, ErrTruncated)
			}
			topDelta := int(lump[pos])
			if topDelta == 255 {
				break
			}
			if pos+3 > len(lump) {
				return nil, fmt.Errorf("picture %v column %v: %w", name, columnIndex, ErrTruncated)
			}
			numPixels := int(lump[pos+1])
			pos += 3 // Delta, length and padding
			if pos+numPixels+1 > len(lump) {
				return nil, fmt.Errorf("picture %v column %v: %w", name, columnIndex, ErrTruncated)
			}
			for i := range numPixels {
				if y := topDelta + i; y < len(column) {
					column[y] = lump[pos+i]
				}
			}
			pos += numPixels + 1 // Pixels and trailing padding
		}
	}
	return picture, nil
}
