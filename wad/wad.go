// Package wad provides access to Doom's data archives also known as WAD files.
// The file format is documented in The Unofficial DOOM Specs:
// http://www.gamers.org/dhs/helpdocs/dmsp1666.html
//
// An archive is decoded once, in full, into read-only tables: palettes, patch
// pictures, stitched wall textures, flats and every level it contains.

package wad

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

var (
	ErrBadMagic     = errors.New("wad: unrecognized archive magic")
	ErrLumpOrder    = errors.New("wad: unexpected level lump")
	ErrPaletteSize  = errors.New("wad: palette lump size is not a multiple of 768")
	ErrTruncated    = errors.New("wad: truncated data")
	ErrBadReference = errors.New("wad: index out of range")
)

// Archive magic tags, read big-endian.
const (
	iwadMagic = 0x49574144 // "IWAD"
	pwadMagic = 0x50574144 // "PWAD"
)

// Archive is Doom's data archive that contains graphics and level data, fully decoded.
// All fields are read-only once Decode returns.
type Archive struct {
	Kind         string // IWAD or PWAD
	data         []byte
	lumpInfos    []LumpInfo
	Palettes     []Palette
	patchNames   []string
	Pictures     map[string]*Picture
	Textures     map[string]*Texture
	TexturesList []*Texture
	Flats        map[string]*Flat
	FlatsList    []*Flat
	Levels       map[string]*Level
}

type binHeader struct {
	Magic        [4]byte
	NumLumps     int32
	InfoTableOfs int32
}

type binLumpInfo struct {
	Filepos int32
	Size    int32
	Name    String8
}

type LumpInfo struct {
	Name    string
	Filepos int
	Size    int
}

// WAD eight-character string type. Null-terminated for short strings.
type String8 [8]byte

// String converts String8 to string
func (s String8) String() string {
	i := bytes.IndexByte(s[:], 0)
	if i == -1 {
		i = len(s)
	}
	return strings.TrimSpace(string(s[0:i]))
}

// Level markers: Doom 1 episodes and Doom 2 maps.
var levelName = regexp.MustCompile(`^(E[0-9]M[0-9]|MAP[0-9][0-9])$`)

type region int

const (
	regionNone region = iota
	regionPatches
	regionFlats
)

// Open reads the named file and decodes it.
func Open(filename string) (*Archive, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Decode parses a complete archive held in memory. On error no partial archive is returned.
func Decode(data []byte) (*Archive, error) {
	logger.Println("Start reading WAD")

	// Read header
	var header binHeader
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("header: %w", ErrTruncated)
	}
	switch binary.BigEndian.Uint32(header.Magic[:]) {
	case iwadMagic, pwadMagic:
	default:
		return nil, fmt.Errorf("%w: %q", ErrBadMagic, header.Magic[:])
	}

	w := &Archive{
		Kind:     string(header.Magic[:]),
		data:     data,
		Pictures: make(map[string]*Picture),
		Textures: make(map[string]*Texture),
		Flats:    make(map[string]*Flat),
		Levels:   make(map[string]*Level),
	}

	// Read info tables
	if err := w.readInfoTables(int(header.NumLumps), int(header.InfoTableOfs)); err != nil {
		return nil, err
	}

	// Decode every lump in directory order
	if err := w.readLumps(); err != nil {
		return nil, err
	}

	// Textures reference patches by PNAMES position, so stitch once everything is in
	w.stitchTextures()

	// Levels may precede the assets they name
	for _, name := range w.LevelNames() {
		w.bindLevelAssets(w.Levels[name])
	}

	logger.Printf("Loaded %v palettes, %v textures, %v flats, %v levels",
		len(w.Palettes), len(w.Textures), len(w.Flats), len(w.Levels))
	return w, nil
}

func (w *Archive) readInfoTables(numLumps, infoTableOfs int) error {
	const entrySize = 16
	if numLumps < 0 || infoTableOfs < 0 || infoTableOfs+numLumps*entrySize > len(w.data) {
		return fmt.Errorf("lump directory: %w", ErrTruncated)
	}
	binInfos := make([]binLumpInfo, numLumps)
	reader := bytes.NewReader(w.data[infoTableOfs:])
	if err := binary.Read(reader, binary.LittleEndian, binInfos); err != nil {
		return fmt.Errorf("lump directory: %w", ErrTruncated)
	}
	lumpInfos := make([]LumpInfo, numLumps)
	for i, binInfo := range binInfos {
		lumpInfo := LumpInfo{binInfo.Name.String(), int(binInfo.Filepos), int(binInfo.Size)}
		if lumpInfo.Filepos < 0 || lumpInfo.Size < 0 || lumpInfo.Filepos+lumpInfo.Size > len(w.data) {
			return fmt.Errorf("lump %v: %w", lumpInfo.Name, ErrTruncated)
		}
		lumpInfos[i] = lumpInfo
	}
	w.lumpInfos = lumpInfos
	return nil
}

// readLumps dispatches each directory entry by region marker or name.
func (w *Archive) readLumps() error {
	reg := regionNone
	for i := 0; i < len(w.lumpInfos); i++ {
		lumpInfo := &w.lumpInfos[i]
		name := lumpInfo.Name

		switch name {
		case "P_START", "PP_START":
			reg = regionPatches
			continue
		case "F_START", "FF_START":
			reg = regionFlats
			continue
		case "P_END", "PP_END", "F_END", "FF_END":
			reg = regionNone
			continue
		}

		switch {
		case reg != regionNone && isMarker(name):
			// Nested sub-markers such as P1_START carry no data
		case reg == regionPatches:
			w.readPatch(lumpInfo)
		case reg == regionFlats:
			w.readFlat(lumpInfo)
		case levelName.MatchString(name):
			level, err := w.readLevel(i)
			if err != nil {
				return err
			}
			w.Levels[name] = level
			i = w.levelEnd(i)
		default:
			if err := w.readNamedLump(lumpInfo); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Archive) readNamedLump(lumpInfo *LumpInfo) error {
	switch lumpInfo.Name {
	case "PLAYPAL":
		palettes, err := readPlaypal(w.lump(lumpInfo))
		if err != nil {
			return err
		}
		w.Palettes = append(w.Palettes, palettes...)
	case "PNAMES":
		patchNames, err := readPatchNames(w.lump(lumpInfo))
		if err != nil {
			return err
		}
		w.patchNames = patchNames
	case "TEXTURE1", "TEXTURE2":
		textures, err := readTextureDefs(lumpInfo.Name, w.lump(lumpInfo))
		if err != nil {
			return err
		}
		for _, t := range textures {
			t.Index = len(w.TexturesList)
			w.TexturesList = append(w.TexturesList, t)
			w.Textures[strings.ToUpper(t.Name)] = t
		}
	}
	return nil
}

func isMarker(name string) bool {
	return strings.HasSuffix(name, "_START") || strings.HasSuffix(name, "_END")
}

// lump returns a lump's bytes. Bounds were checked by readInfoTables.
func (w *Archive) lump(lumpInfo *LumpInfo) []byte {
	return w.data[lumpInfo.Filepos : lumpInfo.Filepos+lumpInfo.Size]
}

// LevelNames returns a slice of level names found in the WAD archive.
func (w *Archive) LevelNames() []string {
	result := make([]string, 0, len(w.Levels))
	for name := range w.Levels {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Level returns a decoded level by marker name.
func (w *Archive) Level(name string) (*Level, error) {
	level, ok := w.Levels[name]
	if !ok {
		return nil, fmt.Errorf("level %v not found", name)
	}
	return level, nil
}

// Texture looks up a stitched wall texture, ignoring case. The '-' sentinel never resolves.
func (w *Archive) Texture(name string) (*Texture, bool) {
	t, ok := w.Textures[strings.ToUpper(name)]
	return t, ok
}

// Flat looks up a flat by lump name, ignoring case.
func (w *Archive) Flat(name string) (*Flat, bool) {
	f, ok := w.Flats[strings.ToUpper(name)]
	return f, ok
}
