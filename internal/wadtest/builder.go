// Package wadtest builds small archives in memory for tests.
package wadtest

import (
	"bytes"
	"encoding/binary"
	"math"
)

type lump struct {
	name string
	data []byte
}

// Builder accumulates lumps in directory order.
type Builder struct {
	Magic string
	lumps []lump
}

func New() *Builder {
	return &Builder{Magic: "IWAD"}
}

// Add appends a lump. A nil data slice adds a zero-size marker.
func (b *Builder) Add(name string, data []byte) *Builder {
	b.lumps = append(b.lumps, lump{name, data})
	return b
}

// Remove drops the last lump called name.
func (b *Builder) Remove(name string) *Builder {
	for i := len(b.lumps) - 1; i >= 0; i-- {
		if b.lumps[i].name == name {
			b.lumps = append(b.lumps[:i], b.lumps[i+1:]...)
			break
		}
	}
	return b
}

// Bytes lays out the header, lump data and directory.
func (b *Builder) Bytes() []byte {
	var body bytes.Buffer
	offsets := make([]int32, len(b.lumps))
	const headerSize = 12
	for i, l := range b.lumps {
		offsets[i] = int32(headerSize + body.Len())
		body.Write(l.data)
	}

	var out bytes.Buffer
	out.WriteString(b.Magic)
	write(&out, int32(len(b.lumps)))
	write(&out, int32(headerSize+body.Len()))
	out.Write(body.Bytes())
	for i, l := range b.lumps {
		write(&out, offsets[i])
		write(&out, int32(len(l.data)))
		write(&out, name8(l.name))
	}
	return out.Bytes()
}

func write(buf *bytes.Buffer, v any) {
	if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
		panic(err)
	}
}

func name8(s string) [8]byte {
	var n [8]byte
	copy(n[:], s)
	return n
}

// GrayPalette returns one palette where index i is (i, i, i).
func GrayPalette() []byte {
	data := make([]byte, 768)
	for i := range 256 {
		data[i*3], data[i*3+1], data[i*3+2] = byte(i), byte(i), byte(i)
	}
	return data
}

// Picture encodes a patch lump. Pixels equal to 247 are left out of the posts.
func Picture(width, height int, pixel func(x, y int) byte) []byte {
	columns := make([][]byte, width)
	for x := range width {
		var col bytes.Buffer
		for y := 0; y < height; {
			if pixel(x, y) == 247 {
				y++
				continue
			}
			start := y
			var run []byte
			for y < height && pixel(x, y) != 247 && len(run) < 128 {
				run = append(run, pixel(x, y))
				y++
			}
			col.WriteByte(byte(start))
			col.WriteByte(byte(len(run)))
			col.WriteByte(0)
			col.Write(run)
			col.WriteByte(0)
		}
		col.WriteByte(255)
		columns[x] = col.Bytes()
	}

	var out bytes.Buffer
	write(&out, [4]int16{int16(width), int16(height), 0, 0})
	offset := 8 + 4*width
	for _, c := range columns {
		write(&out, uint32(offset))
		offset += len(c)
	}
	for _, c := range columns {
		out.Write(c)
	}
	return out.Bytes()
}

// Flat returns a 64x64 flat with every pixel set to index.
func Flat(index byte) []byte {
	return bytes.Repeat([]byte{index}, 64*64)
}

// PNames encodes a PNAMES lump.
func PNames(names ...string) []byte {
	var out bytes.Buffer
	write(&out, int32(len(names)))
	for _, n := range names {
		write(&out, name8(n))
	}
	return out.Bytes()
}

type TexturePatch struct {
	X, Y  int
	Patch int // PNAMES index
}

type TextureDef struct {
	Name          string
	Width, Height int
	Patches       []TexturePatch
}

// Textures encodes a TEXTURE1/TEXTURE2 lump.
func Textures(defs ...TextureDef) []byte {
	entries := make([][]byte, len(defs))
	for i, d := range defs {
		var e bytes.Buffer
		write(&e, name8(d.Name))
		write(&e, int32(0))
		write(&e, int16(d.Width))
		write(&e, int16(d.Height))
		write(&e, int32(0))
		write(&e, int16(len(d.Patches)))
		for _, p := range d.Patches {
			write(&e, [5]int16{int16(p.X), int16(p.Y), int16(p.Patch), 1, 0})
		}
		entries[i] = e.Bytes()
	}

	var out bytes.Buffer
	write(&out, int32(len(defs)))
	offset := 4 + 4*len(defs)
	for _, e := range entries {
		write(&out, int32(offset))
		offset += len(e)
	}
	for _, e := range entries {
		out.Write(e)
	}
	return out.Bytes()
}

type Vertex struct{ X, Y int }

type Line struct {
	V1, V2      int
	Flags       int
	Front, Back int // -1 for none
}

type Side struct {
	XOffset, YOffset     int
	Upper, Lower, Middle string
	Sector               int
}

type Seg struct {
	V1, V2 int
	Line   int
	Side   int // 0 front, 1 back
	Offset int
}

type SubSector struct {
	Count, First int
}

type Node struct {
	X, Y, DX, DY int
	Right, Left  int // raw child references
}

type Sector struct {
	Floor, Ceiling int
	FloorTex       string
	CeilingTex     string
}

type Thing struct {
	X, Y, Angle, Type int
}

// Map is level geometry in editor units.
type Map struct {
	Things     []Thing
	Vertexes   []Vertex
	Lines      []Line
	Sides      []Side
	Segs       []Seg
	SubSectors []SubSector
	Nodes      []Node
	Sectors    []Sector
}

// SubSectorRef tags a subsector index as a node child.
func SubSectorRef(i int) int {
	return int(int16(uint16(i | 0x8000)))
}

// AddTo appends the level marker and its ten lumps.
func (m *Map) AddTo(b *Builder, name string) *Builder {
	var things, lines, sides, vertexes, segs, ssectors, nodes, sectors bytes.Buffer
	for _, t := range m.Things {
		write(&things, [5]int16{int16(t.X), int16(t.Y), int16(t.Angle), int16(t.Type), 7})
	}
	for _, l := range m.Lines {
		write(&lines, [7]int16{int16(l.V1), int16(l.V2), int16(l.Flags), 0, 0, int16(l.Front), int16(l.Back)})
	}
	for _, s := range m.Sides {
		write(&sides, [2]int16{int16(s.XOffset), int16(s.YOffset)})
		write(&sides, name8(s.Upper))
		write(&sides, name8(s.Lower))
		write(&sides, name8(s.Middle))
		write(&sides, int16(s.Sector))
	}
	for _, v := range m.Vertexes {
		write(&vertexes, [2]int16{int16(v.X), int16(v.Y)})
	}
	for _, s := range m.Segs {
		v1, v2 := m.Vertexes[s.V1], m.Vertexes[s.V2]
		angle := math.Atan2(float64(v2.Y-v1.Y), float64(v2.X-v1.X))
		if angle < 0 {
			angle += 2 * math.Pi
		}
		bam := uint16(int(math.Round(angle/(2*math.Pi)*65536)) & 0xffff)
		write(&segs, [2]int16{int16(s.V1), int16(s.V2)})
		write(&segs, bam)
		write(&segs, [3]int16{int16(s.Line), int16(s.Side), int16(s.Offset)})
	}
	for _, s := range m.SubSectors {
		write(&ssectors, [2]int16{int16(s.Count), int16(s.First)})
	}
	for _, n := range m.Nodes {
		write(&nodes, [4]int16{int16(n.X), int16(n.Y), int16(n.DX), int16(n.DY)})
		write(&nodes, [8]int16{})
		write(&nodes, [2]int16{int16(n.Right), int16(n.Left)})
	}
	for _, s := range m.Sectors {
		write(&sectors, [2]int16{int16(s.Floor), int16(s.Ceiling)})
		write(&sectors, name8(s.FloorTex))
		write(&sectors, name8(s.CeilingTex))
		write(&sectors, [3]int16{160, 0, 0})
	}

	b.Add(name, nil)
	b.Add("THINGS", things.Bytes())
	b.Add("LINEDEFS", lines.Bytes())
	b.Add("SIDEDEFS", sides.Bytes())
	b.Add("VERTEXES", vertexes.Bytes())
	b.Add("SEGS", segs.Bytes())
	b.Add("SSECTORS", ssectors.Bytes())
	b.Add("NODES", nodes.Bytes())
	b.Add("SECTORS", sectors.Bytes())
	b.Add("REJECT", nil)
	b.Add("BLOCKMAP", nil)
	return b
}
