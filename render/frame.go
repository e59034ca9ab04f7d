package render

import (
	"math"

	"github.com/stuarthighley/doomview/wad"
)

// Visplane is a floor or ceiling region left open by the walls of one seg fragment.
// Top and Bottom are indexed by screen column and hold the inclusive open rows for
// columns XStart to XEnd; a column with Top > Bottom is empty.
type Visplane struct {
	Height       float64 // World height of the plane
	FlatName     string
	Flat         *wad.Flat // nil when the name did not resolve
	XStart, XEnd int
	Top, Bottom  []int
}

// Rows returns the smallest and largest open row over the plane's columns. ok is false
// when every column is empty.
func (p *Visplane) Rows() (minRow, maxRow int, ok bool) {
	minRow, maxRow = math.MaxInt, -1
	for x := p.XStart; x <= p.XEnd; x++ {
		if p.Top[x] > p.Bottom[x] {
			continue
		}
		minRow = min(minRow, p.Top[x])
		maxRow = max(maxRow, p.Bottom[x])
	}
	return minRow, maxRow, maxRow >= 0
}

// Stats counts the work done for one frame.
type Stats struct {
	SegsConsidered int // Segs handed to the wall rasterizer
	SegsDrawn      int // Segs with at least one uncovered column
	UpperBands     int // Seg fragments with an upper band
	MiddleBands    int // Seg fragments drawn as solid walls
	LowerBands     int // Seg fragments with a lower band
	Visplanes      int
}

// Frame is the per-frame scratch state of the renderer: the solid span list, the
// per-column open row ranges and the visplanes. It is reset at the start of every frame
// and its storage is reused, so a frame performs no allocation once warmed up.
// A Frame must not be shared between concurrent renders.
type Frame struct {
	cfg     Config
	spans   SpanList
	top     []int
	bottom  []int
	planes  []*Visplane // Pool, first nplanes in use
	nplanes int
	pieces  []Span
	stats   Stats
}

func NewFrame(cfg Config) *Frame {
	f := &Frame{
		cfg:    cfg,
		top:    make([]int, cfg.Width),
		bottom: make([]int, cfg.Width),
	}
	f.Reset()
	return f
}

// Reset opens every column to the full screen height and drops all spans and visplanes.
func (f *Frame) Reset() {
	f.spans.Reset()
	for x := range f.top {
		f.top[x] = 0
		f.bottom[x] = f.cfg.Height - 1
	}
	f.nplanes = 0
	f.stats = Stats{}
}

// AddRegion returns a visplane for columns [xStart, xEnd] with every column empty.
// The caller fills in Top and Bottom.
func (f *Frame) AddRegion(height float64, flatName string, flat *wad.Flat, xStart, xEnd int) *Visplane {
	if f.nplanes == len(f.planes) {
		f.planes = append(f.planes, &Visplane{
			Top:    make([]int, f.cfg.Width),
			Bottom: make([]int, f.cfg.Width),
		})
	}
	p := f.planes[f.nplanes]
	f.nplanes++
	f.stats.Visplanes++

	p.Height, p.FlatName, p.Flat = height, flatName, flat
	p.XStart, p.XEnd = xStart, xEnd
	for x := xStart; x <= xEnd; x++ {
		p.Top[x], p.Bottom[x] = 1, 0
	}
	return p
}

// Visplanes returns the frame's visplanes in creation order.
func (f *Frame) Visplanes() []*Visplane {
	return f.planes[:f.nplanes]
}

// SolidSpans returns the columns covered by solid walls.
func (f *Frame) SolidSpans() []Span {
	return f.spans.Spans()
}

// Open returns the inclusive range of rows still open in column x.
func (f *Frame) Open(x int) (top, bottom int) {
	return f.top[x], f.bottom[x]
}

func (f *Frame) Stats() Stats {
	return f.stats
}

func (f *Frame) close(x int) {
	f.top[x], f.bottom[x] = f.cfg.Height, -1
}
