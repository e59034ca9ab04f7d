// Package render draws a first-person view of a level without a depth buffer. Subsectors
// are visited front to back; walls are drawn column by column while a solid span list
// and per-column clip ranges record what is already covered; the floor and ceiling
// regions left open are collected as visplanes and filled once all walls are drawn.
package render

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/stuarthighley/doomview/wad"
)

// Renderer draws one level. It only reads the level and archive, so several renderers
// may share them.
type Renderer struct {
	cfg    Config
	proj   Projection
	level  *wad.Level
	colors [256]color.RGBA // Palette 0, resolved
}

// New prepares a renderer for level l, drawing with the archive's first palette.
func New(a *wad.Archive, l *wad.Level, cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if l == nil {
		return nil, errors.New("render: no level")
	}
	if len(a.Palettes) == 0 {
		return nil, errors.New("render: archive has no palette")
	}
	r := &Renderer{
		cfg:   cfg,
		proj:  NewProjection(cfg),
		level: l,
	}
	for i := range r.colors {
		r.colors[i], _ = a.Palettes[0].RGBA(byte(i))
	}
	reportMissingAssets(l)
	return r, nil
}

func (r *Renderer) Config() Config {
	return r.cfg
}

func (r *Renderer) Level() *wad.Level {
	return r.level
}

// Projection returns the screen mapping used for walls and planes.
func (r *Renderer) Projection() Projection {
	return r.proj
}

// NewFrame returns scratch state sized for this renderer.
func (r *Renderer) NewFrame() *Frame {
	return NewFrame(r.cfg)
}

// NewImage returns a surface of the configured size.
func (r *Renderer) NewImage() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, r.cfg.Width, r.cfg.Height))
}

// view is the camera pose with its basis precomputed.
type view struct {
	x, y, z        float64
	yaw            float64
	fwdX, fwdY     float64
	rightX, rightY float64
}

func newView(cam Camera) view {
	sin, cos := math.Sincos(cam.Yaw)
	return view{
		x:      cam.X,
		y:      cam.Y,
		z:      cam.Z,
		yaw:    cam.Yaw,
		fwdX:   cos,
		fwdY:   sin,
		rightX: sin,
		rightY: -cos,
	}
}

// Render draws the level as seen from cam into the top-left Width x Height pixels of dst.
// Pixels nothing covers are left transparent black. f is reset first; one made for a
// different Config is replaced.
func (r *Renderer) Render(f *Frame, cam Camera, dst *image.RGBA) {
	if dst.Rect.Dx() < r.cfg.Width || dst.Rect.Dy() < r.cfg.Height {
		logger.Printf("Err: surface %v is smaller than %vx%v", dst.Rect, r.cfg.Width, r.cfg.Height)
		return
	}
	if f.cfg != r.cfg {
		*f = *NewFrame(r.cfg)
	}
	f.Reset()
	for y := range r.cfg.Height {
		i := dst.PixOffset(dst.Rect.Min.X, dst.Rect.Min.Y+y)
		clear(dst.Pix[i : i+r.cfg.Width*4])
	}

	v := newView(cam)
	for ss := range Traverse(r.level, cam.X, cam.Y) {
		for i := range ss.LineSegments {
			r.drawSeg(f, &v, &ss.LineSegments[i], dst)
		}
	}
	for _, p := range f.Visplanes() {
		r.drawPlane(p, &v, dst)
	}
}

// plot writes one palette index. The transparency sentinel is never drawn.
func (r *Renderer) plot(dst *image.RGBA, x, y int, index byte) {
	if index == wad.TransparentIndex {
		return
	}
	c := r.colors[index]
	i := dst.PixOffset(dst.Rect.Min.X+x, dst.Rect.Min.Y+y)
	s := dst.Pix[i : i+4 : i+4]
	s[0], s[1], s[2], s[3] = c.R, c.G, c.B, c.A
}

// reportMissingAssets logs surfaces that will be left undrawn.
func reportMissingAssets(l *wad.Level) {
	missing := func(name string, resolved bool) bool {
		return !resolved && name != wad.NoTexture && name != ""
	}
	for i := range l.Sides {
		s := &l.Sides[i]
		for _, t := range []struct {
			name string
			tex  *wad.Texture
		}{{s.UpperTextureName, s.UpperTexture}, {s.MiddleTextureName, s.MiddleTexture}, {s.LowerTextureName, s.LowerTexture}} {
			if missing(t.name, t.tex != nil) {
				logger.Printf("Warn: %v sidedef %v: no texture %v", l.Name, i, t.name)
			}
		}
	}
	for i := range l.Sectors {
		s := &l.Sectors[i]
		if missing(s.FloorTextureName, s.FloorTexture != nil) {
			logger.Printf("Warn: %v sector %v: no flat %v", l.Name, i, s.FloorTextureName)
		}
		if missing(s.CeilingTextureName, s.CeilingTexture != nil) {
			logger.Printf("Warn: %v sector %v: no flat %v", l.Name, i, s.CeilingTextureName)
		}
	}
}
