// Package winview shows rendered frames in a desktop window.
package winview

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/stuarthighley/doomview/render"
)

// Game renders one frame per Draw and moves the camera from held keys in Update.
type Game struct {
	r     *render.Renderer
	frame *render.Frame
	img   *image.RGBA
	cam   render.Camera
}

func New(r *render.Renderer, cam render.Camera) *Game {
	return &Game{
		r:     r,
		frame: r.NewFrame(),
		img:   r.NewImage(),
		cam:   cam,
	}
}

func (g *Game) Camera() render.Camera {
	return g.cam
}

var keyCommands = []struct {
	keys []ebiten.Key
	cmd  render.Command
}{
	{[]ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}, render.Forward},
	{[]ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}, render.Backward},
	{[]ebiten.Key{ebiten.KeyA}, render.StrafeLeft},
	{[]ebiten.Key{ebiten.KeyD}, render.StrafeRight},
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyQ}, render.TurnLeft},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyE}, render.TurnRight},
}

// pressedCommand collects the command for the keys currently held.
func pressedCommand(pressed func(ebiten.Key) bool) render.Command {
	var cmd render.Command
	for _, kc := range keyCommands {
		for _, k := range kc.keys {
			if pressed(k) {
				cmd |= kc.cmd
				break
			}
		}
	}
	return cmd
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.update(pressedCommand(ebiten.IsKeyPressed), 1/float64(ebiten.TPS()))
	return nil
}

func (g *Game) update(cmd render.Command, dt float64) {
	if cmd != 0 {
		g.cam = g.cam.Step(g.r.Level(), cmd, dt)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.r.Render(g.frame, g.cam, g.img)
	screen.WritePixels(g.img.Pix)
}

// Layout keeps the logical screen at the renderer's size; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	cfg := g.r.Config()
	return cfg.Width, cfg.Height
}

// Run opens a window scale times the frame size and blocks until it closes.
func Run(g *Game, title string, scale int) error {
	cfg := g.r.Config()
	ebiten.SetWindowSize(cfg.Width*scale, cfg.Height*scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
