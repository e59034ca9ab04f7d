// Package termview shows rendered frames in a truecolor terminal. Each character cell
// carries two pixels: an upper half block whose foreground is the top pixel and whose
// background is the bottom one.
package termview

import (
	"image"

	"github.com/gdamore/tcell/v2"

	"github.com/stuarthighley/doomview/render"
)

// keyStep is how far one key press moves the camera, in seconds of movement.
// Terminals report presses and repeats but no releases.
const keyStep = 1.0 / 15

const halfBlock = '▀'

type Viewer struct {
	screen tcell.Screen
	r      *render.Renderer
	frame  *render.Frame
	img    *image.RGBA
	cam    render.Camera
}

// New returns a viewer drawing to an initialised screen.
func New(screen tcell.Screen, r *render.Renderer, cam render.Camera) *Viewer {
	return &Viewer{
		screen: screen,
		r:      r,
		frame:  r.NewFrame(),
		img:    r.NewImage(),
		cam:    cam,
	}
}

func (v *Viewer) Camera() render.Camera {
	return v.cam
}

// Draw renders the current pose and shows it scaled to the whole screen.
func (v *Viewer) Draw() {
	v.r.Render(v.frame, v.cam, v.img)

	cols, rows := v.screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	b := v.img.Bounds()
	for y := range rows {
		top := b.Min.Y + 2*y*b.Dy()/(2*rows)
		bottom := b.Min.Y + (2*y+1)*b.Dy()/(2*rows)
		for x := range cols {
			sx := b.Min.X + x*b.Dx()/cols
			style := tcell.StyleDefault.
				Foreground(cellColor(v.img, sx, top)).
				Background(cellColor(v.img, sx, bottom))
			v.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	v.screen.Show()
}

func cellColor(img *image.RGBA, x, y int) tcell.Color {
	c := img.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// keyCommand maps a key to a movement command. quit is set for the exit keys.
func keyCommand(key tcell.Key, r rune) (cmd render.Command, quit bool) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return 0, true
	case tcell.KeyUp:
		return render.Forward, false
	case tcell.KeyDown:
		return render.Backward, false
	case tcell.KeyLeft:
		return render.TurnLeft, false
	case tcell.KeyRight:
		return render.TurnRight, false
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return 0, true
		case 'w', 'W':
			return render.Forward, false
		case 's', 'S':
			return render.Backward, false
		case 'a', 'A':
			return render.StrafeLeft, false
		case 'd', 'D':
			return render.StrafeRight, false
		case ',':
			return render.TurnLeft, false
		case '.':
			return render.TurnRight, false
		}
	}
	return 0, false
}

// HandleKey moves the camera for one key press. It returns false when the key asks to quit.
func (v *Viewer) HandleKey(ev *tcell.EventKey) bool {
	cmd, quit := keyCommand(ev.Key(), ev.Rune())
	if quit {
		return false
	}
	v.step(cmd)
	return true
}

func (v *Viewer) step(cmd render.Command) {
	if cmd != 0 {
		v.cam = v.cam.Step(v.r.Level(), cmd, keyStep)
	}
}

// Run draws and handles events until a quit key is pressed or the screen is finalised.
func (v *Viewer) Run() {
	v.Draw()
	for {
		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			v.screen.Sync()
			v.Draw()
		case *tcell.EventKey:
			if !v.HandleKey(ev) {
				return
			}
			v.Draw()
		}
	}
}
