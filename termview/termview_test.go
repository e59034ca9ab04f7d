package termview

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/stuarthighley/doomview/internal/wadtest"
	"github.com/stuarthighley/doomview/render"
	"github.com/stuarthighley/doomview/wad"
)

func newViewer(t *testing.T) (*Viewer, tcell.SimulationScreen) {
	t.Helper()
	a, err := wad.Decode(wadtest.Archive(wadtest.StepRooms(24, "FLOOR1")))
	if err != nil {
		t.Fatal(err)
	}
	l, _ := a.Level("E1M1")
	r, err := render.New(a, l, render.ConfigFor(80, 48, 90))
	if err != nil {
		t.Fatal(err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(40, 24)
	return New(screen, r, render.StartCamera(l)), screen
}

func TestDrawFillsScreen(t *testing.T) {
	v, screen := newViewer(t)
	v.Draw()

	cells, width, height := screen.GetContents()
	if width != 40 || height != 24 {
		t.Fatalf("expected 40x24 screen, got %dx%d", width, height)
	}
	for i, cell := range cells {
		if len(cell.Runes) == 0 || cell.Runes[0] != halfBlock {
			t.Fatalf("cell %d: expected half block, got %q", i, cell.Runes)
		}
	}

	// Bottom row: the near floor, index 100 in a gray palette
	floor := tcell.NewRGBColor(wadtest.Floor0Index, wadtest.Floor0Index, wadtest.Floor0Index)
	want := tcell.StyleDefault.Foreground(floor).Background(floor)
	if got := cells[(height-1)*width+width/2].Style; got != want {
		t.Errorf("expected floor colors at the bottom centre, got %v", got)
	}
}

func TestKeyCommand(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		cmd  render.Command
		quit bool
	}{
		{tcell.KeyUp, 0, render.Forward, false},
		{tcell.KeyDown, 0, render.Backward, false},
		{tcell.KeyLeft, 0, render.TurnLeft, false},
		{tcell.KeyRight, 0, render.TurnRight, false},
		{tcell.KeyRune, 'w', render.Forward, false},
		{tcell.KeyRune, 'a', render.StrafeLeft, false},
		{tcell.KeyRune, 'D', render.StrafeRight, false},
		{tcell.KeyRune, 'x', 0, false},
		{tcell.KeyRune, 'q', 0, true},
		{tcell.KeyEscape, 0, 0, true},
	}
	for _, test := range tests {
		cmd, quit := keyCommand(test.key, test.r)
		if cmd != test.cmd || quit != test.quit {
			t.Errorf("key %v %q: expected (%v, %v), got (%v, %v)", test.key, test.r, test.cmd, test.quit, cmd, quit)
		}
	}
}

func TestStepMovesCamera(t *testing.T) {
	v, _ := newViewer(t)
	start := v.Camera()
	v.step(render.Forward)
	if got := v.Camera(); got.X <= start.X || got.Y != start.Y {
		t.Errorf("expected to move east from %+v, got %+v", start, got)
	}
	v.step(0)
	v.step(render.TurnLeft)
	if got := v.Camera(); got.Yaw <= start.Yaw {
		t.Errorf("expected yaw to increase, got %v", got.Yaw)
	}
}
