package winview

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/stuarthighley/doomview/internal/wadtest"
	"github.com/stuarthighley/doomview/render"
	"github.com/stuarthighley/doomview/wad"
)

func held(keys ...ebiten.Key) func(ebiten.Key) bool {
	return func(k ebiten.Key) bool {
		for _, h := range keys {
			if h == k {
				return true
			}
		}
		return false
	}
}

func TestPressedCommand(t *testing.T) {
	tests := []struct {
		keys []ebiten.Key
		want render.Command
	}{
		{nil, 0},
		{[]ebiten.Key{ebiten.KeyW}, render.Forward},
		{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, render.Forward},
		{[]ebiten.Key{ebiten.KeyS, ebiten.KeyD}, render.Backward | render.StrafeRight},
		{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, render.TurnLeft | render.StrafeLeft},
		{[]ebiten.Key{ebiten.KeyE}, render.TurnRight},
	}
	for _, test := range tests {
		if got := pressedCommand(held(test.keys...)); got != test.want {
			t.Errorf("keys %v: expected %v, got %v", test.keys, test.want, got)
		}
	}
}

func TestUpdateAndLayout(t *testing.T) {
	a, err := wad.Decode(wadtest.Archive(wadtest.StepRooms(24, "FLOOR1")))
	if err != nil {
		t.Fatal(err)
	}
	l, _ := a.Level("E1M1")
	r, err := render.New(a, l, render.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	g := New(r, render.StartCamera(l))

	if w, h := g.Layout(1280, 800); w != 320 || h != 200 {
		t.Errorf("expected logical size 320x200, got %dx%d", w, h)
	}

	start := g.Camera()
	g.update(0, 1.0/60)
	if g.Camera() != start {
		t.Errorf("expected no movement without keys")
	}
	g.update(render.Forward, 1.0/60)
	if got := g.Camera(); got.X <= start.X {
		t.Errorf("expected forward movement, got %+v", got)
	}
}
