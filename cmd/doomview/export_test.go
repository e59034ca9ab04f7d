package main

import (
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stuarthighley/doomview/internal/wadtest"
	"github.com/stuarthighley/doomview/wad"
)

func TestExportAssets(t *testing.T) {
	w, err := wad.Decode(wadtest.Archive(wadtest.SquareRoom()))
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if err := exportAssets(w, dir); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"WALL", "STEP", "HOLE", "FLOOR0", "FLOOR1", "CEIL"} {
		if _, err := os.Stat(filepath.Join(dir, name+".png")); err != nil {
			t.Errorf("expected %v.png: %v", name, err)
		}
	}

	f, err := os.Open(filepath.Join(dir, "WALL.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("expected 64x64, got %v", b)
	}
	r, _, _, a := img.At(3, 5).RGBA()
	if want := uint32(wadtest.WallPixel(3, 5)); r>>8 != want || a>>8 != 0xff {
		t.Errorf("expected gray %d at (3, 5), got %d alpha %d", want, r>>8, a>>8)
	}
}

func TestStartCameraOverrides(t *testing.T) {
	w, err := wad.Decode(wadtest.Archive(wadtest.StepRooms(24, "FLOOR1")))
	if err != nil {
		t.Fatal(err)
	}
	l, _ := w.Level("E1M1")
	cam := startCamera(l, math.NaN(), math.NaN(), math.NaN())
	if cam.X != 32 || cam.Y != 64 || cam.Z != 41 {
		t.Errorf("expected player start, got %+v", cam)
	}
	cam = startCamera(l, 200, math.NaN(), 180)
	if cam.X != 200 || cam.Y != 64 || cam.Z != 65 {
		t.Errorf("expected override at x 200 over the raised floor, got %+v", cam)
	}
}
