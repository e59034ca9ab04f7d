// Command doomview lists, exports and renders levels from a WAD archive.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/stuarthighley/doomview/render"
	"github.com/stuarthighley/doomview/termview"
	"github.com/stuarthighley/doomview/wad"
	"github.com/stuarthighley/doomview/winview"
)

func main() {
	wadPath := flag.String("wad", "DOOM1.WAD", "WAD archive to load")
	mapName := flag.String("map", "E1M1", "level to render")
	width := flag.Int("width", 320, "frame width in pixels")
	height := flag.Int("height", 200, "frame height in pixels")
	fov := flag.Float64("fov", 90, "horizontal field of view in degrees")
	x := flag.Float64("x", math.NaN(), "camera x (default: player 1 start)")
	y := flag.Float64("y", math.NaN(), "camera y (default: player 1 start)")
	angle := flag.Float64("angle", math.NaN(), "camera yaw in degrees (default: player 1 start)")
	pngPath := flag.String("png", "", "render one frame to this PNG file")
	assetDir := flag.String("textures", "", "export stitched textures and flats as PNG into this directory")
	tree := flag.Bool("tree", false, "print the level's BSP tree")
	list := flag.Bool("list", false, "list levels, textures and flats")
	term := flag.Bool("term", false, "view the level in the terminal")
	window := flag.Bool("window", false, "view the level in a window")
	scale := flag.Int("scale", 3, "window scale factor")
	verbose := flag.Bool("v", false, "log loading progress to stderr")
	flag.Parse()

	if *verbose {
		logger := log.New(os.Stderr, "", log.LstdFlags)
		wad.SetLogger(logger)
		render.SetLogger(logger)
	}

	w, err := wad.Open(*wadPath)
	if err != nil {
		log.Fatalln(err)
	}

	if *list {
		listArchive(w)
	}
	if *assetDir != "" {
		if err := exportAssets(w, *assetDir); err != nil {
			log.Fatalln(err)
		}
	}

	l, err := w.Level(*mapName)
	if err != nil {
		log.Fatalln(err)
	}
	if *tree {
		if err := wad.PrintTree(os.Stdout, l); err != nil {
			log.Fatalln(err)
		}
	}
	if *pngPath == "" && !*term && !*window {
		return
	}

	r, err := render.New(w, l, render.ConfigFor(*width, *height, *fov))
	if err != nil {
		log.Fatalln(err)
	}
	cam := startCamera(l, *x, *y, *angle)

	if *pngPath != "" {
		img := r.NewImage()
		f := r.NewFrame()
		r.Render(f, cam, img)
		if err := writePNG(*pngPath, img); err != nil {
			log.Fatalln(err)
		}
		st := f.Stats()
		fmt.Printf("%v: %v segs drawn of %v, %v visplanes\n", *pngPath, st.SegsDrawn, st.SegsConsidered, st.Visplanes)
	}

	switch {
	case *term:
		screen, err := tcell.NewScreen()
		if err != nil {
			log.Fatalln(err)
		}
		if err := screen.Init(); err != nil {
			log.Fatalln(err)
		}
		defer screen.Fini()
		termview.New(screen, r, cam).Run()
	case *window:
		if err := winview.Run(winview.New(r, cam), "doomview "+l.Name, *scale); err != nil {
			log.Fatalln(err)
		}
	}
}

// startCamera uses player 1's start for any coordinate left unset.
func startCamera(l *wad.Level, x, y, angle float64) render.Camera {
	cam := render.StartCamera(l)
	if !math.IsNaN(x) {
		cam.X = x
	}
	if !math.IsNaN(y) {
		cam.Y = y
	}
	if !math.IsNaN(angle) {
		cam.Yaw = angle * math.Pi / 180
	}
	return render.CameraAt(l, cam.X, cam.Y, cam.Yaw)
}

func listArchive(w *wad.Archive) {
	fmt.Println("Archive:", w.Kind)
	for _, name := range w.LevelNames() {
		l := w.Levels[name]
		fmt.Printf("Level: %v, %v sectors, %v segs, %v nodes\n", name, len(l.Sectors), len(l.LineSegments), len(l.Nodes))
	}
	for i, t := range w.TexturesList {
		fmt.Println("Texture:", i, t.Name, t.Width, t.Height)
	}
	for i, f := range w.FlatsList {
		fmt.Println("Flat:", i, f.Name)
	}
}
