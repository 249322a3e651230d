// Command nesview is a minimal demo host: it loads a ROM from argv[1] and
// drives the scheduler one frame per Ebitengine Update, blitting the
// resulting pixel buffer into a window. Controller input, audio, sprite
// rendering and any persisted settings are out of scope for the core and
// are not implemented here either; this exists only to exercise the
// scheduler end to end, not as a usable frontend.
package main

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/rng999/nesgo"
)

const (
	screenWidth  = 256
	screenHeight = 240
	windowScale  = 3
)

type game struct {
	console *nes.Nes
	image   *ebiten.Image
	rgba    *image.RGBA
}

func newGame(romPath string) (*game, error) {
	console, err := nes.Load(romPath, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", romPath, err)
	}
	return &game{
		console: console,
		image:   ebiten.NewImage(screenWidth, screenHeight),
		rgba:    image.NewRGBA(image.Rect(0, 0, screenWidth, screenHeight)),
	}, nil
}

func (g *game) Update() error {
	frame := g.console.RunFrame()
	for y := 0; y < screenHeight; y++ {
		for x := 0; x < screenWidth; x++ {
			px := frame[y*screenWidth+x]
			g.rgba.SetRGBA(x, y, color.RGBA{
				R: uint8(px >> 16),
				G: uint8(px >> 8),
				B: uint8(px),
				A: 0xFF,
			})
		}
	}
	g.image.WritePixels(g.rgba.Pix)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(windowScale, windowScale)
	screen.DrawImage(g.image, op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth * windowScale, screenHeight * windowScale
}

func main() {
	defer glog.Flush()
	if len(os.Args) < 2 {
		glog.Exitf("usage: %s <rom.nes>", os.Args[0])
	}

	g, err := newGame(os.Args[1])
	if err != nil {
		glog.Exitf("nesview: %v", err)
	}

	ebiten.SetWindowSize(screenWidth*windowScale, screenHeight*windowScale)
	ebiten.SetWindowTitle("nesview")
	if err := ebiten.RunGame(g); err != nil {
		glog.Exitf("nesview: %v", err)
	}
}
