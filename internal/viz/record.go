package viz

import (
	"image"
	"image/gif"
	"os"

	"github.com/san-kum/platesim/internal/plate"
)

// frameColors is the number of palette entries in a recorded frame.
const frameColors = 64

// GridFrame rasterises the grid with scale×scale pixels per cell. Colours
// are normalised to [lo, hi] so every frame of a recording shares a scale.
func GridFrame(g *plate.Grid, p Palette, scale int, lo, hi float64) *image.Paletted {
	if scale < 1 {
		scale = 1
	}
	pal := p.ImagePalette(frameColors)
	size := g.N * scale
	img := image.NewPaletted(image.Rect(0, 0, size, size), pal)

	for r := 0; r < g.N; r++ {
		for c := 0; c < g.N; c++ {
			idx := uint8(Normalize(g.At(r, c), lo, hi)*float64(frameColors-1) + 0.5)
			for py := 0; py < scale; py++ {
				for px := 0; px < scale; px++ {
					img.SetColorIndex(c*scale+px, r*scale+py, idx)
				}
			}
		}
	}
	return img
}

// SaveGIF writes frames as a looping animation.
func SaveGIF(path string, frames []*image.Paletted, delay int) error {
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}
