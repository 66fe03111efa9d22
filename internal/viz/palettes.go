package viz

import (
	"image/color"
	"math"
)

// Palette is a colour ramp from cold to hot, as hex stops.
type Palette struct {
	Name  string
	Stops []string
}

var (
	PaletteThermal = Palette{
		Name:  "thermal",
		Stops: []string{"#000004", "#3b0f70", "#8c2981", "#de4968", "#fe9f6d", "#fcfdbf"},
	}

	PaletteOcean = Palette{
		Name:  "ocean",
		Stops: []string{"#001a33", "#0077be", "#00a8cc", "#7fdbda", "#e0f0ff"},
	}

	PaletteDiverging = Palette{
		Name:  "diverging",
		Stops: []string{"#3b4cc0", "#8db0fe", "#dddddd", "#f49a7b", "#b40426"},
	}

	PaletteMono = Palette{
		Name:  "mono",
		Stops: []string{"#000000", "#ffffff"},
	}

	// Default palette
	CurrentPalette = PaletteThermal

	Palettes = []Palette{
		PaletteThermal,
		PaletteOcean,
		PaletteDiverging,
		PaletteMono,
	}
)

// GetPalette returns a palette by name, falling back to thermal.
func GetPalette(name string) Palette {
	for _, p := range Palettes {
		if p.Name == name {
			return p
		}
	}
	return PaletteThermal
}

func PaletteNames() []string {
	names := make([]string, len(Palettes))
	for i, p := range Palettes {
		names[i] = p.Name
	}
	return names
}

// NextPalette returns the palette after p in Palettes, wrapping around.
func NextPalette(p Palette) Palette {
	for i, q := range Palettes {
		if q.Name == p.Name {
			return Palettes[(i+1)%len(Palettes)]
		}
	}
	return Palettes[0]
}

// Normalize maps v from [lo, hi] onto [0, 1]. A flat range maps to 0.5.
func Normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0.5
	}
	return math.Max(0, math.Min(1, (v-lo)/(hi-lo)))
}

// RGB interpolates the palette at t in [0, 1].
func (p Palette) RGB(t float64) (r, g, b int) {
	if len(p.Stops) == 0 {
		return 0, 0, 0
	}
	if len(p.Stops) == 1 {
		return parseHex(p.Stops[0])
	}
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(len(p.Stops)-1)
	i := int(pos)
	if i >= len(p.Stops)-1 {
		i = len(p.Stops) - 2
	}
	frac := pos - float64(i)

	sr, sg, sb := parseHex(p.Stops[i])
	er, eg, eb := parseHex(p.Stops[i+1])
	r = int(math.Round(float64(sr) + frac*float64(er-sr)))
	g = int(math.Round(float64(sg) + frac*float64(eg-sg)))
	b = int(math.Round(float64(sb) + frac*float64(eb-sb)))
	return r, g, b
}

func (p Palette) Hex(t float64) string {
	return hexColor(p.RGB(t))
}

func (p Palette) Color(t float64) color.RGBA {
	r, g, b := p.RGB(t)
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
}

// ImagePalette samples n evenly spaced colours, for paletted images.
func (p Palette) ImagePalette(n int) color.Palette {
	if n < 2 {
		n = 2
	}
	pal := make(color.Palette, n)
	for i := range pal {
		pal[i] = p.Color(float64(i) / float64(n-1))
	}
	return pal
}
