package strata

import (
	"image/color"
	"log"
	"sort"

	"github.com/muesli/gamut"
)

// MaxHeight is the top of the generated height range; heights are always
// in [0, MaxHeight].
const MaxHeight = 255

// Palette maps tile kinds to colors. Land kinds get generated pastel
// colors with a deterministic kind→slot assignment; water keeps a fixed
// tint so maps stay readable across sessions.
type Palette struct {
	colors map[TileKind]color.Color
}

var paletteOverrides = map[TileKind]color.Color{
	TileWater: color.RGBA{R: 0x3f, G: 0x76, B: 0xe4, A: 255},
	TileSnow:  color.RGBA{R: 0xee, G: 0xf2, B: 0xf7, A: 255},
}

func NewPalette() *Palette {
	names := []string{}
	byName := map[string]TileKind{}
	for kind, name := range tileKindNames {
		if _, ok := paletteOverrides[kind]; ok {
			continue
		}
		names = append(names, name)
		byName[name] = kind
	}
	sort.Strings(names)

	generated, err := gamut.Generate(len(names), gamut.PastelGenerator{})
	if err != nil {
		log.Panicf("Failed to generate tile color palette: %v", err)
	}

	colors := make(map[TileKind]color.Color)
	for idx, name := range names {
		colors[byName[name]] = generated[idx]
	}
	for kind, c := range paletteOverrides {
		colors[kind] = c
	}

	return &Palette{colors: colors}
}

// Color returns the tile color shaded by height: high ground renders
// brighter, low ground darker. Water ignores height.
func (p *Palette) Color(kind TileKind, height int) color.Color {
	base, ok := p.colors[kind]
	if !ok {
		log.Panicf("unmapped tile kind %v", kind)
	}
	if kind == TileWater {
		return base
	}

	t := clamp(float64(height)/MaxHeight, 0, 1)
	if t < 0.5 {
		return gamut.Darker(base, (0.5-t)*0.4)
	}
	return gamut.Lighter(base, (t-0.5)*0.4)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	} else if v > max {
		return max
	} else {
		return v
	}
}
