package gen

import (
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"

	"github.com/b1naryth1ef/strata"
)

// heightStage fills the heightmap with fractal simplex noise sampled at
// world coordinates.
type heightStage struct {
	noise   opensimplex.Noise
	scale   float64
	octaves int
}

func newHeightStage(seed int64, opts Opts) *heightStage {
	return &heightStage{
		noise:   opensimplex.New(seed),
		scale:   opts.HeightScale,
		octaves: opts.Octaves,
	}
}

func (s *heightStage) Name() string {
	return "height"
}

func (s *heightStage) Apply(d *strata.ChunkData) {
	for x := 0; x < d.Size; x++ {
		for y := 0; y < d.Size; y++ {
			wx := float64(d.Coord.X + x)
			wy := float64(d.Coord.Y + y)

			total := 0.0
			amplitude := 1.0
			frequency := s.scale
			norm := 0.0
			for o := 0; o < s.octaves; o++ {
				total += s.noise.Eval2(wx*frequency, wy*frequency) * amplitude
				norm += amplitude
				amplitude /= 2
				frequency *= 2
			}

			// [-1, 1] -> [0, MaxHeight]
			h := (total/norm + 1) / 2 * strata.MaxHeight
			d.SetHeight(x, y, int(math.Round(h)))
		}
	}
}

// biomeStage classifies tiles by height band and a low-frequency perlin
// moisture field.
type biomeStage struct {
	moisture *perlin.Perlin
	scale    float64
	seaLevel float64
}

func newBiomeStage(seed int64, opts Opts) *biomeStage {
	return &biomeStage{
		moisture: perlin.NewPerlin(2, 2, 3, seed+1),
		scale:    opts.HeightScale / 4,
		seaLevel: opts.SeaLevel,
	}
}

func (s *biomeStage) Name() string {
	return "biome"
}

func (s *biomeStage) Apply(d *strata.ChunkData) {
	sea := int(s.seaLevel * strata.MaxHeight)
	shore := sea + strata.MaxHeight/16
	rockLine := strata.MaxHeight * 3 / 4
	snowLine := strata.MaxHeight * 7 / 8

	for x := 0; x < d.Size; x++ {
		for y := 0; y < d.Size; y++ {
			wx := float64(d.Coord.X + x)
			wy := float64(d.Coord.Y + y)

			h := d.Height(x, y)
			var kind strata.TileKind
			switch {
			case h <= shore:
				kind = strata.TileSand
			case h >= snowLine:
				kind = strata.TileSnow
			case h >= rockLine:
				kind = strata.TileRock
			default:
				if s.moisture.Noise2D(wx*s.scale, wy*s.scale) > 0.1 {
					kind = strata.TileForest
				} else {
					kind = strata.TileGrass
				}
			}
			d.SetTile(x, y, kind)
		}
	}
}

// waterStage floods everything below the sea level.
type waterStage struct {
	seaLevel float64
}

func newWaterStage(opts Opts) *waterStage {
	return &waterStage{seaLevel: opts.SeaLevel}
}

func (s *waterStage) Name() string {
	return "water"
}

func (s *waterStage) Apply(d *strata.ChunkData) {
	sea := int(s.seaLevel * strata.MaxHeight)
	for i, h := range d.Heights {
		if h < sea {
			d.Tiles[i] = strata.TileWater
		}
	}
}

// decorStage scatters trees over viable terrain using a position hash, so
// placement stays stable across re-generation with the same seed.
type decorStage struct {
	seed    int64
	density float64
}

func newDecorStage(seed int64, opts Opts) *decorStage {
	return &decorStage{
		seed:    seed,
		density: opts.TreeDensity,
	}
}

func (s *decorStage) Name() string {
	return "decor"
}

func (s *decorStage) Apply(d *strata.ChunkData) {
	if s.density <= 0 {
		return
	}
	// 53 bits keeps the density-to-threshold conversion exact
	threshold := uint64(s.density * float64(uint64(1)<<53))

	for x := 0; x < d.Size; x++ {
		for y := 0; y < d.Size; y++ {
			kind := d.Tile(x, y)
			if kind != strata.TileGrass && kind != strata.TileForest {
				continue
			}
			roll := hash2(s.seed, d.Coord.X+x, d.Coord.Y+y) >> 11
			if kind == strata.TileForest {
				// forests carry roughly triple the tree cover
				roll /= 3
			}
			if roll < threshold {
				d.SetTile(x, y, strata.TileTree)
			}
		}
	}
}

// hash2 mixes a seed and a world position into a uniform uint64.
func hash2(seed int64, x, y int) uint64 {
	h := uint64(seed) ^ uint64(x)*0x9e3779b97f4a7c15 ^ uint64(y)*0xc2b2ae3d27d4eb4f
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return h
}
