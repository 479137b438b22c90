package gen

import (
	"errors"
	"reflect"
	"testing"

	"github.com/b1naryth1ef/strata"
)

type captureSink struct {
	chunks []*strata.ChunkData
	err    error
}

func (s *captureSink) PaintChunk(d *strata.ChunkData) error {
	if s.err != nil {
		return s.err
	}
	s.chunks = append(s.chunks, d)
	return nil
}

func fixedRNG(t *testing.T, seed int64) *strata.RNGState {
	t.Helper()
	rng, err := strata.NewRNGState(&strata.SeedConfigBlock{Mode: strata.SeedModeFixed, Value: seed})
	if err != nil {
		t.Fatalf("rng state: %v", err)
	}
	return rng
}

func TestPipelineStageOrder(t *testing.T) {
	p := NewPipeline(fixedRNG(t, 1), DefaultOpts(), &captureSink{})

	want := []string{"height", "biome", "water", "decor"}
	if got := p.StageNames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("stage order: got %v want %v", got, want)
	}
}

func TestPipelineDeterministic(t *testing.T) {
	coord := strata.Coord{X: -50, Y: 75}

	a, err := NewPipeline(fixedRNG(t, 42), DefaultOpts(), &captureSink{}).Generate(25, coord)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := NewPipeline(fixedRNG(t, 42), DefaultOpts(), &captureSink{}).Generate(25, coord)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed and coord produced different chunks")
	}
}

func TestPipelineSeedChangesOutput(t *testing.T) {
	coord := strata.Coord{X: 0, Y: 0}

	a, err := NewPipeline(fixedRNG(t, 1), DefaultOpts(), &captureSink{}).Generate(25, coord)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := NewPipeline(fixedRNG(t, 2), DefaultOpts(), &captureSink{}).Generate(25, coord)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if reflect.DeepEqual(a.Heights, b.Heights) {
		t.Fatalf("different seeds produced identical heightmaps")
	}
}

func TestPipelineHeightsInRange(t *testing.T) {
	d, err := NewPipeline(fixedRNG(t, 7), DefaultOpts(), &captureSink{}).Generate(32, strata.Coord{X: 320, Y: -640})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	for i, h := range d.Heights {
		if h < 0 || h > strata.MaxHeight {
			t.Fatalf("height[%d] = %d outside [0, %d]", i, h, strata.MaxHeight)
		}
	}
}

func TestPipelineFloodsBelowSeaLevel(t *testing.T) {
	opts := DefaultOpts()
	d, err := NewPipeline(fixedRNG(t, 7), opts, &captureSink{}).Generate(32, strata.Coord{X: 0, Y: 0})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	sea := int(opts.SeaLevel * strata.MaxHeight)
	for i, h := range d.Heights {
		if h < sea && d.Tiles[i] != strata.TileWater {
			t.Fatalf("tile[%d] below sea level is %v", i, d.Tiles[i])
		}
		if h >= sea && d.Tiles[i] == strata.TileWater {
			t.Fatalf("tile[%d] above sea level flooded", i)
		}
	}
}

func TestPipelineSeamlessAcrossChunks(t *testing.T) {
	p := NewPipeline(fixedRNG(t, 99), DefaultOpts(), &captureSink{})

	left, err := p.Generate(16, strata.Coord{X: -16, Y: 0})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	right, err := p.Generate(16, strata.Coord{X: 0, Y: 0})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// adjacent world columns sample the same noise; the seam height
	// gradient must look like any interior gradient, not a cliff
	for y := 0; y < 16; y++ {
		edge := left.Height(15, y)
		interior := left.Height(14, y)
		across := right.Height(0, y)

		seamDelta := across - edge
		interiorDelta := edge - interior
		if d := seamDelta - interiorDelta; d > 30 || d < -30 {
			t.Fatalf("row %d: seam gradient %d vs interior gradient %d", y, seamDelta, interiorDelta)
		}
	}
}

func TestPipelineRunDeliversOneCompletion(t *testing.T) {
	sink := &captureSink{}
	p := NewPipeline(fixedRNG(t, 3), DefaultOpts(), sink)

	done := make(chan strata.Completion, 1)
	coord := strata.Coord{X: 25, Y: 25}
	p.Run(25, coord, done)

	ev := <-done
	if ev.Coord != coord {
		t.Fatalf("completion coord: got %v want %v", ev.Coord, coord)
	}
	if ev.Err != nil {
		t.Fatalf("completion err: %v", ev.Err)
	}
	if len(sink.chunks) != 1 {
		t.Fatalf("sink received %d chunks, want 1", len(sink.chunks))
	}

	select {
	case extra := <-done:
		t.Fatalf("unexpected second completion %v", extra)
	default:
	}
}

func TestPipelineRunReportsSinkFailure(t *testing.T) {
	p := NewPipeline(fixedRNG(t, 3), DefaultOpts(), &captureSink{err: errors.New("disk full")})

	done := make(chan strata.Completion, 1)
	p.Run(25, strata.Coord{X: 0, Y: 0}, done)

	ev := <-done
	if ev.Err == nil {
		t.Fatalf("sink failure not surfaced in completion")
	}
}

func TestOptsFromConfig(t *testing.T) {
	opts := OptsFromConfig(nil)
	if opts != DefaultOpts() {
		t.Fatalf("nil block: got %+v want defaults", opts)
	}

	sea := 0.5
	octaves := 2
	opts = OptsFromConfig(&strata.PipelineConfigBlock{SeaLevel: &sea, Octaves: &octaves})
	if opts.SeaLevel != 0.5 || opts.Octaves != 2 {
		t.Fatalf("overrides not applied: %+v", opts)
	}
	if opts.HeightScale != DefaultOpts().HeightScale {
		t.Fatalf("unset field lost its default: %+v", opts)
	}
}

func TestOptsFromConfigHonorsExplicitZero(t *testing.T) {
	zero := 0.0
	opts := OptsFromConfig(&strata.PipelineConfigBlock{SeaLevel: &zero, TreeDensity: &zero})
	if opts.SeaLevel != 0 {
		t.Fatalf("explicit sea_level = 0 overridden to %v", opts.SeaLevel)
	}
	if opts.TreeDensity != 0 {
		t.Fatalf("explicit tree_density = 0 overridden to %v", opts.TreeDensity)
	}
}

func TestPipelineZeroTreeDensityScattersNothing(t *testing.T) {
	opts := DefaultOpts()
	opts.TreeDensity = 0

	d, err := NewPipeline(fixedRNG(t, 7), opts, &captureSink{}).Generate(32, strata.Coord{X: 0, Y: 0})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for i, kind := range d.Tiles {
		if kind == strata.TileTree {
			t.Fatalf("tile[%d] is a tree with tree_density = 0", i)
		}
	}
}
