// Package gen is the terrain generation pipeline: an ordered chain of
// stages that turns a seeded RNG state, a chunk size, and a chunk
// coordinate into tile data. Stages sample noise in world space, so a
// chunk's content is independent of the order chunks are generated in.
package gen

import (
	"fmt"

	"github.com/b1naryth1ef/strata"
)

// Stage is one pass over a chunk under construction.
type Stage interface {
	Name() string
	Apply(d *strata.ChunkData)
}

type Opts struct {
	// SeaLevel is the water line as a fraction of the height range.
	SeaLevel float64
	// HeightScale is the base noise frequency per world unit.
	HeightScale float64
	// Octaves is the number of fractal height octaves.
	Octaves int
	// TreeDensity is the per-tile tree probability on viable terrain.
	TreeDensity float64
}

func DefaultOpts() Opts {
	return Opts{
		SeaLevel:    0.3,
		HeightScale: 0.008,
		Octaves:     4,
		TreeDensity: 0.08,
	}
}

// OptsFromConfig overlays the configured pipeline block onto defaults.
// Unset fields keep their default; an explicit zero is honored.
func OptsFromConfig(block *strata.PipelineConfigBlock) Opts {
	opts := DefaultOpts()
	if block == nil {
		return opts
	}
	if block.SeaLevel != nil {
		opts.SeaLevel = *block.SeaLevel
	}
	if block.HeightScale != nil {
		opts.HeightScale = *block.HeightScale
	}
	if block.Octaves != nil {
		opts.Octaves = *block.Octaves
	}
	if block.TreeDensity != nil {
		opts.TreeDensity = *block.TreeDensity
	}
	return opts
}

// Pipeline runs the stage chain for one chunk per call and writes the
// result into the sink. It satisfies the scheduler's PipelineRunner
// contract: every Run delivers exactly one completion event.
type Pipeline struct {
	stages []Stage
	sink   strata.ChunkSink
}

func NewPipeline(rng *strata.RNGState, opts Opts, sink strata.ChunkSink) *Pipeline {
	return &Pipeline{
		stages: []Stage{
			newHeightStage(rng.Seed(), opts),
			newBiomeStage(rng.Seed(), opts),
			newWaterStage(opts),
			newDecorStage(rng.Seed(), opts),
		},
		sink: sink,
	}
}

func (p *Pipeline) StageNames() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Run starts an asynchronous generation run. It returns immediately; the
// single completion event arrives on done when the chunk has been
// generated and handed to the sink.
func (p *Pipeline) Run(chunkSize int, coord strata.Coord, done chan<- strata.Completion) {
	go func() {
		done <- strata.Completion{
			Coord: coord,
			Err:   p.generate(chunkSize, coord),
		}
	}()
}

// Generate runs the stage chain synchronously. The CLI's one-shot chunk
// command uses this directly, bypassing the scheduler.
func (p *Pipeline) Generate(chunkSize int, coord strata.Coord) (*strata.ChunkData, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("invalid chunk size %d", chunkSize)
	}
	d := strata.NewChunkData(coord, chunkSize)
	for _, stage := range p.stages {
		stage.Apply(d)
	}
	return d, nil
}

func (p *Pipeline) generate(chunkSize int, coord strata.Coord) error {
	d, err := p.Generate(chunkSize, coord)
	if err != nil {
		return err
	}
	if err := p.sink.PaintChunk(d); err != nil {
		return fmt.Errorf("sink rejected chunk (%d, %d): %v", coord.X, coord.Y, err)
	}
	return nil
}
