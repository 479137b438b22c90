package run

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/b1naryth1ef/strata"
	"github.com/b1naryth1ef/strata/gen"
)

type RunOpts struct {
	// Ticks caps the number of frames; 0 means run until the viewpoint
	// reaches the final waypoint.
	Ticks int
	// ForceClean removes tiles left over from previous sessions
	// instead of letting the new session paint over them.
	ForceClean bool
}

const defaultTickMillis = 16

func ensureDirectory(path string) error {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		err = os.Mkdir(path, os.ModePerm)
		if err != nil {
			return err
		}
	} else {
		return err
	}
	return nil
}

// Run executes one streaming session per configured output: the
// viewpoint walks the configured waypoints, newly covered chunks are
// generated one at a time, and the painted tiles plus session manifest
// land in the output directory.
func Run(config *strata.Config, opts RunOpts) error {
	rng, err := strata.NewRNGState(config.Seed)
	if err != nil {
		return err
	}

	for _, output := range config.Outputs {
		err := runSession(config, output, rng, opts)
		if err != nil {
			return fmt.Errorf("output %s: %v", output.Name, err)
		}
	}

	return nil
}

func runSession(config *strata.Config, output *strata.OutputConfigBlock, rng *strata.RNGState, opts RunOpts) error {
	err := ensureDirectory(output.Path)
	if err != nil {
		return err
	}
	tilePath := filepath.Join(output.Path, "tiles")
	err = ensureDirectory(tilePath)
	if err != nil {
		return err
	}
	if opts.ForceClean {
		err = cleanTiles(tilePath)
		if err != nil {
			return err
		}
	}

	painter := strata.NewChunkPainter(tilePath, config.ChunkSize, strata.NewPalette())
	pipeline := gen.NewPipeline(rng, gen.OptsFromConfig(config.Pipeline), painter)
	sched := strata.NewScheduler(pipeline, config.ChunkSize)
	tracker := strata.NewRegionTracker()
	registry := strata.NewRegistry()
	overlay := strata.NewOverlayRecorder()

	walker := newWalker(config.Waypoints, stepSize(config))

	tickMillis := config.TickMillis
	if tickMillis == 0 {
		tickMillis = defaultTickMillis
	}
	ticker := time.NewTicker(time.Duration(tickMillis) * time.Millisecond)
	defer ticker.Stop()

	start := time.Now()

	// Frames and completions funnel through one select so registry,
	// queue, and the busy flag are only ever touched from this
	// goroutine.
	for !walker.Done() {
		if opts.Ticks > 0 && overlay.Frames() >= opts.Ticks {
			break
		}
		select {
		case <-ticker.C:
			frame(config, tracker, registry, sched, overlay, walker.Advance())
		case ev := <-sched.Completions():
			sched.OnCompleted(ev)
		}
	}

	for !sched.Idle() {
		sched.OnCompleted(<-sched.Completions())
	}

	err = painter.Finalize()
	if err != nil {
		return err
	}

	meta := strata.SessionMeta{
		Seed:      rng.Seed(),
		ChunkSize: config.ChunkSize,
		Frames:    overlay.Frames(),
		Area:      overlay.Area(),
		Painted:   painter.Painted(),
		Failed:    sched.Failed(),
	}

	err = writeSessionMeta(output.Path, meta)
	if err != nil {
		return err
	}

	if output.IncludeStatic {
		err = writeStatic(output.Path, meta)
		if err != nil {
			return err
		}
	}

	log.Printf("[run] finished %s in %dms (%d chunks, %d failed)",
		output.Name, time.Since(start).Milliseconds(), len(meta.Painted), len(meta.Failed))

	return nil
}

// frame processes one tick: recompute the area of interest, register any
// newly covered coordinates, and ping the scheduler per discovery so the
// first chunk of a frame dispatches before enumeration finishes.
func frame(config *strata.Config, tracker *strata.RegionTracker, registry *strata.Registry, sched *strata.Scheduler, sink strata.VisualizationSink, viewpoint strata.Vec2) {
	area := tracker.ComputeArea(viewpoint, config.SpawnRange)
	coords := tracker.CoveredCoords(area, config.ChunkSize)
	sink.ObserveFrame(area, coords)

	for _, c := range coords {
		if registry.TryRegister(c) {
			sched.Enqueue(c)
			sched.TryDispatchNext()
		}
	}
}

// cleanTiles empties the tile directory so a clean session only contains
// chunks it painted itself.
func cleanTiles(path string) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		err = os.Remove(filepath.Join(path, entry.Name()))
		if err != nil {
			return err
		}
	}
	return nil
}

func stepSize(config *strata.Config) float64 {
	if config.StepSize > 0 {
		return config.StepSize
	}
	return float64(config.ChunkSize) / 2
}

func writeSessionMeta(path string, meta strata.SessionMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(path, "session.json"), data, os.ModePerm)
}

// Chunk generates and paints a single chunk, bypassing the streaming
// scheduler entirely.
func Chunk(config *strata.Config, coord strata.Coord, outPath string) error {
	rng, err := strata.NewRNGState(config.Seed)
	if err != nil {
		return err
	}

	err = ensureDirectory(outPath)
	if err != nil {
		return err
	}

	painter := strata.NewChunkPainter(outPath, config.ChunkSize, strata.NewPalette())
	pipeline := gen.NewPipeline(rng, gen.OptsFromConfig(config.Pipeline), painter)

	data, err := pipeline.Generate(config.ChunkSize, coord)
	if err != nil {
		return err
	}
	err = painter.PaintChunk(data)
	if err != nil {
		return err
	}
	return painter.Finalize()
}
