package strata

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

type Config struct {
	ChunkSize  int     `hcl:"chunk_size"`
	SpawnRange float64 `hcl:"spawn_range"`
	StepSize   float64 `hcl:"step_size,optional"`
	TickMillis int     `hcl:"tick_millis,optional"`

	Seed      *SeedConfigBlock       `hcl:"seed,block"`
	Pipeline  *PipelineConfigBlock   `hcl:"pipeline,block"`
	Waypoints []*WaypointConfigBlock `hcl:"waypoint,block"`
	Outputs   []*OutputConfigBlock   `hcl:"output,block"`
}

type SeedConfigBlock struct {
	Mode  string `hcl:"mode"`
	Value int64  `hcl:"value,optional"`
	GUID  string `hcl:"guid,optional"`
}

// Pointer fields distinguish "not set" from explicit zero values, like a
// flat sea_level = 0 world or tree_density = 0.
type PipelineConfigBlock struct {
	SeaLevel    *float64 `hcl:"sea_level,optional"`
	HeightScale *float64 `hcl:"height_scale,optional"`
	Octaves     *int     `hcl:"octaves,optional"`
	TreeDensity *float64 `hcl:"tree_density,optional"`
}

type WaypointConfigBlock struct {
	X float64 `hcl:"x"`
	Y float64 `hcl:"y"`
}

type OutputConfigBlock struct {
	Name          string `hcl:"name,label"`
	Path          string `hcl:"path"`
	IncludeStatic bool   `hcl:"include_static,optional"`
}

func newHCLEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{},
		Functions: map[string]function.Function{},
	}
}

func LoadConfig(path string) (*Config, error) {
	var cfg Config
	evalCtx := newHCLEvalContext()
	err := hclsimple.DecodeFile(path, evalCtx, &cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the streamer cannot run with. Grid
// enumeration is undefined for a non-positive chunk size, so that is
// refused up front instead of special-cased at runtime.
func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.SpawnRange < 0 {
		return fmt.Errorf("spawn_range must not be negative, got %v", c.SpawnRange)
	}
	if c.StepSize < 0 {
		return fmt.Errorf("step_size must not be negative, got %v", c.StepSize)
	}
	if c.TickMillis < 0 {
		return fmt.Errorf("tick_millis must not be negative, got %d", c.TickMillis)
	}
	if c.Seed != nil {
		if _, err := NewRNGState(c.Seed); err != nil {
			return err
		}
	}
	if len(c.Outputs) == 0 {
		return fmt.Errorf("at least one output block is required")
	}
	return nil
}
