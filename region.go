package strata

import "math"

// Coord identifies the origin of a chunk on a grid whose cell size equals
// the configured chunk size. It is the chunk's unique key.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type Vec2 struct {
	X float64
	Y float64
}

// Rect is the axis-aligned area of interest around the viewpoint.
type Rect struct {
	XMin   float64 `json:"xMin"`
	YMin   float64 `json:"yMin"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) XMax() float64 {
	return r.XMin + r.Width
}

func (r Rect) YMax() float64 {
	return r.YMin + r.Height
}

// RegionTracker recomputes the area of interest every frame and
// enumerates the grid-aligned coordinates it covers. It holds only
// derived state; enumeration never touches the registry or queue.
type RegionTracker struct {
	area Rect
}

func NewRegionTracker() *RegionTracker {
	return &RegionTracker{}
}

// ComputeArea derives the square area of interest spanning spawnRange in
// every direction from the viewpoint. The result is overwritten on each
// call and kept for observers.
func (rt *RegionTracker) ComputeArea(viewpoint Vec2, spawnRange float64) Rect {
	rt.area = Rect{
		XMin:   viewpoint.X - spawnRange,
		YMin:   viewpoint.Y - spawnRange,
		Width:  spawnRange * 2,
		Height: spawnRange * 2,
	}
	return rt.area
}

// Area returns the most recently computed area of interest.
func (rt *RegionTracker) Area() Rect {
	return rt.area
}

// CoveredCoords enumerates the chunk coordinates whose centers fall
// inside the area. The grid is offset by half a chunk so that chunk
// centers, not edges, align with the area boundary. Idempotent: the same
// area always yields the same coordinates in the same order.
func (rt *RegionTracker) CoveredCoords(area Rect, chunkSize int) []Coord {
	half := float64(chunkSize) / 2

	x0 := gridStart(area.XMin, half, chunkSize)
	y0 := gridStart(area.YMin, half, chunkSize)

	var coords []Coord
	for x := x0; float64(x) < area.XMax()-half; x += chunkSize {
		for y := y0; float64(y) < area.YMax()-half; y += chunkSize {
			coords = append(coords, Coord{X: x, Y: y})
		}
	}
	return coords
}

// gridStart finds the first multiple of chunkSize on an axis whose chunk
// center is inside the bound. Rounding toward negative infinity can land
// one full chunk below the boundary on the negative side; step back in.
func gridStart(min, half float64, chunkSize int) int {
	start := roundToClosestMultiple(min-half, chunkSize)
	if float64(start)+half < min {
		start += chunkSize
	}
	return start
}

// roundToClosestMultiple rounds v outward to a multiple of size:
// positive values round up, negative values round toward negative
// infinity. This keeps the grid consistent across the origin instead of
// collapsing toward zero. Exact multiples are returned unchanged.
func roundToClosestMultiple(v float64, size int) int {
	s := float64(size)
	if v < 0 {
		return int(math.Floor(v/s) * s)
	}
	return int(math.Ceil(v/s) * s)
}
