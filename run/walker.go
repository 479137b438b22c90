package run

import (
	"math"

	"github.com/b1naryth1ef/strata"
)

// walker moves the viewpoint along the configured waypoints, one step
// per frame. With no waypoints the viewpoint sits at the origin for a
// single frame.
type walker struct {
	pos    strata.Vec2
	points []strata.Vec2
	next   int
	step   float64
	moved  bool
}

func newWalker(waypoints []*strata.WaypointConfigBlock, step float64) *walker {
	points := make([]strata.Vec2, len(waypoints))
	for i, wp := range waypoints {
		points[i] = strata.Vec2{X: wp.X, Y: wp.Y}
	}

	w := &walker{
		points: points,
		step:   step,
	}
	if len(points) > 0 {
		w.pos = points[0]
		w.next = 1
	}
	return w
}

// Advance returns the viewpoint for the next frame, stepping toward the
// next waypoint.
func (w *walker) Advance() strata.Vec2 {
	if !w.moved {
		// first frame samples the starting position
		w.moved = true
		return w.pos
	}
	if w.next >= len(w.points) {
		return w.pos
	}

	target := w.points[w.next]
	dx := target.X - w.pos.X
	dy := target.Y - w.pos.Y
	dist := math.Hypot(dx, dy)

	if dist <= w.step {
		w.pos = target
		w.next++
	} else {
		w.pos.X += dx / dist * w.step
		w.pos.Y += dy / dist * w.step
	}
	return w.pos
}

// Done reports whether every waypoint has been visited.
func (w *walker) Done() bool {
	return w.moved && w.next >= len(w.points)
}
