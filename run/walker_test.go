package run

import (
	"math"
	"testing"

	"github.com/b1naryth1ef/strata"
)

func TestWalkerStationaryWithoutWaypoints(t *testing.T) {
	w := newWalker(nil, 10)

	if w.Done() {
		t.Fatalf("walker done before the first frame")
	}
	if pos := w.Advance(); pos != (strata.Vec2{}) {
		t.Fatalf("origin frame: got %+v", pos)
	}
	if !w.Done() {
		t.Fatalf("walker not done after the single origin frame")
	}
}

func TestWalkerStepsBetweenWaypoints(t *testing.T) {
	waypoints := []*strata.WaypointConfigBlock{
		{X: 0, Y: 0},
		{X: 30, Y: 0},
	}
	w := newWalker(waypoints, 10)

	if pos := w.Advance(); pos != (strata.Vec2{X: 0, Y: 0}) {
		t.Fatalf("start frame: got %+v", pos)
	}

	steps := 0
	for !w.Done() {
		pos := w.Advance()
		steps++
		if steps > 10 {
			t.Fatalf("walker never reached the final waypoint, at %+v", pos)
		}
	}

	if w.pos != (strata.Vec2{X: 30, Y: 0}) {
		t.Fatalf("final position: got %+v want (30, 0)", w.pos)
	}
	if steps != 3 {
		t.Fatalf("steps: got %d want 3", steps)
	}
}

func TestWalkerDiagonalStepLength(t *testing.T) {
	waypoints := []*strata.WaypointConfigBlock{
		{X: 0, Y: 0},
		{X: 100, Y: 100},
	}
	w := newWalker(waypoints, 5)

	w.Advance()
	pos := w.Advance()
	if d := math.Hypot(pos.X, pos.Y); math.Abs(d-5) > 1e-9 {
		t.Fatalf("step length: got %v want 5", d)
	}
}
