package circular

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/orbit/pkg/geom"
)

func TestPlaceChildrenOnCircleEmpty(t *testing.T) {
	fan := PlaceChildrenOnCircle(nil, 0, 270, geom.NewSector(0, 1), r2.Vec{}, DefaultParams(), nil)
	if len(fan.Children) != 0 || fan.Radius != 270 || fan.Attempts != 0 {
		t.Errorf("fan = %+v, want empty at 270", fan)
	}
}

func TestPlaceChildrenOnCircleSingleChildFollowsParent(t *testing.T) {
	parentAngle := 1.1
	fan := PlaceChildrenOnCircle([]string{"c"}, parentAngle, 400, geom.NewSector(0.2, 2), r2.Vec{}, DefaultParams(), nil)

	if len(fan.Children) != 1 {
		t.Fatalf("children = %d, want 1", len(fan.Children))
	}
	c := fan.Children[0]
	if !approx(c.Angle, parentAngle, 1e-12) {
		t.Errorf("angle = %v, want parent angle %v", c.Angle, parentAngle)
	}
	if !approx(geom.AngleOf(r2.Vec{}, c.Vec()), parentAngle, 1e-9) {
		t.Errorf("position angle = %v, want %v", geom.AngleOf(r2.Vec{}, c.Vec()), parentAngle)
	}
}

func TestPlaceChildrenOnCircleSlots(t *testing.T) {
	sector := geom.NewSector(0, math.Pi/2)
	for _, clockwise := range []bool{true, false} {
		params := DefaultParams()
		params.Clockwise = clockwise
		fan := PlaceChildrenOnCircle([]string{"a", "b"}, 0, 500, sector, r2.Vec{}, params, nil)

		want := []float64{math.Pi / 6, math.Pi / 3}
		if !clockwise {
			want = []float64{math.Pi / 3, math.Pi / 6}
		}
		for i, c := range fan.Children {
			if !approx(c.Angle, want[i], 1e-12) {
				t.Errorf("clockwise=%v: child %d angle = %v, want %v", clockwise, i, c.Angle, want[i])
			}
			if r := geom.RadiusOf(r2.Vec{}, c.Vec()); !approx(r, 500, 1e-9) {
				t.Errorf("child %d radius = %v, want 500", i, r)
			}
		}
		if fan.Attempts != 1 || fan.Collided {
			t.Errorf("clockwise=%v: attempts=%d collided=%v, want a clean first attempt", clockwise, fan.Attempts, fan.Collided)
		}
	}
}

func TestPlaceChildrenOnCircleGrowsRadius(t *testing.T) {
	params := DefaultParams()
	// A blocker straight below the center; the child needs 50px of
	// vertical clearance (height 40 + spacing 10), reached after three steps.
	occupied := map[string]r2.Vec{"blocker": {X: 0, Y: 300}}
	fan := PlaceChildrenOnCircle([]string{"c"}, math.Pi/2, 300, geom.NewSector(0, math.Pi), r2.Vec{}, params, occupied)

	if fan.Collided {
		t.Fatalf("fan still collides: %+v", fan)
	}
	if fan.Attempts != 4 {
		t.Errorf("Attempts = %d, want 4", fan.Attempts)
	}
	if want := 300 + 3*params.LevelSpacing*RadiusGrowth; !approx(fan.Radius, want, 1e-9) {
		t.Errorf("Radius = %v, want %v", fan.Radius, want)
	}
}

func TestPlaceChildrenOnCircleGivesUp(t *testing.T) {
	params := DefaultParams()
	// Horizontal clearance needs 130px, more than four growth steps provide.
	occupied := map[string]r2.Vec{"blocker": {X: 300, Y: 0}}
	fan := PlaceChildrenOnCircle([]string{"c"}, 0, 300, geom.NewSector(-1, 2), r2.Vec{}, params, occupied)

	if !fan.Collided {
		t.Error("Collided = false, want true")
	}
	if fan.Attempts != CollisionAttempts {
		t.Errorf("Attempts = %d, want %d", fan.Attempts, CollisionAttempts)
	}
	if want := 300 + float64(CollisionAttempts-1)*params.LevelSpacing*RadiusGrowth; !approx(fan.Radius, want, 1e-9) {
		t.Errorf("Radius = %v, want %v", fan.Radius, want)
	}
	if len(fan.Children) != 1 {
		t.Error("best-effort fan should still place the child")
	}
}

func TestPlaceChildrenOnCircleIgnoresOwnStalePositions(t *testing.T) {
	occupied := map[string]r2.Vec{"c": {X: 500, Y: 0}}
	fan := PlaceChildrenOnCircle([]string{"c"}, 0, 500, geom.NewSector(-1, 2), r2.Vec{}, DefaultParams(), occupied)
	if fan.Collided || fan.Attempts != 1 {
		t.Errorf("fan = %+v, want first attempt without collision", fan)
	}
}

func TestPlaceChildrenOnCircleSiblingSpacing(t *testing.T) {
	params := DefaultParams()
	for n := 1; n <= 20; n++ {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			children := ids(n)
			fan := PlaceChildrenOnCircle(children, 0, 270, geom.NewSector(0, geom.FullTurn), r2.Vec{}, params, nil)
			if len(fan.Children) != n {
				t.Fatalf("placed %d children, want %d", len(fan.Children), n)
			}
			if fan.Radius < 270 {
				t.Errorf("Radius = %v, shrank below the requested 270", fan.Radius)
			}
			if fan.Collided {
				return
			}
			for i := range fan.Children {
				for j := i + 1; j < n; j++ {
					a, b := params.rectAt(fan.Children[i].Vec()), params.rectAt(fan.Children[j].Vec())
					if d := geom.RectDistance(a, b); d < params.MinNodeSpacing || a.Overlaps(b) {
						t.Errorf("children %d and %d only %.2fpx apart", i, j, d)
					}
				}
			}
		})
	}
}
