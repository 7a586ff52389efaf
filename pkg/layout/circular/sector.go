package circular

import (
	"math"

	"github.com/matzehuels/orbit/pkg/geom"
)

// CalculateFlexibleSectors divides fullCircle radians among root trees.
//
// A single tree gets the whole circle. Otherwise each tree's width is
// proportional to its number of direct children, floored at
// fullCircle/(4·len(trees)), and the widths are rescaled to sum to exactly
// fullCircle. Trees without any children share the circle equally. Sectors
// are laid out consecutively from startAngle in the given direction.
func CalculateFlexibleSectors(trees []*TreeNode, startAngle, fullCircle float64, clockwise bool) []geom.Sector {
	switch len(trees) {
	case 0:
		return nil
	case 1:
		return []geom.Sector{geom.NewSector(startAngle, fullCircle)}
	}

	weights := make([]float64, len(trees))
	for i, t := range trees {
		weights[i] = float64(len(t.Children))
	}
	floor := fullCircle / float64(len(trees)*4)
	return layoutSectors(proportionalWidths(weights, fullCircle, floor), startAngle, clockwise)
}

// subtreeSectors divides fullCircle among children in proportion to their
// subtree sizes, never narrower than minSector.
func subtreeSectors(children []*TreeNode, startAngle, fullCircle, minSector float64, clockwise bool) []geom.Sector {
	if len(children) == 0 {
		return nil
	}
	weights := make([]float64, len(children))
	for i, c := range children {
		weights[i] = float64(c.SubtreeSize)
	}
	return layoutSectors(proportionalWidths(weights, fullCircle, minSector), startAngle, clockwise)
}

// proportionalWidths scales weights to total, applies floor, then rescales so
// the widths sum to total. All-zero weights yield equal widths.
func proportionalWidths(weights []float64, total, floor float64) []float64 {
	var sum float64
	for _, w := range weights {
		sum += w
	}

	widths := make([]float64, len(weights))
	if sum == 0 {
		for i := range widths {
			widths[i] = total / float64(len(widths))
		}
		return widths
	}

	var allocated float64
	for i, w := range weights {
		widths[i] = math.Max(total*w/sum, floor)
		allocated += widths[i]
	}
	scale := total / allocated
	for i := range widths {
		widths[i] *= scale
	}
	return widths
}

// layoutSectors places widths back to back starting at start. Going
// counter-clockwise, each sector ends where the previous one began.
func layoutSectors(widths []float64, start float64, clockwise bool) []geom.Sector {
	sectors := make([]geom.Sector, len(widths))
	cursor := start
	for i, w := range widths {
		if clockwise {
			sectors[i] = geom.NewSector(cursor, w)
			cursor += w
		} else {
			cursor -= w
			sectors[i] = geom.NewSector(cursor, w)
		}
	}
	return sectors
}

// neighbourSectors derives each root's sector from the angular midpoints to
// its neighbours. angles are in placement order, which runs clockwise when
// clockwise is set and counter-clockwise otherwise.
func neighbourSectors(angles []float64, clockwise bool) []geom.Sector {
	n := len(angles)
	if n == 0 {
		return nil
	}
	if n == 1 {
		return []geom.Sector{geom.NewSector(angles[0], geom.FullTurn)}
	}

	sectors := make([]geom.Sector, n)
	for i, a := range angles {
		prev, next := angles[(i-1+n)%n], angles[(i+1)%n]
		if !clockwise {
			prev, next = next, prev
		}
		sectors[i] = geom.SectorBetween(geom.Midpoint(prev, a), geom.Midpoint(a, next))
	}
	return sectors
}

// sliceFor picks child i's share of a sector split by geom.Sector.Slice.
// Shares are handed out in placement direction.
func sliceFor(parts []geom.Sector, i int, clockwise bool) geom.Sector {
	if clockwise {
		return parts[i]
	}
	return parts[len(parts)-1-i]
}
