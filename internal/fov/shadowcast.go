// Package fov computes field of view with recursive shadowcasting.
package fov

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/dungeonsight/internal/world"
)

// Oracle is the view of a map that shadowcasting needs.
type Oracle interface {
	Dimensions() (int, int)
	InBounds(x, y int) bool
	IndexOf(x, y int) int
	IsOpaque(idx int) bool
}

// octants maps a row/column sweep (dx, dy) onto world offsets:
//
//	x = cx + dx*xx + dy*xy
//	y = cy + dx*yx + dy*yy
var octants = [8][4]int{
	{1, 0, 0, 1},
	{0, 1, 1, 0},
	{0, -1, 1, 0},
	{-1, 0, 0, 1},
	{-1, 0, 0, -1},
	{0, -1, -1, 0},
	{0, 1, -1, 0},
	{1, 0, 0, -1},
}

// Compute returns every cell visible from origin within radius, clipped to
// the map. The origin is always included. A negative radius is treated as 0.
// Opaque cells are themselves visible but hide everything behind them.
func Compute(m Oracle, origin world.Point, radius int) mapset.Set[world.Point] {
	if radius < 0 {
		radius = 0
	}

	visible := mapset.New[world.Point]()
	visible.Put(origin)

	for _, o := range octants {
		castLight(m, visible, origin.X, origin.Y, 1, 1.0, 0.0, radius, o[0], o[1], o[2], o[3])
	}

	width, height := m.Dimensions()
	return Clip(visible, width, height)
}

// Clip drops every point outside a width x height grid.
func Clip(points mapset.Set[world.Point], width, height int) mapset.Set[world.Point] {
	clipped := mapset.New[world.Point]()
	points.Each(func(p world.Point) {
		if p.X >= 0 && p.X < width && p.Y >= 0 && p.Y < height {
			clipped.Put(p)
		}
	})
	return clipped
}

// castLight scans one octant from row outward between the start and end
// slopes, recursing past each run of opaque cells.
func castLight(m Oracle, visible mapset.Set[world.Point], cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int) {
	if start < end {
		return
	}
	radiusSq := radius * radius
	newStart := start

	for j := row; j <= radius; j++ {
		dy := -j
		blocked := false

		for dx := -j; dx <= 0; dx++ {
			x := cx + dx*xx + dy*xy
			y := cy + dx*yx + dy*yy

			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			if dx*dx+dy*dy <= radiusSq {
				visible.Put(world.Point{X: x, Y: y})
			}

			opaque := isBlocking(m, x, y)

			if blocked {
				if opaque {
					newStart = rSlope
					continue
				}
				blocked = false
				start = newStart
			} else if opaque && j < radius {
				blocked = true
				castLight(m, visible, cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}

// isBlocking treats anything off the map as opaque.
func isBlocking(m Oracle, x, y int) bool {
	if !m.InBounds(x, y) {
		return true
	}
	return m.IsOpaque(m.IndexOf(x, y))
}
