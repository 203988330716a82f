package utils

import "image"

func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Line returns the integer points from p0 to p1, both ends included, using
// Bresenham's algorithm.
func Line(p0, p1 image.Point) []image.Point {
	dx := Abs(p1.X - p0.X)
	dy := -Abs(p1.Y - p0.Y)
	sx, sy := 1, 1
	if p0.X > p1.X {
		sx = -1
	}
	if p0.Y > p1.Y {
		sy = -1
	}
	points := make([]image.Point, 0, max(dx, -dy)+1)
	x, y := p0.X, p0.Y
	e := dx + dy
	for {
		points = append(points, image.Pt(x, y))
		if x == p1.X && y == p1.Y {
			return points
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
}
