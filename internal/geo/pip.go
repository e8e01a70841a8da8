package geo

import "math"

const edgeEpsilon = 1e-12

// Contains reports whether p lies inside the polygon or on its boundary.
// Points strictly inside a hole are outside; points on a hole's edge are inside.
func (poly Polygon) Contains(p Point) bool {
	if !poly.bbox.contains(p) {
		return false
	}
	inside, onEdge := ringContains(poly.Outer, p)
	if onEdge {
		return true
	}
	if !inside {
		return false
	}
	for _, hole := range poly.Holes {
		inHole, onHoleEdge := ringContains(hole, p)
		if onHoleEdge {
			return true
		}
		if inHole {
			return false
		}
	}
	return true
}

// ringContains runs even-odd ray casting toward +X and separately reports
// whether p touches an edge or vertex.
func ringContains(ring Ring, p Point) (inside, onEdge bool) {
	n := len(ring)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if onSegment(p, a, b) {
			return true, true
		}
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside, false
}

func onSegment(p, a, b Point) bool {
	cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
	if math.Abs(cross) > edgeEpsilon {
		return false
	}
	return p.X >= min(a.X, b.X)-edgeEpsilon && p.X <= max(a.X, b.X)+edgeEpsilon &&
		p.Y >= min(a.Y, b.Y)-edgeEpsilon && p.Y <= max(a.Y, b.Y)+edgeEpsilon
}
