package dashboard

import "math"

// Point is a pointer position in page coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between two points.
func (p Point) Distance(other Point) float64 {
	return math.Hypot(p.X-other.X, p.Y-other.Y)
}

// Rect is a card bounding box as measured by the client.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the midpoint of the box.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Translate shifts the box by the given delta.
func (r Rect) Translate(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

// CardGeometry pairs a rendered card with its bounding box.
type CardGeometry struct {
	ID   string `json:"id"`
	Rect Rect   `json:"rect"`
}

// closestCenter picks the candidate whose center is nearest to the pointer. Candidates
// are visited in order and only a strictly smaller distance replaces the best, so
// ties go to the earlier card.
func closestCenter(pointer Point, candidates []CardGeometry) (string, bool) {
	best := ""
	bestDist := math.Inf(1)
	for _, c := range candidates {
		d := pointer.Distance(c.Rect.Center())
		if d < bestDist {
			best = c.ID
			bestDist = d
		}
	}
	return best, best != ""
}
