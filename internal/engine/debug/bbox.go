// Package debug provides debug visualization and capture utilities.
package debug

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lumen/internal/engine/geometry"
	"github.com/Faultbox/lumen/pkg/vertex"
)

// Box corner order: bottom face counter-clockwise from lo, then the top face.
var boxEdges = [12][2]int{
	// Bottom face
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	// Top face
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	// Vertical edges
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// BoxEdgeCount is the number of line segments of a box wireframe.
const BoxEdgeCount = len(boxEdges)

// DefaultBoxPadding is how far bounds boxes stand off the geometry.
const DefaultBoxPadding = 0.05

// BoundsBox returns an unbuilt position-only surface outlining the box from lo
// to hi grown by padding, meant to be drawn with geometry.Lines.
func BoundsBox(lo, hi mgl32.Vec3, padding float32) *geometry.Surface {
	for k := 0; k < 3; k++ {
		if lo[k] > hi[k] {
			lo[k], hi[k] = hi[k], lo[k]
		}
	}
	pad := mgl32.Vec3{padding, padding, padding}
	lo, hi = lo.Sub(pad), hi.Add(pad)

	s := geometry.NewSurface(vertex.Position)
	for _, y := range [2]float32{lo.Y(), hi.Y()} {
		s.AddVertex(geometry.VertexOptions{Position: mgl32.Vec3{lo.X(), y, lo.Z()}})
		s.AddVertex(geometry.VertexOptions{Position: mgl32.Vec3{hi.X(), y, lo.Z()}})
		s.AddVertex(geometry.VertexOptions{Position: mgl32.Vec3{hi.X(), y, hi.Z()}})
		s.AddVertex(geometry.VertexOptions{Position: mgl32.Vec3{lo.X(), y, hi.Z()}})
	}
	for _, e := range boxEdges {
		s.AddIndex(e[0])
		s.AddIndex(e[1])
	}
	return s
}
