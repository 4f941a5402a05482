package geometry

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lumen/pkg/vertex"
)

var (
	unitX = mgl32.Vec3{1, 0, 0}
	unitY = mgl32.Vec3{0, 1, 0}
	unitZ = mgl32.Vec3{0, 0, 1}
)

// cubeVertices lists the 24 corners of the unit cube, four per face.
var cubeVertices = [24]struct {
	pos mgl32.Vec3
	n   mgl32.Vec3
	uv  mgl32.Vec2
}{
	// back
	{mgl32.Vec3{-1, -1, -1}, unitZ.Mul(-1), mgl32.Vec2{0, 1}},
	{mgl32.Vec3{-1, 1, -1}, unitZ.Mul(-1), mgl32.Vec2{0, 0}},
	{mgl32.Vec3{1, 1, -1}, unitZ.Mul(-1), mgl32.Vec2{1, 0}},
	{mgl32.Vec3{1, -1, -1}, unitZ.Mul(-1), mgl32.Vec2{1, 1}},
	// front
	{mgl32.Vec3{-1, -1, 1}, unitZ, mgl32.Vec2{1, 1}},
	{mgl32.Vec3{-1, 1, 1}, unitZ, mgl32.Vec2{1, 0}},
	{mgl32.Vec3{1, 1, 1}, unitZ, mgl32.Vec2{0, 0}},
	{mgl32.Vec3{1, -1, 1}, unitZ, mgl32.Vec2{0, 1}},
	// top and bottom
	{mgl32.Vec3{-1, -1, 1}, unitY.Mul(-1), mgl32.Vec2{0, 1}},
	{mgl32.Vec3{-1, 1, 1}, unitY, mgl32.Vec2{0, 0}},
	{mgl32.Vec3{1, 1, 1}, unitY, mgl32.Vec2{1, 0}},
	{mgl32.Vec3{1, -1, 1}, unitY.Mul(-1), mgl32.Vec2{1, 1}},
	{mgl32.Vec3{-1, -1, -1}, unitY.Mul(-1), mgl32.Vec2{0, 0}},
	{mgl32.Vec3{-1, 1, -1}, unitY, mgl32.Vec2{0, 1}},
	{mgl32.Vec3{1, 1, -1}, unitY, mgl32.Vec2{1, 1}},
	{mgl32.Vec3{1, -1, -1}, unitY.Mul(-1), mgl32.Vec2{1, 0}},
	// sides
	{mgl32.Vec3{-1, -1, 1}, unitX.Mul(-1), mgl32.Vec2{0, 1}},
	{mgl32.Vec3{-1, 1, 1}, unitX.Mul(-1), mgl32.Vec2{0, 0}},
	{mgl32.Vec3{1, 1, 1}, unitX, mgl32.Vec2{1, 0}},
	{mgl32.Vec3{1, -1, 1}, unitX, mgl32.Vec2{1, 1}},
	{mgl32.Vec3{-1, -1, -1}, unitX.Mul(-1), mgl32.Vec2{1, 1}},
	{mgl32.Vec3{-1, 1, -1}, unitX.Mul(-1), mgl32.Vec2{1, 0}},
	{mgl32.Vec3{1, 1, -1}, unitX, mgl32.Vec2{0, 0}},
	{mgl32.Vec3{1, -1, -1}, unitX, mgl32.Vec2{0, 1}},
}

var cubeTriangles = [12][3]int{
	{0, 1, 2}, {0, 2, 3},
	{6, 5, 4}, {7, 6, 4},
	{14, 13, 9}, {10, 14, 9},
	{8, 12, 15}, {8, 15, 11},
	{22, 18, 19}, {23, 22, 19},
	{16, 17, 21}, {16, 21, 20},
}

// CreateCube returns an unbuilt cube spanning [-1,1] on every axis with flat
// per-face normals and texture coordinates.
func CreateCube() *Surface {
	s := NewSurface(vertex.Standard)
	for _, cv := range cubeVertices {
		s.AddVertexRecord(Vertex{
			Position: cv.pos,
			Normal:   cv.n,
			Color:    White,
			TexCoord: cv.uv,
		})
	}
	for _, t := range cubeTriangles {
		s.AddTriangle(t[0], t[1], t[2])
	}
	return s
}

// CreatePlane returns an unbuilt Y-up plane centered at the origin that spans
// halfWidth along X and halfDepth along Z in each direction.
func CreatePlane(halfWidth, halfDepth float32) *Surface {
	s := NewSurface(vertex.Standard)
	corners := [4]struct {
		pos mgl32.Vec3
		uv  mgl32.Vec2
	}{
		{mgl32.Vec3{-halfWidth, 0, -halfDepth}, mgl32.Vec2{0, 1}},
		{mgl32.Vec3{-halfWidth, 0, halfDepth}, mgl32.Vec2{0, 0}},
		{mgl32.Vec3{halfWidth, 0, halfDepth}, mgl32.Vec2{1, 0}},
		{mgl32.Vec3{halfWidth, 0, -halfDepth}, mgl32.Vec2{1, 1}},
	}
	for _, c := range corners {
		s.AddVertexRecord(Vertex{Position: c.pos, Normal: unitY, Color: White, TexCoord: c.uv})
	}
	s.AddTriangle(0, 1, 2)
	s.AddTriangle(0, 2, 3)
	return s
}
