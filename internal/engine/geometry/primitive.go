package geometry

import "fmt"

// DrawMode is a primitive topology. Values match the GL enums.
type DrawMode uint32

// Draw modes.
const (
	Points        DrawMode = 0x0000
	Lines         DrawMode = 0x0001
	LineLoop      DrawMode = 0x0002
	LineStrip     DrawMode = 0x0003
	Triangles     DrawMode = 0x0004
	TriangleStrip DrawMode = 0x0005
	TriangleFan   DrawMode = 0x0006
)

var drawModeNames = map[DrawMode]string{
	Points:        "points",
	Lines:         "lines",
	LineLoop:      "line_loop",
	LineStrip:     "line_strip",
	Triangles:     "triangles",
	TriangleStrip: "triangle_strip",
	TriangleFan:   "triangle_fan",
}

// String returns the mode name.
func (m DrawMode) String() string {
	if name, ok := drawModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("DrawMode(%d)", uint32(m))
}

// Valid reports whether m is a known topology.
func (m DrawMode) Valid() bool {
	_, ok := drawModeNames[m]
	return ok
}

// ParseDrawMode parses a mode name as returned by String.
func ParseDrawMode(s string) (DrawMode, error) {
	for m, name := range drawModeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDrawMode, s)
}

// PrimitiveCount returns how many primitives indexCount indices form in mode.
// Unknown modes and too few indices give 0.
func PrimitiveCount(mode DrawMode, indexCount int) int {
	var n int
	switch mode {
	case Points:
		n = indexCount
	case LineStrip:
		n = indexCount - 1
	case LineLoop:
		n = indexCount
	case Lines:
		n = indexCount / 2
	case TriangleStrip, TriangleFan:
		n = indexCount - 2
	case Triangles:
		n = indexCount / 3
	}
	return max(n, 0)
}

// DrawCount returns the element count the render path asks for in mode.
// It is a separate relation from PrimitiveCount and can exceed indexCount;
// Surface.Render clamps it to the uploaded index count.
func DrawCount(mode DrawMode, indexCount int) int {
	switch mode {
	case Points, LineLoop:
		return indexCount
	case LineStrip:
		return indexCount + 1
	case Lines:
		return indexCount * 2
	case TriangleStrip, TriangleFan:
		return indexCount + 2
	case Triangles:
		return indexCount * 3
	}
	return 0
}
