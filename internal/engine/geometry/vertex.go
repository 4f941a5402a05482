package geometry

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lumen/pkg/vertex"
)

// Vertex is the stored vertex record. Every surface stores all fields no matter
// which channels its format declares; the format only decides what the GPU sees.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Color    mgl32.Vec4
	TexCoord mgl32.Vec2
}

// VertexSize is the byte size of one stored Vertex.
const VertexSize = int(unsafe.Sizeof(Vertex{}))

// White is the default vertex color.
var White = mgl32.Vec4{1, 1, 1, 1}

// Record describes where each channel lives inside Vertex.
// Both color channels read the float color field.
var Record = vertex.Record{
	Size: VertexSize,
	Fields: map[vertex.Channel]vertex.Field{
		vertex.Position:   {Offset: int(unsafe.Offsetof(Vertex{}.Position)), Type: vertex.Float3},
		vertex.Normal:     {Offset: int(unsafe.Offsetof(Vertex{}.Normal)), Type: vertex.Float3},
		vertex.FloatColor: {Offset: int(unsafe.Offsetof(Vertex{}.Color)), Type: vertex.Float4},
		vertex.Color:      {Offset: int(unsafe.Offsetof(Vertex{}.Color)), Type: vertex.Float4},
		vertex.TexCoord1:  {Offset: int(unsafe.Offsetof(Vertex{}.TexCoord)), Type: vertex.Float2},
	},
}

// VertexOptions is the input of AddVertex. Nil fields take their defaults:
// zero normal, opaque white and (0,0) texture coordinates.
type VertexOptions struct {
	Position mgl32.Vec3
	Normal   *mgl32.Vec3
	Color    *mgl32.Vec4
	TexCoord *mgl32.Vec2
}

func (o VertexOptions) vertex() Vertex {
	v := Vertex{Position: o.Position, Color: White}
	if o.Normal != nil {
		v.Normal = *o.Normal
	}
	if o.Color != nil {
		v.Color = *o.Color
	}
	if o.TexCoord != nil {
		v.TexCoord = *o.TexCoord
	}
	return v
}
