package geometry

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Buffer stores the vertices and 32-bit indices of a surface.
// Insertion order is render order.
type Buffer struct {
	vertices []Vertex
	indices  []uint32
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// AddVertex appends a vertex and returns its index.
func (b *Buffer) AddVertex(opts VertexOptions) int {
	b.vertices = append(b.vertices, opts.vertex())
	return len(b.vertices) - 1
}

// AddVertexRecord appends a fully specified vertex and returns its index.
func (b *Buffer) AddVertexRecord(v Vertex) int {
	b.vertices = append(b.vertices, v)
	return len(b.vertices) - 1
}

// AddIndex appends a single index and returns its position in the index list.
func (b *Buffer) AddIndex(i int) int {
	b.indices = append(b.indices, uint32(i))
	return len(b.indices) - 1
}

// AddTriangle appends three indices in the given order and returns the
// position of the first one. Winding is not checked; front faces are CCW.
func (b *Buffer) AddTriangle(i0, i1, i2 int) int {
	start := len(b.indices)
	b.indices = append(b.indices, uint32(i0), uint32(i1), uint32(i2))
	return start
}

func (b *Buffer) at(i int) (*Vertex, error) {
	if i < 0 || i >= len(b.vertices) {
		return nil, fmt.Errorf("%w: vertex %d of %d", ErrIndexOutOfRange, i, len(b.vertices))
	}
	return &b.vertices[i], nil
}

// SetVertexNormal replaces the normal of vertex i.
func (b *Buffer) SetVertexNormal(i int, n mgl32.Vec3) error {
	v, err := b.at(i)
	if err != nil {
		return err
	}
	v.Normal = n
	return nil
}

// SetVertexTexCoord replaces the texture coordinates of vertex i.
func (b *Buffer) SetVertexTexCoord(i int, uv mgl32.Vec2) error {
	v, err := b.at(i)
	if err != nil {
		return err
	}
	v.TexCoord = uv
	return nil
}

// SetVertexColor replaces the color of vertex i.
func (b *Buffer) SetVertexColor(i int, c mgl32.Vec4) error {
	v, err := b.at(i)
	if err != nil {
		return err
	}
	v.Color = c
	return nil
}

// Vertex returns a copy of vertex i.
func (b *Buffer) Vertex(i int) (Vertex, error) {
	v, err := b.at(i)
	if err != nil {
		return Vertex{}, err
	}
	return *v, nil
}

// VertexCount returns the number of vertices.
func (b *Buffer) VertexCount() int { return len(b.vertices) }

// IndexCount returns the number of indices.
func (b *Buffer) IndexCount() int { return len(b.indices) }

// Vertices returns the stored vertices. The slice aliases the buffer.
func (b *Buffer) Vertices() []Vertex { return b.vertices }

// Indices returns the stored indices. The slice aliases the buffer.
func (b *Buffer) Indices() []uint32 { return b.indices }

// VertexBytes returns the vertex records as raw bytes for upload.
// The slice aliases the buffer and is invalidated by the next AddVertex.
func (b *Buffer) VertexBytes() []byte {
	if len(b.vertices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&b.vertices[0])), len(b.vertices)*VertexSize)
}

// Validate checks that every index references an existing vertex.
func (b *Buffer) Validate() error {
	n := uint32(len(b.vertices))
	for pos, idx := range b.indices {
		if idx >= n {
			return fmt.Errorf("%w: index %d at position %d, %d vertices", ErrIndexOutOfRange, idx, pos, n)
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of all vertices.
// An empty buffer returns zero vectors.
func (b *Buffer) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	if len(b.vertices) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	lo := b.vertices[0].Position
	hi := lo
	for _, v := range b.vertices[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], v.Position[k])
			hi[k] = max(hi[k], v.Position[k])
		}
	}
	return lo, hi
}
