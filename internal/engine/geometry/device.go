package geometry

import "github.com/Faultbox/lumen/pkg/vertex"

// Buffers holds the GPU handles of one uploaded surface.
type Buffers struct {
	VAO uint32
	VBO uint32
	EBO uint32
}

// Device uploads surfaces and issues their draw calls. All calls must come
// from the thread that owns the GPU context.
type Device interface {
	// CreateBuffers uploads raw vertex records and indices and records the
	// attribute bindings describing the vertex bytes.
	CreateBuffers(vertices []byte, indices []uint32, bindings []vertex.Binding) (Buffers, error)

	// UpdateBuffers replaces the contents of previously created buffers.
	UpdateBuffers(b Buffers, vertices []byte, indices []uint32) error

	// DrawElements draws count indices starting at offset.
	DrawElements(b Buffers, mode DrawMode, offset, count int)

	// DeleteBuffers releases the handles.
	DeleteBuffers(b Buffers)
}
