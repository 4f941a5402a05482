package gpu

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/lumen/internal/engine/geometry"
	"github.com/Faultbox/lumen/internal/logger"
	"github.com/Faultbox/lumen/pkg/vertex"
)

// Device uploads surfaces into VAO/VBO/EBO triples.
type Device struct {
	log *zap.Logger

	live int
}

var _ geometry.Device = (*Device)(nil)

// NewDevice returns a device bound to the current GL context.
func NewDevice() *Device {
	return &Device{log: logger.Named("gpu")}
}

// Live returns the number of buffer sets created and not yet deleted.
func (d *Device) Live() int { return d.live }

// CreateBuffers uploads vertex and index data and records bindings in a new VAO.
func (d *Device) CreateBuffers(vertices []byte, indices []uint32, bindings []vertex.Binding) (geometry.Buffers, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return geometry.Buffers{}, geometry.ErrEmptyGeometry
	}

	var b geometry.Buffers
	gl.GenVertexArrays(1, &b.VAO)
	gl.BindVertexArray(b.VAO)

	gl.GenBuffers(1, &b.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices), unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &b.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	for _, bind := range bindings {
		gl.VertexAttribPointerWithOffset(bind.Slot, bind.Components, bind.GLType, bind.Normalized, bind.Stride, uintptr(bind.Offset))
		gl.EnableVertexAttribArray(bind.Slot)
		d.log.Debug("attribute bound", zap.Stringer("binding", bind))
	}

	// The EBO binding is VAO state; only the array buffer is unbound.
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if err := CheckError("create buffers"); err != nil {
		deleteHandles(b)
		return geometry.Buffers{}, err
	}

	d.live++
	d.log.Debug("buffers created",
		zap.Uint32("vao", b.VAO),
		zap.Uint32("vbo", b.VBO),
		zap.Uint32("ebo", b.EBO),
		zap.Int("vertex_bytes", len(vertices)),
		zap.Int("indices", len(indices)),
	)
	return b, nil
}

// UpdateBuffers replaces the buffer contents, reallocating storage.
func (d *Device) UpdateBuffers(b geometry.Buffers, vertices []byte, indices []uint32) error {
	if len(vertices) == 0 || len(indices) == 0 {
		return geometry.ErrEmptyGeometry
	}
	gl.BindVertexArray(b.VAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices), unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if err := CheckError("update buffers"); err != nil {
		return fmt.Errorf("vao %d: %w", b.VAO, err)
	}
	return nil
}

// DrawElements draws count uint32 indices starting at offset.
func (d *Device) DrawElements(b geometry.Buffers, mode geometry.DrawMode, offset, count int) {
	gl.BindVertexArray(b.VAO)
	gl.DrawElements(uint32(mode), int32(count), gl.UNSIGNED_INT, gl.PtrOffset(offset*4))
	gl.BindVertexArray(0)
}

// DeleteBuffers releases the three handles.
func (d *Device) DeleteBuffers(b geometry.Buffers) {
	deleteHandles(b)
	if d.live > 0 {
		d.live--
	}
	d.log.Debug("buffers deleted", zap.Uint32("vao", b.VAO))
}

func deleteHandles(b geometry.Buffers) {
	if b.EBO != 0 {
		gl.DeleteBuffers(1, &b.EBO)
	}
	if b.VBO != 0 {
		gl.DeleteBuffers(1, &b.VBO)
	}
	if b.VAO != 0 {
		gl.DeleteVertexArrays(1, &b.VAO)
	}
}
