package geometry

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/lumen/internal/logger"
	"github.com/Faultbox/lumen/pkg/vertex"
)

// Surface is a buffer plus the vertex format it is described to the GPU with.
// It is filled through the embedded Buffer, finalized once with Build and then
// drawn with Render until Release.
type Surface struct {
	*Buffer

	format   vertex.Format
	bindings []vertex.Binding

	device   Device
	gpu      Buffers
	built    bool
	uploaded int // index count on the device

	clamped map[DrawMode]bool
}

// NewSurface creates an empty surface declaring the channels in mask.
func NewSurface(mask vertex.Channel) *Surface {
	f := vertex.NewFormat(mask)
	logger.Debug("surface created",
		zap.Stringer("mask", mask),
		zap.Int("declarations", f.Len()),
		zap.Int("stride", f.Stride()),
	)
	return &Surface{
		Buffer: NewBuffer(),
		format: f,
	}
}

// Format returns the declared vertex format.
func (s *Surface) Format() vertex.Format { return s.format }

// Built reports whether Build succeeded.
func (s *Surface) Built() bool { return s.built }

// Layout returns the attribute bindings computed by Build.
func (s *Surface) Layout() []vertex.Binding {
	return append([]vertex.Binding(nil), s.bindings...)
}

// PrimitiveCount returns the number of primitives the current indices form in mode.
func (s *Surface) PrimitiveCount(mode DrawMode) int {
	return PrimitiveCount(mode, s.IndexCount())
}

// check validates everything Build and Update need before touching the device.
func (s *Surface) check() error {
	if s.VertexCount() == 0 || s.IndexCount() == 0 {
		return fmt.Errorf("%w: %d vertices, %d indices", ErrEmptyGeometry, s.VertexCount(), s.IndexCount())
	}
	return s.Validate()
}

// Build uploads the surface to dev and binds every declared channel.
// It can succeed only once.
func (s *Surface) Build(dev Device) error {
	if s.built {
		return ErrAlreadyBuilt
	}
	if dev == nil {
		return ErrNoDevice
	}

	bindings, err := vertex.Bindings(s.format, Record)
	if err != nil {
		return err
	}
	if err := s.check(); err != nil {
		return err
	}

	gpu, err := dev.CreateBuffers(s.VertexBytes(), s.Indices(), bindings)
	if err != nil {
		return fmt.Errorf("upload surface: %w", err)
	}

	s.device = dev
	s.gpu = gpu
	s.bindings = bindings
	s.uploaded = s.IndexCount()
	s.built = true

	logger.Debug("surface built",
		zap.Uint32("vao", gpu.VAO),
		zap.Int("vertices", s.VertexCount()),
		zap.Int("indices", s.IndexCount()),
		zap.Int("bindings", len(bindings)),
	)
	return nil
}

// Update re-uploads the CPU-side geometry after edits made since Build.
func (s *Surface) Update() error {
	if !s.built {
		return ErrNotBuilt
	}
	if err := s.check(); err != nil {
		return err
	}
	if err := s.device.UpdateBuffers(s.gpu, s.VertexBytes(), s.Indices()); err != nil {
		return fmt.Errorf("update surface: %w", err)
	}
	s.uploaded = s.IndexCount()
	return nil
}

// Render draws the uploaded indices in mode. The count comes from DrawCount,
// clamped to the number of uploaded indices.
func (s *Surface) Render(mode DrawMode) error {
	if !s.built {
		return ErrNotBuilt
	}
	if !mode.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDrawMode, uint32(mode))
	}

	count := DrawCount(mode, s.uploaded)
	if count > s.uploaded {
		if !s.clamped[mode] {
			if s.clamped == nil {
				s.clamped = make(map[DrawMode]bool)
			}
			s.clamped[mode] = true
			logger.Debug("draw count clamped",
				zap.Stringer("mode", mode),
				zap.Int("requested", count),
				zap.Int("indices", s.uploaded),
			)
		}
		count = s.uploaded
	}

	s.device.DrawElements(s.gpu, mode, 0, count)
	return nil
}

// Release frees the device buffers. The surface can be built again afterwards.
func (s *Surface) Release() {
	if !s.built {
		return
	}
	s.device.DeleteBuffers(s.gpu)
	logger.Debug("surface released", zap.Uint32("vao", s.gpu.VAO))

	s.device = nil
	s.gpu = Buffers{}
	s.bindings = nil
	s.uploaded = 0
	s.built = false
}
