package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh owns one or more surfaces and builds, draws and releases them together.
type Mesh struct {
	Name     string
	surfaces []*Surface
}

// NewMesh creates a mesh holding the given surfaces.
func NewMesh(name string, surfaces ...*Surface) *Mesh {
	return &Mesh{Name: name, surfaces: surfaces}
}

// Add appends a surface to the mesh.
func (m *Mesh) Add(s *Surface) {
	m.surfaces = append(m.surfaces, s)
}

// Surfaces returns the owned surfaces.
func (m *Mesh) Surfaces() []*Surface { return m.surfaces }

// VertexCount returns the total vertex count over all surfaces.
func (m *Mesh) VertexCount() int {
	n := 0
	for _, s := range m.surfaces {
		n += s.VertexCount()
	}
	return n
}

// IndexCount returns the total index count over all surfaces.
func (m *Mesh) IndexCount() int {
	n := 0
	for _, s := range m.surfaces {
		n += s.IndexCount()
	}
	return n
}

// Build builds every surface on dev. On failure the surfaces this call built
// are released again; surfaces built earlier stay untouched.
func (m *Mesh) Build(dev Device) error {
	if len(m.surfaces) == 0 {
		return fmt.Errorf("%w: mesh %q has no surfaces", ErrEmptyGeometry, m.Name)
	}
	built := make([]*Surface, 0, len(m.surfaces))
	for _, s := range m.surfaces {
		if err := s.Build(dev); err != nil {
			for _, done := range built {
				done.Release()
			}
			return err
		}
		built = append(built, s)
	}
	return nil
}

// Render draws every surface in mode. A mesh without surfaces can never be
// built, so rendering it is ErrNotBuilt.
func (m *Mesh) Render(mode DrawMode) error {
	if len(m.surfaces) == 0 {
		return fmt.Errorf("%w: mesh %q has no surfaces", ErrNotBuilt, m.Name)
	}
	for _, s := range m.surfaces {
		if err := s.Render(mode); err != nil {
			return err
		}
	}
	return nil
}

// Release frees the GPU buffers of every surface.
func (m *Mesh) Release() {
	for _, s := range m.surfaces {
		s.Release()
	}
}

// Bounds returns the box around the vertices of every non-empty surface.
// A mesh without vertices returns zero vectors.
func (m *Mesh) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	var lo, hi mgl32.Vec3
	first := true
	for _, s := range m.surfaces {
		if s.VertexCount() == 0 {
			continue
		}
		slo, shi := s.Bounds()
		if first {
			lo, hi = slo, shi
			first = false
			continue
		}
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], slo[k])
			hi[k] = max(hi[k], shi[k])
		}
	}
	return lo, hi
}
