package geometry

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lumen/pkg/vertex"
)

type drawCall struct {
	mode   DrawMode
	offset int
	count  int
}

// fakeDevice records what a surface asks of the GPU.
type fakeDevice struct {
	next     uint32
	created  int
	deleted  []Buffers
	vertices []byte
	indices  []uint32
	bindings []vertex.Binding
	draws    []drawCall
	updates  int
	fail     error
}

func (d *fakeDevice) CreateBuffers(vertices []byte, indices []uint32, bindings []vertex.Binding) (Buffers, error) {
	if d.fail != nil {
		return Buffers{}, d.fail
	}
	d.created++
	d.vertices = append([]byte(nil), vertices...)
	d.indices = append([]uint32(nil), indices...)
	d.bindings = bindings
	d.next += 3
	return Buffers{VAO: d.next - 2, VBO: d.next - 1, EBO: d.next}, nil
}

func (d *fakeDevice) UpdateBuffers(b Buffers, vertices []byte, indices []uint32) error {
	d.updates++
	d.vertices = append([]byte(nil), vertices...)
	d.indices = append([]uint32(nil), indices...)
	return nil
}

func (d *fakeDevice) DrawElements(b Buffers, mode DrawMode, offset, count int) {
	d.draws = append(d.draws, drawCall{mode, offset, count})
}

func (d *fakeDevice) DeleteBuffers(b Buffers) {
	d.deleted = append(d.deleted, b)
}

func triangleSurface(mask vertex.Channel) *Surface {
	s := NewSurface(mask)
	s.AddVertex(VertexOptions{Position: mgl32.Vec3{0, 0, 0}})
	s.AddVertex(VertexOptions{Position: mgl32.Vec3{1, 0, 0}})
	s.AddVertex(VertexOptions{Position: mgl32.Vec3{0, 1, 0}})
	s.AddTriangle(0, 1, 2)
	return s
}

func TestSurface_Build(t *testing.T) {
	dev := &fakeDevice{}
	s := triangleSurface(vertex.Standard)

	if err := s.Build(dev); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if !s.Built() {
		t.Error("expected Built() to be true")
	}
	if dev.created != 1 {
		t.Errorf("expected 1 upload, got %d", dev.created)
	}
	if len(dev.vertices) != 3*VertexSize {
		t.Errorf("expected %d vertex bytes, got %d", 3*VertexSize, len(dev.vertices))
	}
	if len(dev.indices) != 3 {
		t.Errorf("expected 3 indices, got %d", len(dev.indices))
	}

	want := map[vertex.Channel]struct {
		slot   uint32
		offset int
	}{
		vertex.Position:   {vertex.SlotPosition, 0},
		vertex.Normal:     {vertex.SlotNormal, 12},
		vertex.FloatColor: {vertex.SlotColor, 24},
		vertex.TexCoord1:  {vertex.SlotTexCoord, 40},
	}
	if len(dev.bindings) != len(want) {
		t.Fatalf("expected %d bindings, got %d", len(want), len(dev.bindings))
	}
	for _, b := range dev.bindings {
		w, ok := want[b.Channel]
		if !ok {
			t.Errorf("unexpected binding %s", b)
			continue
		}
		if b.Slot != w.slot || b.Offset != w.offset || int(b.Stride) != VertexSize {
			t.Errorf("binding %s: slot %d offset %d stride %d, want slot %d offset %d stride %d",
				b.Channel, b.Slot, b.Offset, b.Stride, w.slot, w.offset, VertexSize)
		}
	}
	if got := s.Layout(); len(got) != len(dev.bindings) {
		t.Errorf("Layout() returned %d bindings", len(got))
	}
}

func TestSurface_BuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func() *Surface
		want  error
	}{
		{
			name:  "empty mask",
			setup: func() *Surface { return triangleSurface(0) },
			want:  vertex.ErrInvalidVertexFormat,
		},
		{
			name:  "undeclared channels only",
			setup: func() *Surface { return triangleSurface(vertex.Tangent | vertex.TexCoord3) },
			want:  vertex.ErrInvalidVertexFormat,
		},
		{
			name:  "both colors",
			setup: func() *Surface { return triangleSurface(vertex.Position | vertex.Color | vertex.FloatColor) },
			want:  vertex.ErrInvalidVertexFormat,
		},
		{
			name:  "no vertices",
			setup: func() *Surface { return NewSurface(vertex.Standard) },
			want:  ErrEmptyGeometry,
		},
		{
			name: "no indices",
			setup: func() *Surface {
				s := NewSurface(vertex.Standard)
				s.AddVertex(VertexOptions{})
				return s
			},
			want: ErrEmptyGeometry,
		},
		{
			name: "index out of range",
			setup: func() *Surface {
				s := triangleSurface(vertex.Standard)
				s.AddTriangle(0, 1, 3)
				return s
			},
			want: ErrIndexOutOfRange,
		},
		{
			name: "negative index",
			setup: func() *Surface {
				s := triangleSurface(vertex.Standard)
				s.AddIndex(-1)
				return s
			},
			want: ErrIndexOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := &fakeDevice{}
			err := tt.setup().Build(dev)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if dev.created != 0 {
				t.Error("device should not be touched on a failed build")
			}
		})
	}
}

func TestSurface_BuildTwice(t *testing.T) {
	dev := &fakeDevice{}
	s := triangleSurface(vertex.Standard)
	if err := s.Build(dev); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if err := s.Build(dev); !errors.Is(err, ErrAlreadyBuilt) {
		t.Errorf("expected ErrAlreadyBuilt, got %v", err)
	}
	if err := triangleSurface(vertex.Standard).Build(nil); !errors.Is(err, ErrNoDevice) {
		t.Errorf("expected ErrNoDevice, got %v", err)
	}
}

func TestSurface_BuildDeviceError(t *testing.T) {
	boom := errors.New("out of memory")
	s := triangleSurface(vertex.Standard)
	if err := s.Build(&fakeDevice{fail: boom}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped device error, got %v", err)
	}
	if s.Built() {
		t.Error("surface should not be built after a device error")
	}
}

func TestSurface_RenderBeforeBuild(t *testing.T) {
	s := triangleSurface(vertex.Standard)
	if err := s.Render(Triangles); !errors.Is(err, ErrNotBuilt) {
		t.Errorf("expected ErrNotBuilt, got %v", err)
	}
	if err := s.Update(); !errors.Is(err, ErrNotBuilt) {
		t.Errorf("expected ErrNotBuilt from Update, got %v", err)
	}
}

func TestSurface_Render(t *testing.T) {
	dev := &fakeDevice{}
	s := CreateCube()
	if err := s.Build(dev); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	tests := []struct {
		mode  DrawMode
		count int
	}{
		{Triangles, 36},
		{Points, 36},
		{LineLoop, 36},
		{LineStrip, 36},
		{TriangleStrip, 36},
	}
	for _, tt := range tests {
		dev.draws = nil
		if err := s.Render(tt.mode); err != nil {
			t.Fatalf("Render(%s) failed: %v", tt.mode, err)
		}
		want := drawCall{tt.mode, 0, tt.count}
		if len(dev.draws) != 1 || dev.draws[0] != want {
			t.Errorf("Render(%s) issued %v, want %v", tt.mode, dev.draws, want)
		}
	}

	if err := s.Render(DrawMode(42)); !errors.Is(err, ErrInvalidDrawMode) {
		t.Errorf("expected ErrInvalidDrawMode, got %v", err)
	}
}

func TestSurface_Update(t *testing.T) {
	dev := &fakeDevice{}
	s := triangleSurface(vertex.Standard)
	if err := s.Build(dev); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	v := s.AddVertex(VertexOptions{Position: mgl32.Vec3{1, 1, 0}})
	s.AddTriangle(1, v, 2)
	if err := s.Update(); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if dev.updates != 1 || len(dev.indices) != 6 {
		t.Errorf("expected 1 update with 6 indices, got %d with %d", dev.updates, len(dev.indices))
	}

	dev.draws = nil
	if err := s.Render(Triangles); err != nil {
		t.Fatal(err)
	}
	if dev.draws[0].count != 6 {
		t.Errorf("expected draw of 6 indices after update, got %d", dev.draws[0].count)
	}

	s.AddIndex(99)
	if err := s.Update(); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestSurface_Release(t *testing.T) {
	dev := &fakeDevice{}
	s := triangleSurface(vertex.Standard)
	if err := s.Build(dev); err != nil {
		t.Fatal(err)
	}
	gpu := s.gpu

	s.Release()
	s.Release()
	if len(dev.deleted) != 1 || dev.deleted[0] != gpu {
		t.Errorf("expected one delete of %v, got %v", gpu, dev.deleted)
	}
	if err := s.Render(Triangles); !errors.Is(err, ErrNotBuilt) {
		t.Errorf("expected ErrNotBuilt after release, got %v", err)
	}
	if err := s.Build(dev); err != nil {
		t.Errorf("rebuild after release failed: %v", err)
	}
}

func TestSurface_PrimitiveCount(t *testing.T) {
	s := CreateCube()
	if got := s.PrimitiveCount(Triangles); got != 12 {
		t.Errorf("expected 12 triangles, got %d", got)
	}
	if got := s.PrimitiveCount(Lines); got != 18 {
		t.Errorf("expected 18 lines, got %d", got)
	}
}
