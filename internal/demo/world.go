package demo

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lumen/internal/engine/geometry"
)

// Ground plane half extent.
const groundSize = 50

// world owns the CPU and GPU geometry of a scene.
type world struct {
	plane *geometry.Surface
	cube  *geometry.Surface
	model *geometry.Mesh
}

// newWorld creates the shared shapes and loads objPath when it is set.
func newWorld(objPath string) (*world, error) {
	w := &world{
		plane: geometry.CreatePlane(groundSize, groundSize),
		cube:  geometry.CreateCube(),
	}
	if objPath != "" {
		m, err := geometry.LoadOBJ(objPath)
		if err != nil {
			return nil, fmt.Errorf("load model: %w", err)
		}
		w.model = m
	}
	return w, nil
}

// build uploads everything to dev. Nothing stays on the device on failure.
func (w *world) build(dev geometry.Device) error {
	if err := w.plane.Build(dev); err != nil {
		return fmt.Errorf("build plane: %w", err)
	}
	if err := w.cube.Build(dev); err != nil {
		w.release()
		return fmt.Errorf("build cube: %w", err)
	}
	if w.model != nil {
		if err := w.model.Build(dev); err != nil {
			w.release()
			return fmt.Errorf("build model %s: %w", w.model.Name, err)
		}
	}
	return nil
}

// draw renders the geometry of one object.
func (w *world) draw(shape Shape) error {
	switch shape {
	case ShapePlane:
		return w.plane.Render(geometry.Triangles)
	case ShapeCube:
		return w.cube.Render(geometry.Triangles)
	case ShapeModel:
		if w.model == nil {
			return nil
		}
		return w.model.Render(geometry.Triangles)
	}
	return fmt.Errorf("unknown shape %d", shape)
}

// bounds returns the box around the objects except the ground plane, so an
// orbit camera frames what stands on it.
func (w *world) bounds(objects []Object) (mgl32.Vec3, mgl32.Vec3) {
	lo := mgl32.Vec3{-1, 0, -1}
	hi := mgl32.Vec3{1, 1, 1}
	for _, o := range objects {
		var olo, ohi mgl32.Vec3
		switch {
		case o.Shape == ShapeCube:
			olo, ohi = w.cube.Bounds()
		case o.Shape == ShapeModel && w.model != nil:
			olo, ohi = w.model.Bounds()
		default:
			continue
		}
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], olo[k]+o.Position[k])
			hi[k] = max(hi[k], ohi[k]+o.Position[k])
		}
	}
	return lo, hi
}

func (w *world) release() {
	w.plane.Release()
	w.cube.Release()
	if w.model != nil {
		w.model.Release()
	}
}
