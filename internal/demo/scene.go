// Package demo contains the viewer application and its three scenes: a flat
// ambient scene, a Phong-lit scene and a textured scene with an OBJ model.
package demo

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lumen/internal/demo/shaders"
	"github.com/Faultbox/lumen/internal/engine/lighting"
)

// Definition describes a scene independent of any GPU state.
type Definition struct {
	Name     string
	Lighting lighting.PointLight
	Textured bool

	VertexShader   string
	FragmentShader string
}

var definitions = map[string]Definition{
	"ambient": {
		Name: "ambient",
		Lighting: lighting.PointLight{
			Color:   mgl32.Vec3{0.5, 0.5, 0.5},
			Ambient: 0.8,
		},
		VertexShader:   shaders.AmbientVertexShader,
		FragmentShader: shaders.AmbientFragmentShader,
	},
	"lit": {
		Name: "lit",
		Lighting: lighting.PointLight{
			Position:  mgl32.Vec3{1.2, 1, 2},
			Color:     mgl32.Vec3{1, 1, 1},
			Ambient:   0.1,
			Specular:  0.5,
			Shininess: 32,
		},
		VertexShader:   shaders.LitVertexShader,
		FragmentShader: shaders.LitFragmentShader,
	},
	"textured": {
		Name: "textured",
		Lighting: lighting.PointLight{
			Position:  mgl32.Vec3{1.2, 10, -20},
			Color:     mgl32.Vec3{1, 1, 1},
			Ambient:   0.4,
			Specular:  0.5,
			Shininess: 32,
		},
		Textured:       true,
		VertexShader:   shaders.TexturedVertexShader,
		FragmentShader: shaders.TexturedFragmentShader,
	},
}

// Lookup returns the scene called name.
func Lookup(name string) (Definition, error) {
	def, ok := definitions[name]
	if !ok {
		return Definition{}, fmt.Errorf("unknown scene %q", name)
	}
	return def, nil
}

// Shape selects the geometry an Object draws.
type Shape int

const (
	ShapePlane Shape = iota
	ShapeCube
	ShapeModel
)

// Object is one placed drawable. A zero Axis means it does not spin.
type Object struct {
	Shape    Shape
	Position mgl32.Vec3
	Axis     mgl32.Vec3
	Color    mgl32.Vec3
}

// Model returns the model matrix at t seconds: translate, then spin t radians.
func (o Object) Model(t float32) mgl32.Mat4 {
	m := mgl32.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z())
	if o.Axis.Len() == 0 {
		return m
	}
	return m.Mul4(mgl32.HomogRotate3D(t, o.Axis.Normalize()))
}

// Layout returns the objects every scene draws: a ground plane and three
// spinning cubes, plus the loaded model in textured scenes.
func Layout(withModel bool) []Object {
	objects := []Object{
		{Shape: ShapePlane, Color: mgl32.Vec3{0.2, 0.2, 0.2}},
		{Shape: ShapeCube, Position: mgl32.Vec3{0, 1, 0}, Axis: mgl32.Vec3{0, 1, 0}, Color: mgl32.Vec3{1, 0.5, 0.2}},
		{Shape: ShapeCube, Position: mgl32.Vec3{-4, 1, 0}, Axis: mgl32.Vec3{0, 1, 0}, Color: mgl32.Vec3{1, 0.5, 1}},
		{Shape: ShapeCube, Position: mgl32.Vec3{4, 1, 0}, Axis: mgl32.Vec3{1, 0, 0}, Color: mgl32.Vec3{0, 0.5, 1}},
	}
	if withModel {
		objects = append(objects, Object{Shape: ShapeModel, Position: mgl32.Vec3{0, 2, 0}, Color: mgl32.Vec3{1, 1, 1}})
	}
	return objects
}
