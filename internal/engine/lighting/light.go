// Package lighting holds the light parameters the scene shaders consume.
package lighting

import "github.com/go-gl/mathgl/mgl32"

// Uniforms is the part of a shader program a light writes to.
type Uniforms interface {
	SetVec3(name string, v mgl32.Vec3)
	SetFloat(name string, v float32)
}

// PointLight is a single Phong light. A zero Shininess means ambient only.
type PointLight struct {
	Position  mgl32.Vec3
	Color     mgl32.Vec3 // RGB, 0-1
	Ambient   float32
	Specular  float32
	Shininess float32
}

// Lit reports whether the light has diffuse and specular terms.
func (l PointLight) Lit() bool { return l.Shininess > 0 }

// Clamped returns l with every color channel clamped to [0, 1] and negative
// strengths raised to zero.
func (l PointLight) Clamped() PointLight {
	for i := 0; i < 3; i++ {
		l.Color[i] = mgl32.Clamp(l.Color[i], 0, 1)
	}
	l.Ambient = max(l.Ambient, 0)
	l.Specular = max(l.Specular, 0)
	l.Shininess = max(l.Shininess, 0)
	return l
}

// Apply writes the light uniforms. Lit lights also get the viewer position.
func (l PointLight) Apply(u Uniforms, eye mgl32.Vec3) {
	u.SetVec3("lightColor", l.Color)
	u.SetFloat("ambientStrength", l.Ambient)
	if !l.Lit() {
		return
	}
	u.SetVec3("lightPos", l.Position)
	u.SetVec3("viewPos", eye)
	u.SetFloat("specularStrength", l.Specular)
	u.SetFloat("shininess", l.Shininess)
}
