// Package shaders provides the embedded GLSL sources of the demo scenes.
package shaders

import _ "embed"

// AmbientVertexShader transforms positions only.
//
//go:embed ambient.vert
var AmbientVertexShader string

// AmbientFragmentShader shades with a constant ambient term.
//
//go:embed ambient.frag
var AmbientFragmentShader string

// LitVertexShader passes world-space position and normal.
//
//go:embed lit.vert
var LitVertexShader string

// LitFragmentShader is Phong shading with one point light.
//
//go:embed lit.frag
var LitFragmentShader string

// TexturedVertexShader passes every standard channel.
//
//go:embed textured.vert
var TexturedVertexShader string

// TexturedFragmentShader is Phong shading of a texture modulated by the
// vertex color.
//
//go:embed textured.frag
var TexturedFragmentShader string
