// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is anything the demo loop can take a view and projection from.
type Camera interface {
	ViewMatrix() mgl32.Mat4
	Projection(aspect float32) mgl32.Mat4
	Eye() mgl32.Vec3
}

// Clip planes shared by every camera.
const (
	Near float32 = 0.1
	Far  float32 = 1000
)

// Mode selects a camera implementation.
type Mode string

// Camera modes.
const (
	ModeFly   Mode = "fly"
	ModeOrbit Mode = "orbit"
)

// ParseMode validates a camera mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFly, ModeOrbit:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown camera mode %q", s)
}

func sin(deg float32) float32 { return float32(math.Sin(float64(mgl32.DegToRad(deg)))) }
func cos(deg float32) float32 { return float32(math.Cos(float64(mgl32.DegToRad(deg)))) }
