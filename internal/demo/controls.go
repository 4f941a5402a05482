package demo

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/lumen/internal/engine/camera"
	"github.com/Faultbox/lumen/internal/engine/input"
)

// controls is the per-frame input the cameras react to.
type controls struct {
	forward, back bool
	left, right   bool
	up, down      bool

	drag   bool
	dx, dy float32
	wheel  float32
}

func readControls(in *input.Input) controls {
	dx, dy := in.MouseDelta()
	return controls{
		forward: in.IsKeyDown(sdl.SCANCODE_W),
		back:    in.IsKeyDown(sdl.SCANCODE_S),
		left:    in.IsKeyDown(sdl.SCANCODE_A),
		right:   in.IsKeyDown(sdl.SCANCODE_D),
		up:      in.IsKeyDown(sdl.SCANCODE_E),
		down:    in.IsKeyDown(sdl.SCANCODE_Q),
		drag:    in.IsButtonDown(sdl.BUTTON_LEFT),
		dx:      float32(dx),
		dy:      float32(dy),
		wheel:   in.Wheel(),
	}
}

// applyFly moves c for dt seconds. Mouse Y grows downward, so it is negated
// before turning into pitch.
func (k controls) applyFly(c *camera.Fly, dt float32) {
	if k.forward {
		c.ProcessKeyboard(camera.Forward, dt)
	}
	if k.back {
		c.ProcessKeyboard(camera.Backward, dt)
	}
	if k.left {
		c.ProcessKeyboard(camera.Left, dt)
	}
	if k.right {
		c.ProcessKeyboard(camera.Right, dt)
	}
	if k.drag && (k.dx != 0 || k.dy != 0) {
		c.ProcessMouseMovement(k.dx, -k.dy, true)
	}
	if k.wheel != 0 {
		c.ProcessMouseScroll(k.wheel)
	}
}

func (k controls) applyOrbit(c *camera.Orbit) {
	var fwd, right, up float32
	if k.forward {
		fwd++
	}
	if k.back {
		fwd--
	}
	if k.right {
		right++
	}
	if k.left {
		right--
	}
	if k.up {
		up++
	}
	if k.down {
		up--
	}
	if fwd != 0 || right != 0 || up != 0 {
		c.HandleMovement(fwd, right, up)
	}
	if k.drag {
		c.HandleDrag(k.dx, k.dy)
	}
	if k.wheel != 0 {
		c.HandleZoom(k.wheel)
	}
}
