package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Orbit circles a center point. Angles are in radians.
type Orbit struct {
	Center mgl32.Vec3

	Distance  float32
	RotationX float32 // pitch
	RotationY float32 // yaw

	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32
	ZoomSensitivity float32

	FOV float32 // degrees
}

// NewOrbit creates an orbit camera with default limits around center.
func NewOrbit(center mgl32.Vec3, distance float32) *Orbit {
	return &Orbit{
		Center:          center,
		Distance:        distance,
		RotationX:       0.5,
		MinDistance:     1,
		MaxDistance:     500,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
		FOV:             DefaultZoom,
	}
}

// Eye returns the camera position in world space.
func (c *Orbit) Eye() mgl32.Vec3 {
	cx, sx := math.Cos(float64(c.RotationX)), math.Sin(float64(c.RotationX))
	cy, sy := math.Cos(float64(c.RotationY)), math.Sin(float64(c.RotationY))
	return c.Center.Add(mgl32.Vec3{
		c.Distance * float32(cx*sy),
		c.Distance * float32(sx),
		c.Distance * float32(cx*cy),
	})
}

// ViewMatrix returns the view matrix looking at Center.
func (c *Orbit) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Center, mgl32.Vec3{0, 1, 0})
}

// Projection returns a perspective projection.
func (c *Orbit) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), aspect, Near, Far)
}

// HandleDrag rotates by a mouse drag delta in pixels.
func (c *Orbit) HandleDrag(dx, dy float32) {
	c.RotationY -= dx * c.DragSensitivity
	c.RotationX = mgl32.Clamp(c.RotationX+dy*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom moves toward the center for positive delta.
func (c *Orbit) HandleZoom(delta float32) {
	c.Distance = mgl32.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the center on the ground plane relative to the view.
func (c *Orbit) HandleMovement(forward, right, up float32) {
	speed := c.Distance * 0.01
	sy, cy := float32(math.Sin(float64(c.RotationY))), float32(math.Cos(float64(c.RotationY)))

	c.Center[0] += (-sy*forward + cy*right) * speed
	c.Center[2] += (-cy*forward - sy*right) * speed
	c.Center[1] += up * speed
}

// FitToBounds centers the camera on a bounding box and backs off far enough
// to see all of it.
func (c *Orbit) FitToBounds(lo, hi mgl32.Vec3) {
	c.Center = lo.Add(hi).Mul(0.5)
	radius := hi.Sub(lo).Len() / 2
	half := mgl32.DegToRad(c.FOV) / 2
	c.Distance = mgl32.Clamp(radius/float32(math.Sin(float64(half))), c.MinDistance, c.MaxDistance)
	c.RotationX = 0.6
	c.RotationY = 0
}
