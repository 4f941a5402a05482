package camera

import "github.com/go-gl/mathgl/mgl32"

// Direction is a keyboard movement direction.
type Direction int

// Movement directions.
const (
	Forward Direction = iota
	Backward
	Left
	Right
)

// Fly camera defaults.
const (
	DefaultYaw         float32 = -90
	DefaultPitch       float32 = 0
	DefaultSpeed       float32 = 10
	DefaultSensitivity float32 = 0.1
	DefaultZoom        float32 = 45
)

// Zoom limits in degrees of vertical field of view.
const (
	MinZoom float32 = 1
	MaxZoom float32 = 45
)

// Fly is a free-flying Euler-angle camera. Angles are in degrees.
type Fly struct {
	Position mgl32.Vec3
	WorldUp  mgl32.Vec3

	Yaw   float32
	Pitch float32

	Speed       float32
	Sensitivity float32
	Zoom        float32

	front mgl32.Vec3
	right mgl32.Vec3
	up    mgl32.Vec3
}

// NewFly creates a fly camera at position looking down -Z.
func NewFly(position mgl32.Vec3) *Fly {
	c := &Fly{
		Position:    position,
		WorldUp:     mgl32.Vec3{0, 1, 0},
		Yaw:         DefaultYaw,
		Pitch:       DefaultPitch,
		Speed:       DefaultSpeed,
		Sensitivity: DefaultSensitivity,
		Zoom:        DefaultZoom,
	}
	c.update()
	return c
}

// Front returns the unit view direction.
func (c *Fly) Front() mgl32.Vec3 { return c.front }

// RightVector returns the unit right direction.
func (c *Fly) RightVector() mgl32.Vec3 { return c.right }

// Up returns the unit camera up direction.
func (c *Fly) Up() mgl32.Vec3 { return c.up }

// Eye returns the camera position.
func (c *Fly) Eye() mgl32.Vec3 { return c.Position }

// ViewMatrix returns the view matrix.
func (c *Fly) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.front), c.up)
}

// Projection returns a perspective projection using Zoom as the vertical FOV.
func (c *Fly) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.Zoom), aspect, Near, Far)
}

// ProcessKeyboard moves the camera for dt seconds in dir.
func (c *Fly) ProcessKeyboard(dir Direction, dt float32) {
	velocity := c.Speed * dt
	switch dir {
	case Forward:
		c.Position = c.Position.Add(c.front.Mul(velocity))
	case Backward:
		c.Position = c.Position.Sub(c.front.Mul(velocity))
	case Left:
		c.Position = c.Position.Sub(c.right.Mul(velocity))
	case Right:
		c.Position = c.Position.Add(c.right.Mul(velocity))
	}
}

// ProcessMouseMovement turns the camera. With constrain set, pitch stays
// within ±89° so the view never flips.
func (c *Fly) ProcessMouseMovement(dx, dy float32, constrain bool) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch += dy * c.Sensitivity
	if constrain {
		c.Pitch = mgl32.Clamp(c.Pitch, -89, 89)
	}
	c.update()
}

// ProcessMouseScroll zooms in for positive dy.
func (c *Fly) ProcessMouseScroll(dy float32) {
	c.Zoom = mgl32.Clamp(c.Zoom-dy, MinZoom, MaxZoom)
}

func (c *Fly) update() {
	front := mgl32.Vec3{
		cos(c.Yaw) * cos(c.Pitch),
		sin(c.Pitch),
		sin(c.Yaw) * cos(c.Pitch),
	}
	c.front = front.Normalize()
	c.right = c.front.Cross(c.WorldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}
