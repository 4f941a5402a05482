package demo

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/lumen/internal/engine/camera"
)

func TestControls_ApplyFly(t *testing.T) {
	tests := []struct {
		name  string
		k     controls
		check func(t *testing.T, c *camera.Fly)
	}{
		{
			name: "forward moves down -Z",
			k:    controls{forward: true},
			check: func(t *testing.T, c *camera.Fly) {
				if !c.Position.ApproxEqualThreshold(mgl32.Vec3{0, 0, -5}, 1e-4) {
					t.Errorf("expected (0,0,-5), got %v", c.Position)
				}
			},
		},
		{
			name: "opposite keys cancel",
			k:    controls{left: true, right: true},
			check: func(t *testing.T, c *camera.Fly) {
				if !c.Position.ApproxEqualThreshold(mgl32.Vec3{}, 1e-4) {
					t.Errorf("expected no movement, got %v", c.Position)
				}
			},
		},
		{
			name: "mouse without drag is ignored",
			k:    controls{dx: 100, dy: 100},
			check: func(t *testing.T, c *camera.Fly) {
				if c.Yaw != camera.DefaultYaw || c.Pitch != 0 {
					t.Errorf("expected default angles, got yaw %v pitch %v", c.Yaw, c.Pitch)
				}
			},
		},
		{
			name: "drag up pitches up",
			k:    controls{drag: true, dx: 10, dy: -20},
			check: func(t *testing.T, c *camera.Fly) {
				if c.Yaw != camera.DefaultYaw+1 {
					t.Errorf("expected yaw %v, got %v", camera.DefaultYaw+1, c.Yaw)
				}
				if c.Pitch != 2 {
					t.Errorf("expected pitch 2, got %v", c.Pitch)
				}
			},
		},
		{
			name: "wheel zooms in",
			k:    controls{wheel: 5},
			check: func(t *testing.T, c *camera.Fly) {
				if c.Zoom != 40 {
					t.Errorf("expected zoom 40, got %v", c.Zoom)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := camera.NewFly(mgl32.Vec3{})
			tt.k.applyFly(c, 0.5)
			tt.check(t, c)
		})
	}
}

func TestControls_ApplyOrbit(t *testing.T) {
	c := camera.NewOrbit(mgl32.Vec3{}, 10)

	controls{up: true}.applyOrbit(c)
	if c.Center.Y() <= 0 {
		t.Errorf("expected center to rise, got %v", c.Center)
	}

	before := c.RotationY
	controls{dx: 50}.applyOrbit(c)
	if c.RotationY != before {
		t.Error("expected no rotation without drag")
	}
	controls{drag: true, dx: 50}.applyOrbit(c)
	if c.RotationY >= before {
		t.Errorf("expected yaw to decrease, got %v", c.RotationY)
	}

	controls{wheel: 1}.applyOrbit(c)
	if c.Distance >= 10 {
		t.Errorf("expected to move closer, got %v", c.Distance)
	}
}
