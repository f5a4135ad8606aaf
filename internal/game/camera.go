package game

import "github.com/go-gl/mathgl/mgl32"

// Camera is a simple orbit camera for the demo: it circles a target
// point at a given distance, pitch and yaw.
type Camera struct {
	Target mgl32.Vec3
	Yaw    float32 // radians around Y
	Pitch  float32 // radians above the horizon
	Dist   float32
}

const (
	camMinPitch = 0.08
	camMaxPitch = 1.45
	camMinDist  = 4.0
	camMaxDist  = 300.0
)

func NewCamera(target mgl32.Vec3) *Camera {
	return &Camera{
		Target: target,
		Yaw:    0.6,
		Pitch:  0.5,
		Dist:   90,
	}
}

func (c *Camera) ClampOrbit() {
	c.Pitch = clampF(c.Pitch, camMinPitch, camMaxPitch)
	c.Dist = clampF(c.Dist, camMinDist, camMaxDist)
}

// Pos returns the camera's world position.
func (c *Camera) Pos() mgl32.Vec3 {
	cp := cosF(c.Pitch)
	return mgl32.Vec3{
		c.Target.X() + c.Dist*cp*sinF(c.Yaw),
		c.Target.Y() + c.Dist*sinF(c.Pitch),
		c.Target.Z() + c.Dist*cp*cosF(c.Yaw),
	}
}

// ViewProj builds the combined view-projection matrix for the current
// framebuffer size.
func (c *Camera) ViewProj(fbW, fbH int) mgl32.Mat4 {
	if fbH < 1 {
		fbH = 1
	}
	proj := mgl32.Perspective(mgl32.DegToRad(55), float32(fbW)/float32(fbH), 0.1, 1000)
	view := mgl32.LookAtV(c.Pos(), c.Target, mgl32.Vec3{0, 1, 0})
	return proj.Mul4(view)
}
