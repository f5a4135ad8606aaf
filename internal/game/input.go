package game

import "github.com/go-gl/glfw/v3.3/glfw"

// inputState tracks key edges for the demo controls:
// arrows orbit, Q/E zoom, space toggles the attractor, escape quits.
type inputState struct {
	attractorOn bool
	spaceHeld   bool
}

func newInputState() *inputState {
	return &inputState{attractorOn: true}
}

func (in *inputState) process(window *glfw.Window, cam *Camera, dt float32) {
	if window.GetKey(glfw.KeyEscape) == glfw.Press {
		window.SetShouldClose(true)
	}

	const orbitSpeed = 1.6
	const zoomSpeed = 40.0
	if window.GetKey(glfw.KeyLeft) == glfw.Press {
		cam.Yaw -= orbitSpeed * dt
	}
	if window.GetKey(glfw.KeyRight) == glfw.Press {
		cam.Yaw += orbitSpeed * dt
	}
	if window.GetKey(glfw.KeyUp) == glfw.Press {
		cam.Pitch += orbitSpeed * dt
	}
	if window.GetKey(glfw.KeyDown) == glfw.Press {
		cam.Pitch -= orbitSpeed * dt
	}
	if window.GetKey(glfw.KeyQ) == glfw.Press {
		cam.Dist -= zoomSpeed * dt
	}
	if window.GetKey(glfw.KeyE) == glfw.Press {
		cam.Dist += zoomSpeed * dt
	}
	cam.ClampOrbit()

	space := window.GetKey(glfw.KeySpace) == glfw.Press
	if space && !in.spaceHeld {
		in.attractorOn = !in.attractorOn
	}
	in.spaceHeld = space
}
