package game

import "github.com/go-gl/mathgl/mgl32"

// Octahedral direction codec: maps a view direction (expressed in the
// agent's yaw-compensated local frame) to a cell of the NxN sprite grid
// baked into each atlas layer. The fragment shader carries the same
// formulas; keep both in sync.

// octaHemiUV maps a direction to [0,1]^2 assuming the camera never dips
// below the horizon of interest. Projection divides by the L1 norm
// (dot(dir, sign(dir))), which also guards the division: it is zero only
// for the zero vector.
func octaHemiUV(dir mgl32.Vec3) (u, v float32) {
	d := absF(dir.X()) + absF(dir.Y()) + absF(dir.Z()) + lenEpsilon
	px := dir.X() / d
	pz := dir.Z() / d
	u = (px+pz)*0.5 + 0.5
	v = (pz-px)*0.5 + 0.5
	return u, v
}

// octaSphereUV is the full-sphere variant: L1 projection with the lower
// hemisphere folded into the upper via the sign-preserving-at-zero fold.
func octaSphereUV(dir mgl32.Vec3) (u, v float32) {
	d := absF(dir.X()) + absF(dir.Y()) + absF(dir.Z()) + lenEpsilon
	px := dir.X() / d
	py := dir.Y() / d
	pz := dir.Z() / d
	if py < 0 {
		fx := (1 - absF(pz)) * signNotZero(px)
		fz := (1 - absF(px)) * signNotZero(pz)
		px, pz = fx, fz
	}
	u = px*0.5 + 0.5
	v = pz*0.5 + 0.5
	return u, v
}

// atlasCell converts a codec UV to integer cell coordinates, applying the
// fixed orientation correction for how the atlas was authored.
func atlasCell(u, v float32, cfg RenderConfig) (cx, cy int) {
	n := cfg.SpritesPerSide
	if n < 1 {
		n = 1
	}
	cx = int(floorF(clampF(u, 0, 1)*float32(n-1) + 0.5))
	cy = int(floorF(clampF(v, 0, 1)*float32(n-1) + 0.5))
	if cfg.SwapAxes {
		cx, cy = cy, cx
	}
	if cfg.FlipH {
		cx = n - 1 - cx
	}
	if cfg.FlipV {
		cy = n - 1 - cy
	}
	return clamp(cx, 0, n-1), clamp(cy, 0, n-1)
}

// DirectionCell is the full codec path: direction in the agent's local
// frame to a sprite-grid cell.
func DirectionCell(dir mgl32.Vec3, cfg RenderConfig) (cx, cy int) {
	var u, v float32
	if cfg.Hemispherical {
		u, v = octaHemiUV(dir)
	} else {
		u, v = octaSphereUV(dir)
	}
	return atlasCell(u, v, cfg)
}

// yawLocalDir rotates a world-space vector into an agent's yaw-aligned
// local frame (rotation by -yaw around Y).
func yawLocalDir(world mgl32.Vec3, yaw float32) mgl32.Vec3 {
	c := cosF(yaw)
	s := sinF(yaw)
	return mgl32.Vec3{
		c*world.X() - s*world.Z(),
		world.Y(),
		s*world.X() + c*world.Z(),
	}
}
