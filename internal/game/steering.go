package game

import (
	"math"
	"sync/atomic"
)

// steerKernel advances one agent. All writes are confined to agent i's
// own slots; neighbor reads go through the pre-step snapshot so a
// parallel dispatch sees a consistent (previous-tick) view.
func (sim *Simulation) steerKernel(i int, dt, elapsed float32) {
	st := sim.store
	switch st.State[i] {
	case AgentDead:
		return
	case AgentYeeting:
		sim.yeetKernel(i, dt)
		return
	}
	sim.walkKernel(i, dt, elapsed)
}

// yeetKernel: ballistic flight. Life timer runs down first; while alive,
// semi-implicit Euler with constant downward gravity, yaw spinning from
// angular velocity.
func (sim *Simulation) yeetKernel(i int, dt float32) {
	st := sim.store
	st.Life[i] -= dt
	if st.Life[i] <= 0 {
		st.Life[i] = 0
		st.State[i] = AgentDead
		atomic.AddInt32(&sim.died, 1)
		return
	}
	st.VelSpin[i*4+1] -= sim.yeet.Gravity * dt
	st.PosYaw[i*4+0] += st.VelSpin[i*4+0] * dt
	st.PosYaw[i*4+1] += st.VelSpin[i*4+1] * dt
	st.PosYaw[i*4+2] += st.VelSpin[i*4+2] * dt
	st.PosYaw[i*4+3] += st.VelSpin[i*4+3] * dt
}

// launch fires the Walking -> Yeeting transition: randomized ballistic
// impulse (horizontal direction from a per-agent hash, vertical set to
// the yeet speed), randomized spin, life timer armed.
func (sim *Simulation) launch(i int, elapsed float32) {
	st := sim.store
	h := splitmix64(uint64(i)*0xA24BAED4963EE407 ^ uint64(elapsed*997))
	ang := hash01(h) * 2 * math.Pi
	h = splitmix64(h)
	horiz := sim.yeet.Speed * sim.yeet.HorizontalFraction
	st.VelSpin[i*4+0] = cosF(ang) * horiz
	st.VelSpin[i*4+1] = sim.yeet.Speed
	st.VelSpin[i*4+2] = sinF(ang) * horiz
	st.VelSpin[i*4+3] = (hash01(h) - 0.5) * 2 * sim.yeet.Spin
	st.Life[i] = sim.yeet.Life
	st.State[i] = AgentYeeting
	atomic.AddInt32(&sim.launched, 1)
}

// walkKernel: heading blend (forward + separation + attraction), bounded
// turn, stride-synchronized forward motion, soft push-out, world-bound
// reflection and terrain resting.
func (sim *Simulation) walkKernel(i int, dt, elapsed float32) {
	st := sim.store
	x := st.PosYaw[i*4+0]
	z := st.PosYaw[i*4+2]
	yaw := st.PosYaw[i*4+3]

	att := sim.attractor
	var attDX, attDZ, attDist float32
	attracted := false
	if att.Enabled {
		attDX = att.Pos.X() - x
		attDZ = att.Pos.Z() - z
		attDist = sqrtF(attDX*attDX + attDZ*attDZ)
		if attDist <= att.Radius {
			attracted = true
			if attDist <= sim.yeet.ArrivalDistance {
				sim.launch(i, elapsed)
				return
			}
		}
	}

	fx := sinF(yaw)
	fz := cosF(yaw)

	// Separation: inverse-distance repulsion from sampled neighbors,
	// averaged over the contributing count so crowds do not over-correct.
	var sepX, sepZ float32
	contrib := 0
	avoidR := sim.steer.AvoidanceRadius
	sim.grid.forEachNeighbor(x, z, sim.steer.NeighborSamples, func(o int) bool {
		if o == i || o >= st.Count {
			return true
		}
		if sim.prevState[o] == AgentDead {
			return true
		}
		dx := x - sim.prevPosYaw[o*4+0]
		dz := z - sim.prevPosYaw[o*4+2]
		d := sqrtF(dx*dx + dz*dz)
		if d < avoidR {
			inv := 1 / (d + lenEpsilon)
			sepX += dx * inv * inv
			sepZ += dz * inv * inv
			contrib++
		}
		return true
	})
	if contrib > 0 {
		s := sim.steer.SeparationGain / float32(contrib)
		sepX *= s
		sepZ *= s
	}

	desX := fx + sepX
	desZ := fz + sepZ
	boost := float32(1)
	if attracted {
		t := clampF(1-attDist/(att.Radius+lenEpsilon), 0, 1)
		w := t
		if att.Falloff >= 2 {
			w = t * t
		}
		inv := 1 / (attDist + lenEpsilon)
		desX += attDX * inv * w * att.TurnBoost
		desZ += attDZ * inv * w * att.TurnBoost
		boost += w * att.TurnBoost
	}

	dl := sqrtF(desX*desX+desZ*desZ) + lenEpsilon
	desX /= dl
	desZ /= dl

	// Turn toward the desired heading at a bounded rate. The (1 - cos)
	// factor shrinks the step as headings align; the side sign comes from
	// projecting the desired heading onto d(forward)/d(yaw).
	cosA := clampF(fx*desX+fz*desZ, -1, 1)
	turn := sim.steer.TurnRate * (1 - cosA) * boost * dt
	if desX*fz-desZ*fx < 0 {
		turn = -turn
	}
	jh := splitmix64(uint64(i)*0x6C8E9CF570932BD5 ^ uint64(elapsed*53))
	yaw += turn + (hash01(jh)-0.5)*sim.steer.JitterStrength*dt

	fx = sinF(yaw)
	fz = cosF(yaw)

	// Stride-synchronized speed: keyed to the same animation phase the
	// renderer uses, so motion matches the walk cycle on screen.
	vt := sim.variants
	vi := vt.ClampVariant(int(st.Variant[i]))
	frames := float32(vt.FrameCount[vi])
	phase := floatMod(elapsed*AnimFPS+st.FrameOffset[i], frames) / frames
	spd := vt.BaseSpeed[vi] * (1 + sim.steer.StrideGain*sinF(phase*2*math.Pi))
	x += fx * spd * dt
	z += fz * spd * dt

	// Soft overlap resolution after the tentative move.
	pushGain := sim.steer.PushStrength * dt
	sim.grid.forEachNeighbor(x, z, sim.steer.NeighborSamples, func(o int) bool {
		if o == i || o >= st.Count {
			return true
		}
		if sim.prevState[o] == AgentDead {
			return true
		}
		dx := x - sim.prevPosYaw[o*4+0]
		dz := z - sim.prevPosYaw[o*4+2]
		d := sqrtF(dx*dx + dz*dz)
		if d < avoidR {
			k := (avoidR - d) * pushGain / (d + lenEpsilon)
			x += dx * k
			z += dz * k
		}
		return true
	})

	// World bounds: clamp and mirror yaw about the violated axis.
	b := sim.grid.Config().Bounds
	if x < b.MinX {
		x = b.MinX
		yaw = -yaw
	} else if x > b.MaxX {
		x = b.MaxX
		yaw = -yaw
	}
	if z < b.MinZ {
		z = b.MinZ
		yaw = math.Pi - yaw
	} else if z > b.MaxZ {
		z = b.MaxZ
		yaw = math.Pi - yaw
	}

	st.PosYaw[i*4+0] = x
	st.PosYaw[i*4+1] = TerrainHeight(sim.terrain, x, z) * vt.HeightMul[vi]
	st.PosYaw[i*4+2] = z
	st.PosYaw[i*4+3] = yaw
}
