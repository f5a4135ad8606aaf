package game

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Demo world extent.
var demoBounds = Bounds{MinX: -80, MaxX: 80, MinZ: -80, MaxZ: 80}

func RunDesktop() {
	runtime.LockOSThread()

	window, err := initWindow()
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		panic(fmt.Errorf("gl init: %w", err))
	}

	if err := InitAudio(); err != nil {
		fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
	}

	// Seed from environment or clock.
	seed := uint64(time.Now().UnixNano())
	if s := os.Getenv("HORDE_SEED"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			seed = v
		}
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.ClearColor(0.45, 0.62, 0.82, 1.0)

	variants := demoVariants()
	sim := NewSimulation(DefaultAgentCount, variants)
	sim.ConfigureGrid(GridConfig{
		Bounds:     demoBounds,
		CellSize:   DefaultCellSize,
		MaxPerCell: DefaultMaxPerCell,
		BinPasses:  DefaultBinPasses,
	})
	sim.ConfigureYeet(DefaultYeetConfig())

	const paletteRows = 6
	seedPopulation(sim, seed, paletteRows)

	renderCfg := DefaultRenderConfig()
	renderer, err := NewRenderer(DefaultAgentCount)
	if err != nil {
		panic(err)
	}
	atlasPix, atlasSize, atlasLayers := BuildAtlas(variants, renderCfg, 16)
	renderer.UploadAtlas(atlasPix, atlasSize, atlasLayers)
	renderer.UploadPalette(BuildPalette(paletteRows), paletteRows)
	renderer.UploadGround(BuildGroundMesh(sim.Terrain(), demoBounds, 2))

	cam := NewCamera(mgl32.Vec3{0, 0, 0})
	in := newInputState()

	instBuf := make([]float32, 0, DefaultAgentCount*instanceFloats)
	last := glfw.GetTime()
	var elapsed float32

	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := float32(now - last)
		last = now
		if dt > 0.1 {
			dt = 0.1
		}
		elapsed += dt

		in.process(window, cam, dt)

		// The attractor sweeps a slow circle through the crowd while
		// enabled; agents that reach it get launched.
		if in.attractorOn {
			ang := elapsed * 0.15
			sim.ConfigureAttractor(AttractorConfig{
				Enabled:   true,
				Pos:       mgl32.Vec3{40 * cosF(ang), 0, 40 * sinF(ang)},
				Radius:    50,
				TurnBoost: 2.5,
				Falloff:   1,
			})
		} else {
			sim.ConfigureAttractor(AttractorConfig{})
		}

		stats, err := sim.Step(dt, elapsed)
		if err != nil {
			panic(err)
		}
		if stats.Launched > 0 {
			PlaySound(SoundYeet)
		}
		if stats.Died > 0 {
			PlaySound(SoundSplat)
		}

		// Pool recycling: once everyone has been launched and expired,
		// revive the population in place.
		if sim.Store().AliveCount() == 0 {
			seed = splitmix64(seed)
			seedPopulation(sim, seed, paletteRows)
		}

		fbW, fbH := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(fbW), int32(fbH))
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		viewProj := cam.ViewProj(fbW, fbH)
		renderer.DrawGround(viewProj)
		instBuf = BuildInstanceData(instBuf, sim.Store(), variants)
		renderer.DrawAgents(instBuf, viewProj, cam.Pos(), elapsed, renderCfg, variants)

		window.SwapBuffers()
		glfw.PollEvents()
	}
}

// demoVariants: four character types with distinct animation lengths,
// sizes and gaits sharing one atlas.
func demoVariants() *VariantTable {
	vt := NewVariantTable([]int{8, 8, 6, 10})
	vt.Scale = [MaxVariants]float32{1.8, 2.3, 1.4, 2.0}
	vt.BaseSpeed = [MaxVariants]float32{3.2, 2.4, 4.1, 2.9}
	vt.HeightMul = [MaxVariants]float32{1, 1.15, 0.85, 1}
	return vt
}

// seedPopulation scatters the full population across the bounds with
// randomized yaw, variant, palette row and animation phase.
func seedPopulation(sim *Simulation, seed uint64, paletteRows int) {
	st := sim.Store()
	vt := sim.Variants()
	r := NewRand(seed)
	n := st.Count

	positions := make([]mgl32.Vec3, n)
	yaws := make([]float32, n)
	variantIDs := make([]int32, n)
	rows := make([]int32, n)
	offsets := make([]float32, n)
	for i := 0; i < n; i++ {
		positions[i] = mgl32.Vec3{
			r.RangeF(demoBounds.MinX, demoBounds.MaxX),
			0,
			r.RangeF(demoBounds.MinZ, demoBounds.MaxZ),
		}
		yaws[i] = r.RangeF(0, 2*math.Pi)
		v := int32(r.Intn(vt.Count))
		variantIDs[i] = v
		rows[i] = int32(r.Intn(paletteRows))
		offsets[i] = r.RangeF(0, float32(vt.FrameCount[v]))
	}
	st.SetVariants(0, n, variantIDs)
	st.SetPaletteRows(0, n, rows)
	st.SetFrameOffsets(0, n, offsets)
	sim.SeedAgents(0, n, positions, yaws)
}
