package game

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrGridNotConfigured is returned when Step runs before ConfigureGrid.
var ErrGridNotConfigured = errors.New("sim: step before grid configuration")

// StepStats reports state transitions that happened during one Step.
type StepStats struct {
	Launched int // Walking -> Yeeting this tick
	Died     int // Yeeting -> Dead this tick
}

// Simulation owns the agent state store and the spatial hash grid for
// the lifetime of a population. Each Step runs the fixed dispatch
// sequence clear -> bin (xBinPasses) -> steer with a full barrier
// between phases; the renderer then consumes the store read-only.
type Simulation struct {
	store    *AgentStore
	grid     Grid
	variants *VariantTable

	steer     SteerConfig
	yeet      YeetConfig
	attractor AttractorConfig
	terrain   TerrainConfig

	// Previous-tick snapshot used for neighbor reads inside the steering
	// kernel, so parallel agent invocations never observe each other's
	// in-flight writes.
	prevPosYaw []float32
	prevState  []int32

	launched int32
	died     int32
}

func NewSimulation(count int, variants *VariantTable) *Simulation {
	if variants == nil {
		variants = NewVariantTable([]int{1})
	}
	return &Simulation{
		store:      NewAgentStore(count),
		variants:   variants,
		steer:      DefaultSteerConfig(),
		yeet:       DefaultYeetConfig(),
		terrain:    DefaultTerrainConfig(),
		prevPosYaw: make([]float32, count*4),
		prevState:  make([]int32, count),
	}
}

func (s *Simulation) Store() *AgentStore      { return s.store }
func (s *Simulation) Variants() *VariantTable { return s.variants }

// ConfigureGrid (re)allocates grid storage. Required before the first
// Step and whenever bounds or cell size change.
func (s *Simulation) ConfigureGrid(cfg GridConfig) { s.grid.Configure(cfg) }

func (s *Simulation) ConfigureAttractor(cfg AttractorConfig) { s.attractor = cfg }
func (s *Simulation) ConfigureYeet(cfg YeetConfig)           { s.yeet = cfg }
func (s *Simulation) ConfigureSteering(cfg SteerConfig)      { s.steer = cfg }
func (s *Simulation) ConfigureTerrain(cfg TerrainConfig)     { s.terrain = cfg }

func (s *Simulation) Attractor() AttractorConfig { return s.attractor }
func (s *Simulation) Terrain() TerrainConfig     { return s.terrain }

// SeedAgents bulk-initializes a range to the Walking baseline, resting
// each agent on the terrain at its planar position.
func (s *Simulation) SeedAgents(start, n int, positions []mgl32.Vec3, yaws []float32) {
	s.store.SeedAgents(start, n, positions, yaws)
	st := s.store
	for k := 0; k < n; k++ {
		i := start + k
		if i < 0 || i >= st.Count {
			continue
		}
		vi := s.variants.ClampVariant(int(st.Variant[i]))
		st.PosYaw[i*4+1] = TerrainHeight(s.terrain, st.PosYaw[i*4+0], st.PosYaw[i*4+2]) * s.variants.HeightMul[vi]
	}
}

// Step runs one simulation tick. The sequence and its barriers mirror
// the dispatch order of the GPU original; there is no cross-tick
// pipelining and no mid-tick cancellation.
func (s *Simulation) Step(dt, elapsed float32) (StepStats, error) {
	if !s.grid.Configured() {
		return StepStats{}, ErrGridNotConfigured
	}
	if dt <= 0 {
		return StepStats{}, nil
	}
	atomic.StoreInt32(&s.launched, 0)
	atomic.StoreInt32(&s.died, 0)

	// Clear: one work item per grid slot.
	dispatch(len(s.grid.Slots), func(i int) { s.grid.clearKernel(i) })

	// Bin: one work item per agent, repeated binPasses times to refill
	// slots lost to candidate collisions.
	n := s.store.Count
	salt := uint64(elapsed * 0.25)
	for pass := 0; pass < s.grid.Config().BinPasses; pass++ {
		p := pass
		dispatch(n, func(i int) {
			if s.store.State[i] == AgentDead {
				return
			}
			s.grid.binKernel(i, s.store.PosYaw[i*4+0], s.store.PosYaw[i*4+2], p, salt)
		})
	}

	// Steer: snapshot first so neighbor reads are consistent.
	s.snapshot()
	dispatch(n, func(i int) { s.steerKernel(i, dt, elapsed) })

	return StepStats{
		Launched: int(atomic.LoadInt32(&s.launched)),
		Died:     int(atomic.LoadInt32(&s.died)),
	}, nil
}

func (s *Simulation) snapshot() {
	copy(s.prevPosYaw, s.store.PosYaw)
	copy(s.prevState, s.store.State)
}

// parallelMin is the work-item count below which dispatch stays on the
// calling goroutine; small populations are not worth the fan-out.
const parallelMin = 2048

// dispatch runs fn for every index in [0, n), fanning out to worker
// goroutines in contiguous chunks. It returns only after all items
// complete, giving the full barrier the phase ordering requires.
func dispatch(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if n < parallelMin {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	workers := runtime.GOMAXPROCS(0)
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(i0, i1 int) {
			defer wg.Done()
			for i := i0; i < i1; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}
