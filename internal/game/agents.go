package game

import "github.com/go-gl/mathgl/mgl32"

// Agent state flags. Dead is terminal; only host bulk ops may revive.
const (
	AgentWalking int32 = 0
	AgentYeeting int32 = 1
	AgentDead    int32 = 2
)

// AgentStore holds all per-agent simulation state in dense flat buffers,
// index = identity. Layout mirrors the GPU-resident original: position
// and yaw pack as 4 scalars, velocity and angular velocity as 4 more.
type AgentStore struct {
	Count int

	PosYaw      []float32 // x, y, z, yaw — stride 4
	VelSpin     []float32 // vx, vy, vz, angularVelocity — stride 4
	State       []int32
	Life        []float32 // seconds remaining in Yeeting
	Variant     []int32
	PaletteRow  []int32
	FrameOffset []float32
}

func NewAgentStore(count int) *AgentStore {
	if count < 0 {
		count = 0
	}
	s := &AgentStore{
		Count:       count,
		PosYaw:      make([]float32, count*4),
		VelSpin:     make([]float32, count*4),
		State:       make([]int32, count),
		Life:        make([]float32, count),
		Variant:     make([]int32, count),
		PaletteRow:  make([]int32, count),
		FrameOffset: make([]float32, count),
	}
	for i := range s.State {
		s.State[i] = AgentDead
	}
	return s
}

// clampRange trims (start, n) to the store's bounds.
func (s *AgentStore) clampRange(start, n int) (int, int) {
	if start < 0 {
		n += start
		start = 0
	}
	if start >= s.Count || n <= 0 {
		return 0, 0
	}
	if start+n > s.Count {
		n = s.Count - start
	}
	return start, n
}

// SeedAgents bulk-initializes a contiguous range to a consistent Walking
// baseline: position/yaw set, velocity and life timer zeroed. positions
// and yaws are indexed relative to the range start; missing entries
// repeat the last provided value.
func (s *AgentStore) SeedAgents(start, n int, positions []mgl32.Vec3, yaws []float32) {
	start, n = s.clampRange(start, n)
	for k := 0; k < n; k++ {
		i := start + k
		var p mgl32.Vec3
		if len(positions) > 0 {
			p = positions[clamp(k, 0, len(positions)-1)]
		}
		var yaw float32
		if len(yaws) > 0 {
			yaw = yaws[clamp(k, 0, len(yaws)-1)]
		}
		s.PosYaw[i*4+0] = p.X()
		s.PosYaw[i*4+1] = p.Y()
		s.PosYaw[i*4+2] = p.Z()
		s.PosYaw[i*4+3] = yaw
		s.VelSpin[i*4+0] = 0
		s.VelSpin[i*4+1] = 0
		s.VelSpin[i*4+2] = 0
		s.VelSpin[i*4+3] = 0
		s.Life[i] = 0
		s.State[i] = AgentWalking
	}
}

// SetVariants assigns sprite-set/profile selectors for a range.
// Values are clamped again at read time before any table lookup.
func (s *AgentStore) SetVariants(start, n int, variants []int32) {
	start, n = s.clampRange(start, n)
	for k := 0; k < n && k < len(variants); k++ {
		s.Variant[start+k] = variants[k]
	}
}

// SetPaletteRows assigns colour LUT rows independently of variant.
func (s *AgentStore) SetPaletteRows(start, n int, rows []int32) {
	start, n = s.clampRange(start, n)
	for k := 0; k < n && k < len(rows); k++ {
		s.PaletteRow[start+k] = rows[k]
	}
}

// SetFrameOffsets assigns per-agent animation phase. Offsets are reduced
// modulo the variant's frame count at read time, not here.
func (s *AgentStore) SetFrameOffsets(start, n int, offsets []float32) {
	start, n = s.clampRange(start, n)
	for k := 0; k < n && k < len(offsets); k++ {
		s.FrameOffset[start+k] = offsets[k]
	}
}

// MarkDead force-kills a range, bypassing the normal transition rules.
// Used for object-pool recycling.
func (s *AgentStore) MarkDead(start, n int) {
	start, n = s.clampRange(start, n)
	for k := 0; k < n; k++ {
		s.State[start+k] = AgentDead
	}
}

// MarkAlive force-revives a range back to Walking.
func (s *AgentStore) MarkAlive(start, n int) {
	start, n = s.clampRange(start, n)
	for k := 0; k < n; k++ {
		s.State[start+k] = AgentWalking
	}
}

// Pos returns agent i's world position.
func (s *AgentStore) Pos(i int) mgl32.Vec3 {
	return mgl32.Vec3{s.PosYaw[i*4], s.PosYaw[i*4+1], s.PosYaw[i*4+2]}
}

// Yaw returns agent i's heading in radians.
func (s *AgentStore) Yaw(i int) float32 { return s.PosYaw[i*4+3] }

// AliveCount counts agents not in the Dead state.
func (s *AgentStore) AliveCount() int {
	n := 0
	for i := range s.State {
		if s.State[i] != AgentDead {
			n++
		}
	}
	return n
}
