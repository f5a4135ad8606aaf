package game

import "sync/atomic"

// Grid is a fixed-capacity uniform spatial hash over the simulation
// plane, rebuilt from scratch every tick. Each cell owns MaxPerCell
// slots flattened as cell*MaxPerCell+slot; a slot holds an agent index
// or the empty sentinel.
//
// Insertion is best-effort: an agent whose candidate slots are all
// taken is silently dropped for the tick, and that loss is bounded to
// one frame's neighbor-query quality because contents are rebuilt each
// tick. The slot claim is a CAS kept only for memory-model soundness
// under the parallel dispatch; a losing agent is still dropped, with no
// retries beyond its candidate chain.
type Grid struct {
	cfg        GridConfig
	resX, resZ int
	Slots      []int32
	configured bool
}

const emptySlot int32 = -1

// Configure (re)allocates grid storage. Must be called before the first
// Step and again whenever world bounds, cell size or capacity change.
func (g *Grid) Configure(cfg GridConfig) {
	if cfg.CellSize <= 0 {
		cfg.CellSize = DefaultCellSize
	}
	if cfg.MaxPerCell < 1 {
		cfg.MaxPerCell = DefaultMaxPerCell
	}
	if cfg.BinPasses < 1 {
		cfg.BinPasses = 1
	}
	if cfg.Bounds.MaxX <= cfg.Bounds.MinX {
		cfg.Bounds.MaxX = cfg.Bounds.MinX + cfg.CellSize
	}
	if cfg.Bounds.MaxZ <= cfg.Bounds.MinZ {
		cfg.Bounds.MaxZ = cfg.Bounds.MinZ + cfg.CellSize
	}

	resX := int((cfg.Bounds.MaxX-cfg.Bounds.MinX)/cfg.CellSize) + 1
	resZ := int((cfg.Bounds.MaxZ-cfg.Bounds.MinZ)/cfg.CellSize) + 1

	need := resX * resZ * cfg.MaxPerCell
	if need != len(g.Slots) {
		g.Slots = make([]int32, need)
	}
	g.cfg = cfg
	g.resX = resX
	g.resZ = resZ
	g.configured = true
	g.clearAll()
}

func (g *Grid) Configured() bool { return g.configured }

func (g *Grid) Config() GridConfig { return g.cfg }

// Resolution returns the derived cell counts on X and Z.
func (g *Grid) Resolution() (int, int) { return g.resX, g.resZ }

// clearKernel resets one slot; dispatched over resX*resZ*MaxPerCell items.
func (g *Grid) clearKernel(slot int) {
	g.Slots[slot] = emptySlot
}

func (g *Grid) clearAll() {
	for i := range g.Slots {
		g.Slots[i] = emptySlot
	}
}

// cellCoords maps a world position to clamped cell coordinates.
func (g *Grid) cellCoords(x, z float32) (cx, cz int) {
	cx = int(floorF((x - g.cfg.Bounds.MinX) / g.cfg.CellSize))
	cz = int(floorF((z - g.cfg.Bounds.MinZ) / g.cfg.CellSize))
	return clamp(cx, 0, g.resX-1), clamp(cz, 0, g.resZ-1)
}

// binKernel attempts to insert one live agent into its cell. Up to
// binCandidates independently-hashed slots are tried; the hash is seeded
// by agent index and a slowly varying time salt so candidate slots
// rotate across frames instead of deadlocking on the same collision.
// Later passes mix the pass index into the hash to probe a fresh
// candidate chain, so they first scan the cell for an existing
// placement: an agent occupies at most one slot no matter how many
// passes run.
func (g *Grid) binKernel(agent int, x, z float32, pass int, timeSalt uint64) {
	cx, cz := g.cellCoords(x, z)
	base := (cz*g.resX + cx) * g.cfg.MaxPerCell
	if pass > 0 {
		for s := 0; s < g.cfg.MaxPerCell; s++ {
			if atomic.LoadInt32(&g.Slots[base+s]) == int32(agent) {
				return
			}
		}
	}
	h := splitmix64(uint64(agent)*0x9E3779B185EBCA87 ^ timeSalt ^ uint64(pass)<<32)
	for try := 0; try < binCandidates; try++ {
		slot := base + int(h%uint64(g.cfg.MaxPerCell))
		if atomic.CompareAndSwapInt32(&g.Slots[slot], emptySlot, int32(agent)) {
			return
		}
		h = splitmix64(h)
	}
}

// forEachNeighbor iterates the 3x3 cell block around (x, z), visiting up
// to querySlotsPerCell slots per cell and at most budget agents total.
// visit returning false stops the walk early.
func (g *Grid) forEachNeighbor(x, z float32, budget int, visit func(agent int) bool) {
	if budget <= 0 {
		return
	}
	cx, cz := g.cellCoords(x, z)
	perCell := g.cfg.MaxPerCell
	if perCell > querySlotsPerCell {
		perCell = querySlotsPerCell
	}
	samples := 0
	for dz := -1; dz <= 1; dz++ {
		zz := cz + dz
		if zz < 0 || zz >= g.resZ {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			xx := cx + dx
			if xx < 0 || xx >= g.resX {
				continue
			}
			base := (zz*g.resX + xx) * g.cfg.MaxPerCell
			for s := 0; s < perCell; s++ {
				a := g.Slots[base+s]
				if a == emptySlot {
					continue
				}
				if !visit(int(a)) {
					return
				}
				samples++
				if samples >= budget {
					return
				}
			}
		}
	}
}
