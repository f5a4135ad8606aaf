package game

// VariantTable holds the per-variant sprite-set and movement profile as
// fixed arrays indexed by clamped variant id. Each variant owns a
// contiguous run of FrameCount[v] atlas layers starting at BaseLayer[v].
type VariantTable struct {
	Count      int
	FrameCount [MaxVariants]int
	BaseLayer  [MaxVariants]int
	Scale      [MaxVariants]float32
	BaseSpeed  [MaxVariants]float32
	HeightMul  [MaxVariants]float32
}

// NewVariantTable lays variants out back to back in the atlas.
func NewVariantTable(frames []int) *VariantTable {
	t := &VariantTable{Count: len(frames)}
	if t.Count > MaxVariants {
		t.Count = MaxVariants
	}
	layer := 0
	for v := 0; v < t.Count; v++ {
		t.FrameCount[v] = frames[v]
		if t.FrameCount[v] < 1 {
			t.FrameCount[v] = 1
		}
		t.BaseLayer[v] = layer
		layer += t.FrameCount[v]
		t.Scale[v] = 1
		t.BaseSpeed[v] = 1
		t.HeightMul[v] = 1
	}
	return t
}

// TotalLayers is the number of atlas layers all variants occupy.
func (t *VariantTable) TotalLayers() int {
	if t.Count == 0 {
		return 0
	}
	v := t.Count - 1
	return t.BaseLayer[v] + t.FrameCount[v]
}

// ClampVariant guards host-supplied variant ids before any table lookup.
func (t *VariantTable) ClampVariant(v int) int {
	if t.Count == 0 {
		return 0
	}
	return clamp(v, 0, t.Count-1)
}

// LocalFrame reduces the shared animation clock plus a per-agent phase
// offset into the variant's frame range. The float mod form stays correct
// for any non-negative input.
func (t *VariantTable) LocalFrame(variant int, rawFrame, frameOffset float32) int {
	v := t.ClampVariant(variant)
	n := float32(t.FrameCount[v])
	return int(floatMod(floorF(rawFrame+frameOffset), n))
}

// AtlasLayer resolves (variant, clock, offset) to a concrete atlas layer.
func (t *VariantTable) AtlasLayer(variant int, rawFrame, frameOffset float32) int {
	v := t.ClampVariant(variant)
	return t.BaseLayer[v] + t.LocalFrame(v, rawFrame, frameOffset)
}
