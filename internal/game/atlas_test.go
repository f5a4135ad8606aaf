package game

import "testing"

func TestVariantLayout(t *testing.T) {
	vt := NewVariantTable([]int{8, 6, 10})
	if vt.Count != 3 {
		t.Fatalf("expected 3 variants, got %d", vt.Count)
	}
	wantBase := []int{0, 8, 14}
	for v, want := range wantBase {
		if vt.BaseLayer[v] != want {
			t.Fatalf("variant %d base layer: got %d, want %d", v, vt.BaseLayer[v], want)
		}
	}
	if got := vt.TotalLayers(); got != 24 {
		t.Fatalf("total layers: got %d, want 24", got)
	}
}

func TestLocalFrameInRange(t *testing.T) {
	vt := NewVariantTable([]int{8, 6, 10})
	rawFrames := []float32{0, 0.4, 1, 5.9, 7, 8, 100.25, 1e6}
	offsets := []float32{0, 0.5, 3, 7.9, 57}
	for v := 0; v < vt.Count; v++ {
		for _, raw := range rawFrames {
			for _, off := range offsets {
				lf := vt.LocalFrame(v, raw, off)
				if lf < 0 || lf >= vt.FrameCount[v] {
					t.Fatalf("variant %d raw %v off %v: local frame %d outside [0,%d)",
						v, raw, off, lf, vt.FrameCount[v])
				}
				layer := vt.AtlasLayer(v, raw, off)
				if layer < vt.BaseLayer[v] || layer >= vt.BaseLayer[v]+vt.FrameCount[v] {
					t.Fatalf("variant %d: layer %d outside its run [%d,%d)",
						v, layer, vt.BaseLayer[v], vt.BaseLayer[v]+vt.FrameCount[v])
				}
			}
		}
	}
}

func TestLocalFrameWraps(t *testing.T) {
	vt := NewVariantTable([]int{4})
	cases := []struct {
		raw, off float32
		want     int
	}{
		{0, 0, 0},
		{3, 0, 3},
		{4, 0, 0},
		{5.7, 0, 1},
		{2, 3, 1},
		{0, 9.5, 1},
	}
	for _, c := range cases {
		if got := vt.LocalFrame(0, c.raw, c.off); got != c.want {
			t.Fatalf("raw %v off %v: got frame %d, want %d", c.raw, c.off, got, c.want)
		}
	}
}

func TestVariantClamping(t *testing.T) {
	vt := NewVariantTable([]int{8, 6})
	if got := vt.ClampVariant(-3); got != 0 {
		t.Fatalf("negative variant should clamp to 0, got %d", got)
	}
	if got := vt.ClampVariant(99); got != 1 {
		t.Fatalf("oversized variant should clamp to last, got %d", got)
	}
	// Addressing through an out-of-range variant must stay inside the
	// last variant's layer run.
	layer := vt.AtlasLayer(99, 123.4, 5)
	if layer < vt.BaseLayer[1] || layer >= vt.BaseLayer[1]+vt.FrameCount[1] {
		t.Fatalf("clamped addressing escaped the variant run: layer %d", layer)
	}
}
