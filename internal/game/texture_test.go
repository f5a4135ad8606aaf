package game

import "testing"

func TestBuildAtlasDimensions(t *testing.T) {
	vt := NewVariantTable([]int{4, 6})
	cfg := DefaultRenderConfig()
	pix, size, layers := BuildAtlas(vt, cfg, 16)
	if size != cfg.SpritesPerSide*16 {
		t.Fatalf("atlas size: got %d, want %d", size, cfg.SpritesPerSide*16)
	}
	if layers != vt.TotalLayers() {
		t.Fatalf("atlas layers: got %d, want %d", layers, vt.TotalLayers())
	}
	if len(pix) != size*size*layers {
		t.Fatalf("atlas storage: got %d texels, want %d", len(pix), size*size*layers)
	}

	// Every layer must carry some opaque figure texels, and every texel
	// must land in its own variant's four-index palette block.
	layerTexels := size * size
	for v := 0; v < vt.Count; v++ {
		lo := uint8(v*4 + 1)
		hi := uint8(v*4 + 4)
		for f := 0; f < vt.FrameCount[v]; f++ {
			l := vt.BaseLayer[v] + f
			opaque := 0
			for _, p := range pix[l*layerTexels : (l+1)*layerTexels] {
				if p != 0 && (p < lo || p > hi) {
					t.Fatalf("layer %d: texel index %d outside variant %d block [%d,%d]",
						l, p, v, lo, hi)
				}
				if p != 0 {
					opaque++
				}
			}
			if opaque == 0 {
				t.Fatalf("layer %d is fully transparent", l)
			}
		}
	}
}

func TestBuildPaletteRows(t *testing.T) {
	rows := 3
	pix := BuildPalette(rows)
	if len(pix) != 256*rows*4 {
		t.Fatalf("palette storage: got %d bytes, want %d", len(pix), 256*rows*4)
	}
	for row := 0; row < rows; row++ {
		// Index 0 transparent in every row.
		if a := pix[(row*256+0)*4+3]; a != 0 {
			t.Fatalf("row %d: index 0 alpha %d, want 0", row, a)
		}
		// Every variant block is opaque.
		for v := 0; v < MaxVariants; v++ {
			for idx := v*4 + 1; idx <= v*4+4; idx++ {
				if a := pix[(row*256+idx)*4+3]; a != 255 {
					t.Fatalf("row %d: index %d alpha %d, want 255", row, idx, a)
				}
			}
		}
		// Indices past the variant blocks stay transparent.
		if a := pix[(row*256+MaxVariants*4+1)*4+3]; a != 0 {
			t.Fatalf("row %d: index beyond variant blocks is opaque", row)
		}
	}
	// Rows carry distinct cloth colors.
	c0 := pix[(0*256+2)*4]
	c1 := pix[(1*256+2)*4]
	if c0 == c1 {
		t.Fatalf("rows 0 and 1 share the same cloth red channel")
	}
	// Variants shade differently within one row.
	s0 := pix[(0*256+1)*4]
	s1 := pix[(0*256+5)*4]
	if s0 == s1 {
		t.Fatalf("variants 0 and 1 share the same skin shade")
	}
}

func TestBuildGroundMeshCoversBounds(t *testing.T) {
	cfg := DefaultTerrainConfig()
	b := Bounds{MinX: -8, MaxX: 8, MinZ: -8, MaxZ: 8}
	verts := BuildGroundMesh(cfg, b, 4)
	if len(verts)%(6*6) != 0 {
		t.Fatalf("vertex stream not whole quads: %d floats", len(verts))
	}
	// 4x4 quads of two triangles at step 4.
	wantQuads := 16
	if got := len(verts) / (6 * 6); got != wantQuads {
		t.Fatalf("quad count: got %d, want %d", got, wantQuads)
	}
	for i := 0; i < len(verts); i += 6 {
		x, y, z := verts[i], verts[i+1], verts[i+2]
		if x < b.MinX || x > b.MaxX || z < b.MinZ || z > b.MaxZ {
			t.Fatalf("vertex (%v,%v) outside bounds", x, z)
		}
		if want := TerrainHeight(cfg, x, z); y != want {
			t.Fatalf("vertex height at (%v,%v): got %v, want %v", x, z, y, want)
		}
	}
}
