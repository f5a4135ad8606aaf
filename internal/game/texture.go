package game

// Procedural atlas and palette generation for the demo. Real deployments
// feed offline-baked octahedral captures through the same upload paths;
// the generated sprites only need enough structure to show direction
// cells, walk frames, and palette rows working.

// BuildAtlas renders one layer per (variant, frame). Each layer is an
// NxN grid of direction cells, each cell a small figure whose shading
// side tracks the cell's view direction and whose legs swing with the
// frame index. Texels are palette indices; 0 is transparent.
func BuildAtlas(vt *VariantTable, cfg RenderConfig, cellPix int) (pix []uint8, size, layers int) {
	n := cfg.SpritesPerSide
	if n < 1 {
		n = 1
	}
	if cellPix < 8 {
		cellPix = 8
	}
	size = n * cellPix
	layers = vt.TotalLayers()
	pix = make([]uint8, size*size*layers)

	for v := 0; v < vt.Count; v++ {
		for f := 0; f < vt.FrameCount[v]; f++ {
			layer := vt.BaseLayer[v] + f
			swing := sinF(2 * 3.14159265 * float32(f) / float32(vt.FrameCount[v]))
			for cy := 0; cy < n; cy++ {
				for cx := 0; cx < n; cx++ {
					// Horizontal view angle implied by the cell column;
					// drives which side of the figure reads as lit.
					side := (float32(cx)+0.5)/float32(n)*2 - 1
					drawFigure(pix, size, layer, cx*cellPix, cy*cellPix, cellPix, side, swing, uint8(v))
				}
			}
		}
	}
	return pix, size, layers
}

// drawFigure rasterizes one direction cell: head, torso, two legs.
// Index map: 1 skin, 2 cloth lit, 3 cloth shaded, 4 boots; +4 per
// variant row in the palette keeps variants distinguishable even when
// they share a palette row.
func drawFigure(pix []uint8, size, layer, ox, oy, cell int, side, swing float32, variant uint8) {
	base := layer * size * size
	cf := float32(cell)
	cxc := cf * 0.5
	off := variant * 4
	set := func(x, y int, idx uint8) {
		if x < 0 || y < 0 || x >= cell || y >= cell {
			return
		}
		// Atlas rows grow downward; figure feet sit at the cell bottom.
		px := ox + x
		py := oy + (cell - 1 - y)
		pix[base+py*size+px] = off + idx
	}

	headR := cf * 0.14
	torsoW := cf * 0.18
	torsoTop := cf * 0.62
	torsoBot := cf * 0.28
	legLen := cf * 0.26

	for y := 0; y < cell; y++ {
		for x := 0; x < cell; x++ {
			fx := float32(x)
			fy := float32(y)

			// Head.
			hdx := fx - cxc
			hdy := fy - (torsoTop + headR)
			if hdx*hdx+hdy*hdy <= headR*headR {
				set(x, y, 1)
				continue
			}

			// Torso: lit/shaded split follows the view side.
			if fy >= torsoBot && fy <= torsoTop && absF(fx-cxc) <= torsoW {
				if (fx-cxc)*side >= 0 {
					set(x, y, 2)
				} else {
					set(x, y, 3)
				}
				continue
			}

			// Legs swing in opposition with the walk frame.
			if fy < torsoBot && fy >= torsoBot-legLen {
				t := (torsoBot - fy) / legLen
				lx := cxc - torsoW*0.5 + swing*t*cf*0.08
				rx := cxc + torsoW*0.5 - swing*t*cf*0.08
				if absF(fx-lx) <= cf*0.06 || absF(fx-rx) <= cf*0.06 {
					if fy < torsoBot-legLen*0.7 {
						set(x, y, 4)
					} else {
						set(x, y, 3)
					}
				}
			}
		}
	}
}

// BuildPalette builds the color LUT: 256 RGBA entries per row. Index 0
// is fully transparent in every row; each variant owns a block of four
// indices (skin, cloth, shaded cloth, boots) starting at 1 + 4*variant,
// hue-shifted per row and darkened slightly per variant. Unassigned
// indices stay transparent.
func BuildPalette(rows int) []uint8 {
	if rows < 1 {
		rows = 1
	}
	pix := make([]uint8, 256*rows*4)
	hues := [][3]uint8{
		{230, 40, 60}, {40, 120, 235}, {255, 200, 60},
		{60, 200, 90}, {180, 60, 200}, {255, 110, 50},
		{90, 90, 220}, {200, 200, 200},
	}
	for row := 0; row < rows; row++ {
		cloth := hues[row%len(hues)]
		put := func(idx int, r, g, b, a uint8) {
			o := (row*256 + idx) * 4
			pix[o+0] = r
			pix[o+1] = g
			pix[o+2] = b
			pix[o+3] = a
		}
		for v := 0; v < MaxVariants; v++ {
			shade := 1 - float32(v)*0.07
			mul := func(c uint8) uint8 { return uint8(float32(c) * shade) }
			o := v * 4
			put(o+1, mul(224), mul(172), mul(130), 255) // skin
			put(o+2, mul(cloth[0]), mul(cloth[1]), mul(cloth[2]), 255)
			put(o+3, mul(cloth[0])/2, mul(cloth[1])/2, mul(cloth[2])/2, 255) // shaded cloth
			put(o+4, 40, 34, 30, 255)                                        // boots
		}
	}
	return pix
}

// BuildGroundMesh triangulates the terrain function over the simulation
// bounds for the demo ground draw (pos3 + color3 per vertex).
func BuildGroundMesh(cfg TerrainConfig, b Bounds, step float32) []float32 {
	if step <= 0 {
		step = 2
	}
	var verts []float32
	emit := func(x, z float32) {
		h := TerrainHeight(cfg, x, z)
		shade := clampF(0.5+h*0.35, 0.2, 0.9)
		verts = append(verts, x, h, z, 0.18*shade+0.08, 0.45*shade+0.1, 0.16*shade+0.07)
	}
	for z := b.MinZ; z < b.MaxZ; z += step {
		for x := b.MinX; x < b.MaxX; x += step {
			x1 := x + step
			z1 := z + step
			emit(x, z)
			emit(x1, z)
			emit(x1, z1)
			emit(x, z)
			emit(x1, z1)
			emit(x, z1)
		}
	}
	return verts
}
