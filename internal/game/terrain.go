package game

// TerrainHeight is the analytic ground function: a small multi-octave
// trigonometric sum. Agents rest on it (scaled by their variant's height
// multiplier) and the demo ground mesh samples the same surface.
func TerrainHeight(cfg TerrainConfig, x, z float32) float32 {
	amp := cfg.Amplitude
	freq := cfg.Frequency
	oct := cfg.Octaves
	if oct < 1 {
		oct = 1
	}
	var h float32
	for o := 0; o < oct; o++ {
		h += amp * (sinF(x*freq)*cosF(z*freq*1.3) + 0.5*sinF((x+z)*freq*0.7))
		amp *= 0.5
		freq *= 2.1
	}
	return h
}
