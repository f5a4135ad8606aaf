package game

import "math"

// epsilon added to vector lengths before division so near-degenerate
// directions degrade to zero-magnitude contributions.
const lenEpsilon = 1e-5

// splitmix64 is a fast, high-quality 64-bit mixer.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// hash01 maps a 64-bit hash to [0,1).
func hash01(h uint64) float32 {
	return float32(h>>40) * (1.0 / (1 << 24))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sinF(v float32) float32  { return float32(math.Sin(float64(v))) }
func cosF(v float32) float32  { return float32(math.Cos(float64(v))) }
func sqrtF(v float32) float32 { return float32(math.Sqrt(float64(v))) }
func floorF(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

func absF(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// signNotZero returns 1 for v >= 0 and -1 otherwise. Zero maps to +1 so
// the octahedral fold stays well defined on the seams.
func signNotZero(v float32) float32 {
	if v < 0 {
		return -1
	}
	return 1
}

// floatMod reduces x modulo n for non-negative float inputs.
func floatMod(x, n float32) float32 {
	if n <= 0 {
		return 0
	}
	return x - floorF(x/n)*n
}

// Rand is a tiny deterministic RNG (xorshift64*).
type Rand struct {
	s uint64
}

func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = 1
	}
	return &Rand{s: seed}
}

func (r *Rand) NextU64() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 2685821657736338717
}

func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.NextU64() % uint64(n))
}

func (r *Rand) Float32() float32 {
	return float32(r.NextU64()>>40) * (1.0 / (1 << 24))
}

func (r *Rand) RangeF(min, max float32) float32 {
	if max <= min {
		return min
	}
	return min + (max-min)*r.Float32()
}
