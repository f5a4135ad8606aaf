package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// unitDirections samples the sphere on a coarse spherical grid plus the
// axis-aligned directions that stress the codec's seams.
func unitDirections() []mgl32.Vec3 {
	dirs := []mgl32.Vec3{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
	}
	for i := 0; i < 12; i++ {
		theta := float64(i) / 12 * 2 * math.Pi
		for j := 1; j < 8; j++ {
			phi := float64(j) / 8 * math.Pi
			dirs = append(dirs, mgl32.Vec3{
				float32(math.Sin(phi) * math.Cos(theta)),
				float32(math.Cos(phi)),
				float32(math.Sin(phi) * math.Sin(theta)),
			})
		}
	}
	return dirs
}

func TestOctahedralUVInUnitSquare(t *testing.T) {
	for _, dir := range unitDirections() {
		u, v := octaHemiUV(dir)
		if u < 0 || u > 1 || v < 0 || v > 1 {
			t.Fatalf("hemi uv out of range for %v: (%v, %v)", dir, u, v)
		}
		u, v = octaSphereUV(dir)
		if u < 0 || u > 1 || v < 0 || v > 1 {
			t.Fatalf("sphere uv out of range for %v: (%v, %v)", dir, u, v)
		}
	}
}

func TestOctahedralZeroVectorStaysFinite(t *testing.T) {
	u, v := octaHemiUV(mgl32.Vec3{})
	if math.IsNaN(float64(u)) || math.IsNaN(float64(v)) {
		t.Fatalf("hemi uv not finite for zero vector: (%v, %v)", u, v)
	}
	u, v = octaSphereUV(mgl32.Vec3{})
	if math.IsNaN(float64(u)) || math.IsNaN(float64(v)) {
		t.Fatalf("sphere uv not finite for zero vector: (%v, %v)", u, v)
	}
}

func TestDirectionCellInGrid(t *testing.T) {
	cfgs := []RenderConfig{
		{SpritesPerSide: 8, Hemispherical: true},
		{SpritesPerSide: 8},
		{SpritesPerSide: 8, Hemispherical: true, FlipH: true, FlipV: true},
		{SpritesPerSide: 8, SwapAxes: true},
		{SpritesPerSide: 1, Hemispherical: true},
	}
	for _, cfg := range cfgs {
		for _, dir := range unitDirections() {
			cx, cy := DirectionCell(dir, cfg)
			if cx < 0 || cx >= cfg.SpritesPerSide || cy < 0 || cy >= cfg.SpritesPerSide {
				t.Fatalf("cell (%d, %d) outside %dx%d grid for %v (cfg %+v)",
					cx, cy, cfg.SpritesPerSide, cfg.SpritesPerSide, dir, cfg)
			}
		}
	}
}

func TestOrientationFlipsMirrorCells(t *testing.T) {
	base := RenderConfig{SpritesPerSide: 8, Hemispherical: true}
	flipped := base
	flipped.FlipH = true
	flipped.FlipV = true
	n := base.SpritesPerSide
	for _, dir := range unitDirections() {
		cx, cy := DirectionCell(dir, base)
		fx, fy := DirectionCell(dir, flipped)
		if fx != n-1-cx || fy != n-1-cy {
			t.Fatalf("flip mismatch for %v: base (%d,%d), flipped (%d,%d)", dir, cx, cy, fx, fy)
		}
	}
}

func TestYawLocalDir(t *testing.T) {
	got := yawLocalDir(mgl32.Vec3{1, 0, 0}, 0)
	if !got.ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, 1e-5) {
		t.Fatalf("zero yaw should be identity, got %v", got)
	}
	got = yawLocalDir(mgl32.Vec3{1, 0, 0}, math.Pi/2)
	if !got.ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-5) {
		t.Fatalf("quarter turn mismatch, got %v", got)
	}
}
