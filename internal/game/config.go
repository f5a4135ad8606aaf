package game

import "github.com/go-gl/mathgl/mgl32"

// Window defaults.
const (
	WindowWidth  = 1280
	WindowHeight = 720
)

// Agent population defaults for the demo.
const (
	DefaultAgentCount = 4096
	MaxVariants       = 8
)

// Simulation defaults.
const (
	DefaultCellSize        = 2.0
	DefaultMaxPerCell      = 8
	DefaultBinPasses       = 2
	DefaultNeighborSamples = 16

	// Slots inspected per cell during a neighbor query. Independent of
	// MaxPerCell so dense cells do not blow up query cost.
	querySlotsPerCell = 8

	// Candidate slots tried per agent per bin pass.
	binCandidates = 4
)

// Animation clock: the raw frame counter shared by all agents advances
// at this rate.
const AnimFPS = 12.0

// Bounds is the simulation plane extent on X/Z.
type Bounds struct {
	MinX, MaxX float32
	MinZ, MaxZ float32
}

// GridConfig controls spatial hash storage. Changing Bounds, CellSize or
// MaxPerCell requires reallocation (Grid.Configure handles that).
type GridConfig struct {
	Bounds     Bounds
	CellSize   float32
	MaxPerCell int
	BinPasses  int
}

// AttractorConfig is the point goal agents walk toward.
// Falloff selects the attraction weight curve: values >= 2 use the
// quadratic tier, anything below uses linear. The source behavior is
// two-tier, not a true exponent.
type AttractorConfig struct {
	Enabled   bool
	Pos       mgl32.Vec3
	Radius    float32
	TurnBoost float32
	Falloff   float32
}

// YeetConfig tunes the ballistic launch entered on arrival.
type YeetConfig struct {
	ArrivalDistance    float32
	Speed              float32
	HorizontalFraction float32
	Life               float32
	Gravity            float32
	Spin               float32
}

// SteerConfig tunes walking locomotion.
type SteerConfig struct {
	TurnRate        float32 // rad/s turn speed ceiling
	AvoidanceRadius float32
	SeparationGain  float32
	PushStrength    float32
	JitterStrength  float32 // rad/s symmetry-breaking noise
	StrideGain      float32 // walk-cycle speed modulation amplitude
	NeighborSamples int
}

// TerrainConfig parameterizes the analytic ground height function.
type TerrainConfig struct {
	Amplitude float32
	Frequency float32
	Octaves   int
}

// RenderConfig is shared by the billboard shaders and the Go-side codec.
// The orientation-correction flags compensate for how the offline atlas
// was authored; they are data, not logic.
type RenderConfig struct {
	SpritesPerSide int
	AlphaClamp     float32
	FlipH          bool
	FlipV          bool
	SwapAxes       bool
	Hemispherical  bool
	UseNormalMap   bool
}

func DefaultSteerConfig() SteerConfig {
	return SteerConfig{
		TurnRate:        4.0,
		AvoidanceRadius: 2.0,
		SeparationGain:  1.4,
		PushStrength:    3.0,
		JitterStrength:  0.35,
		StrideGain:      0.25,
		NeighborSamples: DefaultNeighborSamples,
	}
}

func DefaultYeetConfig() YeetConfig {
	return YeetConfig{
		ArrivalDistance:    1.0,
		Speed:              14.0,
		HorizontalFraction: 0.35,
		Life:               2.5,
		Gravity:            24.0,
		Spin:               8.0,
	}
}

func DefaultTerrainConfig() TerrainConfig {
	return TerrainConfig{
		Amplitude: 0.6,
		Frequency: 0.07,
		Octaves:   3,
	}
}

func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		SpritesPerSide: 8,
		AlphaClamp:     0.05,
		Hemispherical:  true,
	}
}
