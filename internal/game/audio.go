package game

import (
	"bytes"
	"math"

	"github.com/hajimehoshi/oto/v2"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// SoundKind identifies the procedural sound effects.
type SoundKind int

const (
	SoundYeet SoundKind = iota
	SoundSplat
)

// AudioSystem owns the oto context. Sounds are synthesized on demand;
// there are no audio assets.
type AudioSystem struct {
	ctx   *oto.Context
	ready chan struct{}
}

var globalAudio *AudioSystem

// InitAudio initializes the audio system. The demo keeps running without
// sound when this fails.
func InitAudio() error {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return err
	}
	globalAudio = &AudioSystem{ctx: ctx, ready: ready}
	return nil
}

// PlaySound fires one procedural effect. No-op before the context is
// ready or when audio never initialized.
func PlaySound(kind SoundKind) {
	if globalAudio == nil {
		return
	}
	select {
	case <-globalAudio.ready:
	default:
		return
	}
	var buf []byte
	switch kind {
	case SoundYeet:
		buf = synthYeet()
	case SoundSplat:
		buf = synthSplat()
	default:
		return
	}
	p := globalAudio.ctx.NewPlayer(bytes.NewReader(buf))
	p.Play()
}

// synthYeet: rising sine sweep with a quick decay — the launch whoop.
func synthYeet() []byte {
	const dur = 0.28
	n := int(dur * SampleRate)
	out := make([]byte, 0, n*ChannelCount*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		freq := 320.0 + 900.0*(t/dur)
		phase += 2 * math.Pi * freq / SampleRate
		env := (1 - t/dur)
		s := float32(math.Sin(phase) * 0.35 * env * env)
		out = appendSampleF32(out, s, s)
	}
	return out
}

// synthSplat: decaying noise burst for the terminal impact.
func synthSplat() []byte {
	const dur = 0.18
	n := int(dur * SampleRate)
	out := make([]byte, 0, n*ChannelCount*4)
	r := NewRand(0xB10B)
	low := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		env := (1 - t/dur)
		// One-pole lowpass over white noise keeps it thuddy.
		low += (float64(r.Float32())*2 - 1 - low) * 0.25
		s := float32(low * 0.5 * env * env)
		out = appendSampleF32(out, s, s)
	}
	return out
}

func appendSampleF32(out []byte, l, r float32) []byte {
	lb := math.Float32bits(l)
	rb := math.Float32bits(r)
	return append(out,
		byte(lb), byte(lb>>8), byte(lb>>16), byte(lb>>24),
		byte(rb), byte(rb>>8), byte(rb>>16), byte(rb>>24),
	)
}
