// Package palette maps escape counts to colors with phase-shifted sine
// waves, one per RGB channel.
package palette

import (
	"math"

	"github.com/willbeason/mandelterm/pkg/escape"
)

// Defaults for the sunset preset.
const (
	DefaultCoef   = 140.0
	DefaultFreq   = 0.1
	DefaultOffset = 112.0
)

// A Channel is one sinusoid of an RGB conversion:
// value = coef*sin(count*freq + phase) + offset, clamped to [0, 255].
type Channel struct {
	Coef   float64 `json:"coef"`
	Freq   float64 `json:"freq"`
	Phase  float64 `json:"phase"`
	Offset float64 `json:"offset"`
}

// saturate clamps to the 8-bit channel range. Wrapping instead of
// clamping produces banding artifacts at extreme iteration counts.
func saturate(v float64) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}

// Compute evaluates the channel for a smoothed escape count.
func (ch Channel) Compute(count float64) uint8 {
	return saturate(ch.Coef*math.Sin(count*ch.Freq+ch.Phase) + ch.Offset)
}

// SineRGB colors escape counts with three independent channels.
//
// Interior points (no escape) are always black.
type SineRGB struct {
	R Channel `json:"r"`
	G Channel `json:"g"`
	B Channel `json:"b"`
}

// Sunset is the default palette.
//
// True RGB would space the phases 120 degrees apart; these are 60 degrees
// apart, which trades correctness for sunset colors.
func Sunset() SineRGB {
	channel := func(phase float64) Channel {
		return Channel{
			Coef:   DefaultCoef,
			Freq:   DefaultFreq,
			Phase:  phase,
			Offset: DefaultOffset,
		}
	}

	return SineRGB{
		R: channel(math.Pi * 9 / 6),
		G: channel(math.Pi * 10 / 6),
		B: channel(math.Pi * 11 / 6),
	}
}

// RGB converts an escape result to an 8-bit color triple.
func (s SineRGB) RGB(r escape.Result) (uint8, uint8, uint8) {
	if !r.Escaped {
		return 0, 0, 0
	}
	return s.R.Compute(r.Count), s.G.Compute(r.Count), s.B.Compute(r.Count)
}
