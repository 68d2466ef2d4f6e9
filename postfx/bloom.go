package postfx

import (
	"fmt"

	"github.com/chewxy/math32"
)

// BloomMips is the number of blur levels in the bloom chain.
const BloomMips = 5

// KernelRadii holds the blur radius in texels for each mip level.
var KernelRadii = [BloomMips]int{3, 5, 7, 9, 11}

var bloomFactors = [BloomMips]float32{1.0, 0.8, 0.6, 0.4, 0.2}

// Range is an inclusive parameter range.
type Range struct {
	Min, Max float32
}

func (r Range) Clamp(v float32) float32 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

func (r Range) Contains(v float32) bool {
	return v >= r.Min && v <= r.Max
}

var (
	ExposureRange  = Range{0.1, 5}
	StrengthRange  = Range{0, 4}
	ThresholdRange = Range{0, 1}
	RadiusRange    = Range{0, 0.5}
)

// BloomParams are read by the bloom pass on every render. Writers change
// the fields directly between frames.
type BloomParams struct {
	Exposure  float32
	Strength  float32
	Threshold float32
	Radius    float32
}

func DefaultBloomParams() BloomParams {
	return BloomParams{
		Exposure:  1,
		Strength:  1.0,
		Threshold: 0.0,
		Radius:    0.2,
	}
}

// Validate reports the first field outside its range.
func (p BloomParams) Validate() error {
	for _, f := range []struct {
		name string
		v    float32
		r    Range
	}{
		{"exposure", p.Exposure, ExposureRange},
		{"strength", p.Strength, StrengthRange},
		{"threshold", p.Threshold, ThresholdRange},
		{"radius", p.Radius, RadiusRange},
	} {
		if !f.r.Contains(f.v) {
			return fmt.Errorf("bloom %s %v outside [%v, %v]", f.name, f.v, f.r.Min, f.r.Max)
		}
	}
	return nil
}

// BloomPass extracts bright pixels, blurs them over a mip chain and adds them
// back onto the scene.
type BloomPass struct {
	Params  BloomParams
	Disable bool

	width, height int
}

func NewBloomPass(params BloomParams) *BloomPass {
	return &BloomPass{Params: params}
}

func (p *BloomPass) Name() string  { return "bloom" }
func (p *BloomPass) Enabled() bool { return !p.Disable }

func (p *BloomPass) SetSize(width, height int) {
	p.width, p.height = width, height
}

// Size returns the resolution the pass was last sized for.
func (p *BloomPass) Size() (int, int) {
	return p.width, p.height
}

func (p *BloomPass) Render(dev Device, toScreen bool) error {
	return dev.Bloom(p.Params, toScreen)
}

// BloomFactors returns the composite weight of every mip for radius. At
// radius 0 the sharp levels dominate; larger radii shift weight to the wide
// levels.
func BloomFactors(radius float32) [BloomMips]float32 {
	var out [BloomMips]float32
	for i, f := range bloomFactors {
		out[i] = f + (1.2-f-f)*radius
	}
	return out
}

// MipSizes returns the size of each bloom level: half the frame, then half
// again per level, never smaller than one pixel.
func MipSizes(width, height int) [BloomMips][2]int {
	var out [BloomMips][2]int
	w, h := half(width), half(height)
	for i := range out {
		out[i] = [2]int{w, h}
		w, h = half(w), half(h)
	}
	return out
}

func half(v int) int {
	v = (v + 1) / 2
	if v < 1 {
		return 1
	}
	return v
}

// GaussianWeights returns the one-sided weights w[0..radius-1] of a
// separable blur with sigma = radius, normalised so that
// w[0] + 2*sum(w[1:]) == 1.
func GaussianWeights(radius int) []float32 {
	if radius < 1 {
		return []float32{1}
	}
	sigma := float32(radius)
	w := make([]float32, radius)
	sum := float32(0)
	for i := range w {
		x := float32(i)
		w[i] = 0.39894 * math32.Exp(-0.5*x*x/(sigma*sigma)) / sigma
		if i == 0 {
			sum += w[i]
		} else {
			sum += 2 * w[i]
		}
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}
