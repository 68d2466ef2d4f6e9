package postfx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wireglow/scene"
)

type fakeDevice struct {
	calls    []string
	bloomed  []BloomParams
	dt       []float32
	sceneErr error
	sizeErr  error
}

func (d *fakeDevice) SetSize(w, h int) error {
	d.calls = append(d.calls, fmt.Sprintf("size %dx%d", w, h))
	return d.sizeErr
}
func (d *fakeDevice) BeginFrame(dt float32) {
	d.dt = append(d.dt, dt)
	d.calls = append(d.calls, "begin")
}
func (d *fakeDevice) RenderScene(*scene.Scene, *scene.PerspectiveCamera) error {
	d.calls = append(d.calls, "scene")
	return d.sceneErr
}
func (d *fakeDevice) Bloom(p BloomParams, toScreen bool) error {
	d.bloomed = append(d.bloomed, p)
	d.calls = append(d.calls, fmt.Sprintf("bloom screen=%v", toScreen))
	return nil
}
func (d *fakeDevice) Blit() error {
	d.calls = append(d.calls, "blit")
	return nil
}

func newChain() (*Composer, *fakeDevice, *BloomPass) {
	dev := &fakeDevice{}
	c := NewComposer(dev)
	c.AddPass(NewRenderPass(scene.NewScene(), scene.NewPerspectiveCamera(45, 1, 0.1, 100)))
	bloom := NewBloomPass(DefaultBloomParams())
	c.AddPass(bloom)
	return c, dev, bloom
}

func TestComposerRendersPassesInOrder(t *testing.T) {
	c, dev, _ := newChain()
	require.NoError(t, c.Render(0.016))
	assert.Equal(t, []string{"begin", "scene", "bloom screen=true"}, dev.calls)
	assert.Equal(t, []float32{0.016}, dev.dt)
}

func TestComposerLastEnabledPassGoesToScreen(t *testing.T) {
	c, dev, bloom := newChain()
	bloom.Disable = true
	require.NoError(t, c.Render(0))
	assert.Equal(t, []string{"begin", "scene", "blit"}, dev.calls)
}

func TestComposerWithoutPassesDoesNothing(t *testing.T) {
	dev := &fakeDevice{}
	require.NoError(t, NewComposer(dev).Render(1))
	assert.Empty(t, dev.calls)
}

func TestComposerWrapsPassErrors(t *testing.T) {
	c, dev, _ := newChain()
	boom := errors.New("boom")
	dev.sceneErr = boom

	err := c.Render(0)
	assert.ErrorIs(t, err, boom)
	assert.ErrorContains(t, err, "render pass")
	assert.NotContains(t, dev.calls, "bloom screen=true")
}

func TestComposerSetSize(t *testing.T) {
	c, dev, bloom := newChain()
	require.NoError(t, c.SetSize(1024, 768))

	assert.Equal(t, []string{"size 1024x768"}, dev.calls)
	w, h := bloom.Size()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 768, h)

	late := NewBloomPass(DefaultBloomParams())
	c.AddPass(late)
	w, _ = late.Size()
	assert.Equal(t, 1024, w, "passes added after sizing inherit the size")
}

func TestComposerSetSizeReturnsDeviceError(t *testing.T) {
	c, dev, bloom := newChain()
	require.NoError(t, c.SetSize(800, 600))

	oom := errors.New("out of memory")
	dev.sizeErr = oom
	err := c.SetSize(4096, 4096)
	assert.ErrorIs(t, err, oom)

	w, h := bloom.Size()
	assert.Equal(t, 800, w, "passes keep the last good size")
	assert.Equal(t, 600, h)
}

func TestBloomReadsLiveParams(t *testing.T) {
	c, dev, bloom := newChain()
	require.NoError(t, c.Render(0))

	bloom.Params.Strength = 3.25
	bloom.Params.Radius = 0.5
	require.NoError(t, c.Render(0))

	require.Len(t, dev.bloomed, 2)
	assert.Equal(t, float32(1), dev.bloomed[0].Strength)
	assert.Equal(t, float32(3.25), dev.bloomed[1].Strength)
	assert.Equal(t, float32(0.5), dev.bloomed[1].Radius)
}

func TestBloomDegenerateParamsRender(t *testing.T) {
	c, dev, bloom := newChain()
	bloom.Params = BloomParams{Exposure: 1, Strength: 0, Threshold: 1, Radius: 0}
	require.NoError(t, bloom.Params.Validate())
	require.NoError(t, c.Render(0))
	assert.Len(t, dev.bloomed, 1)

	for _, f := range BloomFactors(0) {
		assert.False(t, math32.IsNaN(f))
	}
}

func TestDefaultBloomParams(t *testing.T) {
	p := DefaultBloomParams()
	assert.Equal(t, BloomParams{Exposure: 1, Strength: 1, Threshold: 0, Radius: 0.2}, p)
	assert.NoError(t, p.Validate())
}

func TestBloomParamsValidate(t *testing.T) {
	p := DefaultBloomParams()
	p.Strength = 4.5
	assert.ErrorContains(t, p.Validate(), "strength")

	p = DefaultBloomParams()
	p.Radius = -0.1
	assert.ErrorContains(t, p.Validate(), "radius")

	p = DefaultBloomParams()
	p.Exposure = 0
	assert.ErrorContains(t, p.Validate(), "exposure")
}

func TestRangeClamp(t *testing.T) {
	assert.Equal(t, float32(0), StrengthRange.Clamp(-1))
	assert.Equal(t, float32(4), StrengthRange.Clamp(9))
	assert.Equal(t, float32(0.25), RadiusRange.Clamp(0.25))
	assert.Equal(t, float32(0.5), RadiusRange.Clamp(0.7))
}

func TestBloomFactors(t *testing.T) {
	assert.Equal(t, [BloomMips]float32{1.0, 0.8, 0.6, 0.4, 0.2}, BloomFactors(0))

	full := BloomFactors(1)
	assert.InDelta(t, 0.2, full[0], 1e-6)
	assert.InDelta(t, 1.0, full[4], 1e-6)

	mid := BloomFactors(0.5)
	for _, f := range mid {
		assert.InDelta(t, 0.6, f, 1e-6)
	}
}

func TestMipSizes(t *testing.T) {
	sizes := MipSizes(800, 600)
	assert.Equal(t, [2]int{400, 300}, sizes[0])
	assert.Equal(t, [2]int{200, 150}, sizes[1])
	assert.Equal(t, [2]int{100, 75}, sizes[2])
	assert.Equal(t, [2]int{50, 38}, sizes[3])
	assert.Equal(t, [2]int{25, 19}, sizes[4])

	tiny := MipSizes(1, 0)
	for _, s := range tiny {
		assert.Equal(t, [2]int{1, 1}, s)
	}
}

func TestGaussianWeights(t *testing.T) {
	for _, r := range KernelRadii {
		w := GaussianWeights(r)
		require.Len(t, w, r)
		sum := w[0]
		for i := 1; i < len(w); i++ {
			sum += 2 * w[i]
			assert.Less(t, w[i], w[i-1], "weights fall off from the centre")
		}
		assert.InDelta(t, 1, sum, 1e-5)
	}
	assert.Equal(t, []float32{1}, GaussianWeights(0))
}
