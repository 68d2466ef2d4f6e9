// Package postfx chains full-screen passes over a rendering Device. The
// passes hold the parameters; the Device owns the render targets and does
// the actual drawing.
package postfx

import (
	"fmt"

	"wireglow/scene"
)

// Device is the GPU side of the chain.
type Device interface {
	// SetSize reallocates the intermediate targets.
	SetSize(width, height int) error
	// BeginFrame starts a frame; dt is the seconds since the previous one.
	BeginFrame(dt float32)
	// RenderScene draws the scene into the HDR target.
	RenderScene(s *scene.Scene, camera *scene.PerspectiveCamera) error
	// Bloom runs the bloom stage on the HDR target. With toScreen set the
	// result is tone mapped into the default framebuffer.
	Bloom(params BloomParams, toScreen bool) error
	// Blit tone maps the HDR target into the default framebuffer.
	Blit() error
}

// Pass is one stage of the chain.
type Pass interface {
	Name() string
	Enabled() bool
	SetSize(width, height int)
	Render(dev Device, toScreen bool) error
}

// Composer runs its passes in order; the last enabled pass writes to the
// screen.
type Composer struct {
	device Device
	passes []Pass
	width  int
	height int
}

func NewComposer(device Device) *Composer {
	return &Composer{device: device}
}

func (c *Composer) AddPass(p Pass) {
	c.passes = append(c.passes, p)
	if c.width > 0 && c.height > 0 {
		p.SetSize(c.width, c.height)
	}
}

func (c *Composer) Passes() []Pass {
	return c.passes
}

// SetSize resizes the device targets and every pass. Passes keep their old
// size when the device fails.
func (c *Composer) SetSize(width, height int) error {
	if err := c.device.SetSize(width, height); err != nil {
		return fmt.Errorf("composer: %w", err)
	}
	c.width, c.height = width, height
	for _, p := range c.passes {
		p.SetSize(width, height)
	}
	return nil
}

// Render executes one composited frame. dt is forwarded to the device for
// time-driven shaders.
func (c *Composer) Render(dt float32) error {
	last := -1
	for i, p := range c.passes {
		if p.Enabled() {
			last = i
		}
	}
	if last < 0 {
		return nil
	}

	c.device.BeginFrame(dt)
	for i, p := range c.passes {
		if !p.Enabled() {
			continue
		}
		if err := p.Render(c.device, i == last); err != nil {
			return fmt.Errorf("%s pass: %w", p.Name(), err)
		}
	}
	return nil
}
