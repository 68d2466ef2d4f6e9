package app

import (
	"context"
	"fmt"
	"log/slog"
)

// Scheduler decides whether another frame follows. Implementations may
// block, for example to wait for the display. idle reports that the last
// tick drew nothing, so nothing will block on a buffer swap either.
type Scheduler interface {
	Next(ctx context.Context, idle bool) bool
}

// Clock measures the time between frames.
type Clock struct {
	now     func() float64
	last    float64
	started bool
}

// NewClock returns a clock reading seconds from now.
func NewClock(now func() float64) *Clock {
	return &Clock{now: now}
}

// Delta returns the seconds since the previous call. The first call
// returns 0.
func (c *Clock) Delta() float32 {
	t := c.now()
	if !c.started {
		c.started = true
		c.last = t
		return 0
	}
	dt := t - c.last
	c.last = t
	return float32(dt)
}

// Loop renders one frame per tick.
type Loop struct {
	app    *App
	clock  *Clock
	sched  Scheduler
	frames uint64
	idle   bool
}

func (a *App) NewLoop(clock *Clock, sched Scheduler) (*Loop, error) {
	if a.Camera == nil {
		return nil, ErrNoCamera
	}
	if a.Composer == nil {
		return nil, ErrNoEffect
	}
	return &Loop{app: a, clock: clock, sched: sched}, nil
}

// Frames is the number of frames rendered so far.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Idle reports whether the last tick skipped drawing.
func (l *Loop) Idle() bool {
	return l.idle
}

// Tick resizes if the surface changed, then renders and presents a frame.
// A zero-sized surface is left alone and nothing is drawn.
func (l *Loop) Tick() error {
	a := l.app
	cw, ch := a.Surface.ClientSize()
	l.idle = cw <= 0 || ch <= 0
	if l.idle {
		l.clock.Delta()
		return nil
	}
	if bw, bh := a.Surface.BufferSize(); bw != cw || bh != ch {
		if err := a.Composer.SetSize(cw, ch); err != nil {
			return fmt.Errorf("frame %d: resize: %w", l.frames, err)
		}
		a.Surface.SetBufferSize(cw, ch)
		a.Camera.SetAspect(float32(cw), float32(ch))
		a.Camera.UpdateProjectionMatrix()
		if a.Panel != nil {
			a.Panel.Layout(float32(cw))
		}
		slog.Debug("resized", "width", cw, "height", ch)
	}

	dt := l.clock.Delta()
	a.Controls.Update()
	if err := a.Composer.Render(dt); err != nil {
		return fmt.Errorf("frame %d: %w", l.frames, err)
	}
	if a.HUD != nil && a.Panel != nil {
		if err := a.HUD.DrawPanel(a.Panel); err != nil {
			return fmt.Errorf("frame %d: panel: %w", l.frames, err)
		}
	}
	a.Surface.Present()
	l.frames++
	return nil
}

// Run ticks until the scheduler stops, the context ends or a frame fails.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := l.Tick(); err != nil {
			return err
		}
		if !l.sched.Next(ctx, l.idle) {
			return ctx.Err()
		}
	}
}
