// Package gui is a small parameter panel: folders of numeric sliders, each
// bound to a float32 owned by someone else. Drawing is left to the renderer,
// which walks DrawList.
package gui

import (
	"context"
	"fmt"

	"github.com/maniartech/signals"

	"wireglow/core"
)

const (
	DefaultWidth = 300
	RowHeight    = 27
	TitleHeight  = 24
	Margin       = 15
	labelShare   = 0.4
	trackInset   = 6
)

// SliderChange is emitted after a slider has written a new value.
type SliderChange struct {
	Folder string
	Name   string
	Value  float32
}

// Panel owns the folders and routes pointer input to them.
type Panel struct {
	Width   float32
	Folders []*Folder

	// Changed fires synchronously on the calling goroutine after every
	// slider write.
	Changed signals.Signal[SliderChange]

	rect     core.Rect
	viewport float32
	active   *Slider
}

func NewPanel(width float32) *Panel {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Panel{
		Width:   width,
		Changed: signals.NewSync[SliderChange](),
	}
}

func (p *Panel) AddFolder(name string) *Folder {
	f := &Folder{Name: name, panel: p}
	p.Folders = append(p.Folders, f)
	return f
}

// Slider returns the slider with the given folder and name, or nil.
func (p *Panel) Slider(folder, name string) *Slider {
	for _, f := range p.Folders {
		if f.Name != folder {
			continue
		}
		for _, s := range f.Sliders {
			if s.Name == name {
				return s
			}
		}
	}
	return nil
}

// Layout places the panel in the top-right corner of a viewport that is
// viewportWidth pixels wide.
func (p *Panel) Layout(viewportWidth float32) {
	p.viewport = viewportWidth
	x := viewportWidth - p.Width - Margin
	if x < 0 {
		x = 0
	}
	y := float32(0)
	for _, f := range p.Folders {
		f.titleRect = core.Rect{X: x, Y: y, Width: p.Width, Height: TitleHeight}
		y += TitleHeight
		for _, s := range f.Sliders {
			s.row = core.Rect{X: x, Y: y, Width: p.Width, Height: RowHeight}
			labelW := p.Width * labelShare
			s.track = core.Rect{
				X:      x + labelW,
				Y:      y + trackInset,
				Width:  p.Width - labelW - trackInset,
				Height: RowHeight - 2*trackInset,
			}
			if !f.Closed {
				y += RowHeight
			}
		}
	}
	p.rect = core.Rect{X: x, Y: 0, Width: p.Width, Height: y}
}

// Bounds returns the area covered by the panel after the last Layout.
func (p *Panel) Bounds() core.Rect {
	return p.rect
}

func (p *Panel) Contains(x, y float32) bool {
	return p.rect.Contains(x, y)
}

// Dragging reports whether a slider currently owns the pointer.
func (p *Panel) Dragging() bool {
	return p.active != nil
}

// MouseButton handles a primary button press or release at (x, y). A press
// on a track starts a drag, a press on a folder title toggles it. It reports
// whether the panel consumed the event.
func (p *Panel) MouseButton(x, y float32, pressed bool) bool {
	if !pressed {
		if p.active != nil {
			p.active = nil
			return true
		}
		return false
	}
	if !p.Contains(x, y) {
		return false
	}
	for _, f := range p.Folders {
		if f.titleRect.Contains(x, y) {
			f.Closed = !f.Closed
			p.Layout(p.viewport)
			return true
		}
		if f.Closed {
			continue
		}
		for _, s := range f.Sliders {
			if s.track.Contains(x, y) {
				p.active = s
				s.setFromX(x)
				return true
			}
		}
	}
	return true
}

// CursorMoved drags the active slider. It reports whether the panel
// consumed the event.
func (p *Panel) CursorMoved(x, y float32) bool {
	if p.active == nil {
		return false
	}
	p.active.setFromX(x)
	return true
}

// Folder groups sliders under a collapsible title.
type Folder struct {
	Name    string
	Closed  bool
	Sliders []*Slider

	panel     *Panel
	titleRect core.Rect
}

// AddSlider binds target to a new slider over [min, max]. The slider never
// copies the value: reads and writes go straight through target.
func (f *Folder) AddSlider(name string, target *float32, min, max float32) *Slider {
	s := &Slider{Name: name, Min: min, Max: max, target: target, folder: f}
	f.Sliders = append(f.Sliders, s)
	return s
}

// Slider is a numeric control bound to a float32.
type Slider struct {
	Name     string
	Min, Max float32

	target *float32
	folder *Folder
	row    core.Rect
	track  core.Rect
}

func (s *Slider) Value() float32 {
	return *s.target
}

// SetValue clamps v to the slider range, writes it to the bound target and
// notifies the panel listeners.
func (s *Slider) SetValue(v float32) {
	if v < s.Min {
		v = s.Min
	}
	if v > s.Max {
		v = s.Max
	}
	*s.target = v
	s.folder.panel.Changed.Emit(context.Background(), SliderChange{
		Folder: s.folder.Name,
		Name:   s.Name,
		Value:  v,
	})
}

// Fraction returns the position of the value inside the range, 0..1.
func (s *Slider) Fraction() float32 {
	if s.Max <= s.Min {
		return 0
	}
	return (*s.target - s.Min) / (s.Max - s.Min)
}

// Text is the value as shown next to the track.
func (s *Slider) Text() string {
	return fmt.Sprintf("%.2f", *s.target)
}

func (s *Slider) setFromX(x float32) {
	if s.track.Width <= 0 {
		return
	}
	frac := (x - s.track.X) / s.track.Width
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	s.SetValue(s.Min + frac*(s.Max-s.Min))
}
