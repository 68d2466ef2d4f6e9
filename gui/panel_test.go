package gui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type params struct {
	Strength, Threshold, Radius float32
}

func newTestPanel() (*Panel, *params) {
	v := &params{Strength: 1, Threshold: 0, Radius: 0.2}
	p := NewPanel(DefaultWidth)
	f := p.AddFolder("bloomParams")
	f.AddSlider("Strength", &v.Strength, 0, 4)
	f.AddSlider("Threshold", &v.Threshold, 0, 1)
	f.AddSlider("Radius", &v.Radius, 0, 0.5)
	p.Layout(800)
	return p, v
}

func TestSliderBinding(t *testing.T) {
	p, v := newTestPanel()
	s := p.Slider("bloomParams", "Strength")
	require.NotNil(t, s)

	for _, want := range []float32{0, 0.25, 1, 2.5, 4} {
		s.SetValue(want)
		assert.Equal(t, want, v.Strength)
		assert.Equal(t, want, s.Value())
	}

	v.Strength = 3
	assert.Equal(t, float32(3), s.Value())
	assert.Nil(t, p.Slider("bloomParams", "Exposure"))
	assert.Nil(t, p.Slider("other", "Strength"))
}

func TestSliderClamp(t *testing.T) {
	p, v := newTestPanel()
	p.Slider("bloomParams", "Strength").SetValue(9)
	assert.Equal(t, float32(4), v.Strength)
	p.Slider("bloomParams", "Threshold").SetValue(-1)
	assert.Equal(t, float32(0), v.Threshold)
	p.Slider("bloomParams", "Radius").SetValue(0.75)
	assert.Equal(t, float32(0.5), v.Radius)
}

func TestSliderChangeSignal(t *testing.T) {
	p, _ := newTestPanel()
	var got []SliderChange
	p.Changed.AddListener(func(_ context.Context, c SliderChange) {
		got = append(got, c)
	})

	p.Slider("bloomParams", "Radius").SetValue(0.3)
	p.Slider("bloomParams", "Strength").SetValue(7)

	require.Len(t, got, 2)
	assert.Equal(t, SliderChange{Folder: "bloomParams", Name: "Radius", Value: 0.3}, got[0])
	assert.Equal(t, SliderChange{Folder: "bloomParams", Name: "Strength", Value: 4}, got[1])
}

func TestLayoutTopRight(t *testing.T) {
	p, _ := newTestPanel()
	b := p.Bounds()
	assert.Equal(t, float32(800-DefaultWidth-Margin), b.X)
	assert.Equal(t, float32(0), b.Y)
	assert.Equal(t, float32(DefaultWidth), b.Width)
	assert.Equal(t, float32(TitleHeight+3*RowHeight), b.Height)

	p.Layout(1024)
	assert.Equal(t, float32(1024-DefaultWidth-Margin), p.Bounds().X)

	p.Layout(100)
	assert.Equal(t, float32(0), p.Bounds().X)
}

func TestDragSlider(t *testing.T) {
	p, v := newTestPanel()
	s := p.Slider("bloomParams", "Strength")
	track := s.track
	y := s.row.Y + RowHeight/2

	assert.True(t, p.MouseButton(track.X+track.Width/2, y, true))
	assert.True(t, p.Dragging())
	assert.InDelta(t, 2, v.Strength, 1e-5)

	assert.True(t, p.CursorMoved(track.X+track.Width+50, y+100))
	assert.Equal(t, float32(4), v.Strength)

	assert.True(t, p.CursorMoved(track.X-50, y))
	assert.Equal(t, float32(0), v.Strength)

	assert.True(t, p.MouseButton(0, 0, false))
	assert.False(t, p.Dragging())
	assert.False(t, p.CursorMoved(track.X+track.Width/2, y))
	assert.Equal(t, float32(0), v.Strength)
}

func TestEventsOutsidePanel(t *testing.T) {
	p, v := newTestPanel()
	assert.False(t, p.MouseButton(10, 10, true))
	assert.False(t, p.Dragging())
	assert.False(t, p.MouseButton(10, 10, false))
	assert.False(t, p.CursorMoved(10, 10))
	assert.Equal(t, float32(1), v.Strength)

	// Over a label: consumed, but nothing starts dragging.
	b := p.Bounds()
	assert.True(t, p.MouseButton(b.X+1, b.Y+b.Height-1, true))
	assert.False(t, p.Dragging())
	assert.Equal(t, float32(0.2), v.Radius)
}

func TestFolderToggle(t *testing.T) {
	p, v := newTestPanel()
	f := p.Folders[0]
	title := f.titleRect

	assert.True(t, p.MouseButton(title.X+5, title.Y+5, true))
	assert.True(t, f.Closed)
	assert.Equal(t, float32(TitleHeight), p.Bounds().Height)
	assert.False(t, p.Dragging())

	// The slider rows are hidden now.
	assert.False(t, p.MouseButton(title.X+200, TitleHeight+RowHeight/2, true))
	assert.Equal(t, float32(1), v.Strength)

	assert.True(t, p.MouseButton(title.X+5, title.Y+5, true))
	assert.False(t, f.Closed)
	assert.Equal(t, float32(800-DefaultWidth-Margin), p.Bounds().X)
}

func TestDrawList(t *testing.T) {
	p, _ := newTestPanel()
	var texts []string
	for _, it := range p.DrawList() {
		if it.Kind == DrawText {
			texts = append(texts, it.Text)
		}
	}
	assert.Equal(t, []string{"- bloomParams", "Strength", "1.00", "Threshold", "0.00", "Radius", "0.20"}, texts)

	p.Folders[0].Closed = true
	p.Layout(800)
	items := p.DrawList()
	assert.Len(t, items, 3)
	assert.Equal(t, "+ bloomParams", items[2].Text)
}

func TestFraction(t *testing.T) {
	p, _ := newTestPanel()
	assert.InDelta(t, 0.25, p.Slider("bloomParams", "Strength").Fraction(), 1e-6)
	assert.InDelta(t, 0.4, p.Slider("bloomParams", "Radius").Fraction(), 1e-6)

	var x float32
	s := &Slider{Min: 1, Max: 1, target: &x}
	assert.Equal(t, float32(0), s.Fraction())
}
