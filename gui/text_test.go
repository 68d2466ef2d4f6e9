package gui

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLabel(t *testing.T) {
	face, err := NewLabelFace(LabelSize)
	require.NoError(t, err)
	defer face.Close()

	img := RenderLabel(face, "Strength", color.White)
	b := img.Bounds()
	assert.Greater(t, b.Dx(), 20)
	assert.GreaterOrEqual(t, b.Dy(), LabelSize)

	inked := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A > 0 {
				inked++
			}
		}
	}
	assert.Positive(t, inked)

	wider := RenderLabel(face, "Strength Threshold", color.White)
	assert.Greater(t, wider.Bounds().Dx(), b.Dx())
}

func TestRenderEmptyLabel(t *testing.T) {
	face, err := NewLabelFace(LabelSize)
	require.NoError(t, err)

	img := RenderLabel(face, "", color.White)
	assert.Equal(t, 1, img.Bounds().Dx())
	for _, v := range img.Pix {
		assert.Zero(t, v)
	}
}
