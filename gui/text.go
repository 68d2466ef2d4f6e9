package gui

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// LabelSize is the panel text size in points at 72 DPI, i.e. pixels.
const LabelSize = 11

// NewLabelFace parses the embedded Go Regular font at size points.
func NewLabelFace(size float64) (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// RenderLabel rasterises text onto a transparent image just large enough
// to hold it. The image is at least one pixel wide.
func RenderLabel(face font.Face, text string, c color.Color) *image.RGBA {
	m := face.Metrics()
	w := font.MeasureString(face, text).Ceil()
	h := m.Height.Ceil()
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.Point26_6{X: 0, Y: m.Ascent},
	}
	d.DrawString(text)
	return img
}
