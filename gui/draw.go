package gui

import (
	"wireglow/core"
)

// DrawKind tells the renderer how to draw an item.
type DrawKind int

const (
	DrawRect DrawKind = iota // filled rectangle
	DrawText                 // single line of text, Rect.X/Y is the top-left
)

// DrawItem is one primitive of the panel, in back-to-front order.
type DrawItem struct {
	Kind  DrawKind
	Rect  core.Rect
	Color core.Color
	Text  string
}

var (
	ColorBackground = core.ColorHex(0x1a1a1a)
	ColorTitle      = core.ColorHex(0x000000)
	ColorTrack      = core.ColorHex(0x303030)
	ColorFill       = core.ColorHex(0x2fa1d6)
	ColorText       = core.ColorHex(0xeeeeee)
	ColorSeparator  = core.ColorHex(0x2c2c2c)
)

const textPadding = 6

// DrawList returns the primitives for the current layout.
func (p *Panel) DrawList() []DrawItem {
	items := []DrawItem{{Kind: DrawRect, Rect: p.rect, Color: ColorBackground}}
	for _, f := range p.Folders {
		items = append(items,
			DrawItem{Kind: DrawRect, Rect: f.titleRect, Color: ColorTitle},
			DrawItem{Kind: DrawText, Rect: inset(f.titleRect), Color: ColorText, Text: folderTitle(f)},
		)
		if f.Closed {
			continue
		}
		for _, s := range f.Sliders {
			fill := s.track
			fill.Width *= s.Fraction()
			items = append(items,
				DrawItem{Kind: DrawRect, Rect: core.Rect{X: s.row.X, Y: s.row.Y + s.row.Height - 1, Width: s.row.Width, Height: 1}, Color: ColorSeparator},
				DrawItem{Kind: DrawText, Rect: inset(s.row), Color: ColorText, Text: s.Name},
				DrawItem{Kind: DrawRect, Rect: s.track, Color: ColorTrack},
				DrawItem{Kind: DrawRect, Rect: fill, Color: ColorFill},
				DrawItem{Kind: DrawText, Rect: inset(s.track), Color: ColorText, Text: s.Text()},
			)
		}
	}
	return items
}

func folderTitle(f *Folder) string {
	if f.Closed {
		return "+ " + f.Name
	}
	return "- " + f.Name
}

func inset(r core.Rect) core.Rect {
	return core.Rect{X: r.X + textPadding, Y: r.Y + textPadding, Width: r.Width - 2*textPadding, Height: r.Height - 2*textPadding}
}
