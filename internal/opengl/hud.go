package opengl

import (
	"fmt"
	"log/slog"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"golang.org/x/image/font"

	"wireglow/core"
	"wireglow/gui"
	"wireglow/math"
)

// maxLabels bounds the label texture cache. Dragging a slider produces a
// new value string every frame.
const maxLabels = 128

type label struct {
	tex    uint32
	width  float32
	height float32
}

// HUD draws the control panel: flat quads plus text labels rasterised on
// the CPU and cached as textures.
type HUD struct {
	prog     uint32
	projLoc  int32
	colorLoc int32
	texLoc   int32
	useTex   int32

	vao uint32
	vbo uint32

	face   font.Face
	labels map[string]*label
}

const hudVertSrc = `
#version 410 core
layout(location = 0) in vec2 inPosition;
layout(location = 1) in vec2 inUV;

uniform mat4 projection;

out vec2 fragUV;

void main() {
    gl_Position = projection * vec4(inPosition, 0.0, 1.0);
    fragUV      = inUV;
}
` + "\x00"

const hudFragSrc = `
#version 410 core
in  vec2 fragUV;
out vec4 outColor;

uniform vec4      color;
uniform sampler2D labelTex;
uniform bool      textured;

void main() {
    if (textured) {
        outColor = color * texture(labelTex, fragUV);
    } else {
        outColor = color;
    }
}
` + "\x00"

func NewHUD() (*HUD, error) {
	prog, err := newProgram(hudVertSrc, hudFragSrc)
	if err != nil {
		return nil, fmt.Errorf("hud shader: %w", err)
	}
	face, err := gui.NewLabelFace(gui.LabelSize)
	if err != nil {
		gl.DeleteProgram(prog)
		return nil, err
	}

	h := &HUD{
		prog:     prog,
		projLoc:  uniform(prog, "projection"),
		colorLoc: uniform(prog, "color"),
		texLoc:   uniform(prog, "labelTex"),
		useTex:   uniform(prog, "textured"),
		face:     face,
		labels:   make(map[string]*label),
	}
	gl.UseProgram(prog)
	gl.Uniform1i(h.texLoc, 0)
	gl.UseProgram(0)

	gl.GenVertexArrays(1, &h.vao)
	gl.GenBuffers(1, &h.vbo)
	gl.BindVertexArray(h.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 6*4*4, nil, gl.DYNAMIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 16, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, 16, 8)
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return h, nil
}

// Draw renders p into the default framebuffer of size width×height.
func (h *HUD) Draw(p *gui.Panel, width, height int32) {
	if width <= 0 || height <= 0 {
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, width, height)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	proj := math.Mat4Orthographic(0, float32(width), float32(height), 0, -1, 1)
	gl.UseProgram(h.prog)
	gl.UniformMatrix4fv(h.projLoc, 1, false, &proj[0])
	gl.BindVertexArray(h.vao)
	gl.ActiveTexture(gl.TEXTURE0)

	for _, it := range p.DrawList() {
		switch it.Kind {
		case gui.DrawRect:
			gl.Uniform1i(h.useTex, 0)
			h.quad(it.Rect, it.Color)
		case gui.DrawText:
			l := h.label(it.Text)
			if l == nil {
				continue
			}
			gl.Uniform1i(h.useTex, 1)
			gl.BindTexture(gl.TEXTURE_2D, l.tex)
			r := it.Rect
			r.Width, r.Height = l.width, l.height
			h.quad(r, it.Color)
		}
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

func (h *HUD) quad(r core.Rect, c core.Color) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	x0, y0, x1, y1 := r.X, r.Y, r.X+r.Width, r.Y+r.Height
	verts := [24]float32{
		x0, y0, 0, 0,
		x1, y0, 1, 0,
		x1, y1, 1, 1,
		x0, y0, 0, 0,
		x1, y1, 1, 1,
		x0, y1, 0, 1,
	}
	gl.Uniform4f(h.colorLoc, c.R, c.G, c.B, c.A)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, unsafe.Pointer(&verts[0]))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// label returns the cached texture for text, rasterising it on a miss.
// Glyphs are white; the draw colour tints them.
func (h *HUD) label(text string) *label {
	if l, ok := h.labels[text]; ok {
		return l
	}
	if len(h.labels) >= maxLabels {
		h.clearLabels()
	}
	img := gui.RenderLabel(h.face, text, core.ColorWhite)
	tex, err := uploadRGBA(img)
	if err != nil {
		slog.Warn("label upload failed", "text", text, "error", err)
		return nil
	}
	l := &label{tex: tex, width: float32(img.Bounds().Dx()), height: float32(img.Bounds().Dy())}
	h.labels[text] = l
	return l
}

func (h *HUD) clearLabels() {
	for k, l := range h.labels {
		deleteTexture(&l.tex)
		delete(h.labels, k)
	}
}

func (h *HUD) Destroy() {
	h.clearLabels()
	if h.face != nil {
		h.face.Close()
	}
	if h.vbo != 0 {
		gl.DeleteBuffers(1, &h.vbo)
		h.vbo = 0
	}
	if h.vao != 0 {
		gl.DeleteVertexArrays(1, &h.vao)
		h.vao = 0
	}
	if h.prog != 0 {
		gl.DeleteProgram(h.prog)
		h.prog = 0
	}
}
